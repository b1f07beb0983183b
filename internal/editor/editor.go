package editor

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gyaneshwarpardhi/dialoguegraph/internal/config"
	"github.com/gyaneshwarpardhi/dialoguegraph/internal/dialogue"
	"github.com/gyaneshwarpardhi/dialoguegraph/internal/quest"
)

var (
	ErrNodeNotFound  = errors.New("dialogue node not found")
	ErrQuestNotFound = errors.New("quest not found")
)

// Snapshot is a point-in-time copy of the edited dialogue.
type Snapshot struct {
	ID          string           `json:"id"`
	PlayerFirst bool             `json:"player_first"`
	Roots       []string         `json:"roots"`
	Nodes       []config.NodeDef `json:"nodes"`
}

// Editor is an editing session over one dialogue. A Dialogue is not safe for
// concurrent use, so every access goes through the session lock.
type Editor struct {
	mu     sync.Mutex
	id     string
	dlg    *dialogue.Dialogue
	quests map[string]quest.Status
	logger *slog.Logger
}

// New builds a session from a validated document.
func New(doc *config.Document, logger *slog.Logger) (*Editor, error) {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Editor{logger: logger}
	if err := e.Swap(doc); err != nil {
		return nil, err
	}
	return e, nil
}

// Swap replaces the dialogue and quests with the ones in doc (used on
// hot-reload). The current session is kept if doc cannot be built.
func (e *Editor) Swap(doc *config.Document) error {
	dlg, err := dialogue.Build(doc.Dialogue, dialogue.WithLogger(e.logger))
	if err != nil {
		return fmt.Errorf("build dialogue %q: %w", doc.Dialogue.ID, err)
	}
	quests := quest.Build(doc.Quests)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.id = doc.Dialogue.ID
	e.dlg = dlg
	e.quests = quests
	return nil
}

// Reload validates doc and swaps it in.
func (e *Editor) Reload(doc *config.Document) error {
	if err := config.Validate(doc); err != nil {
		return err
	}
	if err := e.Swap(doc); err != nil {
		return err
	}
	e.logger.Info("dialogue reloaded", "dialogue", doc.Dialogue.ID, "nodes", len(doc.Dialogue.Nodes))
	return nil
}

// Follow reloads the session whenever l picks up a new document. Invalid
// documents are logged and skipped.
func (e *Editor) Follow(l *config.Loader) {
	l.OnChange(func(doc *config.Document) {
		if err := e.Reload(doc); err != nil {
			e.logger.Warn("hot-reload skipped", "path", l.Path(), "err", err)
		}
	})
}

// Snapshot copies the current dialogue.
func (e *Editor) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	def := dialogue.Export(e.dlg, e.id)
	s := Snapshot{
		ID:          e.id,
		PlayerFirst: def.IsPlayerFirst(),
		Roots:       []string{},
		Nodes:       def.Nodes,
	}
	for r := range e.dlg.Roots() {
		s.Roots = append(s.Roots, r.ID())
	}
	return s
}

// Children lists the children of id, or the roots when id is empty.
func (e *Editor) Children(id string) ([]config.NodeDef, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	var parent *dialogue.Node
	if id != "" {
		n, err := e.node(id)
		if err != nil {
			return nil, err
		}
		parent = n
	}
	out := []config.NodeDef{}
	for c := range e.dlg.Children(parent) {
		out = append(out, dialogue.Describe(c))
	}
	return out, nil
}

// CreateNode adds a node under parentID, or an unattached root when
// parentID is empty.
func (e *Editor) CreateNode(parentID string) (config.NodeDef, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	var parent *dialogue.Node
	if parentID != "" {
		p, err := e.node(parentID)
		if err != nil {
			return config.NodeDef{}, err
		}
		parent = p
	}
	n := e.dlg.CreateNode(parent)
	e.logger.Info("dialogue node created", "node", n.ID(), "parent", parentID)
	return dialogue.Describe(n), nil
}

// DeleteNode removes id and every reference to it.
func (e *Editor) DeleteNode(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	n, err := e.node(id)
	if err != nil {
		return err
	}
	e.dlg.DeleteNode(n)
	e.logger.Info("dialogue node deleted", "node", id)
	return nil
}

// SetSpeaker changes whose turn id is. Edges that stop alternating are
// dropped.
func (e *Editor) SetSpeaker(id string, player bool) (config.NodeDef, error) {
	return e.mutate(id, func(n *dialogue.Node) error {
		n.SetPlayerSpeaker(player)
		return nil
	})
}

// AddChild links child under id. The returned node shows whether the edge
// survived validation.
func (e *Editor) AddChild(id, child string) (config.NodeDef, error) {
	return e.mutate(id, func(n *dialogue.Node) error {
		if _, err := e.node(child); err != nil {
			return err
		}
		n.AddChild(child)
		return nil
	})
}

// RemoveChild unlinks child from id. Missing edges are ignored.
func (e *Editor) RemoveChild(id, child string) (config.NodeDef, error) {
	return e.mutate(id, func(n *dialogue.Node) error {
		n.RemoveChild(child)
		return nil
	})
}

// SetText replaces the line spoken at id.
func (e *Editor) SetText(id, text string) (config.NodeDef, error) {
	return e.mutate(id, func(n *dialogue.Node) error {
		n.SetText(text)
		return nil
	})
}

// Tooltip renders the tooltip of a quest.
func (e *Editor) Tooltip(questID string) (quest.Tooltip, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.quests[questID]
	if !ok {
		return quest.Tooltip{}, fmt.Errorf("%w: %s", ErrQuestNotFound, questID)
	}
	return quest.NewTooltip(s), nil
}

// Walk runs fn over the dialogue depth first while holding the session lock.
func (e *Editor) Walk(fn func(n config.NodeDef, depth int)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dlg.Walk(func(n *dialogue.Node, depth int) bool {
		fn(dialogue.Describe(n), depth)
		return true
	})
}

func (e *Editor) mutate(id string, fn func(n *dialogue.Node) error) (config.NodeDef, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	n, err := e.node(id)
	if err != nil {
		return config.NodeDef{}, err
	}
	if err := fn(n); err != nil {
		return config.NodeDef{}, err
	}
	return dialogue.Describe(n), nil
}

func (e *Editor) node(id string) (*dialogue.Node, error) {
	n := e.dlg.Node(id)
	if n == nil {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	return n, nil
}

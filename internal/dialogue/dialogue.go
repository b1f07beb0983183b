package dialogue

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/gyaneshwarpardhi/dialoguegraph/internal/metrics"
)

// ErrDuplicateNode is returned by New when two nodes share an id.
var ErrDuplicateNode = errors.New("duplicate dialogue node id")

// childOffset is where CreateNode places a child relative to its parent.
var childOffset = Vec2{X: 200, Y: 0}

// Dialogue owns a set of nodes and keeps the derived lookups and the
// speaker alternation of every edge consistent with them. It is not safe
// for concurrent use.
type Dialogue struct {
	playerFirst bool
	nodes       []*Node
	index       *Index
	host        Host
	logger      *slog.Logger

	settling bool // inside OnGraphChanged
	dirty    bool // a node changed during the current pass
}

// Option configures a Dialogue.
type Option func(*Dialogue)

// WithHost sets the allocator/destroyer for nodes.
func WithHost(h Host) Option {
	return func(d *Dialogue) { d.host = h }
}

// WithLogger sets the logger used for graph maintenance messages.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dialogue) { d.logger = l }
}

// New adopts nodes in the given order and settles the graph. Nodes without
// an id are given one.
func New(playerFirst bool, nodes []*Node, opts ...Option) (*Dialogue, error) {
	d := &Dialogue{
		playerFirst: playerFirst,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.host == nil {
		d.host = MemoryHost{Logger: d.logger}
	}

	seen := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		if n.ID() == "" {
			continue
		}
		if _, dup := seen[n.ID()]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateNode, n.ID())
		}
		seen[n.ID()] = struct{}{}
	}
	for _, n := range nodes {
		n.assignID(uuid.NewString())
	}
	d.nodes = slices.Clone(nodes)
	d.OnGraphChanged()
	return d, nil
}

// NodeChanged implements Observer.
func (d *Dialogue) NodeChanged(*Node) {
	d.OnGraphChanged()
}

// OnGraphChanged brings the lookups and edges back in line with the node
// list. Each pass synthesises a root if there are no nodes, rebuilds the
// index, subscribes to every node and prunes edges that break alternation.
// Notifications raised while a pass runs schedule another pass instead of
// recursing. Passes only ever remove edges, so the loop ends after at most
// one pass per edge plus a final clean one.
func (d *Dialogue) OnGraphChanged() {
	if d.settling {
		d.dirty = true
		return
	}
	d.settling = true
	defer func() { d.settling = false }()

	limit := d.EdgeCount() + 1
	passes := 0
	for {
		passes++
		d.dirty = false
		if len(d.nodes) == 0 {
			d.nodes = append(d.nodes, d.allocate(d.playerFirst))
		}
		d.index = BuildIndex(d.nodes)
		metrics.GraphRebuilds.Inc()
		for _, n := range d.nodes {
			n.Subscribe(d)
		}

		removed := Validate(d.nodes, d.index, d.playerFirst)
		if removed > 0 {
			metrics.EdgesPruned.Add(float64(removed))
			d.logger.Debug("pruned edges breaking speaker alternation", "removed", removed, "pass", passes)
		}
		if !d.dirty {
			break
		}
		if passes >= limit {
			d.logger.Warn("dialogue graph did not settle", "passes", passes)
			d.index = BuildIndex(d.nodes)
			break
		}
	}
	metrics.ValidatorPasses.Observe(float64(passes))
	metrics.Nodes.Set(float64(len(d.nodes)))
}

// AllNodes returns the nodes in declaration order. The slice is a copy.
func (d *Dialogue) AllNodes() []*Node {
	return slices.Clone(d.nodes)
}

// Node resolves id through the current lookup.
func (d *Dialogue) Node(id string) *Node {
	return d.index.Node(id)
}

// Parents returns the parent ids recorded for id by the last rebuild.
func (d *Dialogue) Parents(id string) []string {
	return slices.Clone(d.index.Parents(id))
}

// Children yields the children of n, or the roots when n is nil. The
// sequence reads the live lookup each time it is ranged over; ids that do
// not resolve are skipped.
func (d *Dialogue) Children(n *Node) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		ix := d.index
		if n == nil {
			for _, candidate := range d.nodes {
				if ix.IsRoot(candidate.ID()) && !yield(candidate) {
					return
				}
			}
			return
		}
		for _, id := range n.Children() {
			if c := ix.Node(id); c != nil && !yield(c) {
				return
			}
		}
	}
}

// Roots is shorthand for Children(nil).
func (d *Dialogue) Roots() iter.Seq[*Node] {
	return d.Children(nil)
}

// IsPlayerNext reports the speaker flag of n, or who opens the dialogue
// when n is nil.
func (d *Dialogue) IsPlayerNext(n *Node) bool {
	if n == nil {
		return d.playerFirst
	}
	return n.IsPlayerSpeaker()
}

// IsPlayerSpeaking is the effective speaker at id. When a node has several
// parents only the first one found during the last rebuild is consulted.
func (d *Dialogue) IsPlayerSpeaking(id string) bool {
	return d.index.PlayerSpeaking(id, d.playerFirst)
}

func (d *Dialogue) IsPlayerFirstSpeaker() bool { return d.playerFirst }

// SetPlayerFirstSpeaker changes who opens the dialogue and resettles.
func (d *Dialogue) SetPlayerFirstSpeaker(isPlayer bool) {
	d.playerFirst = isPlayer
	d.OnGraphChanged()
}

// EdgeCount returns the total number of child references.
func (d *Dialogue) EdgeCount() int {
	edges := 0
	for _, n := range d.nodes {
		edges += len(n.children)
	}
	return edges
}

// CreateNode adds a node. With a parent, the node is placed next to it,
// takes the opposite turn and becomes its last child. Without one it is an
// unattached root that answers the dialogue's first speaker.
func (d *Dialogue) CreateNode(parent *Node) *Node {
	speaker := !d.playerFirst
	if parent != nil {
		speaker = !parent.IsPlayerSpeaker()
	}
	n := d.allocate(speaker)
	if parent != nil {
		p := parent.Rect().Position
		n.SetPosition(Vec2{X: p.X + childOffset.X, Y: p.Y + childOffset.Y})
	}
	d.nodes = append(d.nodes, n)
	if parent != nil {
		parent.AddChild(n.ID())
	}
	d.OnGraphChanged()
	return n
}

// DeleteNode unlinks n, resettles, removes every remaining reference to it
// and hands it to the host for destruction. Nodes not owned by d are
// ignored.
func (d *Dialogue) DeleteNode(n *Node) {
	i := slices.Index(d.nodes, n)
	if i < 0 {
		return
	}
	d.nodes = slices.Delete(d.nodes, i, i+1)
	n.Unsubscribe(d)
	d.OnGraphChanged()
	d.removeDangling(n.ID())
	d.host.DestroyNode(n)
	metrics.NodesDeleted.Inc()
}

func (d *Dialogue) removeDangling(id string) {
	for _, n := range slices.Clone(d.nodes) {
		n.RemoveChild(id)
	}
}

func (d *Dialogue) allocate(isPlayer bool) *Node {
	n := d.host.NewNode()
	n.assignID(uuid.NewString())
	n.SetPlayerSpeaker(isPlayer)
	metrics.NodesCreated.Inc()
	return n
}

package dialogue

import "slices"

// Observer is notified whenever a node's structure or speaker turn changes.
// Implementations must be comparable (pointer receivers) so subscriptions
// can be de-duplicated.
type Observer interface {
	NodeChanged(n *Node)
}

// Vec2 is an editor-space coordinate.
type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Rect is the editor-space box a node occupies.
type Rect struct {
	Position Vec2 `json:"position"`
	Size     Vec2 `json:"size"`
}

// DefaultNodeSize is the box size given to freshly allocated nodes.
var DefaultNodeSize = Vec2{X: 200, Y: 100}

// Node is a single dialogue turn. Children are referenced by id only.
type Node struct {
	id             string
	playerSpeaking bool
	children       []string
	text           string
	rect           Rect
	observers      []Observer
}

// NewNode allocates an unattached node. An empty id may be assigned later,
// exactly once, by the Dialogue that adopts it.
func NewNode(id string) *Node {
	return &Node{id: id, rect: Rect{Size: DefaultNodeSize}}
}

func (n *Node) ID() string { return n.id }

// assignID sets the identifier if none is set yet; identifiers never change.
func (n *Node) assignID(id string) {
	if n.id == "" {
		n.id = id
	}
}

// IsPlayerSpeaker reports whether this turn belongs to the player.
func (n *Node) IsPlayerSpeaker() bool { return n.playerSpeaking }

// SetPlayerSpeaker sets whose turn this node is and notifies observers.
func (n *Node) SetPlayerSpeaker(isPlayer bool) {
	n.playerSpeaking = isPlayer
	n.notify()
}

// Children returns a copy of the child ids, safe to range over while the
// node is being mutated.
func (n *Node) Children() []string {
	return slices.Clone(n.children)
}

// HasChild reports whether id is a direct child of n.
func (n *Node) HasChild(id string) bool {
	return slices.Contains(n.children, id)
}

// AddChild appends id unless it is already a child.
func (n *Node) AddChild(id string) {
	if slices.Contains(n.children, id) {
		return
	}
	n.children = append(n.children, id)
	n.notify()
}

// RemoveChild drops id from the children. Absent ids are ignored.
func (n *Node) RemoveChild(id string) {
	i := slices.Index(n.children, id)
	if i < 0 {
		return
	}
	n.children = slices.Delete(n.children, i, i+1)
	n.notify()
}

func (n *Node) Text() string        { return n.text }
func (n *Node) SetText(text string) { n.text = text }
func (n *Node) Rect() Rect          { return n.rect }

// SetPosition moves the node in editor space. Geometry is not structural and
// does not notify observers.
func (n *Node) SetPosition(p Vec2) { n.rect.Position = p }

// Subscribe registers o for change notifications. Subscribing the same
// observer twice has no additional effect.
func (n *Node) Subscribe(o Observer) {
	if slices.Contains(n.observers, o) {
		return
	}
	n.observers = append(n.observers, o)
}

// Unsubscribe removes o if present.
func (n *Node) Unsubscribe(o Observer) {
	if i := slices.Index(n.observers, o); i >= 0 {
		n.observers = slices.Delete(n.observers, i, i+1)
	}
}

func (n *Node) notify() {
	// Observers may resubscribe while being notified.
	for _, o := range slices.Clone(n.observers) {
		o.NodeChanged(n)
	}
}

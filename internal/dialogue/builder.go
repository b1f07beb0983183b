package dialogue

import (
	"github.com/gyaneshwarpardhi/dialoguegraph/internal/config"
)

// Build constructs a Dialogue from a validated document. Child ids naming
// no node in def are dropped, as are edges that break speaker alternation
// while the dialogue settles, so the result may have fewer edges than def.
func Build(def config.DialogueDef, opts ...Option) (*Dialogue, error) {
	known := make(map[string]struct{}, len(def.Nodes))
	for _, nd := range def.Nodes {
		known[nd.ID] = struct{}{}
	}

	nodes := make([]*Node, 0, len(def.Nodes))
	for _, nd := range def.Nodes {
		n := NewNode(nd.ID)
		n.playerSpeaking = nd.Player
		n.text = nd.Text
		n.rect.Position = Vec2{X: nd.Position.X, Y: nd.Position.Y}
		for _, child := range nd.Children {
			if _, ok := known[child]; !ok {
				continue
			}
			if !n.HasChild(child) {
				n.children = append(n.children, child)
			}
		}
		nodes = append(nodes, n)
	}
	return New(def.IsPlayerFirst(), nodes, opts...)
}

// Export renders the dialogue back into its document form, nodes in
// declaration order.
func Export(d *Dialogue, id string) config.DialogueDef {
	playerFirst := d.IsPlayerFirstSpeaker()
	def := config.DialogueDef{
		ID:          id,
		PlayerFirst: &playerFirst,
		Nodes:       make([]config.NodeDef, 0, len(d.nodes)),
	}
	for _, n := range d.nodes {
		def.Nodes = append(def.Nodes, Describe(n))
	}
	return def
}

// Describe renders a single node in document form.
func Describe(n *Node) config.NodeDef {
	p := n.Rect().Position
	return config.NodeDef{
		ID:       n.ID(),
		Player:   n.IsPlayerSpeaker(),
		Text:     n.Text(),
		Position: config.PositionDef{X: p.X, Y: p.Y},
		Children: n.Children(),
	}
}

package dialogue

// Validate removes every edge whose target does not take the opposite turn
// of its source and returns how many edges were removed. A child that does
// not resolve is judged by its effective speaker in ix.
//
// Removals for a node are applied only after all of its children have been
// checked. Each removal notifies the node's observers.
func Validate(nodes []*Node, ix *Index, firstSpeaker bool) int {
	removed := 0
	for _, n := range nodes {
		want := !n.IsPlayerSpeaker()
		var drop []string
		for _, child := range n.Children() {
			var got bool
			if c := ix.Node(child); c != nil {
				got = c.IsPlayerSpeaker()
			} else {
				got = ix.PlayerSpeaking(child, firstSpeaker)
			}
			if got != want {
				drop = append(drop, child)
			}
		}
		for _, child := range drop {
			n.RemoveChild(child)
			removed++
		}
	}
	return removed
}

package dialogue

// Walk visits every node once, depth first, starting from the roots in
// declaration order. Nodes only reachable through a cycle are visited
// afterwards, again in declaration order. Returning false from fn skips the
// node's subtree.
func (d *Dialogue) Walk(fn func(n *Node, depth int) bool) {
	visited := make(map[string]struct{}, len(d.nodes))
	for root := range d.Roots() {
		d.walk(root, 0, visited, fn)
	}
	for _, n := range d.nodes {
		if _, ok := visited[n.ID()]; !ok {
			d.walk(n, 0, visited, fn)
		}
	}
}

func (d *Dialogue) walk(n *Node, depth int, visited map[string]struct{}, fn func(*Node, int) bool) {
	if _, ok := visited[n.ID()]; ok {
		return
	}
	visited[n.ID()] = struct{}{}
	if !fn(n, depth) {
		return
	}
	for child := range d.Children(n) {
		d.walk(child, depth+1, visited, fn)
	}
}

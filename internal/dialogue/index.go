package dialogue

// Index holds the lookups derived from a node list. It is never patched in
// place; every structural change produces a new Index.
type Index struct {
	nodes   map[string]*Node    // id → node
	parents map[string][]string // child id → parent ids, discovery order
}

// BuildIndex derives both lookups from nodes.
func BuildIndex(nodes []*Node) *Index {
	return &Index{
		nodes:   BuildNodeLookup(nodes),
		parents: BuildParentLookup(nodes),
	}
}

// BuildNodeLookup maps every node id to its node.
func BuildNodeLookup(nodes []*Node) map[string]*Node {
	lookup := make(map[string]*Node, len(nodes))
	for _, n := range nodes {
		lookup[n.ID()] = n
	}
	return lookup
}

// BuildParentLookup maps every referenced child id to the ids of the nodes
// listing it, in the order of nodes and then of each node's children.
// Dangling child ids get entries too.
func BuildParentLookup(nodes []*Node) map[string][]string {
	lookup := make(map[string][]string)
	for _, n := range nodes {
		for _, child := range n.children {
			lookup[child] = append(lookup[child], n.ID())
		}
	}
	return lookup
}

// Node resolves an id, returning nil when it does not resolve.
func (ix *Index) Node(id string) *Node {
	return ix.nodes[id]
}

// Parents returns the recorded parents of id.
func (ix *Index) Parents(id string) []string {
	return ix.parents[id]
}

// IsRoot reports whether id has no recorded parent.
func (ix *Index) IsRoot(id string) bool {
	_, ok := ix.parents[id]
	return !ok
}

// PlayerSpeaking is the effective speaker at id. A node without parents
// speaks as firstSpeaker; otherwise the first recorded parent decides and
// the turn alternates from it.
func (ix *Index) PlayerSpeaking(id string, firstSpeaker bool) bool {
	parents, ok := ix.parents[id]
	if !ok || len(parents) == 0 {
		return firstSpeaker
	}
	parent, ok := ix.nodes[parents[0]]
	if !ok {
		return firstSpeaker
	}
	return !parent.IsPlayerSpeaker()
}

// Len returns the number of indexed nodes.
func (ix *Index) Len() int { return len(ix.nodes) }

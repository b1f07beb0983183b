package dialogue

import "log/slog"

// Host allocates and destroys node instances on behalf of a Dialogue.
// NewNode must return a node without an id; DestroyNode is only called
// after the node has been unlinked from the dialogue.
type Host interface {
	NewNode() *Node
	DestroyNode(n *Node)
}

// MemoryHost is the default Host: plain heap nodes and a log line on
// destruction.
type MemoryHost struct {
	Logger *slog.Logger
}

func (h MemoryHost) NewNode() *Node { return NewNode("") }

func (h MemoryHost) DestroyNode(n *Node) {
	logger := h.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("dialogue node destroyed", "node", n.ID())
}

package mcts

// Naughty is essentially *Node: an index into the tree's arena. Parent links
// are Naughty values, so the tree carries no ownership cycles.
type Naughty int

// IsValid returns true if the index refers to a node.
func (n Naughty) IsValid() bool { return n >= 0 }

const (
	nilNode Naughty = -1
)

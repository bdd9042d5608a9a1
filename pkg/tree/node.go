package tree

// Node is either a question about one trait with both branches present, or a leaf holding a guess.
// Nodes are built once by Build and never mutated afterwards.
type Node struct {
	trait string
	yes   *Node
	no    *Node

	guess string
}

// NewQuestion creates a question node. Both branches are required.
func NewQuestion(trait string, yes, no *Node) *Node {
	return &Node{trait: trait, yes: yes, no: no}
}

// NewLeaf creates a leaf node holding guess
func NewLeaf(guess string) *Node {
	return &Node{guess: guess}
}

// IsLeaf reports whether the node has no question
func (n *Node) IsLeaf() bool {
	return n.yes == nil && n.no == nil
}

// Trait returns the asked trait, empty for a leaf
func (n *Node) Trait() string { return n.trait }

// Guess returns the stored guess, empty for a question node
func (n *Node) Guess() string { return n.guess }

// Yes returns the branch followed on a "yes" reply
func (n *Node) Yes() *Node { return n.yes }

// No returns the branch followed on a "no" reply
func (n *Node) No() *Node { return n.no }

// Next returns the branch for the given reply
func (n *Node) Next(yes bool) *Node {
	if yes {
		return n.yes
	}
	return n.no
}

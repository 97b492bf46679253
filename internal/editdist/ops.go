// Package editdist computes the minimum-cost edit transformation between two
// ordered labeled trees with the Zhang–Shasha algorithm. It works on
// lightweight comparison nodes; mapping the abstract operations back onto
// concrete recipe-tree nodes is the concretizer's job.
package editdist

import "github.com/moranmiz/Cooking-Up-Creativity/api"

// Node is a comparison-tree node: the label/category material the cost model
// needs, plus ordered children. Comparison trees are built from prepared
// recipe trees and discarded after the distance run.
type Node struct {
	// Label is the display label, possibly carrying a digit suffix.
	Label       string
	Type        api.NodeType
	Abstraction string
	// Direct and General are the verb categories of an action node,
	// UnknownCategory when the verb is not in the table. Empty for
	// ingredients.
	Direct  string
	General string
	// Children in lexicographic label order.
	Children []*Node
}

// Key returns the formatted comparison label, matching
// tree.FormattedLabel for the node this comparison node was built from.
func (n *Node) Key() string {
	if n.Type == api.Action {
		return n.Label + "_" + string(n.Type) + "_" + n.Direct + "_" + n.General
	}
	return n.Label + "_" + string(n.Type) + "_" + n.Abstraction
}

// Size returns the number of nodes in the subtree rooted at n.
func (n *Node) Size() int {
	if n == nil {
		return 0
	}
	size := 1
	for _, c := range n.Children {
		size += c.Size()
	}
	return size
}

// OpType enumerates the abstract alignment operations.
type OpType int

const (
	OpRemove OpType = iota
	OpInsert
	OpUpdate
	OpMatch
)

func (t OpType) String() string {
	switch t {
	case OpRemove:
		return "remove"
	case OpInsert:
		return "insert"
	case OpUpdate:
		return "update"
	case OpMatch:
		return "match"
	}
	return "unknown"
}

// Operation is one abstract alignment step. A references a node of the first
// tree (nil for inserts), B a node of the second tree (nil for removes).
type Operation struct {
	Type OpType
	A    *Node
	B    *Node
}

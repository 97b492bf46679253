// Package recombine turns two prepared recipe trees into one intermediate
// tree: it concretizes the abstract edit-distance script into grounded tree
// operations, precomputes the final topology of every node that will ever
// exist, reorders the script under a domain bias, and applies a prefix of it
// step by step so that every snapshot stays a single rooted tree.
package recombine

import "strings"

// ConcreteKind discriminates the grounded edit operations.
type ConcreteKind int

const (
	// InsertLeaf appends an isolated node with no parent yet (an orphan).
	InsertLeaf ConcreteKind = iota
	// InsertChild inserts a node under an already-present parent.
	InsertChild
	// InsertParent inserts a node above existing nodes, adopting them.
	InsertParent
	// AttachOrphan links a previously inserted orphan under its parent.
	AttachOrphan
	// RemoveNode deletes a node, reparenting its children.
	RemoveNode
	// UpdateNode relabels a node in place after its target counterpart.
	UpdateNode
	// MatchNodes records a node-pair identity; no mutation.
	MatchNodes
)

// ConcreteOp is one grounded edit operation. Unlike the abstract alignment
// operations, it names real node identifiers in the evolving tree.
type ConcreteOp struct {
	Kind ConcreteKind
	// ID is the operated node in the working tree.
	ID string
	// Parent is set for InsertChild and AttachOrphan.
	Parent string
	// Children is set for InsertParent: the existing nodes it adopts.
	Children []string
	// To is the counterpart node in the target tree (UpdateNode, MatchNodes).
	To string
}

func (op ConcreteOp) String() string {
	switch op.Kind {
	case InsertLeaf:
		return "insert " + op.ID
	case InsertChild:
		return "insert " + op.ID + " child of " + op.Parent
	case InsertParent:
		return "insert " + op.ID + " father of " + strings.Join(op.Children, ",")
	case AttachOrphan:
		return op.ID + " child of " + op.Parent
	case RemoveNode:
		return "remove " + op.ID
	case UpdateNode:
		return "update " + op.ID + " label to " + op.To + " label"
	case MatchNodes:
		return "match " + op.ID + " to " + op.To
	}
	return "unknown"
}

// TerseKind discriminates the schedulable operations.
type TerseKind int

const (
	Add TerseKind = iota
	Del
	Update
)

// TerseOp is the schedulable form of a concrete operation: insertions
// collapse to Add (attachment is recovered from the tracking topology),
// matches and orphan attachments disappear.
type TerseOp struct {
	Kind TerseKind
	ID   string
	// To is the target-tree counterpart of an Update.
	To string
}

func (op TerseOp) String() string {
	switch op.Kind {
	case Add:
		return "ADD " + op.ID
	case Del:
		return "DEL " + op.ID
	case Update:
		return "UPDATE " + op.ID + " " + op.To
	}
	return "unknown"
}

// Terse converts a concrete script into its schedulable form.
func Terse(ops []ConcreteOp) []TerseOp {
	var out []TerseOp
	for _, op := range ops {
		switch op.Kind {
		case InsertLeaf, InsertChild, InsertParent:
			out = append(out, TerseOp{Kind: Add, ID: op.ID})
		case RemoveNode:
			out = append(out, TerseOp{Kind: Del, ID: op.ID})
		case UpdateNode:
			out = append(out, TerseOp{Kind: Update, ID: op.ID, To: op.To})
		}
	}
	return out
}

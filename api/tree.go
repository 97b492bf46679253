// Package api holds the exchange types shared between the recombination
// engine and its upstream/downstream collaborators (recipe parsing, idea
// rendering, scoring). A recipe is an ordered labeled tree: ingredients and
// actions are nodes, edges encode "used-by"/"produces" relations.
package api

// NodeType discriminates the two node kinds of a recipe tree.
type NodeType string

const (
	Ingredient NodeType = "ingredient"
	Action     NodeType = "action"
)

// Node is a single recipe-tree node.
// Children are kept sorted lexicographically by child label; this sibling
// order is what makes the tree an ordered tree (tree edit distance over
// unordered trees is NP-hard).
type Node struct {
	// Label is the display text, e.g. an ingredient name or a verb.
	// Duplicate labels within a tree carry a trailing digit suffix.
	Label string `json:"label"`
	// Type is ingredient or action.
	Type NodeType `json:"type"`
	// Abstraction is a semantic category: for ingredients a food abstraction
	// (e.g. "nut"), for actions a verb category string.
	Abstraction string `json:"abstr"`
	// Root marks the single root node of a well-formed tree.
	Root bool `json:"root"`
	// Parent is the identifier of the parent node, empty for the root.
	Parent string `json:"parent"`
	// Children are the identifiers of child nodes, sorted by child label.
	Children []string `json:"children"`
}

// Tree maps node identifiers to node records. Identifiers are unique within
// a tree; when two trees are combined they are disambiguated by a per-tree
// suffix ("_a", "_b").
type Tree map[string]*Node

// RootID returns the identifier of the node flagged as root, or "" when no
// node carries the flag. With multiple flagged roots the lexicographically
// smallest identifier wins, so the result is deterministic even on malformed
// input (Validate rejects that case separately).
func (t Tree) RootID() string {
	root := ""
	for id, n := range t {
		if !n.Root {
			continue
		}
		if root == "" || id < root {
			root = id
		}
	}
	return root
}

// Clone returns a deep copy of the tree. Every recombination request works
// on private copies; input trees are never mutated.
func (t Tree) Clone() Tree {
	out := make(Tree, len(t))
	for id, n := range t {
		c := *n
		if n.Children != nil {
			c.Children = append([]string{}, n.Children...)
		}
		out[id] = &c
	}
	return out
}

// Size returns the number of nodes in the subtree rooted at id.
func (t Tree) Size(id string) int {
	n, ok := t[id]
	if !ok {
		return 0
	}
	size := 1
	for _, c := range n.Children {
		size += t.Size(c)
	}
	return size
}

// ReferenceType classifies how a recipe refers to an ingredient.
type ReferenceType string

const (
	// RefStructure marks an ingredient that defines the dish's physical
	// structure (e.g. lasagna sheets in lasagna).
	RefStructure ReferenceType = "structure"
	// RefTaste marks an ingredient referenced for flavor.
	RefTaste ReferenceType = "taste"
)

// IngredientInfo is the per-ingredient annotation supplied alongside a
// source tree. The scheduler uses Ref and Core to bias the edit order;
// the renderer surfaces them as sub-labels.
type IngredientInfo struct {
	Ref         ReferenceType `json:"ref"`
	Core        bool          `json:"core"`
	Abstraction string        `json:"abstr,omitempty"`
}

// Ingredients maps an ingredient name (as it appears in the recipe, not a
// node identifier) to its annotation.
type Ingredients map[string]IngredientInfo

// Package tree implements the canonical tree model operations: invariant
// validation, preparation for recombination, label formatting against the
// cooking-verb table, and the JSON exchange codec.
package tree

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/moranmiz/Cooking-Up-Creativity/api"
)

// ErrInvalidTree is wrapped by every validation failure. Invalid input is a
// hard precondition failure: repair of malformed trees belongs to the
// upstream ingestion collaborator, not to this engine.
var ErrInvalidTree = errors.New("invalid tree")

// Validate checks the tree model invariants: exactly one root, mutual
// parent/child agreement, and a single connected acyclic component.
func Validate(t api.Tree) error {
	if len(t) == 0 {
		return fmt.Errorf("%w: empty tree", ErrInvalidTree)
	}

	var roots []string
	for _, id := range sortedIDs(t) {
		n := t[id]
		if n.Root {
			roots = append(roots, id)
		}
		if n.Root != (n.Parent == "") {
			return fmt.Errorf("%w: node %s root flag disagrees with parent pointer", ErrInvalidTree, id)
		}
		if n.Parent != "" {
			p, ok := t[n.Parent]
			if !ok {
				return fmt.Errorf("%w: node %s has unknown parent %s", ErrInvalidTree, id, n.Parent)
			}
			if !contains(p.Children, id) {
				return fmt.Errorf("%w: node %s missing from children of its parent %s", ErrInvalidTree, id, n.Parent)
			}
		}
		for _, c := range n.Children {
			child, ok := t[c]
			if !ok {
				return fmt.Errorf("%w: node %s lists unknown child %s", ErrInvalidTree, id, c)
			}
			if child.Parent != id {
				return fmt.Errorf("%w: child %s of %s points to parent %q", ErrInvalidTree, c, id, child.Parent)
			}
		}
	}
	if len(roots) != 1 {
		return fmt.Errorf("%w: expected exactly one root, found %d", ErrInvalidTree, len(roots))
	}

	// Reachability from the root covers every node iff the parent/child
	// relation forms a single connected tree.
	seen := make(map[string]bool, len(t))
	stack := []string{roots[0]}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[id] {
			return fmt.Errorf("%w: cycle through node %s", ErrInvalidTree, id)
		}
		seen[id] = true
		stack = append(stack, t[id].Children...)
	}
	if len(seen) != len(t) {
		return fmt.Errorf("%w: %d of %d nodes unreachable from root", ErrInvalidTree, len(t)-len(seen), len(t))
	}
	return nil
}

// SortChildren re-sorts the children of id lexicographically by child label.
// Called after every mutation that touches a children list.
func SortChildren(t api.Tree, id string) {
	n, ok := t[id]
	if !ok {
		return
	}
	sort.SliceStable(n.Children, func(i, j int) bool {
		return t[n.Children[i]].Label < t[n.Children[j]].Label
	})
}

// AttachChild adds childID under parentID and restores the label order of the
// parent's children. The child record must already be in the tree.
func AttachChild(t api.Tree, parentID, childID string) {
	p, ok := t[parentID]
	if !ok {
		return
	}
	if !contains(p.Children, childID) {
		p.Children = append(p.Children, childID)
	}
	t[childID].Parent = parentID
	SortChildren(t, parentID)
}

// UpdateChildren removes and adds the given children of id in one pass and
// re-sorts. Entries in add that are already present are not duplicated.
func UpdateChildren(t api.Tree, id string, remove, add []string) {
	n, ok := t[id]
	if !ok {
		return
	}
	kept := n.Children[:0]
	for _, c := range n.Children {
		if !contains(remove, c) {
			kept = append(kept, c)
		}
	}
	for _, c := range add {
		if !contains(kept, c) {
			kept = append(kept, c)
		}
	}
	n.Children = kept
	SortChildren(t, id)
}

// RemoveNode deletes id from the tree, reparenting its children to its own
// parent. When the removed node was the root, the children become parentless
// (the caller decides about root promotion).
func RemoveNode(t api.Tree, id string) {
	n, ok := t[id]
	if !ok {
		return
	}
	if n.Parent != "" {
		UpdateChildren(t, n.Parent, []string{id}, n.Children)
	}
	for _, c := range n.Children {
		t[c].Parent = n.Parent
		if n.Parent == "" {
			t[c].Root = true
		}
	}
	delete(t, id)
}

// StripDigits removes every digit from s. Trailing digits are the
// disambiguation suffixes attached to duplicate labels; stripping them
// recovers the underlying name for comparisons and table lookups.
func StripDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < '0' || r > '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormattedLabel builds the comparison label used by the distance engine and
// the concretizer, e.g. "pecans_ingredient_nut" or
// "press_action_Modifying shape_Modification".
func FormattedLabel(t api.Tree, id string, verbs VerbTable) string {
	n := t[id]
	if n.Type == api.Action {
		direct, general := verbs.Categories(n.Label)
		return n.Label + "_" + string(n.Type) + "_" + direct + "_" + general
	}
	return n.Label + "_" + string(n.Type) + "_" + n.Abstraction
}

func sortedIDs(t api.Tree) []string {
	ids := make([]string, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

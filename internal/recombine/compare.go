package recombine

import (
	"sort"

	"github.com/moranmiz/Cooking-Up-Creativity/api"
	"github.com/moranmiz/Cooking-Up-Creativity/internal/editdist"
	"github.com/moranmiz/Cooking-Up-Creativity/internal/tree"
)

// BuildComparison converts a prepared recipe tree into the comparison form
// consumed by the edit-distance algorithm. Children keep the tree's
// lexicographic order, so two builds of the same tree compare identically.
func BuildComparison(t api.Tree, verbs tree.VerbTable) *editdist.Node {
	root := t.RootID()
	if root == "" {
		return nil
	}
	return buildComparisonNode(t, root, verbs)
}

func buildComparisonNode(t api.Tree, id string, verbs tree.VerbTable) *editdist.Node {
	n := t[id]
	cn := &editdist.Node{
		Label:       n.Label,
		Type:        n.Type,
		Abstraction: n.Abstraction,
	}
	if n.Type == api.Action {
		cn.Direct, cn.General = verbs.Categories(n.Label)
	}
	for _, c := range n.Children {
		cn.Children = append(cn.Children, buildComparisonNode(t, c, verbs))
	}
	return cn
}

// resolve maps a comparison node back to a node identifier in t: the node's
// formatted label must match and each of its tree children must appear among
// the comparison node's children labels. When restrict is non-nil only
// identifiers present in it are eligible. Identifiers are tried in sorted
// order so resolution is deterministic. Returns "" when nothing matches.
func resolve(t api.Tree, cn *editdist.Node, verbs tree.VerbTable, restrict map[string]string) string {
	want := cn.Key()
	childKeys := make(map[string]bool, len(cn.Children))
	for _, c := range cn.Children {
		childKeys[c.Key()] = true
	}
	ids := make([]string, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if restrict != nil {
			if _, ok := restrict[id]; !ok {
				continue
			}
		}
		if tree.FormattedLabel(t, id, verbs) != want {
			continue
		}
		ok := true
		for _, c := range t[id].Children {
			if !childKeys[tree.FormattedLabel(t, c, verbs)] {
				ok = false
				break
			}
		}
		if ok {
			return id
		}
	}
	return ""
}

package tree

import (
	"sort"
	"strconv"

	"github.com/moranmiz/Cooking-Up-Creativity/api"
)

// Prepare returns a recombination-ready deep copy of t: duplicate labels get
// digit suffixes, every node identifier gets the per-tree suffix, and each
// children list is ordered lexicographically by label. The input is left
// untouched.
func Prepare(t api.Tree, suffix string) api.Tree {
	out := t.Clone()
	disambiguateLabels(out)
	out = suffixIDs(out, suffix)
	for id := range out {
		SortChildren(out, id)
	}
	return out
}

// disambiguateLabels appends 1..k to the labels of nodes that share a label,
// so that sibling order (and the cost model's digit stripping) stays well
// defined.
func disambiguateLabels(t api.Tree) {
	byLabel := make(map[string][]string)
	for id, n := range t {
		byLabel[n.Label] = append(byLabel[n.Label], id)
	}
	for label, ids := range byLabel {
		if len(ids) < 2 {
			continue
		}
		sort.Strings(ids)
		for i, id := range ids {
			t[id].Label = label + strconv.Itoa(i+1)
		}
	}
}

// suffixIDs rewrites every node identifier (and the parent/children pointers
// to it) as id+"_"+suffix, keeping the two source trees disjoint when their
// nodes later coexist in one working tree.
func suffixIDs(t api.Tree, suffix string) api.Tree {
	out := make(api.Tree, len(t))
	for id, n := range t {
		c := *n
		if c.Parent != "" {
			c.Parent = c.Parent + "_" + suffix
		}
		c.Children = make([]string, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child + "_" + suffix
		}
		out[id+"_"+suffix] = &c
	}
	return out
}

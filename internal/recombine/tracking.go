package recombine

import (
	"sort"

	"github.com/RoaringBitmap/roaring"

	"github.com/moranmiz/Cooking-Up-Creativity/api"
)

// topoNode is one entry of the tracking topology: the node material plus its
// final parent and children after the whole concrete script has run.
type topoNode struct {
	Label       string
	Type        api.NodeType
	Abstraction string
	Root        bool
	Parent      string
	Children    []string
}

// Topology records, for every node that will ever exist during a
// transformation, its final parent and children. Knowing the final links in
// advance lets insertions run in any order without ever producing a
// disconnected snapshot. Nodes present in the current intermediate tree are
// tracked in a bitmap over dense internal ids.
type Topology struct {
	nodes map[string]*topoNode

	intID   map[string]uint32
	nextInt uint32
	marked  *roaring.Bitmap
}

// BuildTopology replays the concrete script over a copy of the source tree
// and returns the resulting topology. Source-tree nodes start unmarked and
// get marked by the remove/update/match operations that cover them; inserted
// nodes stay unmarked until the applier materializes them.
func BuildTopology(src, dst api.Tree, script []ConcreteOp) *Topology {
	tp := &Topology{
		nodes:  make(map[string]*topoNode, len(src)),
		intID:  make(map[string]uint32, len(src)),
		marked: roaring.New(),
	}
	for id, n := range src {
		tp.nodes[id] = &topoNode{
			Label:       n.Label,
			Type:        n.Type,
			Abstraction: n.Abstraction,
			Root:        n.Root,
			Parent:      n.Parent,
			Children:    append([]string(nil), n.Children...),
		}
	}

	for _, op := range script {
		switch op.Kind {
		case InsertLeaf:
			tp.insertRecord(op.ID, dst, "", nil, false)

		case InsertChild:
			tp.insertRecord(op.ID, dst, op.Parent, nil, false)
			tp.updateChildren(op.Parent, nil, []string{op.ID})

		case InsertParent:
			children := append([]string(nil), op.Children...)
			isRoot := false
			for _, c := range children {
				if tp.nodes[c].Root {
					tp.nodes[c].Root = false
					isRoot = true
					break
				}
			}
			sort.Slice(children, func(i, j int) bool {
				return tp.nodes[children[i]].Label < tp.nodes[children[j]].Label
			})
			parent := ""
			for _, c := range children {
				if tp.nodes[c].Parent != "" {
					parent = tp.nodes[c].Parent
				}
				tp.nodes[c].Parent = op.ID
			}
			tp.insertRecord(op.ID, dst, parent, children, isRoot)
			tp.updateChildren(parent, children, []string{op.ID})

		case AttachOrphan:
			tp.nodes[op.ID].Parent = op.Parent
			tp.updateChildren(op.Parent, nil, []string{op.ID})

		case RemoveNode:
			tp.Mark(op.ID)

		case UpdateNode:
			tp.Mark(op.ID)
			n := tp.nodes[op.ID]
			target := dst[op.To]
			n.Label = target.Label
			n.Type = target.Type
			n.Abstraction = target.Abstraction

		case MatchNodes:
			tp.Mark(op.ID)
		}
	}
	return tp
}

func (tp *Topology) insertRecord(id string, dst api.Tree, parent string, children []string, root bool) {
	n := dst[id]
	tp.nodes[id] = &topoNode{
		Label:       n.Label,
		Type:        n.Type,
		Abstraction: n.Abstraction,
		Root:        root,
		Parent:      parent,
		Children:    children,
	}
}

func (tp *Topology) updateChildren(id string, remove, add []string) {
	n, ok := tp.nodes[id]
	if !ok {
		return
	}
	kept := n.Children[:0]
	for _, c := range n.Children {
		if !containsID(remove, c) {
			kept = append(kept, c)
		}
	}
	for _, c := range add {
		if !containsID(kept, c) {
			kept = append(kept, c)
		}
	}
	sort.Slice(kept, func(i, j int) bool {
		return tp.nodes[kept[i]].Label < tp.nodes[kept[j]].Label
	})
	n.Children = kept
}

// Clone returns an independent copy. The applier mutates its own clone while
// the original stays reusable across versions of the same transformation.
func (tp *Topology) Clone() *Topology {
	cp := &Topology{
		nodes:   make(map[string]*topoNode, len(tp.nodes)),
		intID:   make(map[string]uint32, len(tp.intID)),
		nextInt: tp.nextInt,
		marked:  tp.marked.Clone(),
	}
	for id, n := range tp.nodes {
		dup := *n
		dup.Children = append([]string(nil), n.Children...)
		cp.nodes[id] = &dup
	}
	for id, i := range tp.intID {
		cp.intID[id] = i
	}
	return cp
}

// Node returns the topology record for id, nil when unknown.
func (tp *Topology) Node(id string) *topoNode {
	return tp.nodes[id]
}

// Marked reports whether id is present in the current intermediate tree.
func (tp *Topology) Marked(id string) bool {
	i, ok := tp.intID[id]
	return ok && tp.marked.Contains(i)
}

// Mark flags id as present in the current intermediate tree.
func (tp *Topology) Mark(id string) {
	i, ok := tp.intID[id]
	if !ok {
		i = tp.nextInt
		tp.nextInt++
		tp.intID[id] = i
	}
	tp.marked.Add(i)
}

// Remove deletes id from the topology, reparenting its children to its own
// parent, and clears its presence bit.
func (tp *Topology) Remove(id string) {
	n, ok := tp.nodes[id]
	if !ok {
		return
	}
	if n.Parent != "" {
		tp.updateChildren(n.Parent, []string{id}, n.Children)
	}
	for _, c := range n.Children {
		tp.nodes[c].Parent = n.Parent
	}
	if i, ok := tp.intID[id]; ok {
		tp.marked.Remove(i)
		delete(tp.intID, id)
	}
	delete(tp.nodes, id)
}

// NearestMarkedAncestor walks up from id and returns the first marked
// ancestor, "" when there is none.
func (tp *Topology) NearestMarkedAncestor(id string) string {
	n, ok := tp.nodes[id]
	if !ok {
		return ""
	}
	parent := n.Parent
	for parent != "" {
		if tp.Marked(parent) {
			return parent
		}
		next, ok := tp.nodes[parent]
		if !ok {
			return ""
		}
		parent = next.Parent
	}
	return ""
}

// NearestMarkedDescendants returns, for each downward path from id, the
// first marked node on it, ordered by label (then identifier, so equal
// labels across source and target trees stay deterministic).
func (tp *Topology) NearestMarkedDescendants(id string) []string {
	n, ok := tp.nodes[id]
	if !ok {
		return nil
	}
	var found []string
	seen := make(map[string]bool)
	var walk func(children []string)
	walk = func(children []string) {
		for _, c := range children {
			if tp.Marked(c) {
				if !seen[c] {
					seen[c] = true
					found = append(found, c)
				}
				continue
			}
			if cn, ok := tp.nodes[c]; ok {
				walk(cn.Children)
			}
		}
	}
	walk(n.Children)
	sort.Slice(found, func(i, j int) bool {
		a, b := tp.nodes[found[i]], tp.nodes[found[j]]
		if a.Label != b.Label {
			return a.Label < b.Label
		}
		return found[i] < found[j]
	})
	return found
}

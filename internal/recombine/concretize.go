package recombine

import (
	"sort"

	"github.com/moranmiz/Cooking-Up-Creativity/api"
	"github.com/moranmiz/Cooking-Up-Creativity/internal/editdist"
	"github.com/moranmiz/Cooking-Up-Creativity/internal/tree"
)

// Concretizer grounds the abstract alignment script of an edit-distance run
// into concrete operations over real node identifiers. It simulates the
// transformation on a private copy of the source tree so that every
// resolution sees the tree state the operation would actually meet.
type Concretizer struct {
	verbs tree.VerbTable

	src, dst api.Tree
	work     api.Tree

	// matched maps identifiers of the working tree that are already aligned
	// with the target to their counterpart (themselves for inserted and
	// updated nodes).
	matched map[string]string
	// orphans are inserted nodes still waiting for a parent, in insertion
	// order.
	orphans []string

	script []ConcreteOp
}

// Concretize grounds ops, the alignment script for src → dst, and returns
// the concrete script. src and dst must be the prepared trees the comparison
// trees were built from.
func Concretize(src, dst api.Tree, ops []editdist.Operation, verbs tree.VerbTable) []ConcreteOp {
	c := &Concretizer{
		verbs:   verbs,
		src:     src,
		dst:     dst,
		work:    src.Clone(),
		matched: make(map[string]string),
	}
	for _, op := range ops {
		switch op.Type {
		case editdist.OpInsert:
			c.insert(op.B)
		case editdist.OpRemove:
			c.remove(op.A)
		case editdist.OpUpdate:
			c.update(op.A, op.B)
		case editdist.OpMatch:
			c.match(op.A, op.B)
		}
		if op.Type == editdist.OpUpdate || op.Type == editdist.OpMatch {
			c.reconcile(op.A, op.B)
		}
	}
	return c.script
}

func (c *Concretizer) emit(op ConcreteOp) {
	c.script = append(c.script, op)
}

// addNode materializes a comparison node in the working tree.
func (c *Concretizer) addNode(id string, cn *editdist.Node, parent string, children []string, root bool) {
	abstr := cn.Abstraction
	if cn.Type == api.Action {
		abstr = cn.Direct
	}
	c.work[id] = &api.Node{
		Label:       cn.Label,
		Type:        cn.Type,
		Abstraction: abstr,
		Root:        root,
		Parent:      parent,
		Children:    append([]string(nil), children...),
	}
}

// insert grounds an abstract insertion. A node whose children already exist
// in the working tree is inserted above them; a node with no present
// children becomes an orphan leaf, and children missing from the working
// tree are inserted recursively beneath it.
func (c *Concretizer) insert(cn *editdist.Node) {
	id := resolve(c.dst, cn, c.verbs, nil)
	if id == "" {
		return
	}

	if len(cn.Children) == 0 {
		c.addNode(id, cn, "", nil, false)
		c.matched[id] = id
		c.orphans = append(c.orphans, id)
		c.emit(ConcreteOp{Kind: InsertLeaf, ID: id})
		return
	}

	// Children of the inserted node that are already present and aligned.
	var existing []string
	for _, childCN := range cn.Children {
		if name := resolve(c.work, childCN, c.verbs, c.matched); name != "" {
			existing = append(existing, name)
		}
	}
	sort.Slice(existing, func(i, j int) bool {
		return c.work[existing[i]].Label < c.work[existing[j]].Label
	})

	var missing []*editdist.Node
	for _, childCN := range cn.Children {
		name := resolve(c.work, childCN, c.verbs, nil)
		if name == "" || !containsID(existing, name) {
			missing = append(missing, childCN)
		}
	}

	if len(existing) > 0 {
		parent := ""
		root := false
		for _, child := range existing {
			if parent == "" {
				parent = c.work[child].Parent
			}
			if c.work[child].Root {
				root = true
				c.work[child].Root = false
			}
			c.work[child].Parent = id
			c.dropOrphan(child)
		}
		c.emit(ConcreteOp{Kind: InsertParent, ID: id, Children: existing})
		c.addNode(id, cn, parent, existing, root)
		c.matched[id] = id
		if parent != "" {
			tree.UpdateChildren(c.work, parent, existing, []string{id})
		} else {
			// Parentless: the new node heads a detached fragment until a
			// later reconciliation finds it a parent.
			c.work[id].Root = true
			c.orphans = append(c.orphans, id)
		}
	}

	if len(missing) > 0 {
		if len(existing) == 0 {
			c.addNode(id, cn, "", nil, false)
			c.matched[id] = id
			c.orphans = append(c.orphans, id)
			c.emit(ConcreteOp{Kind: InsertLeaf, ID: id})
		}
		for _, childCN := range missing {
			c.insertSubtree(childCN, id)
		}
		tree.SortChildren(c.work, id)
	}
}

// insertSubtree inserts cn and all of its descendants under parent,
// skipping identifiers already present in the working tree.
func (c *Concretizer) insertSubtree(cn *editdist.Node, parent string) {
	id := resolve(c.dst, cn, c.verbs, nil)
	if id == "" {
		return
	}
	if _, ok := c.work[id]; ok {
		return
	}
	c.matched[id] = id
	c.addNode(id, cn, parent, nil, false)
	c.emit(ConcreteOp{Kind: InsertChild, ID: id, Parent: parent})
	if p, ok := c.work[parent]; ok {
		if !containsID(p.Children, id) {
			p.Children = append(p.Children, id)
		}
		tree.SortChildren(c.work, parent)
	}
	for _, childCN := range cn.Children {
		c.insertSubtree(childCN, id)
	}
}

// remove grounds an abstract removal: descendants of the removed node that
// never got aligned with the target are pruned first, then the node itself
// goes, its surviving children reparented.
func (c *Concretizer) remove(a *editdist.Node) {
	id := resolve(c.src, a, c.verbs, nil)
	c.pruneUnmatched(a)
	c.removeFromWork(id)
}

func (c *Concretizer) removeFromWork(id string) {
	if id == "" {
		return
	}
	c.emit(ConcreteOp{Kind: RemoveNode, ID: id})
	if _, ok := c.work[id]; !ok {
		return
	}
	tree.RemoveNode(c.work, id)
	c.dropOrphan(id)
}

// pruneUnmatched removes, bottom-up, every descendant of a that is present
// in the working tree but was never aligned with the target.
func (c *Concretizer) pruneUnmatched(a *editdist.Node) {
	var descendants []*editdist.Node
	collectDescendants(a, &descendants)
	for _, d := range descendants {
		id := resolve(c.src, d, c.verbs, nil)
		if id == "" {
			continue
		}
		if _, ok := c.matched[id]; ok {
			continue
		}
		if _, ok := c.work[id]; !ok {
			continue
		}
		c.removeFromWork(id)
	}
}

// collectDescendants appends the strict descendants of cn, deepest first
// within each branch.
func collectDescendants(cn *editdist.Node, out *[]*editdist.Node) {
	for _, child := range cn.Children {
		collectDescendants(child, out)
	}
	*out = append(*out, cn.Children...)
}

func (c *Concretizer) update(a, b *editdist.Node) {
	id := resolve(c.src, a, c.verbs, nil)
	target := resolve(c.dst, b, c.verbs, nil)
	if id == "" || target == "" {
		return
	}
	c.emit(ConcreteOp{Kind: UpdateNode, ID: id, To: target})
	if n, ok := c.work[id]; ok {
		n.Label = b.Label
		n.Type = b.Type
		if b.Type == api.Action {
			n.Abstraction = b.Direct
		} else {
			n.Abstraction = b.Abstraction
		}
	}
	c.matched[id] = id
}

func (c *Concretizer) match(a, b *editdist.Node) {
	id := resolve(c.src, a, c.verbs, nil)
	target := resolve(c.dst, b, c.verbs, nil)
	if id == "" || target == "" {
		return
	}
	c.matched[id] = target
	c.emit(ConcreteOp{Kind: MatchNodes, ID: id, To: target})
}

// reconcile runs after every update and match: orphans whose label appears
// among the target counterpart's children get attached under the aligned
// node, children the target has but the working tree lacks are inserted, and
// when the aligned subtree ended up larger than its target the unaligned
// descendants are pruned.
func (c *Concretizer) reconcile(a, b *editdist.Node) {
	parent := resolve(c.work, b, c.verbs, nil)
	if parent == "" {
		parent = resolve(c.src, a, c.verbs, nil)
	}
	if parent == "" {
		return
	}
	if _, ok := c.work[parent]; !ok {
		return
	}

	targetChildLabels := make(map[string]bool, len(b.Children))
	for _, childCN := range b.Children {
		targetChildLabels[childCN.Label] = true
	}

	remaining := c.orphans[:0]
	for _, orphan := range c.orphans {
		if orphan != parent && targetChildLabels[c.work[orphan].Label] {
			c.emit(ConcreteOp{Kind: AttachOrphan, ID: orphan, Parent: parent})
			tree.AttachChild(c.work, parent, orphan)
			c.work[orphan].Root = false
			continue
		}
		remaining = append(remaining, orphan)
	}
	c.orphans = remaining

	presentLabels := make(map[string]bool)
	for _, child := range c.work[parent].Children {
		presentLabels[c.work[child].Label] = true
	}
	for _, childCN := range b.Children {
		if !presentLabels[childCN.Label] {
			c.insertSubtree(childCN, parent)
		}
	}

	if srcID := resolve(c.src, a, c.verbs, nil); srcID != "" {
		if c.work.Size(srcID) > b.Size() {
			c.pruneUnmatched(a)
		}
	}
}

func (c *Concretizer) dropOrphan(id string) {
	for i, o := range c.orphans {
		if o == id {
			c.orphans = append(c.orphans[:i], c.orphans[i+1:]...)
			return
		}
	}
}

func containsID(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

package editdist

import "sort"

// annotated holds the Zhang–Shasha bookkeeping for one tree: nodes in
// postorder, the postorder index of each node's leftmost leaf descendant,
// and the keyroots (the highest node with each distinct leftmost leaf).
type annotated struct {
	nodes    []*Node
	lmds     []int
	keyroots []int
}

func annotate(root *Node) *annotated {
	a := &annotated{}
	var walk func(n *Node) int
	walk = func(n *Node) int {
		lmd := -1
		for _, c := range n.Children {
			childLmd := walk(c)
			if lmd == -1 {
				lmd = childLmd
			}
		}
		idx := len(a.nodes)
		if lmd == -1 {
			lmd = idx
		}
		a.nodes = append(a.nodes, n)
		a.lmds = append(a.lmds, lmd)
		return lmd
	}
	walk(root)

	highest := make(map[int]int)
	for i, l := range a.lmds {
		highest[l] = i
	}
	for _, i := range highest {
		a.keyroots = append(a.keyroots, i)
	}
	sort.Ints(a.keyroots)
	return a
}

// Distance runs the Zhang–Shasha dynamic program over all keyroot subtree
// pairs and returns the minimum total cost together with the ordered
// alignment operations. Ties among equal-cost alternatives resolve
// deterministically in remove, insert, update/match order.
func Distance(t1, t2 *Node, costs Costs) (float64, []Operation) {
	a, b := annotate(t1), annotate(t2)
	na, nb := len(a.nodes), len(b.nodes)

	treedists := make([][]float64, na)
	operations := make([][][]Operation, na)
	for i := range treedists {
		treedists[i] = make([]float64, nb)
		operations[i] = make([][]Operation, nb)
	}

	for _, i := range a.keyroots {
		for _, j := range b.keyroots {
			forestDist(a, b, i, j, costs, treedists, operations)
		}
	}
	return treedists[na-1][nb-1], operations[na-1][nb-1]
}

// forestDist fills treedists/operations for the keyroot pair (i, j) via the
// forest-distance table of their subtrees.
func forestDist(a, b *annotated, i, j int, costs Costs, treedists [][]float64, operations [][][]Operation) {
	m := i - a.lmds[i] + 2
	n := j - b.lmds[j] + 2
	ioff := a.lmds[i] - 1
	joff := b.lmds[j] - 1

	fd := make([][]float64, m)
	partial := make([][][]Operation, m)
	for x := range fd {
		fd[x] = make([]float64, n)
		partial[x] = make([][]Operation, n)
	}

	for x := 1; x < m; x++ {
		node := a.nodes[x+ioff]
		fd[x][0] = fd[x-1][0] + costs.Remove(node)
		partial[x][0] = appendOps(partial[x-1][0], Operation{Type: OpRemove, A: node})
	}
	for y := 1; y < n; y++ {
		node := b.nodes[y+joff]
		fd[0][y] = fd[0][y-1] + costs.Insert(node)
		partial[0][y] = appendOps(partial[0][y-1], Operation{Type: OpInsert, B: node})
	}

	for x := 1; x < m; x++ {
		for y := 1; y < n; y++ {
			n1 := a.nodes[x+ioff]
			n2 := b.nodes[y+joff]

			removeCost := fd[x-1][y] + costs.Remove(n1)
			insertCost := fd[x][y-1] + costs.Insert(n2)

			if a.lmds[i] == a.lmds[x+ioff] && b.lmds[j] == b.lmds[y+joff] {
				// Both prefixes are whole subtrees: the (x, y) cell is also a
				// tree distance.
				updateCost := fd[x-1][y-1] + costs.Update(n1, n2)
				switch {
				case removeCost <= insertCost && removeCost <= updateCost:
					fd[x][y] = removeCost
					partial[x][y] = appendOps(partial[x-1][y], Operation{Type: OpRemove, A: n1})
				case insertCost <= updateCost:
					fd[x][y] = insertCost
					partial[x][y] = appendOps(partial[x][y-1], Operation{Type: OpInsert, B: n2})
				default:
					fd[x][y] = updateCost
					opType := OpUpdate
					if fd[x][y] == fd[x-1][y-1] {
						opType = OpMatch
					}
					partial[x][y] = appendOps(partial[x-1][y-1], Operation{Type: opType, A: n1, B: n2})
				}
				treedists[x+ioff][y+joff] = fd[x][y]
				operations[x+ioff][y+joff] = partial[x][y]
			} else {
				p := a.lmds[x+ioff] - 1 - ioff
				q := b.lmds[y+joff] - 1 - joff
				bridgeCost := fd[p][q] + treedists[x+ioff][y+joff]
				switch {
				case removeCost <= insertCost && removeCost <= bridgeCost:
					fd[x][y] = removeCost
					partial[x][y] = appendOps(partial[x-1][y], Operation{Type: OpRemove, A: n1})
				case insertCost <= bridgeCost:
					fd[x][y] = insertCost
					partial[x][y] = appendOps(partial[x][y-1], Operation{Type: OpInsert, B: n2})
				default:
					fd[x][y] = bridgeCost
					partial[x][y] = appendOps(partial[p][q], operations[x+ioff][y+joff]...)
				}
			}
		}
	}
}

// appendOps returns base + extra in a fresh slice; the DP tables share
// prefixes, so in-place append would corrupt sibling cells.
func appendOps(base []Operation, extra ...Operation) []Operation {
	out := make([]Operation, 0, len(base)+len(extra))
	out = append(out, base...)
	return append(out, extra...)
}

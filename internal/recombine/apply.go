package recombine

import (
	"log/slog"

	"github.com/moranmiz/Cooking-Up-Creativity/api"
	"github.com/moranmiz/Cooking-Up-Creativity/internal/logging"
	"github.com/moranmiz/Cooking-Up-Creativity/internal/tree"
)

// ApplyStats counts how the applier disposed of the scheduled prefix.
type ApplyStats struct {
	// Applied operations mutated the tree.
	Applied int
	// Postponed operations failed at least once before succeeding.
	Postponed int
	// Dropped operations never became applicable within the prefix.
	Dropped int
}

// Apply runs the first stop operations of the scheduled script over a copy
// of base and returns the resulting intermediate tree. Every snapshot along
// the way is a single rooted tree: an operation that would split the tree is
// postponed and retried after each later success, and whatever remains
// unapplicable when the prefix ends is dropped. Dropping is not an error;
// an intermediate tree missing a few edits is still a valid idea.
func Apply(base api.Tree, script []TerseOp, topo *Topology, stop int, log *slog.Logger) (api.Tree, ApplyStats) {
	if log == nil {
		log = logging.NewNop()
	}
	work := base.Clone()
	topo = topo.Clone()
	var stats ApplyStats
	var queue []TerseOp

	if stop > len(script) {
		stop = len(script)
	}
	for _, op := range script[:stop] {
		if !step(work, op, topo) {
			stats.Postponed++
			queue = append(queue, op)
			continue
		}
		stats.Applied++
		queue = retry(work, queue, topo, &stats)
	}

	stats.Dropped = len(queue)
	if stats.Dropped > 0 {
		dropped := make([]string, 0, len(queue))
		for _, op := range queue {
			dropped = append(dropped, op.String())
		}
		log.Warn("dropping edits that never became applicable",
			"count", stats.Dropped, "ops", dropped)
	}

	// Links to nodes that were reparented away or dropped mid-script can
	// linger in children lists; the child's parent pointer is authoritative.
	for id, n := range work {
		kept := n.Children[:0]
		for _, c := range n.Children {
			if child, ok := work[c]; ok && child.Parent == id {
				kept = append(kept, c)
			}
		}
		n.Children = kept
	}
	return work, stats
}

// retry sweeps the postponed queue in order, and keeps sweeping while
// successes unblock earlier entries. Each pass applies at least one operation
// or stops, so at most len(queue) passes run.
func retry(work api.Tree, queue []TerseOp, topo *Topology, stats *ApplyStats) []TerseOp {
	for i := 0; i < len(queue); i++ {
		remaining := queue[:0]
		for _, op := range queue {
			if step(work, op, topo) {
				stats.Applied++
				continue
			}
			remaining = append(remaining, op)
		}
		if len(remaining) == len(queue) {
			return remaining
		}
		queue = remaining
	}
	return queue
}

// step applies one terse operation to work, mirroring structural changes in
// the topology clone. It reports false when the operation must wait.
func step(work api.Tree, op TerseOp, topo *Topology) bool {
	switch op.Kind {
	case Add:
		return stepAdd(work, op.ID, topo)
	case Del:
		return stepDel(work, op.ID, topo)
	case Update:
		rec := topo.Node(op.ID)
		n, ok := work[op.ID]
		if rec == nil || !ok {
			return true
		}
		// The topology already holds the final label of an updated node.
		n.Label = rec.Label
		n.Abstraction = rec.Abstraction
		return true
	}
	return true
}

func stepAdd(work api.Tree, id string, topo *Topology) bool {
	descendants := topo.NearestMarkedDescendants(id)
	ancestor := topo.NearestMarkedAncestor(id)
	if len(descendants) == 0 && ancestor == "" {
		// Nothing present to anchor on yet.
		return false
	}
	rec := topo.Node(id)
	work[id] = &api.Node{
		Label:       rec.Label,
		Type:        rec.Type,
		Abstraction: rec.Abstraction,
	}
	if len(descendants) > 0 {
		work[id].Children = append([]string(nil), descendants...)
		for _, c := range descendants {
			if work[c].Root {
				work[c].Root = false
				work[id].Root = true
			}
			work[c].Parent = id
		}
	}
	if ancestor != "" {
		work[id].Parent = ancestor
		tree.UpdateChildren(work, ancestor, descendants, []string{id})
	}
	topo.Mark(id)
	return true
}

func stepDel(work api.Tree, id string, topo *Topology) bool {
	n, ok := work[id]
	if !ok {
		return true
	}
	if n.Parent == "" && len(n.Children) > 1 {
		// Removing the root here would leave a forest.
		return false
	}
	tree.RemoveNode(work, id)
	topo.Remove(id)
	return true
}

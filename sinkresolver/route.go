package sinkresolver

import (
	"github.com/fastscape-go/fastscapelib/flowgraph"
	"github.com/fastscape-go/fastscapelib/grid"
)

// distanceBetween returns the grid distance from a to b if they are
// adjacent, or 1.0 as a documented fallback for the synthetic long-range
// edges BASIC/CARVE introduce between a basin's pit and a node in another
// basin that need not be grid-adjacent.
func distanceBetween(g grid.Grid, a, b int) float64 {
	for _, nb := range g.Neighbors(a) {
		if nb.Index == b {
			return nb.Distance
		}
	}
	return 1.0
}

// applyBasic adds a direct receiver edge from the child basin's pit
// straight to the parent basin's root node, without touching elevation.
func applyBasic(fg *flowgraph.FlowGraph, edge routeEdge) error {
	pitChild := fg.RootNode(edge.childBasin)
	rootParent := fg.RootNode(edge.parentBasin)
	d := distanceBetween(fg.Grid(), pitChild, rootParent)
	return fg.SetSingleReceiver(pitChild, rootParent, d)
}

// applyCarve reverses the receiver path from edge.fromNode (in the child
// basin) up to the child basin's pit, then points edge.fromNode at
// edge.toNode (in the parent basin). Elevation along the reversed path is
// adjusted in place: nodes are lowered to sit CarveEpsilon below their new
// upstream neighbor, then nodes left below toNode are raised toward it
// (never above their upstream neighbor minus CarveEpsilon). The pit and
// toNode keep their elevations; fromNode may end level with toNode.
func applyCarve(fg *flowgraph.FlowGraph, elevation []float64, edge routeEdge) error {
	pit := fg.RootNode(edge.childBasin)

	// Walk the OLD (pre-resolution) receiver chain from fromNode up to
	// the basin's pit, recording it low-to-pit: path[0]=fromNode, ...,
	// path[last]=pit.
	path := []int{edge.fromNode}
	cur := edge.fromNode
	for cur != pit {
		rs := fg.Receivers(cur)
		if len(rs) == 0 {
			// Already a pit but not the expected one: basin bookkeeping
			// bug, nothing more to reverse.
			break
		}
		cur = rs[0]
		path = append(path, cur)
	}

	// New flow direction downstream order, child basin interior only:
	// pit ... fromNode. edge.toNode anchors the path into the parent basin
	// but belongs to it, not to this basin, and is never rewritten.
	seq := make([]int, 0, len(path))
	for k := len(path) - 1; k >= 0; k-- {
		seq = append(seq, path[k])
	}

	// Rebuild receivers along the reversed path: each node's new receiver
	// is the previous node in the old path (closer to fromNode); fromNode
	// itself receives into the parent basin's toNode.
	for k := len(path) - 1; k >= 1; k-- {
		child, parent := path[k], path[k-1]
		d := distanceBetween(fg.Grid(), child, parent)
		if err := fg.SetSingleReceiver(child, parent, d); err != nil {
			return err
		}
	}
	d := distanceBetween(fg.Grid(), edge.fromNode, edge.toNode)
	if err := fg.SetSingleReceiver(edge.fromNode, edge.toNode, d); err != nil {
		return err
	}

	// Enforce strictly monotone non-increasing elevation along
	// seq[0]=pit ... seq[last]=fromNode: whenever a node is not strictly
	// lower than the node immediately upstream of it, lower it to
	// upstream_elevation - CarveEpsilon. The parent basin's anchor node
	// (toNode) is never touched: it belongs to an already-resolved basin
	// (or the fixed outer boundary) and its elevation is not this basin's
	// to change.
	prevElev := elevation[seq[0]]
	for k := 1; k < len(seq); k++ {
		node := seq[k]
		if elevation[node] >= prevElev {
			elevation[node] = prevElev - CarveEpsilon
		}
		prevElev = elevation[node]
	}

	// The forward pass above only constrains seq against its own upstream
	// neighbor; it never compares the far end (fromNode) against toNode.
	// The carved-path invariant requires h(pit) >= ... >= h(fromNode) >=
	// h(toNode), so walk seq backward from fromNode toward pit, raising
	// any node that would otherwise end up below the (never-modified)
	// parent anchor. The raise is capped at the elevation already settled
	// just pit-ward of it minus CarveEpsilon, so it can never overtake
	// that neighbor — and, by induction, never overtake seq[0]=pit
	// itself, which this loop never touches. When toNode's own elevation
	// exceeds pit's, satisfying both ends exactly is impossible without
	// moving one of them; the cap makes this the closest achievable
	// approximation, anchored at pit.
	floor := elevation[edge.toNode]
	for k := len(seq) - 1; k >= 1; k-- {
		ceiling := elevation[seq[k-1]] - CarveEpsilon
		if floor > ceiling {
			floor = ceiling
		}
		if elevation[seq[k]] < floor {
			elevation[seq[k]] = floor
		}
		floor = elevation[seq[k]] + CarveEpsilon
	}

	return nil
}

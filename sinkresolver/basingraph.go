package sinkresolver

import "github.com/fastscape-go/fastscapelib/flowgraph"

// basinEdge is a candidate edge of the auxiliary basin graph: a specific
// grid-adjacent node pair (nodeA, nodeB) straddling two different basins
// (basinA, basinB), with nodeA always the member of basinA and nodeB
// always the member of basinB. pass is max(h(nodeA), h(nodeB)), the
// spec's "pass elevation".
type basinEdge struct {
	basinA, basinB int
	nodeA, nodeB   int
	pass           float64
}

// lessBasinEdge implements a deterministic ordering: ascending pass
// elevation, then the smaller of the two endpoint node indices, then the
// larger. Which endpoint has the lower elevation plays no part in the
// tie-break.
func lessBasinEdge(a, b basinEdge) bool {
	if a.pass != b.pass {
		return a.pass < b.pass
	}
	aLow, aHigh := a.nodeA, a.nodeB
	if aLow > aHigh {
		aLow, aHigh = aHigh, aLow
	}
	bLow, bHigh := b.nodeA, b.nodeB
	if bLow > bHigh {
		bLow, bHigh = bHigh, bLow
	}
	if aLow != bLow {
		return aLow < bLow
	}
	return aHigh < bHigh
}

// buildBasinGraph scans every grid-adjacent node pair once and keeps, per
// unordered basin pair, only the minimum-pass candidate edge (Step B of
// the spec). The kept edge's (basinA,nodeA)/(basinB,nodeB) association is
// normalized so basinA is always the numerically smaller basin id.
func buildBasinGraph(fg *flowgraph.FlowGraph, elevation []float64) []basinEdge {
	g := fg.Grid()
	basins := fg.Basins()
	best := make(map[[2]int]basinEdge)

	for u := 0; u < g.Size(); u++ {
		bu := basins[u]
		for _, nb := range g.Neighbors(u) {
			v := nb.Index
			bv := basins[v]
			if bu == bv {
				continue
			}

			pass := elevation[u]
			if elevation[v] > pass {
				pass = elevation[v]
			}

			basinA, nodeA, basinB, nodeB := bu, u, bv, v
			if basinA > basinB {
				basinA, nodeA, basinB, nodeB = basinB, v, basinA, u
			}

			key := [2]int{basinA, basinB}
			cand := basinEdge{basinA: basinA, basinB: basinB, nodeA: nodeA, nodeB: nodeB, pass: pass}
			cur, ok := best[key]
			if !ok || lessBasinEdge(cand, cur) {
				best[key] = cand
			}
		}
	}

	edges := make([]basinEdge, 0, len(best))
	for _, e := range best {
		edges = append(edges, e)
	}
	return edges
}

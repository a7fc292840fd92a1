package sinkresolver

import "sort"

// routeEdge is a direction-resolved MST edge: childBasin drains into
// parentBasin across the pass pair (fromNode in childBasin, toNode in
// parentBasin), matching the spec's "(u, v) with u ∈ B, v ∈ B'".
type routeEdge struct {
	childBasin, parentBasin int
	fromNode, toNode        int
}

// computeMST runs the selected basin-method MST over edges, pre-merging
// every outer basin into one component (modeling the spec's virtual
// super-source at weight -inf), then resolves edge direction by a
// multi-source BFS from the outer group so every inner basin ends up with
// exactly one outgoing routeEdge toward its MST parent.
//
// Returns ErrNoOutlet if outer is empty.
func computeMST(numBasins int, edges []basinEdge, outer map[int]bool, method BasinMethod) ([]routeEdge, error) {
	if len(outer) == 0 {
		return nil, ErrNoOutlet
	}

	var accepted []basinEdge
	switch method {
	case Boruvka:
		accepted = boruvkaMST(numBasins, edges, outer)
	default:
		accepted = kruskalMST(numBasins, edges, outer)
	}

	return resolveDirection(numBasins, accepted, outer), nil
}

func seedOuterUnion(dsu *disjointSet, outer map[int]bool) {
	var outerRep int
	first := true
	for b := range outer {
		if first {
			outerRep = b
			first = false
			continue
		}
		dsu.union(outerRep, b)
	}
}

// kruskalMST sorts candidate edges ascending by the spec's deterministic
// tie-break and greedily accepts edges joining different components,
// grounded on prim_kruskal/kruskal.go.
func kruskalMST(numBasins int, edges []basinEdge, outer map[int]bool) []basinEdge {
	dsu := newDisjointSet(numBasins)
	seedOuterUnion(dsu, outer)

	sorted := make([]basinEdge, len(edges))
	copy(sorted, edges)
	sort.SliceStable(sorted, func(i, j int) bool { return lessBasinEdge(sorted[i], sorted[j]) })

	var accepted []basinEdge
	for _, e := range sorted {
		if dsu.union(e.basinA, e.basinB) {
			accepted = append(accepted, e)
		}
	}
	return accepted
}

// boruvkaMST runs Boruvka's round-based lightest-outgoing-edge selection,
// grounded on prim_kruskal/prim.go's container/heap-based edge selection
// (here applied per round per component rather than per single frontier).
func boruvkaMST(numBasins int, edges []basinEdge, outer map[int]bool) []basinEdge {
	dsu := newDisjointSet(numBasins)
	seedOuterUnion(dsu, outer)

	var accepted []basinEdge
	for {
		lightest := make(map[int]basinEdge)
		for _, e := range edges {
			ra, rb := dsu.find(e.basinA), dsu.find(e.basinB)
			if ra == rb {
				continue
			}
			for _, r := range [2]int{ra, rb} {
				cur, ok := lightest[r]
				if !ok || lessBasinEdge(e, cur) {
					lightest[r] = e
				}
			}
		}
		if len(lightest) == 0 {
			break
		}

		roots := make([]int, 0, len(lightest))
		for r := range lightest {
			roots = append(roots, r)
		}
		sort.Ints(roots)

		progressed := false
		for _, r := range roots {
			e := lightest[r]
			if dsu.union(e.basinA, e.basinB) {
				accepted = append(accepted, e)
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}
	return accepted
}

// resolveDirection orients every accepted MST edge outer-to-inner via a
// multi-source BFS seeded at every outer basin, then reverses each
// discovery edge into a child->parent routeEdge.
func resolveDirection(numBasins int, accepted []basinEdge, outer map[int]bool) []routeEdge {
	type halfEdge struct {
		to             int
		fromNode, toNode int
	}
	adj := make(map[int][]halfEdge, numBasins)
	for _, e := range accepted {
		adj[e.basinA] = append(adj[e.basinA], halfEdge{to: e.basinB, fromNode: e.nodeA, toNode: e.nodeB})
		adj[e.basinB] = append(adj[e.basinB], halfEdge{to: e.basinA, fromNode: e.nodeB, toNode: e.nodeA})
	}

	visited := make([]bool, numBasins)
	queue := make([]int, 0, numBasins)
	for b := range outer {
		visited[b] = true
		queue = append(queue, b)
	}
	sort.Ints(queue)

	var routes []routeEdge
	for head := 0; head < len(queue); head++ {
		b := queue[head]
		for _, he := range adj[b] {
			child := he.to
			if visited[child] {
				continue
			}
			visited[child] = true
			// he.fromNode belongs to b (the parent side of this stored
			// half-edge); the child's own node is he.toNode.
			routes = append(routes, routeEdge{childBasin: child, parentBasin: b, fromNode: he.toNode, toNode: he.fromNode})
			queue = append(queue, child)
		}
	}
	return routes
}

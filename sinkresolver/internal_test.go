package sinkresolver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fastscape-go/fastscapelib/flowgraph"
	"github.com/fastscape-go/fastscapelib/grid"
)

// chainFakeGrid is a 4-node hand-built grid: 0 is the fixed outer boundary,
// adjacent only to 3; 1-2-3 form an interior chain (3-2-1), giving a basin
// graph with a single crossing edge (0,3) that is not the interior basin's
// pit, so CARVE has a real multi-hop path to reverse.
type chainFakeGrid struct{}

func (chainFakeGrid) Size() int    { return 4 }
func (chainFakeGrid) Shape() []int { return []int{4} }
func (chainFakeGrid) Area(int) float64 { return 1.0 }
func (chainFakeGrid) Status(i int) grid.NodeStatus {
	if i == 0 {
		return grid.FixedValue
	}
	return grid.Core
}
func (chainFakeGrid) Neighbors(i int) []grid.Neighbor {
	adj := map[int][]int{0: {3}, 1: {2}, 2: {1, 3}, 3: {2, 0}}
	dist := map[[2]int]float64{{2, 3}: 2.5, {3, 2}: 2.5}
	var out []grid.Neighbor
	for _, j := range adj[i] {
		d, ok := dist[[2]int{i, j}]
		if !ok {
			d = 1.0
		}
		out = append(out, grid.Neighbor{Index: j, Distance: d, Status: chainFakeGrid{}.Status(j)})
	}
	return out
}

// buildChainFlowGraph assembles the pre-resolution single-flow state: node0
// has no receiver (outer), and the interior chain 3->2->1 drains into pit
// node1, which is a closed depression (h1=1) relative to the true outlet
// h0=0, but is itself a local minimum below its barrier (h2=1.5, h3=2).
func buildChainFlowGraph(t *testing.T) (*flowgraph.FlowGraph, []float64) {
	t.Helper()
	g := chainFakeGrid{}
	fg := flowgraph.New(g, true)
	require.NoError(t, fg.SetSingleReceiver(3, 2, 1.0))
	require.NoError(t, fg.SetSingleReceiver(2, 1, 1.0))
	require.NoError(t, fg.ComputeDonors())
	require.NoError(t, fg.ComputeOrder())
	require.NoError(t, fg.ComputeBasins())

	elevation := []float64{0, 1, 1.5, 2}
	return fg, elevation
}

func TestBuildBasinGraph_SingleCrossing(t *testing.T) {
	fg, elevation := buildChainFlowGraph(t)
	edges := buildBasinGraph(fg, elevation)
	require.Len(t, edges, 1)
	e := edges[0]
	require.Equal(t, 0, e.basinA)
	require.Equal(t, 0, e.nodeA)
	require.Equal(t, 1, e.basinB)
	require.Equal(t, 3, e.nodeB)
	require.InDelta(t, 2.0, e.pass, 1e-12)
}

func TestComputeMST_NoOutlet(t *testing.T) {
	_, err := computeMST(2, nil, map[int]bool{}, Kruskal)
	require.ErrorIs(t, err, ErrNoOutlet)
}

func TestComputeMST_KruskalAndBoruvkaAgree(t *testing.T) {
	fg, elevation := buildChainFlowGraph(t)
	edges := buildBasinGraph(fg, elevation)
	outer := map[int]bool{0: true}

	kRoutes, err := computeMST(fg.NumBasins(), edges, outer, Kruskal)
	require.NoError(t, err)
	bRoutes, err := computeMST(fg.NumBasins(), edges, outer, Boruvka)
	require.NoError(t, err)

	require.Equal(t, kRoutes, bRoutes)
	require.Len(t, kRoutes, 1)
	require.Equal(t, routeEdge{childBasin: 1, parentBasin: 0, fromNode: 3, toNode: 0}, kRoutes[0])
}

func TestApplyBasic_SetsDirectReceiver(t *testing.T) {
	fg, _ := buildChainFlowGraph(t)
	route := routeEdge{childBasin: 1, parentBasin: 0, fromNode: 3, toNode: 0}
	require.NoError(t, applyBasic(fg, route))
	require.Equal(t, []int{0}, fg.Receivers(1))
}

func TestApplyCarve_ReversesPathAndLowersBarrier(t *testing.T) {
	fg, elevation := buildChainFlowGraph(t)
	route := routeEdge{childBasin: 1, parentBasin: 0, fromNode: 3, toNode: 0}
	require.NoError(t, applyCarve(fg, elevation, route))

	require.Equal(t, []int{2}, fg.Receivers(1))
	require.Equal(t, []int{3}, fg.Receivers(2))
	require.Equal(t, []int{0}, fg.Receivers(3))

	// Pit keeps its elevation; the barrier nodes are carved down below it;
	// the fixed outer node is untouched.
	require.InDelta(t, 1.0, elevation[1], 1e-15)
	require.Less(t, elevation[2], elevation[1])
	require.Less(t, elevation[3], elevation[2])
	require.InDelta(t, 0.0, elevation[0], 1e-15)

	require.NoError(t, fg.ComputeDonors())
	require.NoError(t, fg.ComputeOrder())
}

func TestApplyCarve_RaisesFromNodeToMeetHigherParentAnchor(t *testing.T) {
	fg, elevation := buildChainFlowGraph(t)
	// A grandchild basin's route can anchor into an interior node of an
	// already-resolved parent basin rather than that basin's own pit, so
	// toNode's elevation isn't bounded by anything in this basin's own
	// chain. Here fromNode's untouched elevation (0.5) sits below toNode
	// (0.7), which must still be reachable without crossing the fixed pit.
	elevation[1] = 1.0
	elevation[2] = 0.95
	elevation[3] = 0.5
	elevation[0] = 0.7

	route := routeEdge{childBasin: 1, parentBasin: 0, fromNode: 3, toNode: 0}
	require.NoError(t, applyCarve(fg, elevation, route))

	require.InDelta(t, 1.0, elevation[1], 1e-15) // pit untouched
	require.InDelta(t, 0.7, elevation[0], 1e-15) // toNode untouched
	require.GreaterOrEqual(t, elevation[3], elevation[0])
	require.GreaterOrEqual(t, elevation[2], elevation[3])
	require.GreaterOrEqual(t, elevation[1], elevation[2])
}

func TestDistanceBetween_FallsBackWhenNotAdjacent(t *testing.T) {
	g := chainFakeGrid{}
	require.InDelta(t, 2.5, distanceBetween(g, 3, 2), 1e-12)
	require.InDelta(t, 1.0, distanceBetween(g, 1, 0), 1e-12) // not adjacent: fallback
}

package sinkresolver_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fastscape-go/fastscapelib/flowgraph"
	"github.com/fastscape-go/fastscapelib/flowoperator"
	"github.com/fastscape-go/fastscapelib/grid"
	"github.com/fastscape-go/fastscapelib/sinkresolver"
)

// bowlRaster builds a 3x3 raster with every border node fixed (outer) and a
// single Core center node that is a closed depression relative to its 8
// neighbors, isolating an S3-style boundary scenario.
func bowlRaster(t *testing.T) (grid.Grid, []float64) {
	t.Helper()
	g, err := grid.NewRaster([2]int{3, 3}, [2]float64{1, 1},
		grid.WithBorders(grid.FixedValue, grid.FixedValue, grid.FixedValue, grid.FixedValue))
	require.NoError(t, err)

	elevation := []float64{
		5, 4, 5,
		4, 1, 4,
		5, 4, 5,
	}
	return g, elevation
}

func TestMSTResolver_ClosesIsolatedPit(t *testing.T) {
	g, elevation := bowlRaster(t)
	fg := flowgraph.New(g, true)

	require.NoError(t, flowoperator.SingleFlowRouter{}.Apply(fg, elevation))
	require.NoError(t, fg.ComputeBasins())
	require.Equal(t, 9, fg.NumBasins()) // every node its own basin before resolution

	resolver := sinkresolver.New()
	require.NoError(t, resolver.Apply(fg, elevation))

	require.NoError(t, fg.ComputeBasins())
	require.Equal(t, 8, fg.NumBasins()) // center merges into a bordering basin

	// The center's lowest crossing edges have pass=4 (its four orthogonal
	// neighbors; the diagonals give pass=5); the deterministic tie-break
	// (ascending smaller endpoint index) picks neighbor index 1 as the
	// receiver.
	require.Equal(t, 1, fg.RCount(4))
	require.Equal(t, []int{1}, fg.Receivers(4))
}

func TestMSTResolver_CarveLeavesFixedBordersUnchanged(t *testing.T) {
	g, elevation := bowlRaster(t)
	fg := flowgraph.New(g, true)
	require.NoError(t, flowoperator.SingleFlowRouter{}.Apply(fg, elevation))

	resolver := sinkresolver.New(sinkresolver.WithRouteMethod(sinkresolver.Carve))
	require.True(t, resolver.ElevationUpdated())
	require.NoError(t, resolver.Apply(fg, elevation))

	// Border (fixed) elevations must never be touched by CARVE.
	for _, i := range []int{0, 1, 2, 3, 5, 6, 7, 8} {
		require.InDelta(t, []float64{5, 4, 5, 4, 4, 5, 4, 5}[indexOf(i)], elevation[i], 1e-9)
	}
}

func indexOf(i int) int {
	order := []int{0, 1, 2, 3, 5, 6, 7, 8}
	for k, v := range order {
		if v == i {
			return k
		}
	}
	return -1
}

func TestMSTResolver_NoOutlet(t *testing.T) {
	g, err := grid.NewRaster([2]int{3, 3}, [2]float64{1, 1})
	require.NoError(t, err) // all Core: no FixedValue outer
	elevation := []float64{5, 4, 5, 4, 1, 4, 5, 4, 5}
	fg := flowgraph.New(g, true)
	require.NoError(t, flowoperator.SingleFlowRouter{}.Apply(fg, elevation))

	resolver := sinkresolver.New()
	err = resolver.Apply(fg, elevation)
	require.ErrorIs(t, err, sinkresolver.ErrNoOutlet)
}

func TestMSTResolver_RejectsMultiFlowGraph(t *testing.T) {
	g, elevation := bowlRaster(t)
	fg := flowgraph.New(g, false)
	require.NoError(t, fg.AddMultiReceiver(4, 1, 1.0, 1.0))

	resolver := sinkresolver.New()
	err := resolver.Apply(fg, elevation)
	require.ErrorIs(t, err, sinkresolver.ErrInvalidArgument)
}

func TestMSTResolver_IdempotentOnSecondApply(t *testing.T) {
	g, elevation := bowlRaster(t)
	fg := flowgraph.New(g, true)
	require.NoError(t, flowoperator.SingleFlowRouter{}.Apply(fg, elevation))

	resolver := sinkresolver.New()
	require.NoError(t, resolver.Apply(fg, elevation))
	firstReceivers := append([]int(nil), fg.Receivers(4)...)

	require.NoError(t, resolver.Apply(fg, elevation))
	require.Equal(t, firstReceivers, fg.Receivers(4))
}

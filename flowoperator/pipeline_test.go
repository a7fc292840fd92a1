package flowoperator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fastscape-go/fastscapelib/flowgraph"
	"github.com/fastscape-go/fastscapelib/flowoperator"
	"github.com/fastscape-go/fastscapelib/grid"
)

func TestNewPipeline_RejectsEmpty(t *testing.T) {
	_, err := flowoperator.NewPipeline()
	require.ErrorIs(t, err, flowoperator.ErrInvalidArgument)
}

func TestNewPipeline_RejectsNoGraphUpdate(t *testing.T) {
	_, err := flowoperator.NewPipeline(flowoperator.NewSnapshot("s1"))
	require.ErrorIs(t, err, flowoperator.ErrInvalidArgument)
}

func TestNewPipeline_AcceptsSingleThenMulti(t *testing.T) {
	// MultiFlowRouter declares InFlowDir()=Undefined, so it accepts any
	// predecessor's output, including Single.
	_, err := flowoperator.NewPipeline(flowoperator.SingleFlowRouter{}, flowoperator.NewMultiFlowRouter())
	require.NoError(t, err)
}

func TestSingleFlowRouter_SteepestDescent(t *testing.T) {
	g, err := grid.NewProfile(5, 1.0, grid.FixedValue, grid.FixedValue, nil)
	require.NoError(t, err)
	elevation := []float64{0, 3, 5, 2, 0}

	fg := flowgraph.New(g, true)
	p, err := flowoperator.NewPipeline(flowoperator.SingleFlowRouter{})
	require.NoError(t, err)

	_, err = p.UpdateRoutes(fg, elevation)
	require.NoError(t, err)

	require.Equal(t, []int{0}, fg.Receivers(1))
	require.Equal(t, []int{3}, fg.Receivers(2))
	require.Equal(t, []int{4}, fg.Receivers(3))
	require.Equal(t, 0, fg.RCount(0))
	require.Equal(t, 0, fg.RCount(4))
}

func TestMultiFlowRouter_WeightsSumToOne(t *testing.T) {
	r, err := grid.NewRaster([2]int{3, 3}, [2]float64{1, 1})
	require.NoError(t, err)
	elevation := make([]float64, 9)
	for i := range elevation {
		row, col := r.RowCol(i)
		elevation[i] = float64(row + col)
	}
	elevation[r.Index(1, 1)] = 5 // center is the peak, drains to all neighbors

	fg := flowgraph.New(r, false)
	p, err := flowoperator.NewPipeline(flowoperator.NewMultiFlowRouter(flowoperator.WithSlopeExp(1.0)))
	require.NoError(t, err)
	_, err = p.UpdateRoutes(fg, elevation)
	require.NoError(t, err)

	center := r.Index(1, 1)
	var sum float64
	for _, w := range fg.ReceiverWeights(center) {
		sum += w
	}
	require.InDelta(t, 1.0, sum, 1e-9)
	require.True(t, fg.RCount(center) > 1)
}

func TestMultiFlowRouter_FlatNeighborhoodHasNoReceivers(t *testing.T) {
	r, err := grid.NewRaster([2]int{3, 3}, [2]float64{1, 1})
	require.NoError(t, err)
	elevation := make([]float64, 9) // perfectly flat

	fg := flowgraph.New(r, false)
	p, err := flowoperator.NewPipeline(flowoperator.NewMultiFlowRouter())
	require.NoError(t, err)
	_, err = p.UpdateRoutes(fg, elevation)
	require.NoError(t, err)

	require.Equal(t, 0, fg.RCount(r.Index(1, 1)))
}

func TestSnapshot_CapturesGraphAndElevation(t *testing.T) {
	g, err := grid.NewProfile(4, 1.0, grid.FixedValue, grid.Core, nil)
	require.NoError(t, err)
	elevation := []float64{0, 1, 2, 3}

	fg := flowgraph.New(g, true)
	snap := flowoperator.NewSnapshot("after-route", flowoperator.WithSaveElevation(true))
	p, err := flowoperator.NewPipeline(flowoperator.SingleFlowRouter{}, snap)
	require.NoError(t, err)

	out, err := p.UpdateRoutes(fg, elevation)
	require.NoError(t, err)
	require.Equal(t, elevation, out)

	snapG, ok := p.GraphSnapshot("after-route")
	require.True(t, ok)
	require.Equal(t, fg.Receivers(1), snapG.Receivers(1))

	snapE, ok := p.ElevationSnapshot("after-route")
	require.True(t, ok)
	require.Equal(t, elevation, snapE)
}

func TestPFloodResolver_RaisesPits(t *testing.T) {
	g, err := grid.NewProfile(5, 1.0, grid.FixedValue, grid.FixedValue, nil)
	require.NoError(t, err)
	elevation := []float64{0, 5, 1, 5, 0} // node 2 is a closed pit

	fg := flowgraph.New(g, true)
	p, err := flowoperator.NewPipeline(flowoperator.NewPFloodResolver(0), flowoperator.SingleFlowRouter{})
	require.NoError(t, err)

	out, err := p.UpdateRoutes(fg, elevation)
	require.NoError(t, err)
	require.GreaterOrEqual(t, out[2], out[1])
}

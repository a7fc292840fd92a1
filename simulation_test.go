package fastscape_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fastscape-go/fastscapelib"
	"github.com/fastscape-go/fastscapelib/eroder"
	"github.com/fastscape-go/fastscapelib/flowoperator"
	"github.com/fastscape-go/fastscapelib/grid"
)

func profileWithRamp(t *testing.T, n int, spacing float64) (*grid.Profile, []float64) {
	t.Helper()
	g, err := grid.NewProfile(n, spacing, grid.FixedValue, grid.Core, nil)
	require.NoError(t, err)
	elevation := make([]float64, g.Size())
	for i := range elevation {
		elevation[i] = float64(i) * 30.0
	}
	return g, elevation
}

func TestSimulation_StepRunsRoutingAndAccumulation(t *testing.T) {
	g, elevation := profileWithRamp(t, 11, 300.0)
	pipeline, err := flowoperator.NewPipeline(flowoperator.SingleFlowRouter{})
	require.NoError(t, err)

	sim, err := fastscape.New(g, elevation, pipeline, fastscape.EroderSet{})
	require.NoError(t, err)

	uplift := make([]float64, g.Size())
	for i := range uplift {
		uplift[i] = 1e-3
	}

	before := append([]float64(nil), sim.Elevation()...)
	_, err = sim.Step(100.0, uplift)
	require.NoError(t, err)

	require.NotEqual(t, before, sim.Elevation())
	require.Equal(t, before[0], sim.Elevation()[0]) // base level fixed: no uplift applied
	for i := 1; i < g.Size(); i++ {
		require.Greater(t, sim.DrainageArea()[i], 0.0)
	}
}

func TestSimulation_RejectsMismatchedElevationLength(t *testing.T) {
	g, _ := profileWithRamp(t, 5, 1.0)
	pipeline, err := flowoperator.NewPipeline(flowoperator.SingleFlowRouter{})
	require.NoError(t, err)

	_, err = fastscape.New(g, []float64{1, 2, 3}, pipeline, fastscape.EroderSet{})
	require.ErrorIs(t, err, fastscape.ErrInvalidArgument)
}

func TestSimulation_RejectsNonPositiveDt(t *testing.T) {
	g, elevation := profileWithRamp(t, 5, 1.0)
	pipeline, err := flowoperator.NewPipeline(flowoperator.SingleFlowRouter{})
	require.NoError(t, err)
	sim, err := fastscape.New(g, elevation, pipeline, fastscape.EroderSet{})
	require.NoError(t, err)

	_, err = sim.Step(0, nil)
	require.ErrorIs(t, err, fastscape.ErrInvalidArgument)
}

func TestSimulation_WithSPLEroderErodesDownstream(t *testing.T) {
	g, elevation := profileWithRamp(t, 6, 300.0)
	pipeline, err := flowoperator.NewPipeline(flowoperator.SingleFlowRouter{})
	require.NoError(t, err)

	sim, err := fastscape.New(g, elevation, pipeline, fastscape.EroderSet{})
	require.NoError(t, err)

	spl, err := eroder.NewSPLEroder(sim.FlowGraph(), []float64{1e-4}, 0.5, 1, 1e-6)
	require.NoError(t, err)
	sim.SetEroders(fastscape.EroderSet{SPL: spl})

	_, err = sim.Step(100.0, nil)
	require.NoError(t, err)
	require.Less(t, sim.Elevation()[g.Size()-1], elevation[g.Size()-1])
}

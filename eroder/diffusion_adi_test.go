package eroder_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fastscape-go/fastscapelib/eroder"
	"github.com/fastscape-go/fastscapelib/grid"
)

func TestDiffusionADIEroder_MassConservationWithNeumannBorders(t *testing.T) {
	g, err := grid.NewRaster([2]int{4, 5}, [2]float64{1, 1},
		grid.WithBorders(grid.FixedGradient, grid.FixedGradient, grid.FixedGradient, grid.FixedGradient))
	require.NoError(t, err)

	elevation := make([]float64, g.Size())
	for i := range elevation {
		elevation[i] = float64(i%7) + 1
	}
	var before float64
	for _, h := range elevation {
		before += h
	}

	e, err := eroder.NewDiffusionADIEroder(g, 0.01)
	require.NoError(t, err)

	erosion, err := e.Erode(elevation, 1.0)
	require.NoError(t, err)

	var after float64
	for i, h := range elevation {
		after += h - erosion[i]
	}
	require.InDelta(t, before, after, 1e-6)
}

func TestDiffusionADIEroder_FixedValueBorderUnchanged(t *testing.T) {
	g, err := grid.NewRaster([2]int{3, 3}, [2]float64{1, 1},
		grid.WithBorders(grid.FixedValue, grid.FixedValue, grid.FixedValue, grid.FixedValue))
	require.NoError(t, err)

	elevation := []float64{0, 0, 0, 0, 5, 0, 0, 0, 0}
	e, err := eroder.NewDiffusionADIEroder(g, 0.05)
	require.NoError(t, err)

	erosion, err := e.Erode(elevation, 1.0)
	require.NoError(t, err)

	for _, i := range []int{0, 1, 2, 3, 5, 6, 7, 8} {
		require.Equal(t, 0.0, erosion[i])
	}
	require.Greater(t, erosion[4], 0.0) // center loses mass to its fixed, lower neighbors
}

func TestDiffusionADIEroder_RejectsNonRasterGrid(t *testing.T) {
	g, err := grid.NewProfile(5, 1.0, grid.FixedValue, grid.FixedValue, nil)
	require.NoError(t, err)
	_, err = eroder.NewDiffusionADIEroder(g, 0.1)
	require.ErrorIs(t, err, eroder.ErrRasterOnly)
}

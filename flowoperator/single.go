package flowoperator

import (
	"fmt"

	"github.com/fastscape-go/fastscapelib/flowgraph"
	"github.com/fastscape-go/fastscapelib/grid"
)

// SingleFlowRouter assigns each non-base-level node the single receiver
// that maximizes steepest descent (h(i)-h(j))/d(i,j), breaking ties by
// smallest neighbor index. A node whose neighbors are all >= its own
// elevation is a pit: it keeps no receiver and becomes a basin root.
type SingleFlowRouter struct{}

// Name returns "SingleFlowRouter".
func (SingleFlowRouter) Name() string { return "SingleFlowRouter" }

// GraphUpdated is true: this operator rebuilds fg's receivers.
func (SingleFlowRouter) GraphUpdated() bool { return true }

// ElevationUpdated is false: SingleFlowRouter never changes elevation.
func (SingleFlowRouter) ElevationUpdated() bool { return false }

// InFlowDir accepts any prior flow-direction kind (it fully rebuilds).
func (SingleFlowRouter) InFlowDir() FlowDir { return Undefined }

// OutFlowDir is Single.
func (SingleFlowRouter) OutFlowDir() FlowDir { return Single }

// Apply resets fg and assigns steepest-descent receivers from elevation.
func (s SingleFlowRouter) Apply(fg *flowgraph.FlowGraph, elevation []float64) error {
	g := fg.Grid()
	if len(elevation) != g.Size() {
		return fmt.Errorf("flowoperator: SingleFlowRouter: len(elevation)=%d != N=%d: %w", len(elevation), g.Size(), ErrInvalidArgument)
	}

	fg.Reset()
	for i := 0; i < g.Size(); i++ {
		if g.Status(i) == grid.FixedValue || g.Status(i) == grid.Ghost {
			continue
		}

		best, bestDist, bestSlope := -1, 0.0, 0.0
		for _, nb := range g.Neighbors(i) {
			slope := (elevation[i] - elevation[nb.Index]) / nb.Distance
			if slope <= 0 {
				continue
			}
			if best == -1 || slope > bestSlope || (slope == bestSlope && nb.Index < best) {
				best, bestDist, bestSlope = nb.Index, nb.Distance, slope
			}
		}
		if best == -1 {
			continue // pit or base level: no receiver
		}
		if err := fg.SetSingleReceiver(i, best, bestDist); err != nil {
			return err
		}
	}

	if err := fg.ComputeDonors(); err != nil {
		return err
	}
	return fg.ComputeOrder()
}

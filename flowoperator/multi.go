package flowoperator

import (
	"fmt"
	"math"

	"github.com/fastscape-go/fastscapelib/flowgraph"
	"github.com/fastscape-go/fastscapelib/grid"
)

// DefaultSlopeExp is the default value of MultiFlowRouter's slope exponent
// p, matching the spec's slope_exp: f64 = 1.0 default.
const DefaultSlopeExp = 1.0

// MultiFlowOption configures a MultiFlowRouter.
type MultiFlowOption func(*MultiFlowRouter)

// WithSlopeExp sets the slope exponent p used to weight downslope
// neighbors (w_j ∝ s_j^p). p must be >= 0.
func WithSlopeExp(p float64) MultiFlowOption {
	return func(r *MultiFlowRouter) { r.SlopeExp = p }
}

// MultiFlowRouter distributes each node's outflow across every downslope
// neighbor, weighted by slope raised to SlopeExp and normalized to sum to
// 1. A node whose neighbors are all at or above its own elevation
// (including a fully flat neighborhood) is left with zero receivers: this
// pins the spec's Open Question in favor of "no receivers", matching the
// observed upstream behavior.
type MultiFlowRouter struct {
	// SlopeExp is the exponent p >= 0 applied to each downslope neighbor's
	// steepness before normalization. Zero makes every downslope neighbor
	// equally weighted regardless of steepness.
	SlopeExp float64
}

// NewMultiFlowRouter builds a MultiFlowRouter with DefaultSlopeExp unless
// overridden by opts.
func NewMultiFlowRouter(opts ...MultiFlowOption) *MultiFlowRouter {
	r := &MultiFlowRouter{SlopeExp: DefaultSlopeExp}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name returns "MultiFlowRouter".
func (r *MultiFlowRouter) Name() string { return "MultiFlowRouter" }

// GraphUpdated is true: this operator rebuilds fg's receivers.
func (r *MultiFlowRouter) GraphUpdated() bool { return true }

// ElevationUpdated is false.
func (r *MultiFlowRouter) ElevationUpdated() bool { return false }

// InFlowDir accepts Single or Undefined (it overwrites whatever routing
// was there).
func (r *MultiFlowRouter) InFlowDir() FlowDir { return Undefined }

// OutFlowDir is Multi.
func (r *MultiFlowRouter) OutFlowDir() FlowDir { return Multi }

// Apply resets fg and assigns normalized multi-receiver weights from
// elevation.
func (r *MultiFlowRouter) Apply(fg *flowgraph.FlowGraph, elevation []float64) error {
	if r.SlopeExp < 0 {
		return fmt.Errorf("flowoperator: MultiFlowRouter: slope_exp=%g must be >= 0: %w", r.SlopeExp, ErrInvalidArgument)
	}
	g := fg.Grid()
	if len(elevation) != g.Size() {
		return fmt.Errorf("flowoperator: MultiFlowRouter: len(elevation)=%d != N=%d: %w", len(elevation), g.Size(), ErrInvalidArgument)
	}

	fg.Reset()
	for i := 0; i < g.Size(); i++ {
		if g.Status(i) == grid.FixedValue || g.Status(i) == grid.Ghost {
			continue
		}

		for _, nb := range g.Neighbors(i) {
			if elevation[nb.Index] >= elevation[i] {
				continue
			}
			slope := (elevation[i] - elevation[nb.Index]) / nb.Distance
			w := math.Pow(slope, r.SlopeExp)
			if w <= 0 {
				continue
			}
			if err := fg.AddMultiReceiver(i, nb.Index, nb.Distance, w); err != nil {
				return err
			}
		}
		fg.NormalizeWeights(i)
	}

	if err := fg.ComputeDonors(); err != nil {
		return err
	}
	return fg.ComputeOrder()
}

package fastscape

import (
	"errors"
	"fmt"

	"github.com/fastscape-go/fastscapelib/eroder"
	"github.com/fastscape-go/fastscapelib/flowgraph"
	"github.com/fastscape-go/fastscapelib/flowoperator"
	"github.com/fastscape-go/fastscapelib/grid"
)

// Simulation is the thin orchestration facade wiring a Grid (C1), a
// FlowGraph (C2) driven by an operator Pipeline (C3, routing plus sink
// resolution), and an EroderSet (C5) into one outer step. It owns no
// scheduling policy beyond what Step performs once per call: callers drive
// the step loop, supplying uplift and dt, exactly as spec.md's "outer
// simulation loop supplied by the user" describes.
type Simulation struct {
	g        grid.Grid
	fg       *flowgraph.FlowGraph
	pipeline *flowoperator.Pipeline
	eroders  EroderSet

	elevation []float64
	area      []float64
}

// New constructs a Simulation over g, seeded with the given initial
// elevation (copied; the caller's slice is never aliased), driving routing
// and sink resolution through pipeline, and applying the given eroders
// each step. elevation must have length g.Size().
//
// Returns ErrInvalidArgument if elevation's length does not match g.Size().
func New(g grid.Grid, elevation []float64, pipeline *flowoperator.Pipeline, eroders EroderSet) (*Simulation, error) {
	if len(elevation) != g.Size() {
		return nil, fmt.Errorf("fastscape: New: len(elevation)=%d != N=%d: %w", len(elevation), g.Size(), ErrInvalidArgument)
	}

	h := make([]float64, len(elevation))
	copy(h, elevation)

	return &Simulation{
		g:         g,
		fg:        flowgraph.New(g, true),
		pipeline:  pipeline,
		eroders:   eroders,
		elevation: h,
		area:      make([]float64, len(elevation)),
	}, nil
}

// Grid returns the spatial support this Simulation was constructed over.
func (s *Simulation) Grid() grid.Grid { return s.g }

// FlowGraph returns the FlowGraph instance Step drives, for callers that
// need to inspect receivers, basins, or traversal order between steps, or
// that must construct an eroder.SPLEroder bound to this exact instance
// before calling SetEroders.
func (s *Simulation) FlowGraph() *flowgraph.FlowGraph { return s.fg }

// SetEroders replaces the eroders Step applies each call. Since
// eroder.SPLEroder is constructed against a specific *flowgraph.FlowGraph,
// callers that want SPL incision must build it from FlowGraph() after
// construction and attach it here, rather than via New's eroders
// parameter.
func (s *Simulation) SetEroders(eroders EroderSet) { s.eroders = eroders }

// Elevation returns the current elevation field. The returned slice is
// owned by the Simulation; callers must copy it before mutating.
func (s *Simulation) Elevation() []float64 { return s.elevation }

// DrainageArea returns the per-node drainage area computed by the most
// recent Step call (zero-valued before the first Step).
func (s *Simulation) DrainageArea() []float64 { return s.area }

// Step advances the simulation by one increment: apply uplift (may be
// nil, meaning no uplift), route flow and resolve sinks via the pipeline,
// accumulate drainage area, run the configured eroders in order (SPL then
// Diffusion), and subtract the resulting erosion from elevation. Returns
// the updated elevation slice (same backing array as Elevation()).
//
// Non-convergence from SPLEroder is propagated as a wrapped, non-fatal
// warning: elevation is still updated with the eroder's best estimate.
func (s *Simulation) Step(dt float64, uplift []float64) ([]float64, error) {
	n := s.g.Size()
	if dt <= 0 {
		return nil, fmt.Errorf("fastscape: Step: dt=%g: %w", dt, ErrInvalidArgument)
	}
	if uplift != nil && len(uplift) != n {
		return nil, fmt.Errorf("fastscape: Step: len(uplift)=%d != N=%d: %w", len(uplift), n, ErrInvalidArgument)
	}

	for i := 0; i < n; i++ {
		if uplift != nil && s.g.Status(i) != grid.FixedValue {
			s.elevation[i] += uplift[i]
		}
	}

	working, err := s.pipeline.UpdateRoutes(s.fg, s.elevation)
	if err != nil {
		return nil, fmt.Errorf("fastscape: Step: %w", err)
	}
	copy(s.elevation, working)

	area, err := s.fg.AccumulateScalar(s.area, 1.0)
	if err != nil {
		return nil, fmt.Errorf("fastscape: Step: %w", err)
	}
	s.area = area

	var warn error
	if s.eroders.SPL != nil {
		erosion, err := s.eroders.SPL.Erode(s.elevation, s.area, dt)
		if err != nil {
			if !errors.Is(err, eroder.ErrNumericalNonconvergence) {
				return nil, fmt.Errorf("fastscape: Step: %w", err)
			}
			warn = err
		}
		for i := range s.elevation {
			s.elevation[i] -= erosion[i]
		}
	}
	if s.eroders.Diffusion != nil {
		erosion, err := s.eroders.Diffusion.Erode(s.elevation, dt)
		if err != nil {
			return nil, fmt.Errorf("fastscape: Step: %w", err)
		}
		for i := range s.elevation {
			s.elevation[i] -= erosion[i]
		}
	}

	return s.elevation, warn
}

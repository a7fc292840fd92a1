package sinkresolver

import (
	"fmt"

	"github.com/fastscape-go/fastscapelib/flowgraph"
	"github.com/fastscape-go/fastscapelib/flowoperator"
	"github.com/fastscape-go/fastscapelib/grid"
)

// MSTResolver closes every closed depression left by a prior single-flow
// router: it finds drainage basins, builds the auxiliary basin graph of
// minimum-pass crossings between them, computes a minimum spanning tree
// rooted at the base-level (outer) basins, and rewrites receivers along
// each accepted edge (BASIC or CARVE) so every basin ultimately drains to
// a base level. Implements flowoperator.Operator so it plugs directly into
// a Pipeline after a SingleFlowRouter.
type MSTResolver struct {
	BasinMethod BasinMethod
	RouteMethod RouteMethod
}

// New constructs an MSTResolver with Kruskal basin-graph MST and BASIC
// route propagation, overridable via opts.
func New(opts ...Option) *MSTResolver {
	r := &MSTResolver{BasinMethod: Kruskal, RouteMethod: Basic}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name returns "MSTResolver".
func (r *MSTResolver) Name() string { return "MSTResolver" }

// GraphUpdated is true: MSTResolver rewrites receivers for every resolved
// basin.
func (r *MSTResolver) GraphUpdated() bool { return true }

// ElevationUpdated is true only under CARVE, which adjusts elevation along
// each reversed path to guarantee monotone descent.
func (r *MSTResolver) ElevationUpdated() bool { return r.RouteMethod == Carve }

// InFlowDir is Single: the resolver walks single-receiver chains to find
// each basin's pit and to reverse CARVE paths.
func (r *MSTResolver) InFlowDir() flowoperator.FlowDir { return flowoperator.Single }

// OutFlowDir is Single: the resolver only ever rewrites single-receiver
// edges.
func (r *MSTResolver) OutFlowDir() flowoperator.FlowDir { return flowoperator.Single }

// Apply runs the five-step resolution: discover basins, build the basin
// graph, compute its MST, propagate routes, and rebuild donors/order.
//
// Returns ErrInvalidArgument if fg is not in single-flow mode, or
// ErrNoOutlet if no basin's root is a base-level (FixedValue) node.
func (r *MSTResolver) Apply(fg *flowgraph.FlowGraph, elevation []float64) error {
	if !fg.SingleFlow() {
		return fmt.Errorf("sinkresolver: MSTResolver: requires a single-flow graph: %w", ErrInvalidArgument)
	}
	if len(elevation) != fg.Grid().Size() {
		return fmt.Errorf("sinkresolver: MSTResolver: len(elevation)=%d != N=%d: %w", len(elevation), fg.Grid().Size(), ErrInvalidArgument)
	}

	if err := fg.ComputeBasins(); err != nil {
		return fmt.Errorf("sinkresolver: MSTResolver: %w", err)
	}

	g := fg.Grid()
	outer := make(map[int]bool)
	for b := 0; b < fg.NumBasins(); b++ {
		if g.Status(fg.RootNode(b)) == grid.FixedValue {
			outer[b] = true
		}
	}
	if len(outer) == 0 {
		return fmt.Errorf("sinkresolver: MSTResolver: %w", ErrNoOutlet)
	}

	edges := buildBasinGraph(fg, elevation)
	routes, err := computeMST(fg.NumBasins(), edges, outer, r.BasinMethod)
	if err != nil {
		return fmt.Errorf("sinkresolver: MSTResolver: %w", err)
	}

	for _, route := range routes {
		switch r.RouteMethod {
		case Carve:
			if err := applyCarve(fg, elevation, route); err != nil {
				return fmt.Errorf("sinkresolver: MSTResolver: carve: %w", err)
			}
		default:
			if err := applyBasic(fg, route); err != nil {
				return fmt.Errorf("sinkresolver: MSTResolver: basic: %w", err)
			}
		}
	}

	if err := fg.ComputeDonors(); err != nil {
		return fmt.Errorf("sinkresolver: MSTResolver: %w", err)
	}
	return fg.ComputeOrder()
}

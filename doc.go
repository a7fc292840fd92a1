// Package fastscape is the orchestration facade tying the landscape
// evolution engine's five components together for an outer step loop:
//
//	grid/         — C1, the spatial support (Raster, Profile, TriMesh)
//	flowgraph/    — C2, the receiver/donor/order/basin graph
//	flowoperator/ — C3, the ordered router + sink-resolver pipeline
//	sinkresolver/ — C4, the MST-based sink resolver (a flowoperator.Operator)
//	eroder/       — C5, SPLEroder and DiffusionADIEroder
//
// Simulation wires these into one Step(dt, uplift) call: apply uplift,
// route and resolve sinks via the pipeline, accumulate drainage area, run
// the configured eroders, and fold the resulting erosion back into
// elevation. It owns no policy beyond that single step — callers supply
// dt and uplift and drive the loop themselves, exactly as spec.md's
// "outer simulation loop supplied by the user" describes.
package fastscape

// Package eroder implements the two per-step elevation-change models
// driven by a grid and a routed flow graph: SPLEroder (implicit
// stream-power-law bedrock incision, traversing the flow graph's
// topological order) and DiffusionADIEroder (raster-only linear hillslope
// diffusion via one Alternating-Direction-Implicit sweep per step, using
// gonum for the per-row/per-column implicit solves).
//
// Both eroders own fixed-size scratch buffers allocated at construction
// from the grid/flow-graph shape and reused across Erode calls; neither
// mutates the caller's elevation slice — callers apply the returned
// erosion themselves, alongside any uplift, before the next step.
package eroder

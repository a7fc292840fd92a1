package sinkresolver

import "errors"

// BasinMethod selects the algorithm used to compute the minimum spanning
// tree of the basin graph.
type BasinMethod int

const (
	// Kruskal sorts all basin-graph edges ascending by pass elevation and
	// adds each one that joins two different components (union-find with
	// path compression and union by rank). O(E log E).
	Kruskal BasinMethod = iota
	// Boruvka has every component pick its lightest outgoing edge each
	// round; accepted edges are merged simultaneously. O(E log V).
	Boruvka
)

// RouteMethod selects how an accepted MST edge is turned into a receiver
// (and possibly elevation) correction.
type RouteMethod int

const (
	// Basic adds a direct receiver edge from the child basin's pit to the
	// parent basin's root, without touching elevation.
	Basic RouteMethod = iota
	// Carve reverses the receiver path from the pass pair's child-basin
	// endpoint up to the child basin's pit, adjusting elevation along that
	// path in place so it descends monotonically toward the parent basin.
	Carve
)

// CarveEpsilon is the strictly positive elevation increment CARVE
// subtracts when it must lower a carved node below its new upstream
// neighbor, pinning the spec's Open Question in favor of strict descent
// (h(upstream) >= h(downstream) + CarveEpsilon) between carved nodes
// rather than a merely non-strict bound. The final hop from the carved
// path into the parent basin's anchor node is only non-strict.
const CarveEpsilon = 1e-12

// Sentinel errors.
var (
	// ErrInvalidArgument flags a malformed resolver configuration or a
	// FlowGraph that is not in single-flow mode (the resolver requires
	// single-flow input receivers to identify basin pits).
	ErrInvalidArgument = errors.New("sinkresolver: invalid argument")

	// ErrNoOutlet is the fatal error reported when the basin graph has no
	// base-level (outer) basin to root the spanning tree at.
	ErrNoOutlet = errors.New("sinkresolver: no outlet: basin graph has no base-level basin")
)

// Option configures an MSTResolver at construction time.
type Option func(*MSTResolver)

// WithBasinMethod selects Kruskal or Boruvka for the basin-graph MST.
func WithBasinMethod(m BasinMethod) Option {
	return func(r *MSTResolver) { r.BasinMethod = m }
}

// WithRouteMethod selects Basic or Carve route propagation.
func WithRouteMethod(m RouteMethod) Option {
	return func(r *MSTResolver) { r.RouteMethod = m }
}

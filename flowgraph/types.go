package flowgraph

import "errors"

// NoBasin is the sentinel basin id for a node whose basin has not yet been
// computed (or for a graph on which ComputeBasins has never run).
const NoBasin = -1

// Sentinel errors, package-scoped and checked with errors.Is.
var (
	// ErrInvalidArgument flags malformed receiver/weight input: a
	// non-positive distance, a negative weight, or a source/destination
	// slice whose length is not N. Out-of-range indices are reported with
	// ErrOutOfRange instead.
	ErrInvalidArgument = errors.New("flowgraph: invalid argument")

	// ErrInvariantViolated flags an inconsistent graph state: a receiver
	// graph with a cycle in ComputeOrder, or Order, ComputeBasins or
	// Accumulate requested before a valid topological order exists.
	ErrInvariantViolated = errors.New("flowgraph: invariant violated")

	// ErrOutOfRange flags a neighbor/node index outside [0, N); indicates
	// an internal bug in a caller.
	ErrOutOfRange = errors.New("flowgraph: index out of range")
)

package flowoperator

import (
	"errors"

	"github.com/fastscape-go/fastscapelib/flowgraph"
)

// FlowDir tags what kind of receiver storage an operator expects on input
// or produces on output.
type FlowDir int

const (
	// Undefined accepts/produces either flow-direction kind.
	Undefined FlowDir = iota
	// Single is compact one-receiver-per-node storage.
	Single
	// Multi is up-to-Kmax-receivers-per-node storage.
	Multi
)

// Sentinel errors for pipeline construction and execution.
var (
	// ErrInvalidArgument flags an empty operator sequence, a pipeline
	// with no graph-updating operator, no flow-direction-producing
	// operator, or an incompatible adjacent operator pair.
	ErrInvalidArgument = errors.New("flowoperator: invalid argument")

	// ErrInvariantViolated flags an operator invoked on a grid or FlowGraph
	// state its precondition does not allow (e.g. PFloodResolver applied to
	// a grid with no FixedValue base level).
	ErrInvariantViolated = errors.New("flowoperator: invariant violated")
)

// Operator is one stage of a FlowOperatorPipeline. Implementations:
// SingleFlowRouter, MultiFlowRouter, PFloodResolver, Snapshot, and (in the
// sinkresolver package) the MST-based sink resolver.
type Operator interface {
	// Name identifies the operator for snapshot keys and diagnostics.
	Name() string

	// GraphUpdated reports whether Apply mutates fg's receivers.
	GraphUpdated() bool

	// ElevationUpdated reports whether Apply mutates the working
	// elevation in place.
	ElevationUpdated() bool

	// InFlowDir is the flow-direction kind this operator expects on
	// input.
	InFlowDir() FlowDir

	// OutFlowDir is the flow-direction kind this operator produces.
	OutFlowDir() FlowDir

	// Apply runs the operator against fg and elevation, mutating
	// whichever of the two GraphUpdated/ElevationUpdated declares.
	Apply(fg *flowgraph.FlowGraph, elevation []float64) error
}

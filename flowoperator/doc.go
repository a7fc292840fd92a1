// Package flowoperator implements the ordered operator pipeline that
// builds a flowgraph.FlowGraph from an elevation field: single-flow and
// multi-flow routers, a priority-flood sink resolver, and snapshotting.
// The heavier MST-based sink resolver lives in the sibling sinkresolver
// package but satisfies the same Operator interface and plugs into this
// pipeline unmodified.
//
// Each Operator declares four capability flags — GraphUpdated,
// ElevationUpdated, InFlowDir, OutFlowDir — that Pipeline validates at
// construction and uses to drive execution: adjacent operators' flow-
// direction types must be compatible, and a pipeline with no graph-
// mutating operator or no flow-direction-producing operator is rejected
// before any Apply call runs.
package flowoperator

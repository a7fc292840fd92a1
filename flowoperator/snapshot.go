package flowoperator

import "github.com/fastscape-go/fastscapelib/flowgraph"

// Snapshot deep-copies the current FlowGraph and/or working elevation into
// Pipeline's keyed store under SnapshotName, whenever Pipeline.UpdateRoutes
// reaches it in the operator order. It never mutates the graph or
// elevation itself.
type Snapshot struct {
	// SnapshotName keys this snapshot in the pipeline's store.
	SnapshotName string
	// SaveGraph captures a deep copy of the FlowGraph when true (default).
	SaveGraph bool
	// SaveElevation captures a copy of the working elevation when true.
	SaveElevation bool

	lastGraph *flowgraph.FlowGraph
}

// NewSnapshot builds a Snapshot named name with SaveGraph=true and
// SaveElevation=false, matching the spec's defaults; use the With* options
// to override.
func NewSnapshot(name string, opts ...SnapshotOption) *Snapshot {
	s := &Snapshot{SnapshotName: name, SaveGraph: true, SaveElevation: false}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SnapshotOption configures a Snapshot at construction time.
type SnapshotOption func(*Snapshot)

// WithSaveGraph overrides whether the FlowGraph is captured.
func WithSaveGraph(save bool) SnapshotOption {
	return func(s *Snapshot) { s.SaveGraph = save }
}

// WithSaveElevation overrides whether the working elevation is captured.
func WithSaveElevation(save bool) SnapshotOption {
	return func(s *Snapshot) { s.SaveElevation = save }
}

// Name returns SnapshotName.
func (s *Snapshot) Name() string { return s.SnapshotName }

// GraphUpdated is false: a Snapshot never mutates the graph.
func (s *Snapshot) GraphUpdated() bool { return false }

// ElevationUpdated is false: a Snapshot never mutates elevation in place
// (it only copies it out to the store via Pipeline after Apply runs).
func (s *Snapshot) ElevationUpdated() bool { return false }

// InFlowDir is Undefined: a Snapshot passes through any flow direction.
func (s *Snapshot) InFlowDir() FlowDir { return Undefined }

// OutFlowDir is Undefined: a Snapshot produces no flow direction of its
// own.
func (s *Snapshot) OutFlowDir() FlowDir { return Undefined }

// Apply captures fg's current state for Pipeline.save to persist after
// this call returns. Snapshot never mutates fg or elevation.
func (s *Snapshot) Apply(fg *flowgraph.FlowGraph, elevation []float64) error {
	if s.SaveGraph {
		s.lastGraph = fg.Clone()
	}
	return nil
}

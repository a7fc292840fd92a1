package flowoperator

import (
	"fmt"

	"github.com/fastscape-go/fastscapelib/flowgraph"
)

// Pipeline is an ordered, validated sequence of Operator stages. It owns
// the keyed snapshot store that Snapshot operators write into.
type Pipeline struct {
	ops            []Operator
	graphSnapshots map[string]*flowgraph.FlowGraph
	elevSnapshots  map[string][]float64
}

// NewPipeline validates and constructs a Pipeline from ops, applied in the
// given order by UpdateRoutes.
//
// Returns ErrInvalidArgument if ops is empty, if no operator has
// GraphUpdated()==true, if no operator has OutFlowDir()!=Undefined, or if
// any adjacent pair (A, B) has an incompatible flow-direction hand-off
// (A.OutFlowDir() != Undefined, B.InFlowDir() != Undefined, and the two
// differ).
func NewPipeline(ops ...Operator) (*Pipeline, error) {
	if len(ops) == 0 {
		return nil, fmt.Errorf("flowoperator: NewPipeline: empty operator sequence: %w", ErrInvalidArgument)
	}

	var anyGraphUpdate, anyOutFlowDir bool
	for _, op := range ops {
		if op.GraphUpdated() {
			anyGraphUpdate = true
		}
		if op.OutFlowDir() != Undefined {
			anyOutFlowDir = true
		}
	}
	if !anyGraphUpdate {
		return nil, fmt.Errorf("flowoperator: NewPipeline: no operator updates the graph: %w", ErrInvalidArgument)
	}
	if !anyOutFlowDir {
		return nil, fmt.Errorf("flowoperator: NewPipeline: no operator produces a flow direction: %w", ErrInvalidArgument)
	}

	for k := 0; k+1 < len(ops); k++ {
		a, b := ops[k], ops[k+1]
		if a.OutFlowDir() != Undefined && b.InFlowDir() != Undefined && a.OutFlowDir() != b.InFlowDir() {
			return nil, fmt.Errorf("flowoperator: NewPipeline: %s produces %v but %s expects %v: %w",
				a.Name(), a.OutFlowDir(), b.Name(), b.InFlowDir(), ErrInvalidArgument)
		}
	}

	return &Pipeline{
		ops:            ops,
		graphSnapshots: make(map[string]*flowgraph.FlowGraph),
		elevSnapshots:  make(map[string][]float64),
	}, nil
}

// UpdateRoutes runs every operator in order against fg, starting from
// elevation. If any operator updates elevation, a private working copy is
// made first; otherwise the input slice is read (and possibly mutated in
// place by in-place-updating operators) directly. Returns the final
// working elevation.
func (p *Pipeline) UpdateRoutes(fg *flowgraph.FlowGraph, elevation []float64) ([]float64, error) {
	working := elevation
	var needsCopy bool
	for _, op := range p.ops {
		if op.ElevationUpdated() {
			needsCopy = true
			break
		}
	}
	if needsCopy {
		working = make([]float64, len(elevation))
		copy(working, elevation)
	}

	for _, op := range p.ops {
		if err := op.Apply(fg, working); err != nil {
			return nil, fmt.Errorf("flowoperator: UpdateRoutes: operator %s: %w", op.Name(), err)
		}
		if snap, ok := op.(*Snapshot); ok {
			p.save(snap, fg, working)
		}
	}

	return working, nil
}

func (p *Pipeline) save(snap *Snapshot, fg *flowgraph.FlowGraph, elevation []float64) {
	if snap.SaveGraph {
		p.graphSnapshots[snap.SnapshotName] = snap.lastGraph
	}
	if snap.SaveElevation {
		cp := make([]float64, len(elevation))
		copy(cp, elevation)
		p.elevSnapshots[snap.SnapshotName] = cp
	}
}

// GraphSnapshot returns the deep-copied FlowGraph captured by the named
// Snapshot operator, or (nil, false) if no such snapshot was taken.
func (p *Pipeline) GraphSnapshot(name string) (*flowgraph.FlowGraph, bool) {
	fg, ok := p.graphSnapshots[name]
	return fg, ok
}

// ElevationSnapshot returns the elevation captured by the named Snapshot
// operator, or (nil, false) if no such snapshot was taken.
func (p *Pipeline) ElevationSnapshot(name string) ([]float64, bool) {
	e, ok := p.elevSnapshots[name]
	return e, ok
}

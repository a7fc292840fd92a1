package flowoperator

import (
	"container/heap"
	"fmt"

	"github.com/fastscape-go/fastscapelib/flowgraph"
	"github.com/fastscape-go/fastscapelib/grid"
)

// PFloodResolver is the priority-flood sink-resolution strategy: a
// drop-in alternative to the sinkresolver package's MST-based resolver
// (spec §4.3). It raises elevations along a minimum spanning forest of
// boundary-first flooding so that every node has a non-increasing path to
// a base level, without touching the flow graph itself — it is purely an
// elevation-correction pass, to be followed by a router operator.
type PFloodResolver struct {
	// Epsilon is the minimal elevation increment enforced between a
	// flooded node and the neighbor it was flooded from. A positive value
	// makes the corrected path to a base level strictly decreasing; zero
	// (also valid, and the spec-default) makes it merely non-increasing.
	Epsilon float64
}

// NewPFloodResolver builds a PFloodResolver with the given epsilon.
func NewPFloodResolver(epsilon float64) *PFloodResolver {
	return &PFloodResolver{Epsilon: epsilon}
}

// Name returns "PFloodResolver".
func (p *PFloodResolver) Name() string { return "PFloodResolver" }

// GraphUpdated is false: PFloodResolver never touches fg's receivers.
func (p *PFloodResolver) GraphUpdated() bool { return false }

// ElevationUpdated is true: PFloodResolver raises elevation in place.
func (p *PFloodResolver) ElevationUpdated() bool { return true }

// InFlowDir is Undefined.
func (p *PFloodResolver) InFlowDir() FlowDir { return Undefined }

// OutFlowDir is Undefined: PFloodResolver produces no routing of its own.
func (p *PFloodResolver) OutFlowDir() FlowDir { return Undefined }

type pqItem struct {
	node int
	h    float64
}

type pfloodPQ []pqItem

func (q pfloodPQ) Len() int            { return len(q) }
func (q pfloodPQ) Less(i, j int) bool  { return q[i].h < q[j].h }
func (q pfloodPQ) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *pfloodPQ) Push(x interface{}) { *q = append(*q, x.(pqItem)) }
func (q *pfloodPQ) Pop() interface{} {
	old := *q
	n := len(old)
	it := old[n-1]
	*q = old[:n-1]
	return it
}

// Apply raises elevation along a priority-flood expansion seeded at every
// FixedValue (base-level) node, so every node's corrected elevation is
// reachable from a base level by a non-increasing path.
func (p *PFloodResolver) Apply(fg *flowgraph.FlowGraph, elevation []float64) error {
	g := fg.Grid()
	n := g.Size()
	if len(elevation) != n {
		return fmt.Errorf("flowoperator: PFloodResolver: len(elevation)=%d != N=%d: %w", len(elevation), n, ErrInvalidArgument)
	}

	visited := make([]bool, n)
	pq := &pfloodPQ{}
	heap.Init(pq)
	for i := 0; i < n; i++ {
		if g.Status(i) == grid.FixedValue {
			visited[i] = true
			heap.Push(pq, pqItem{node: i, h: elevation[i]})
		}
	}
	if pq.Len() == 0 {
		return fmt.Errorf("flowoperator: PFloodResolver: no FixedValue base level exists: %w", ErrInvariantViolated)
	}

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(pqItem)
		for _, nb := range g.Neighbors(cur.node) {
			if visited[nb.Index] || g.Status(nb.Index) == grid.Ghost {
				continue
			}
			visited[nb.Index] = true
			if elevation[nb.Index] < cur.h+p.Epsilon {
				elevation[nb.Index] = cur.h + p.Epsilon
			}
			heap.Push(pq, pqItem{node: nb.Index, h: elevation[nb.Index]})
		}
	}

	return nil
}

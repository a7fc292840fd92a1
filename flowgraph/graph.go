package flowgraph

import (
	"fmt"

	"github.com/fastscape-go/fastscapelib/grid"
)

// FlowGraph is the compact receiver/donor/order/basin storage described in
// spec §3/§4.2. It is sized N x F, where F is 1 for single-flow and up to
// the grid's Kmax for multi-flow. The flow-operator pipeline is the sole
// mutator; eroders and outer callers only read.
type FlowGraph struct {
	g          grid.Grid
	n          int
	singleFlow bool

	receivers       [][]int
	receiverDist    [][]float64
	receiverWeight  [][]float64
	donors          [][]int
	order           []int
	orderValid      bool
	basins          []int
	basinRoot       []int
	basinsValid     bool
}

// New constructs an empty FlowGraph over g. singleFlow selects compact
// single-receiver storage (F=1); when false, AddMultiReceiver accepts up
// to Kmax receivers per node.
func New(g grid.Grid, singleFlow bool) *FlowGraph {
	n := g.Size()
	fg := &FlowGraph{
		g:          g,
		n:          n,
		singleFlow: singleFlow,
	}
	fg.allocate()
	return fg
}

func (fg *FlowGraph) allocate() {
	fg.receivers = make([][]int, fg.n)
	fg.receiverDist = make([][]float64, fg.n)
	fg.receiverWeight = make([][]float64, fg.n)
	fg.donors = make([][]int, fg.n)
	fg.order = nil
	fg.orderValid = false
	fg.basins = make([]int, fg.n)
	for i := range fg.basins {
		fg.basins[i] = NoBasin
	}
	fg.basinsValid = false
}

// Size returns the node count N.
func (fg *FlowGraph) Size() int { return fg.n }

// SingleFlow reports whether this graph uses compact single-receiver
// storage.
func (fg *FlowGraph) SingleFlow() bool { return fg.singleFlow }

// Grid returns the read-only grid collaborator this FlowGraph was built
// over.
func (fg *FlowGraph) Grid() grid.Grid { return fg.g }

// Reset clears receivers, donors, order, and basins, marking them stale.
// Operators call Reset before rebuilding from scratch.
func (fg *FlowGraph) Reset() {
	fg.allocate()
}

// SetSingleReceiver replaces node i's receiver set with the single edge
// i->j of length d and weight 1. Intended for single-flow routers.
//
// Returns ErrOutOfRange if i or j is outside [0,N); ErrInvalidArgument if
// d <= 0.
func (fg *FlowGraph) SetSingleReceiver(i, j int, d float64) error {
	if i < 0 || i >= fg.n || j < 0 || j >= fg.n {
		return fmt.Errorf("flowgraph: SetSingleReceiver(%d,%d): %w", i, j, ErrOutOfRange)
	}
	if d <= 0 {
		return fmt.Errorf("flowgraph: SetSingleReceiver(%d,%d,d=%g): %w", i, j, d, ErrInvalidArgument)
	}
	fg.receivers[i] = []int{j}
	fg.receiverDist[i] = []float64{d}
	fg.receiverWeight[i] = []float64{1}
	fg.orderValid = false
	fg.basinsValid = false
	return nil
}

// ClearReceivers marks node i as a base level or pit: no receivers.
func (fg *FlowGraph) ClearReceivers(i int) error {
	if i < 0 || i >= fg.n {
		return fmt.Errorf("flowgraph: ClearReceivers(%d): %w", i, ErrOutOfRange)
	}
	fg.receivers[i] = nil
	fg.receiverDist[i] = nil
	fg.receiverWeight[i] = nil
	fg.orderValid = false
	fg.basinsValid = false
	return nil
}

// AddMultiReceiver appends the edge i->j of length d and un-normalized
// weight w to node i's receiver set. Callers normalize weights across a
// node's full receiver set once all edges have been added (e.g. via
// NormalizeWeights), matching the multi-flow router's two-pass
// accumulate-then-normalize structure.
//
// Returns ErrOutOfRange if i or j is outside [0,N); ErrInvalidArgument if
// d <= 0 or w < 0.
func (fg *FlowGraph) AddMultiReceiver(i, j int, d, w float64) error {
	if i < 0 || i >= fg.n || j < 0 || j >= fg.n {
		return fmt.Errorf("flowgraph: AddMultiReceiver(%d,%d): %w", i, j, ErrOutOfRange)
	}
	if d <= 0 || w < 0 {
		return fmt.Errorf("flowgraph: AddMultiReceiver(%d,%d,d=%g,w=%g): %w", i, j, d, w, ErrInvalidArgument)
	}
	fg.receivers[i] = append(fg.receivers[i], j)
	fg.receiverDist[i] = append(fg.receiverDist[i], d)
	fg.receiverWeight[i] = append(fg.receiverWeight[i], w)
	fg.orderValid = false
	fg.basinsValid = false
	return nil
}

// NormalizeWeights rescales node i's receiver weights so they sum to 1.
// A node with zero total weight (no receivers) is left untouched.
func (fg *FlowGraph) NormalizeWeights(i int) {
	ws := fg.receiverWeight[i]
	var sum float64
	for _, w := range ws {
		sum += w
	}
	if sum <= 0 {
		return
	}
	for k := range ws {
		ws[k] /= sum
	}
}

// Receivers returns node i's receiver indices (read-only view).
func (fg *FlowGraph) Receivers(i int) []int { return fg.receivers[i] }

// ReceiverDistances returns node i's receiver distances (read-only view).
func (fg *FlowGraph) ReceiverDistances(i int) []float64 { return fg.receiverDist[i] }

// ReceiverWeights returns node i's receiver weights (read-only view).
func (fg *FlowGraph) ReceiverWeights(i int) []float64 { return fg.receiverWeight[i] }

// RCount returns the number of receivers of node i (0 for a base level or
// pit).
func (fg *FlowGraph) RCount(i int) int { return len(fg.receivers[i]) }

// Donors returns node i's donor indices (read-only view), valid only
// after ComputeDonors.
func (fg *FlowGraph) Donors(i int) []int { return fg.donors[i] }

// ComputeDonors rebuilds the donor lists (the inverse of receivers) from
// the current receiver arrays. O(N*F).
func (fg *FlowGraph) ComputeDonors() error {
	for i := range fg.donors {
		fg.donors[i] = fg.donors[i][:0]
	}
	for i := 0; i < fg.n; i++ {
		for _, j := range fg.receivers[i] {
			if j < 0 || j >= fg.n {
				return fmt.Errorf("flowgraph: ComputeDonors: receiver %d of node %d: %w", j, i, ErrOutOfRange)
			}
			fg.donors[j] = append(fg.donors[j], i)
		}
	}
	return nil
}

// ComputeOrder produces a topological order over the current receiver
// graph: order[0] is a base level, and for every edge u->v,
// order_position(u) > order_position(v). Requires ComputeDonors to have
// been run against the current receivers.
//
// Returns ErrInvariantViolated if the receiver graph contains a cycle
// (internal bug: a correctly built flow graph is acyclic by construction).
func (fg *FlowGraph) ComputeOrder() error {
	pending := make([]int, fg.n)
	queue := make([]int, 0, fg.n)
	for i := 0; i < fg.n; i++ {
		pending[i] = len(fg.receivers[i])
		if pending[i] == 0 {
			queue = append(queue, i)
		}
	}

	order := make([]int, 0, fg.n)
	for head := 0; head < len(queue); head++ {
		v := queue[head]
		order = append(order, v)
		for _, u := range fg.donors[v] {
			pending[u]--
			if pending[u] == 0 {
				queue = append(queue, u)
			}
		}
	}

	if len(order) != fg.n {
		return fmt.Errorf("flowgraph: ComputeOrder: receiver graph has a cycle (%d/%d nodes ordered): %w", len(order), fg.n, ErrInvariantViolated)
	}

	fg.order = order
	fg.orderValid = true
	return nil
}

// Order returns the last computed topological order. Returns
// ErrInvariantViolated if ComputeOrder has not succeeded since the last
// Reset/receiver mutation.
func (fg *FlowGraph) Order() ([]int, error) {
	if !fg.orderValid {
		return nil, fmt.Errorf("flowgraph: Order: %w", ErrInvariantViolated)
	}
	return fg.order, nil
}

// ComputeBasins assigns each node the dense id of its drainage basin: the
// connected component of the receiver tree it belongs to, numbered in the
// order each new root is first discovered while scanning nodes 0..N-1 (so
// ids are stable, compact 0..k-1 values rather than raw root indices).
//
// Requires a valid topological order (ComputeOrder must have succeeded).
func (fg *FlowGraph) ComputeBasins() error {
	if !fg.orderValid {
		return fmt.Errorf("flowgraph: ComputeBasins: %w", ErrInvariantViolated)
	}

	root := make([]int, fg.n)
	for i := range root {
		root[i] = i
	}
	// order is downstream-first; walking it downstream-to-upstream lets
	// every node inherit its receiver's already-resolved root in one pass.
	for _, i := range fg.order {
		if len(fg.receivers[i]) > 0 {
			root[i] = root[fg.receivers[i][0]]
		}
	}

	nextID := 0
	idOf := make(map[int]int)
	var basinRoot []int
	basins := make([]int, fg.n)
	for i := 0; i < fg.n; i++ {
		r := root[i]
		id, ok := idOf[r]
		if !ok {
			id = nextID
			idOf[r] = id
			nextID++
			basinRoot = append(basinRoot, r)
		}
		basins[i] = id
	}

	fg.basins = basins
	fg.basinRoot = basinRoot
	fg.basinsValid = true
	return nil
}

// Basins returns the last computed dense basin id array, or NoBasin for
// every node if ComputeBasins has not run.
func (fg *FlowGraph) Basins() []int { return fg.basins }

// NumBasins returns the number of distinct basins found by the last
// ComputeBasins call.
func (fg *FlowGraph) NumBasins() int { return len(fg.basinRoot) }

// RootNode returns the root node index (a pit or a base level) of basin
// id, as discovered by the last ComputeBasins call.
func (fg *FlowGraph) RootNode(id int) int { return fg.basinRoot[id] }

// BasinsValid reports whether Basins() reflects the current receivers.
func (fg *FlowGraph) BasinsValid() bool { return fg.basinsValid }

// Accumulate propagates src*area(i) downstream through the receiver graph:
// for each node i in reverse topological order (most upstream first), it
// adds src[i]*Area(i) into acc[i], then distributes acc[i] to every
// receiver j weighted by w(i->j). The value left at a base-level node is
// the integral of src*area over its drained region. dst, if non-nil, must
// have length N and is reset to zero before accumulation and returned;
// otherwise a new slice is allocated.
//
// Requires a valid topological order.
func (fg *FlowGraph) Accumulate(dst []float64, src []float64) ([]float64, error) {
	if !fg.orderValid {
		return nil, fmt.Errorf("flowgraph: Accumulate: %w", ErrInvariantViolated)
	}
	if len(src) != fg.n {
		return nil, fmt.Errorf("flowgraph: Accumulate: len(src)=%d != N=%d: %w", len(src), fg.n, ErrInvalidArgument)
	}
	if dst == nil {
		dst = make([]float64, fg.n)
	} else if len(dst) != fg.n {
		return nil, fmt.Errorf("flowgraph: Accumulate: len(dst)=%d != N=%d: %w", len(dst), fg.n, ErrInvalidArgument)
	} else {
		for i := range dst {
			dst[i] = 0
		}
	}

	for k := len(fg.order) - 1; k >= 0; k-- {
		i := fg.order[k]
		dst[i] += src[i] * fg.g.Area(i)
		ws := fg.receiverWeight[i]
		for ridx, j := range fg.receivers[i] {
			dst[j] += ws[ridx] * dst[i]
		}
	}

	return dst, nil
}

// Clone returns a deep copy of fg, suitable for a FlowSnapshot operator:
// the copy shares the read-only grid but owns independent receiver,
// donor, order, and basin storage.
func (fg *FlowGraph) Clone() *FlowGraph {
	cp := &FlowGraph{
		g:           fg.g,
		n:           fg.n,
		singleFlow:  fg.singleFlow,
		orderValid:  fg.orderValid,
		basinsValid: fg.basinsValid,
	}
	cp.receivers = make([][]int, fg.n)
	cp.receiverDist = make([][]float64, fg.n)
	cp.receiverWeight = make([][]float64, fg.n)
	cp.donors = make([][]int, fg.n)
	for i := 0; i < fg.n; i++ {
		cp.receivers[i] = append([]int(nil), fg.receivers[i]...)
		cp.receiverDist[i] = append([]float64(nil), fg.receiverDist[i]...)
		cp.receiverWeight[i] = append([]float64(nil), fg.receiverWeight[i]...)
		cp.donors[i] = append([]int(nil), fg.donors[i]...)
	}
	cp.order = append([]int(nil), fg.order...)
	cp.basins = append([]int(nil), fg.basins...)
	cp.basinRoot = append([]int(nil), fg.basinRoot...)
	return cp
}

// AccumulateScalar is Accumulate specialized for a uniform source value
// (e.g. accumulate(ones) to obtain drainage area).
func (fg *FlowGraph) AccumulateScalar(dst []float64, scalar float64) ([]float64, error) {
	src := make([]float64, fg.n)
	for i := range src {
		src[i] = scalar
	}
	return fg.Accumulate(dst, src)
}

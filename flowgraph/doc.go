// Package flowgraph holds the compact receiver/donor/order/basin storage
// that the flow-operator pipeline builds and the eroders consume.
//
// A FlowGraph stores, for each node i, up to Kmax receivers (Kmax=1 for
// single-flow, up to the grid's Kmax for multi-flow), their distances and
// normalized partition weights, the inverse donor lists, a valid
// topological order (receivers precede donors), and a dense basin id per
// node. It does not decide how receivers are chosen — that is the job of
// the flowoperator package; FlowGraph is the storage and the one
// traversal primitive (Accumulate) shared by every consumer.
//
// Complexity: ComputeDonors and ComputeOrder are O(N*Kmax); Accumulate is
// O(N*Kmax) per call. The topological order it walks is the hot loop
// shared by drainage-area computation and by SPLEroder's implicit solve,
// which iterates Order() directly rather than calling Accumulate.
package flowgraph

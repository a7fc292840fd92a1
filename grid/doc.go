// Package grid provides a uniform topology/geometry abstraction over the
// three spatial supports a landscape-evolution model runs on: a 1-D
// profile, a 2-D raster (with optional periodic/reflective borders), and a
// 2-D unstructured triangular mesh.
//
// Every concrete grid satisfies the Grid interface: node count, per-node
// status, per-node area, and a neighbor list of
// (neighbor index, distance, neighbor status) triples. Node status is
// immutable once a grid is constructed.
//
// Complexity: neighbors(i) is O(Kmax) per call; Kmax is 2 for Profile, 8
// for Raster (queen connectivity), and bounded-but-variable for TriMesh.
package grid

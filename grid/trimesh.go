package grid

import (
	"fmt"
	"math"
)

// Point2 is a planar vertex coordinate.
type Point2 struct {
	X, Y float64
}

// TriMesh is a 2-D unstructured triangular mesh. Neighbor adjacency is
// derived from the triangle list (two vertices are neighbors iff they
// share a triangle edge); per-vertex area is the Voronoi-dual area of the
// vertex star, approximated here as one third of the area of every
// incident triangle (the standard barycentric-dual approximation used
// when the mesh is not required to be strictly Delaunay).
type TriMesh struct {
	points    []Point2
	triangles [][3]int
	status    []NodeStatus
	area      []float64
	adjacency [][]Neighbor
}

// NewTriMesh builds a TriMesh from vertex coordinates, a list of triangles
// (each a [3]int of vertex indices), and a baseLevels map assigning
// FixedValue (or any other non-Core) status to specific vertices; all
// other vertices default to Core.
//
// Returns ErrInvalidArgument if triangles reference an out-of-range vertex,
// or if any vertex is not referenced by at least one triangle
// (disconnected vertex).
func NewTriMesh(points []Point2, triangles [][3]int, baseLevels map[int]NodeStatus) (*TriMesh, error) {
	n := len(points)
	if n == 0 || len(triangles) == 0 {
		return nil, fmt.Errorf("grid: NewTriMesh: empty points or triangles: %w", ErrInvalidArgument)
	}

	seen := make([]bool, n)
	adjSet := make([]map[int]struct{}, n)
	for i := range adjSet {
		adjSet[i] = make(map[int]struct{})
	}
	area := make([]float64, n)

	for _, t := range triangles {
		for _, v := range t {
			if v < 0 || v >= n {
				return nil, fmt.Errorf("grid: NewTriMesh: triangle vertex %d out of [0,%d): %w", v, n, ErrInvalidArgument)
			}
		}
		a, b, c := points[t[0]], points[t[1]], points[t[2]]
		triArea := math.Abs((b.X-a.X)*(c.Y-a.Y)-(c.X-a.X)*(b.Y-a.Y)) / 2
		third := triArea / 3

		for _, v := range t {
			seen[v] = true
			area[v] += third
		}
		adjSet[t[0]][t[1]], adjSet[t[1]][t[0]] = struct{}{}, struct{}{}
		adjSet[t[1]][t[2]], adjSet[t[2]][t[1]] = struct{}{}, struct{}{}
		adjSet[t[2]][t[0]], adjSet[t[0]][t[2]] = struct{}{}, struct{}{}
	}

	for i, ok := range seen {
		if !ok {
			return nil, fmt.Errorf("grid: NewTriMesh: vertex %d belongs to no triangle: %w", i, ErrInvalidArgument)
		}
	}

	status := make([]NodeStatus, n)
	for idx, st := range baseLevels {
		if idx < 0 || idx >= n {
			return nil, fmt.Errorf("grid: NewTriMesh: baseLevels index %d out of [0,%d): %w", idx, n, ErrInvalidArgument)
		}
		status[idx] = st
	}

	adjacency := make([][]Neighbor, n)
	for i := 0; i < n; i++ {
		nbs := make([]Neighbor, 0, len(adjSet[i]))
		for j := range adjSet[i] {
			d := math.Hypot(points[j].X-points[i].X, points[j].Y-points[i].Y)
			nbs = append(nbs, Neighbor{Index: j, Distance: d, Status: status[j]})
		}
		adjacency[i] = nbs
	}

	return &TriMesh{points: points, triangles: triangles, status: status, area: area, adjacency: adjacency}, nil
}

// Size returns the vertex count.
func (m *TriMesh) Size() int { return len(m.points) }

// Shape returns [vertex count].
func (m *TriMesh) Shape() []int { return []int{len(m.points)} }

// Status returns the boundary tag of vertex i.
func (m *TriMesh) Status(i int) NodeStatus {
	if i < 0 || i >= len(m.status) {
		return Core
	}
	return m.status[i]
}

// Area returns the Voronoi-dual area of vertex i.
func (m *TriMesh) Area(i int) float64 {
	if i < 0 || i >= len(m.area) {
		return 0
	}
	return m.area[i]
}

// Neighbors returns every vertex sharing a triangle edge with vertex i.
func (m *TriMesh) Neighbors(i int) []Neighbor {
	if i < 0 || i >= len(m.adjacency) || m.status[i] == Ghost {
		return nil
	}
	return m.adjacency[i]
}

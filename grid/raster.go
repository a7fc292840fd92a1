package grid

import (
	"fmt"
	"math"
)

// Connectivity selects the neighbor stencil for a Raster grid.
type Connectivity int

const (
	// Conn4 connects only the orthogonal (N/S/E/W) neighbors.
	Conn4 Connectivity = iota
	// Conn8 additionally connects the four diagonal neighbors (queen
	// moves); this is the Raster default.
	Conn8
)

// RasterOption configures a Raster at construction time.
type RasterOption func(*rasterConfig)

type rasterConfig struct {
	conn        Connectivity
	borderTop   NodeStatus
	borderBot   NodeStatus
	borderLeft  NodeStatus
	borderRight NodeStatus
	overrides   map[int]NodeStatus
}

// WithConnectivity overrides the default 8-connected (queen) stencil.
func WithConnectivity(c Connectivity) RasterOption {
	return func(cfg *rasterConfig) { cfg.conn = c }
}

// WithBorders sets the per-border status; each side defaults to Core.
func WithBorders(top, bottom, left, right NodeStatus) RasterOption {
	return func(cfg *rasterConfig) {
		cfg.borderTop, cfg.borderBot, cfg.borderLeft, cfg.borderRight = top, bottom, left, right
	}
}

// WithStatusOverrides replaces individual node statuses (keyed by row-major
// index) after border defaults have been applied.
func WithStatusOverrides(overrides map[int]NodeStatus) RasterOption {
	return func(cfg *rasterConfig) { cfg.overrides = overrides }
}

// Raster is a 2-D regular grid of rows x cols nodes stored row-major, with
// uniform (or anisotropic) spacing along each axis and optional periodic
// (Looped) borders.
type Raster struct {
	rows, cols     int
	spacingY       float64
	spacingX       float64
	conn           Connectivity
	status         []NodeStatus
	loopedVertical bool // top <-> bottom pairing
	loopedHoriz    bool // left <-> right pairing
}

// NewRaster constructs a Raster of the given shape [rows, cols] with axis
// spacing [spacingY, spacingX]. Borders default to Core on all four sides
// unless WithBorders is supplied; the default connectivity is Conn8.
//
// Returns ErrInvalidArgument if rows/cols < 1, either spacing <= 0, an
// override index is out of [0, rows*cols), or one border of a Looped pair
// is set without its opposite (top/bottom must match, left/right must
// match).
func NewRaster(shape [2]int, spacing [2]float64, opts ...RasterOption) (*Raster, error) {
	rows, cols := shape[0], shape[1]
	spacingY, spacingX := spacing[0], spacing[1]
	if rows < 1 || cols < 1 || spacingY <= 0 || spacingX <= 0 {
		return nil, fmt.Errorf("grid: NewRaster(shape=%v, spacing=%v): %w", shape, spacing, ErrInvalidArgument)
	}

	cfg := rasterConfig{conn: Conn8, borderTop: Core, borderBot: Core, borderLeft: Core, borderRight: Core}
	for _, opt := range opts {
		opt(&cfg)
	}

	n := rows * cols
	status := make([]NodeStatus, n)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			st := Core
			switch {
			case r == 0:
				st = cfg.borderTop
			case r == rows-1:
				st = cfg.borderBot
			}
			if c == 0 && st == Core {
				st = cfg.borderLeft
			}
			if c == cols-1 && st == Core {
				st = cfg.borderRight
			}
			status[r*cols+c] = st
		}
	}
	for idx, st := range cfg.overrides {
		if idx < 0 || idx >= n {
			return nil, fmt.Errorf("grid: NewRaster: override index %d out of [0,%d): %w", idx, n, ErrInvalidArgument)
		}
		status[idx] = st
	}

	if (cfg.borderTop == Looped) != (cfg.borderBot == Looped) {
		return nil, fmt.Errorf("grid: NewRaster: top/bottom Looped status must pair: %w", ErrInvalidArgument)
	}
	if (cfg.borderLeft == Looped) != (cfg.borderRight == Looped) {
		return nil, fmt.Errorf("grid: NewRaster: left/right Looped status must pair: %w", ErrInvalidArgument)
	}

	return &Raster{
		rows: rows, cols: cols,
		spacingY: spacingY, spacingX: spacingX,
		conn:           cfg.conn,
		status:         status,
		loopedVertical: cfg.borderTop == Looped,
		loopedHoriz:    cfg.borderLeft == Looped,
	}, nil
}

// NewRasterFromLength builds a Raster spanning [lengthY, lengthX] with
// evenly divided spacing, given shape [rows, cols].
func NewRasterFromLength(shape [2]int, length [2]float64, opts ...RasterOption) (*Raster, error) {
	rows, cols := shape[0], shape[1]
	if rows < 2 || cols < 2 {
		return nil, fmt.Errorf("grid: NewRasterFromLength(shape=%v): %w", shape, ErrInvalidArgument)
	}
	spacing := [2]float64{length[0] / float64(rows-1), length[1] / float64(cols-1)}
	return NewRaster(shape, spacing, opts...)
}

// Size returns rows*cols.
func (r *Raster) Size() int { return r.rows * r.cols }

// Shape returns [rows, cols].
func (r *Raster) Shape() []int { return []int{r.rows, r.cols} }

// Status returns the boundary tag of node i (row-major index).
func (r *Raster) Status(i int) NodeStatus {
	if i < 0 || i >= len(r.status) {
		return Core
	}
	return r.status[i]
}

// Area returns the uniform cell area spacingY*spacingX.
func (r *Raster) Area(int) float64 { return r.spacingY * r.spacingX }

// Rows returns the row count.
func (r *Raster) Rows() int { return r.rows }

// Cols returns the column count.
func (r *Raster) Cols() int { return r.cols }

// SpacingY returns the row-axis (vertical) node spacing.
func (r *Raster) SpacingY() float64 { return r.spacingY }

// SpacingX returns the column-axis (horizontal) node spacing.
func (r *Raster) SpacingX() float64 { return r.spacingX }

// LoopedVertical reports whether the top and bottom borders are paired into
// a periodic (row-direction) topology.
func (r *Raster) LoopedVertical() bool { return r.loopedVertical }

// LoopedHorizontal reports whether the left and right borders are paired
// into a periodic (column-direction) topology.
func (r *Raster) LoopedHorizontal() bool { return r.loopedHoriz }

// RowCol converts a row-major index to (row, col).
func (r *Raster) RowCol(i int) (row, col int) { return i / r.cols, i % r.cols }

// Index converts (row, col) to a row-major index.
func (r *Raster) Index(row, col int) int { return row*r.cols + col }

var conn8Offsets = [8][2]int{{-1, 0}, {-1, 1}, {0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}}
var conn4Offsets = [4][2]int{{-1, 0}, {0, 1}, {1, 0}, {0, -1}}

// Neighbors returns the 4- or 8-connected neighbors of node i, wrapping
// through Looped borders and omitting Ghost neighbors.
func (r *Raster) Neighbors(i int) []Neighbor {
	if i < 0 || i >= len(r.status) || r.status[i] == Ghost {
		return nil
	}
	row, col := r.RowCol(i)

	var offsets [][2]int
	if r.conn == Conn8 {
		offsets = conn8Offsets[:]
	} else {
		offsets = conn4Offsets[:]
	}

	out := make([]Neighbor, 0, len(offsets))
	for _, d := range offsets {
		nr, nc := row+d[0], col+d[1]

		if nr < 0 || nr >= r.rows {
			if !r.loopedVertical {
				continue
			}
			nr = (nr + r.rows) % r.rows
		}
		if nc < 0 || nc >= r.cols {
			if !r.loopedHoriz {
				continue
			}
			nc = (nc + r.cols) % r.cols
		}

		idx := r.Index(nr, nc)
		if r.status[idx] == Ghost {
			continue
		}
		dy := float64(d[0]) * r.spacingY
		dx := float64(d[1]) * r.spacingX
		dist := math.Hypot(dy, dx)
		out = append(out, Neighbor{Index: idx, Distance: dist, Status: r.status[idx]})
	}

	return out
}

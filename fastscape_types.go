package fastscape

import (
	"errors"

	"github.com/fastscape-go/fastscapelib/eroder"
)

// Sentinel errors for Simulation construction and stepping: package-scoped
// and string-prefixed, checked with errors.Is.
var (
	// ErrInvalidArgument flags malformed constructor or Step input: a
	// length mismatch against the grid's node count or a non-positive dt.
	ErrInvalidArgument = errors.New("fastscape: invalid argument")
)

// EroderSet bundles the optional per-step elevation-change models a
// Simulation drives after routing and sink resolution. Either field may be
// nil: a nil SPL skips bedrock incision, a nil Diffusion skips hillslope
// diffusion (Diffusion is only usable when the underlying grid is a
// *grid.Raster).
type EroderSet struct {
	SPL       *eroder.SPLEroder
	Diffusion *eroder.DiffusionADIEroder
}

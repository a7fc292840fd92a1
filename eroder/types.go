package eroder

import "errors"

// Sentinel errors.
var (
	// ErrInvalidArgument flags malformed construction parameters or a
	// mismatched buffer length passed to Erode.
	ErrInvalidArgument = errors.New("eroder: invalid argument")

	// ErrNumericalNonconvergence is reported as a non-fatal warning when
	// SPLEroder's Newton iteration exceeds its iteration budget for one or
	// more nodes; the best available estimate is kept for those nodes.
	ErrNumericalNonconvergence = errors.New("eroder: SPL Newton iteration did not converge")

	// ErrRasterOnly flags a DiffusionADIEroder constructed over a
	// non-Raster grid.
	ErrRasterOnly = errors.New("eroder: DiffusionADIEroder requires a Raster grid")
)

const (
	// maxNewtonIterations bounds SPLEroder's per-node implicit solve.
	maxNewtonIterations = 20
)

package eroder

import (
	"fmt"
	"math"

	"github.com/fastscape-go/fastscapelib/flowgraph"
)

// SPLEroder implements the stream-power-law bedrock incision model
// ∂h/∂t = -K·A^m·|∇h|^n, solved implicitly per node in topological order
// (base level outward — the reverse of Accumulate's upstream-to-downstream
// pass) so that each node's solve can use its receiver's already-resolved
// new elevation.
type SPLEroder struct {
	fg *flowgraph.FlowGraph

	kCoef     []float64 // length 1 (uniform) or N (per-node)
	areaExp   float64   // m
	slopeExp  float64   // n
	tolerance float64

	hNew    []float64 // scratch, reused across Erode calls
	erosion []float64 // scratch, reused across Erode calls
}

// NewSPLEroder constructs an SPLEroder over fg. kCoef must have length 1
// (a single coefficient applied to every node) or length fg.Size() (one
// coefficient per node). areaExp is m, slopeExp is n, tolerance is the
// Newton convergence threshold on |Δh| (ignored when slopeExp == 1, which
// uses the closed-form linear solve).
//
// Returns ErrInvalidArgument if kCoef has the wrong length or tolerance is
// not positive.
func NewSPLEroder(fg *flowgraph.FlowGraph, kCoef []float64, areaExp, slopeExp, tolerance float64) (*SPLEroder, error) {
	n := fg.Size()
	if len(kCoef) != 1 && len(kCoef) != n {
		return nil, fmt.Errorf("eroder: NewSPLEroder: len(kCoef)=%d not in {1,%d}: %w", len(kCoef), n, ErrInvalidArgument)
	}
	if tolerance <= 0 {
		return nil, fmt.Errorf("eroder: NewSPLEroder: tolerance=%g: %w", tolerance, ErrInvalidArgument)
	}

	return &SPLEroder{
		fg:        fg,
		kCoef:     append([]float64(nil), kCoef...),
		areaExp:   areaExp,
		slopeExp:  slopeExp,
		tolerance: tolerance,
		hNew:      make([]float64, n),
		erosion:   make([]float64, n),
	}, nil
}

func (e *SPLEroder) k(i int) float64 {
	if len(e.kCoef) == 1 {
		return e.kCoef[0]
	}
	return e.kCoef[i]
}

// Erode computes one step of implicit stream-power incision. elevation and
// drainageArea must both have length fg.Size(); elevation is read, not
// mutated — callers subtract the returned erosion themselves (matching the
// eroder's scratch-owns-its-buffers, caller-owns-state contract).
//
// Returns a non-nil warning wrapping ErrNumericalNonconvergence if any
// node's Newton solve failed to converge within the iteration budget (the
// best estimate is kept for that node); this is never a fatal error.
func (e *SPLEroder) Erode(elevation, drainageArea []float64, dt float64) ([]float64, error) {
	n := e.fg.Size()
	if len(elevation) != n || len(drainageArea) != n {
		return nil, fmt.Errorf("eroder: SPLEroder.Erode: buffer length mismatch: %w", ErrInvalidArgument)
	}

	order, err := e.fg.Order()
	if err != nil {
		return nil, fmt.Errorf("eroder: SPLEroder.Erode: %w", err)
	}

	nonconvergent := 0
	for _, i := range order {
		receivers := e.fg.Receivers(i)
		if len(receivers) == 0 {
			e.hNew[i] = elevation[i]
			e.erosion[i] = 0
			continue
		}

		dists := e.fg.ReceiverDistances(i)
		weights := e.fg.ReceiverWeights(i)
		coeff := e.k(i) * math.Pow(drainageArea[i], e.areaExp) * dt

		if e.slopeExp == 1 {
			e.hNew[i] = e.solveLinear(elevation[i], receivers, dists, weights, coeff)
		} else {
			converged := e.solveNewton(i, elevation[i], receivers, dists, weights, coeff)
			if !converged {
				nonconvergent++
			}
		}

		e.erosion[i] = math.Max(0, elevation[i]-e.hNew[i])
	}

	if nonconvergent > 0 {
		return e.erosion, fmt.Errorf("eroder: SPLEroder.Erode: %d node(s): %w", nonconvergent, ErrNumericalNonconvergence)
	}
	return e.erosion, nil
}

// solveLinear handles the n=1 case in closed form: h_new(i)*(1+Σw_j·f_j) =
// h(i) + Σ f_j·w_j·h_new(j), where f_j = coeff/d_j.
func (e *SPLEroder) solveLinear(hi float64, receivers []int, dists, weights []float64, coeff float64) float64 {
	num, den := hi, 1.0
	for k, j := range receivers {
		f := coeff / dists[k]
		w := weights[k]
		num += w * f * e.hNew[j]
		den += w * f
	}
	return num / den
}

// solveNewton handles n != 1 via Newton iteration on
// g(x) = x - h(i) + coeff·Σ w_j·max(0, (x-h_new(j))/d_j)^n.
// Returns false if it exhausted maxNewtonIterations without converging
// (the last iterate is still stored in e.hNew[i]).
func (e *SPLEroder) solveNewton(i int, hi float64, receivers []int, dists, weights []float64, coeff float64) bool {
	x := hi
	n := e.slopeExp
	for iter := 0; iter < maxNewtonIterations; iter++ {
		g := x - hi
		dg := 1.0
		for k, j := range receivers {
			diff := (x - e.hNew[j]) / dists[k]
			if diff < 0 {
				diff = 0
			}
			w := weights[k]
			g += coeff * w * math.Pow(diff, n)
			if diff > 0 {
				dg += coeff * w * n * math.Pow(diff, n-1) / dists[k]
			}
		}
		if dg == 0 {
			break
		}
		delta := g / dg
		x -= delta
		if math.Abs(delta) < e.tolerance {
			e.hNew[i] = x
			return true
		}
	}
	e.hNew[i] = x
	return false
}

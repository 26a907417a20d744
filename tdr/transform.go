package tdr

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"

	"github.com/arloliu/go-vna/internal/util"
	"github.com/arloliu/go-vna/vna"
)

// MinSamples is the smallest record a not-a-knot cubic spline can be fitted to.
const MinSamples = 4

// StepResponse computes the windowed time-domain response of one S-parameter of rec.
//
// The series is resampled onto opts' grid of n uniformly spaced frequencies spanning
// [fmin, fmax] with a not-a-knot cubic spline, fitted separately to the real and imaginary
// parts. The resampled spectrum is inverse transformed (scaled by 1/n), multiplied by an
// n-point Kaiser window and reduced to its real part.
//
// Preconditions are checked before any work: invalid options fail with ErrInvalidOption,
// records with fewer than MinSamples points with ErrInsufficientSamples and frequency axes
// that are not strictly increasing with ErrNonMonotonicFrequencies.
func StepResponse(rec *vna.NetworkRecord, opts ...Option) (*Response, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	if rec == nil || rec.Len() < MinSamples {
		n := 0
		if rec != nil {
			n = rec.Len()
		}
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientSamples, n)
	}

	freqs := rec.Frequencies()
	if !util.StrictlyIncreasing(freqs) {
		return nil, ErrNonMonotonicFrequencies
	}
	for _, f := range freqs {
		if math.IsInf(f, 0) {
			return nil, fmt.Errorf("%w: infinite frequency", ErrNonMonotonicFrequencies)
		}
	}

	grid := floats.Span(make([]float64, cfg.gridSize), freqs[0], freqs[len(freqs)-1])
	spectrum, err := resample(freqs, rec.Parameter(cfg.param), grid)
	if err != nil {
		return nil, err
	}

	n := cfg.gridSize
	fft := fourier.NewCmplxFFT(n)
	seq := fft.Sequence(nil, spectrum)

	window := Kaiser(n, cfg.beta)
	samples := make([]float64, n)
	residual := 0.0
	scale := 1 / float64(n)
	for k, v := range seq {
		v *= complex(scale*window[k], 0)
		samples[k] = real(v)
		residual = math.Max(residual, math.Abs(imag(v)))
	}

	return &Response{
		samples:      samples,
		freqStep:     (grid[n-1] - grid[0]) / float64(n-1),
		imagResidual: residual,
		param:        cfg.param,
	}, nil
}

// resample evaluates the spline through (xs, ys) at every grid point.
func resample(xs []float64, ys []complex128, grid []float64) ([]complex128, error) {
	re := make([]float64, len(ys))
	im := make([]float64, len(ys))
	for i, v := range ys {
		re[i] = real(v)
		im[i] = imag(v)
		if cmplx.IsNaN(v) || cmplx.IsInf(v) {
			return nil, fmt.Errorf("tdr: sample %d is not finite", i)
		}
	}

	var reFit, imFit interp.NotAKnotCubic
	if err := reFit.Fit(xs, re); err != nil {
		return nil, fmt.Errorf("tdr: fit real part: %w", err)
	}
	if err := imFit.Fit(xs, im); err != nil {
		return nil, fmt.Errorf("tdr: fit imaginary part: %w", err)
	}

	out := make([]complex128, len(grid))
	for i, f := range grid {
		out[i] = complex(reFit.Predict(f), imFit.Predict(f))
	}

	return out, nil
}

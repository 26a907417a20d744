package tdr

import (
	"github.com/arloliu/go-vna/internal/util"
	"github.com/arloliu/go-vna/vna"
)

// Response is the real-valued step response produced by StepResponse.
type Response struct {
	samples      []float64
	freqStep     float64
	imagResidual float64
	param        vna.SParam
}

// Len returns the number of samples, equal to the grid size.
func (r *Response) Len() int { return len(r.samples) }

// Samples returns a copy of the samples.
func (r *Response) Samples() []float64 { return util.CloneSlice(r.samples, 0) }

// At returns sample k.
func (r *Response) At(k int) float64 { return r.samples[k] }

// Parameter returns the S-parameter the response was computed from.
func (r *Response) Parameter() vna.SParam { return r.param }

// FrequencyStep returns the spacing df of the uniform frequency grid in Hz.
func (r *Response) FrequencyStep() float64 { return r.freqStep }

// TimeStep returns the sample spacing 1/(n*df) in seconds.
func (r *Response) TimeStep() float64 {
	return 1 / (float64(r.Len()) * r.freqStep)
}

// TimeAt returns the time of sample k in seconds.
func (r *Response) TimeAt(k int) float64 {
	return float64(k) * r.TimeStep()
}

// Times returns the time axis in seconds.
func (r *Response) Times() []float64 {
	dt := r.TimeStep()
	times := make([]float64, r.Len())
	for k := range times {
		times[k] = float64(k) * dt
	}

	return times
}

// DistanceAt converts the round-trip time of sample k into a one-way distance in meters
// along a line with velocity factor vf.
func (r *Response) DistanceAt(k int, vf float64) float64 {
	return r.TimeAt(k) * vf * vna.SpeedOfLight / 2
}

// ImagResidual returns the largest magnitude of the imaginary parts discarded when the
// windowed sequence was reduced to its real part.
func (r *Response) ImagResidual() float64 { return r.imagResidual }

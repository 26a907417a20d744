package vna

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/arloliu/go-vna/internal/util"
)

// SParam selects one of the measured scattering parameters.
type SParam int

const (
	// S11 is the port 1 reflection coefficient, read with "data 0".
	S11 SParam = iota
	// S21 is the port 1 to port 2 transmission coefficient, read with "data 1".
	S21
)

func (p SParam) String() string {
	switch p {
	case S11:
		return "S11"
	case S21:
		return "S21"
	}
	return fmt.Sprintf("SParam(%d)", int(p))
}

// Point is one frequency sample of a NetworkRecord.
type Point struct {
	Frequency float64
	S11       complex128
	S21       complex128
}

// S11dB returns the S11 magnitude in dB.
func (p Point) S11dB() float64 { return LogMag(p.S11) }

// S21dB returns the S21 magnitude in dB.
func (p Point) S21dB() float64 { return LogMag(p.S21) }

// LogMag returns 20*log10(|v|). A zero value yields -Inf.
func LogMag(v complex128) float64 {
	return 20 * math.Log10(cmplx.Abs(v))
}

// NetworkRecord is an immutable two-port sweep: aligned frequency, S11 and S21 series.
//
// A NetworkRecord is safe for concurrent reads. Accessors returning slices return copies.
type NetworkRecord struct {
	frequencies []float64
	s11         []complex128
	s21         []complex128
}

// NewNetworkRecord builds a record from copies of the given series.
//
// It fails with ErrInconsistentSweepData unless all three series have the same length.
func NewNetworkRecord(frequencies []float64, s11, s21 []complex128) (*NetworkRecord, error) {
	if len(frequencies) != len(s11) || len(frequencies) != len(s21) {
		return nil, fmt.Errorf("%w: %d frequencies, %d S11 samples, %d S21 samples",
			ErrInconsistentSweepData, len(frequencies), len(s11), len(s21))
	}

	return &NetworkRecord{
		frequencies: util.CloneSlice(frequencies, 0),
		s11:         util.CloneSlice(s11, 0),
		s21:         util.CloneSlice(s21, 0),
	}, nil
}

// Len returns the number of frequency points.
func (r *NetworkRecord) Len() int { return len(r.frequencies) }

// Frequencies returns a copy of the frequency axis in Hz.
func (r *NetworkRecord) Frequencies() []float64 { return util.CloneSlice(r.frequencies, 0) }

// S11 returns a copy of the S11 series.
func (r *NetworkRecord) S11() []complex128 { return util.CloneSlice(r.s11, 0) }

// S21 returns a copy of the S21 series.
func (r *NetworkRecord) S21() []complex128 { return util.CloneSlice(r.s21, 0) }

// Parameter returns a copy of the series selected by p, or nil for an unknown parameter.
func (r *NetworkRecord) Parameter(p SParam) []complex128 {
	switch p {
	case S11:
		return r.S11()
	case S21:
		return r.S21()
	}

	return nil
}

// At returns the i-th point. It panics if i is out of range, like a slice index.
func (r *NetworkRecord) At(i int) Point {
	return Point{Frequency: r.frequencies[i], S11: r.s11[i], S21: r.s21[i]}
}

// Points returns all points in sweep order.
func (r *NetworkRecord) Points() []Point {
	points := make([]Point, r.Len())
	for i := range points {
		points[i] = r.At(i)
	}

	return points
}

// StartHz returns the first frequency, or 0 for an empty record.
func (r *NetworkRecord) StartHz() float64 {
	if r.Len() == 0 {
		return 0
	}

	return r.frequencies[0]
}

// StopHz returns the last frequency, or 0 for an empty record.
func (r *NetworkRecord) StopHz() float64 {
	if r.Len() == 0 {
		return 0
	}

	return r.frequencies[r.Len()-1]
}

// LogMag returns the magnitude in dB of the series selected by p.
func (r *NetworkRecord) LogMag(p SParam) []float64 {
	series := r.Parameter(p)
	if series == nil {
		return nil
	}

	out := make([]float64, len(series))
	for i, v := range series {
		out[i] = LogMag(v)
	}

	return out
}

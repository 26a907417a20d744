package tdr

import (
	"testing"

	"github.com/arloliu/go-vna/vna"
)

// newRecord builds a record sampling s11 and s21 at freqs. A nil model reads as zero.
func newRecord(t *testing.T, freqs []float64, s11, s21 vna.ResponseFunc) *vna.NetworkRecord {
	t.Helper()

	a := make([]complex128, len(freqs))
	b := make([]complex128, len(freqs))
	for i, f := range freqs {
		if s11 != nil {
			a[i] = s11(f)
		}
		if s21 != nil {
			b[i] = s21(f)
		}
	}

	rec, err := vna.NewNetworkRecord(freqs, a, b)
	if err != nil {
		t.Fatalf("newRecord: %v", err)
	}

	return rec
}

// linspace returns n evenly spaced frequencies from start to stop, inclusive.
func linspace(start, stop float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + (stop-start)*float64(i)/float64(n-1)
	}

	return out
}

func constant(v complex128) vna.ResponseFunc {
	return func(float64) complex128 { return v }
}

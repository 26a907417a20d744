package tdr

import "math"

// i0SeriesLimit bounds the power series of I0; beyond it I0 approaches the float64 range.
const i0SeriesLimit = 700

// Kaiser returns the n-point Kaiser window with shape beta:
//
//	w[k] = I0(beta * sqrt(1 - (2k/(n-1) - 1)^2)) / I0(beta)
//
// n <= 0 yields an empty window and n == 1 yields [1]. The ratio is evaluated on
// exponentially scaled Bessel values, so it stays finite for any finite beta.
func Kaiser(n int, beta float64) []float64 {
	if n <= 0 {
		return []float64{}
	}
	if n == 1 {
		return []float64{1}
	}

	beta = math.Abs(beta)
	w := make([]float64, n)
	denom := besselI0e(beta)
	for k := range w {
		r := 2*float64(k)/float64(n-1) - 1
		x := beta * math.Sqrt(math.Max(0, 1-r*r))
		w[k] = math.Exp(x-beta) * besselI0e(x) / denom
	}

	return w
}

// besselI0 evaluates the modified Bessel function of the first kind, order zero, from its
// power series sum (x/2)^2k / (k!)^2.
func besselI0(x float64) float64 {
	q := x * x / 4
	sum, term := 1.0, 1.0
	for k := 1; k < 500; k++ {
		term *= q / float64(k*k)
		sum += term
		if term < sum*1e-17 {
			break
		}
	}

	return sum
}

// besselI0e returns exp(-|x|) * I0(x).
func besselI0e(x float64) float64 {
	x = math.Abs(x)
	if x <= i0SeriesLimit {
		return besselI0(x) * math.Exp(-x)
	}

	return besselI0eAsymptotic(x)
}

// besselI0eAsymptotic evaluates exp(-x) * I0(x) for large x from the expansion
// 1/sqrt(2*pi*x) * sum ((2k-1)!!)^2 / (k! * (8x)^k).
func besselI0eAsymptotic(x float64) float64 {
	sum, term := 1.0, 1.0
	for k := 1; k < 30; k++ {
		m := float64(2*k - 1)
		term *= m * m / (8 * float64(k) * x)
		sum += term
		if term < sum*1e-17 {
			break
		}
	}

	return sum / math.Sqrt(2*math.Pi*x)
}

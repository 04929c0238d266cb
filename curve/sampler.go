package curve

import "math"

// Resample evaluates the piecewise linear curve through raw at density evenly
// spaced positions of the [0,1] domain. With tolerance above one the result is
// smoothed by a centered sliding average of that radius.
//
// A single sample resamples to a flat line. Values are neither clamped nor
// filtered, so NaN and infinities propagate.
func Resample(raw []float64, tolerance, density int) (Vertices, error) {
	if len(raw) == 0 {
		return nil, ErrEmptySeries
	}

	if tolerance < 1 {
		return nil, ErrInvalidTolerance
	}

	if density < 2 {
		return nil, ErrInvalidDensity
	}

	xs := make([]float64, density)
	ys := make([]float64, density)

	for idx := range ys {
		xs[idx] = float64(idx) / float64(density-1)
		ys[idx] = interpolate(raw, xs[idx])
	}

	if tolerance > 1 {
		ys = slidingAverage(ys, tolerance)
	}

	vs := make(Vertices, density)

	for idx := range vs {
		vs[idx] = Vertex{X: xs[idx], Y: ys[idx]}
	}

	return vs, nil
}

// interpolate reads raw as a scale from raw.count evenly spaced points of
// [0,1] to the raw values.
func interpolate(raw []float64, x float64) float64 {
	n := len(raw)
	if n == 1 {
		return raw[0]
	}

	pos := x * float64(n-1)
	lo := int(math.Floor(pos))

	if lo < 0 {
		return raw[0]
	}

	if lo >= n-1 {
		return raw[n-1]
	}

	frac := pos - float64(lo)
	if frac == 0 {
		return raw[lo]
	}

	return raw[lo] + (raw[lo+1]-raw[lo])*frac
}

// slidingAverage averages a window of 2*radius+1 samples around every index.
// Window positions outside the sequence are mirrored back into it.
func slidingAverage(ys []float64, radius int) []float64 {
	n := len(ys)
	out := make([]float64, n)

	width := float64(2*radius + 1)

	for idx := range ys {
		var sum float64

		for k := -radius; k <= radius; k++ {
			sum += ys[mirror(idx+k, n)]
		}

		out[idx] = sum / width
	}

	return out
}

// mirror folds j into [0,n) by reflecting at both ends without repeating the
// edge sample: -1 maps to 1 and n maps to n-2.
func mirror(j, n int) int {
	if n == 1 {
		return 0
	}

	period := 2 * (n - 1)

	j %= period
	if j < 0 {
		j += period
	}

	if j >= n {
		j = period - j
	}

	return j
}

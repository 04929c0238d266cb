package curve

import (
	"math"
	"testing"

	"github.com/sgostarter/i/commerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ys(vs Vertices) []float64 {
	out := make([]float64, len(vs))
	for idx, v := range vs {
		out[idx] = v.Y
	}

	return out
}

func TestResampleCount(t *testing.T) {
	for _, raw := range [][]float64{{1}, {1, 2}, {3, 9, 1, 4, 4, 7}} {
		for _, density := range []int{2, 3, 17, 100} {
			vs, err := Resample(raw, 1, density)
			require.Nil(t, err)
			assert.Len(t, vs, density)
			assert.EqualValues(t, 0, vs[0].X)
			assert.EqualValues(t, 1, vs[density-1].X)
		}
	}
}

func TestResampleLinear(t *testing.T) {
	vs, err := Resample([]float64{0, 10}, 1, 3)
	require.Nil(t, err)
	assert.InDeltaSlice(t, []float64{0, 5, 10}, ys(vs), 1e-9)
	assert.InDeltaSlice(t, []float64{0, 0.5, 1}, []float64{vs[0].X, vs[1].X, vs[2].X}, 1e-9)
}

func TestResampleKeepsSamplePoints(t *testing.T) {
	vs, err := Resample([]float64{5, 1, 9, 3}, 1, 4)
	require.Nil(t, err)
	assert.Equal(t, []float64{5, 1, 9, 3}, ys(vs))
}

func TestResampleSingleSample(t *testing.T) {
	vs, err := Resample([]float64{7}, 3, 5)
	require.Nil(t, err)

	for _, y := range ys(vs) {
		assert.EqualValues(t, 7, y)
	}
}

func TestResampleSmoothingMonotone(t *testing.T) {
	raw := []float64{1, 2, 4, 8, 16, 17, 30}

	for _, tolerance := range []int{2, 3, 5} {
		vs, err := Resample(raw, tolerance, 40)
		require.Nil(t, err)

		for idx := 1; idx < len(vs); idx++ {
			assert.GreaterOrEqual(t, vs[idx].Y, vs[idx-1].Y, "tolerance %d index %d", tolerance, idx)
		}
	}
}

func TestResampleSmoothingFlattensSpike(t *testing.T) {
	sharp, err := Resample([]float64{0, 0, 10, 0, 0}, 1, 9)
	require.Nil(t, err)

	smooth, err := Resample([]float64{0, 0, 10, 0, 0}, 2, 9)
	require.Nil(t, err)

	assert.EqualValues(t, 10, slicesMax(ys(sharp)))
	assert.InDelta(t, 4, slicesMax(ys(smooth)), 1e-9)
}

func slicesMax(vs []float64) float64 {
	m := math.Inf(-1)
	for _, v := range vs {
		m = max(m, v)
	}

	return m
}

func TestResamplePropagatesNaN(t *testing.T) {
	vs, err := Resample([]float64{1, math.NaN(), 3}, 1, 3)
	require.Nil(t, err)
	assert.EqualValues(t, 1, vs[0].Y)
	assert.True(t, math.IsNaN(vs[1].Y))
	assert.EqualValues(t, 3, vs[2].Y)
}

func TestResampleErrors(t *testing.T) {
	_, err := Resample(nil, 1, 3)
	assert.ErrorIs(t, err, ErrEmptySeries)
	assert.ErrorIs(t, err, commerr.ErrInvalidArgument)

	_, err = Resample([]float64{1}, 0, 3)
	assert.ErrorIs(t, err, ErrInvalidTolerance)

	_, err = Resample([]float64{1}, 1, 1)
	assert.ErrorIs(t, err, ErrInvalidDensity)
}

func TestMirror(t *testing.T) {
	cases := []struct {
		j, n, want int
	}{
		{0, 4, 0},
		{3, 4, 3},
		{-1, 4, 1},
		{-2, 4, 2},
		{-3, 4, 3},
		{-4, 4, 2},
		{4, 4, 2},
		{5, 4, 1},
		{6, 4, 0},
		{7, 4, 1},
		{-5, 1, 0},
		{3, 2, 1},
		{-1, 2, 1},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, mirror(c.j, c.n), "mirror(%d, %d)", c.j, c.n)
	}
}

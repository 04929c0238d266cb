package curve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCurve(t *testing.T) {
	c, err := NewCurve([]float64{5, 1, 9, 3}, 1, 4)
	require.Nil(t, err)

	assert.Equal(t, KindSharp, c.Kind)
	assert.Equal(t, "sharp", c.Kind.String())
	assert.InDeltaSlice(t, []float64{0.5, 0, 1, 0.25}, ys(c.Normalized), 1e-9)
	assert.Len(t, c.Open, 4)
	assert.Len(t, c.Closed, 7)

	minPt, ok := c.MinPoint()
	require.True(t, ok)
	assert.Equal(t, Vertex{X: 1.0 / 3, Y: 0}, minPt)

	maxPt, ok := c.MaxPoint()
	require.True(t, ok)
	assert.EqualValues(t, 1, maxPt.Y)
}

func TestNewCurveFlat(t *testing.T) {
	c, err := NewCurve([]float64{3, 3, 3}, 2, 5)
	require.Nil(t, err)

	assert.Equal(t, KindSmooth, c.Kind)

	for _, y := range ys(c.Normalized) {
		assert.EqualValues(t, 0.5, y)
	}

	single, err := NewCurve([]float64{3}, 1, 2)
	require.Nil(t, err)
	assert.Equal(t, []float64{0.5, 0.5}, ys(single.Normalized))
}

func TestNewCurveError(t *testing.T) {
	_, err := NewCurve(nil, 1, 4)
	assert.ErrorIs(t, err, ErrEmptySeries)
}

func TestBuild(t *testing.T) {
	pair, err := Build([]float64{1, 4, 2, 8, 5, 7}, 3, 30)
	require.Nil(t, err)

	assert.Equal(t, KindSmooth, pair.Smooth.Kind)
	assert.Equal(t, KindSharp, pair.Sharp.Kind)
	assert.Equal(t, 1, pair.Sharp.Tolerance)
	assert.Len(t, pair.Smooth.Vertices, 30)
	assert.Len(t, pair.Sharp.Vertices, 30)
	assert.Equal(t, 3, pair.Sharp.Max.Index)
	assert.Equal(t, 3, pair.Smooth.Max.Index)

	pair, err = Build([]float64{1, 4}, 1, 3)
	require.Nil(t, err)
	assert.Same(t, pair.Sharp, pair.Smooth)
}

func TestPathScale(t *testing.T) {
	p := ClosedPath(Vertices{{X: 0, Y: 1}, {X: 1, Y: 0.5}})
	require.Len(t, p, 5)

	assert.Equal(t, OpMove, p[0].Op)
	assert.Equal(t, OpLine, p[1].Op)
	assert.Equal(t, Vertex{X: 1, Y: 0}, p[2].To)
	assert.Equal(t, Vertex{X: 0, Y: 0}, p[3].To)
	assert.Equal(t, OpClose, p[4].Op)

	scaled := p.Scale(Rect{X: 10, Y: 20, W: 100, H: 50})
	assert.Equal(t, Vertex{X: 10, Y: 20}, scaled[0].To)
	assert.Equal(t, Vertex{X: 110, Y: 45}, scaled[1].To)
	assert.Equal(t, Vertex{X: 110, Y: 70}, scaled[2].To)
	assert.Equal(t, Vertex{X: 10, Y: 70}, scaled[3].To)
	assert.Equal(t, OpClose, scaled[4].Op)

	assert.Nil(t, ClosedPath(nil))
	assert.Empty(t, OpenPath(nil))
}

func TestZipWithHoldsLastPoint(t *testing.T) {
	three := Vertices{{X: 0, Y: 1}, {X: 0.5, Y: 2}, {X: 1, Y: 3}}
	five := Vertices{{X: 0, Y: 10}, {X: 0.25, Y: 20}, {X: 0.5, Y: 30}, {X: 0.75, Y: 40}, {X: 1, Y: 50}}

	fn := func(a, b Vertex) Vertex {
		return Vertex{X: a.X*100 + b.X, Y: a.Y*100 + b.Y}
	}

	out := ZipWith(three, five, fn)
	require.Len(t, out, 5)
	assert.Equal(t, fn(three[2], five[3]), out[3])
	assert.Equal(t, fn(three[2], five[4]), out[4])
	assert.Equal(t, fn(three[0], five[0]), out[0])

	out = ZipWith(five, three, fn)
	require.Len(t, out, 5)
	assert.Equal(t, fn(five[4], three[2]), out[4])

	out = ZipWith(nil, three, fn)
	assert.Equal(t, fn(Vertex{}, three[1]), out[1])
}

func TestInterpolate(t *testing.T) {
	from := Vertices{{X: 0, Y: 0}, {X: 1, Y: 0}}
	to := Vertices{{X: 0, Y: 1}, {X: 0.5, Y: 1}, {X: 1, Y: 1}}

	mid := Interpolate(from, to, 0.5)
	require.Len(t, mid, 3)
	assert.Equal(t, Vertex{X: 0, Y: 0.5}, mid[0])
	assert.Equal(t, Vertex{X: 0.75, Y: 0.5}, mid[1])
	assert.Equal(t, Vertex{X: 1, Y: 0.5}, mid[2])

	assert.Equal(t, Vertices{{X: 0, Y: 1}, {X: 0.5, Y: 1}, {X: 1, Y: 1}}, Interpolate(from, to, 7))
	assert.Equal(t, Vertices{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 0}}, Interpolate(from, to, -1))
}

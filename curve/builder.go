package curve

import "math"

func NewCurve(raw []float64, tolerance, density int) (*Curve, error) {
	vs, err := Resample(raw, tolerance, density)
	if err != nil {
		return nil, err
	}

	kind := KindSharp
	if tolerance > 1 {
		kind = KindSmooth
	}

	normalized := normalize(vs)

	c := &Curve{
		Kind:       kind,
		Tolerance:  tolerance,
		Vertices:   vs,
		Normalized: normalized,
		Open:       OpenPath(normalized),
		Closed:     ClosedPath(normalized),
	}

	c.Min, c.Max, c.HasExtrema = Extrema(raw, vs)

	return c, nil
}

// MinPoint is the normalized vertex the minimum label points at.
func (c *Curve) MinPoint() (Vertex, bool) {
	return c.normalizedAt(c.Min.VertexIndex)
}

// MaxPoint is the normalized vertex the maximum label points at.
func (c *Curve) MaxPoint() (Vertex, bool) {
	return c.normalizedAt(c.Max.VertexIndex)
}

func (c *Curve) normalizedAt(idx int) (Vertex, bool) {
	if !c.HasExtrema || idx < 0 || idx >= len(c.Normalized) {
		return Vertex{}, false
	}

	return c.Normalized[idx], true
}

// Build computes the smooth curve for tolerance and the sharp one for
// tolerance 1 over the same series.
func Build(raw []float64, tolerance, density int) (*Pair, error) {
	smooth, err := NewCurve(raw, tolerance, density)
	if err != nil {
		return nil, err
	}

	sharp := smooth
	if tolerance > 1 {
		sharp, err = NewCurve(raw, 1, density)
		if err != nil {
			return nil, err
		}
	}

	return &Pair{
		Smooth: smooth,
		Sharp:  sharp,
	}, nil
}

// normalize maps Y into [0,1] over the finite range of vs. A flat series sits
// at 0.5.
func normalize(vs Vertices) Vertices {
	lo, hi := math.Inf(1), math.Inf(-1)

	for _, v := range vs {
		if math.IsNaN(v.Y) || math.IsInf(v.Y, 0) {
			continue
		}

		lo = min(lo, v.Y)
		hi = max(hi, v.Y)
	}

	out := make(Vertices, len(vs))
	span := hi - lo

	for idx, v := range vs {
		out[idx].X = v.X

		switch {
		case math.IsInf(span, 0) || span <= 0:
			out[idx].Y = 0.5
		default:
			out[idx].Y = (v.Y - lo) / span
		}
	}

	return out
}

package curve

type Vertices []Vertex

// ZipWith combines two vertex lists index by index. The result is as long as
// the longer list; past its end the shorter list keeps contributing its last
// vertex (the zero vertex when it is empty).
func ZipWith(a, b Vertices, fn func(a, b Vertex) Vertex) Vertices {
	n := max(len(a), len(b))
	out := make(Vertices, n)

	for idx := 0; idx < n; idx++ {
		out[idx] = fn(at(a, idx), at(b, idx))
	}

	return out
}

func at(vs Vertices, idx int) Vertex {
	if len(vs) == 0 {
		return Vertex{}
	}

	if idx >= len(vs) {
		return vs[len(vs)-1]
	}

	return vs[idx]
}

func (vs Vertices) Add(o Vertices) Vertices {
	return ZipWith(vs, o, func(a, b Vertex) Vertex {
		return Vertex{X: a.X + b.X, Y: a.Y + b.Y}
	})
}

func (vs Vertices) Sub(o Vertices) Vertices {
	return ZipWith(vs, o, func(a, b Vertex) Vertex {
		return Vertex{X: a.X - b.X, Y: a.Y - b.Y}
	})
}

func (vs Vertices) Scale(f float64) Vertices {
	out := make(Vertices, len(vs))

	for idx, v := range vs {
		out[idx] = Vertex{X: v.X * f, Y: v.Y * f}
	}

	return out
}

// Interpolate blends from into to; t is clamped to [0,1].
func Interpolate(from, to Vertices, t float64) Vertices {
	t = max(0, min(t, 1))

	return from.Add(to.Sub(from).Scale(t))
}

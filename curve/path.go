package curve

type Op uint8

const (
	OpMove Op = iota
	OpLine
	OpClose
)

type Segment struct {
	Op Op
	To Vertex
}

// Path is a drawable outline in unit space unless it has been scaled.
type Path []Segment

// OpenPath strokes the vertices in order.
func OpenPath(vs Vertices) Path {
	p := make(Path, 0, len(vs))

	for idx, v := range vs {
		op := OpLine
		if idx == 0 {
			op = OpMove
		}

		p = append(p, Segment{Op: op, To: v})
	}

	return p
}

// ClosedPath is the area under the curve: the open path followed by the
// bottom-right and bottom-left corners of the unit square.
func ClosedPath(vs Vertices) Path {
	if len(vs) == 0 {
		return nil
	}

	p := make(Path, 0, len(vs)+3)
	p = append(p, OpenPath(vs)...)
	p = append(p,
		Segment{Op: OpLine, To: Vertex{X: 1, Y: 0}},
		Segment{Op: OpLine, To: Vertex{X: 0, Y: 0}},
		Segment{Op: OpClose},
	)

	return p
}

// Scale maps a unit space path into r, flipping Y so that 1 is the top edge.
func (p Path) Scale(r Rect) Path {
	scaled := make(Path, len(p))

	for idx, seg := range p {
		scaled[idx].Op = seg.Op

		if seg.Op == OpClose {
			continue
		}

		scaled[idx].To = Vertex{
			X: r.X + seg.To.X*r.W,
			Y: r.Y + (1-seg.To.Y)*r.H,
		}
	}

	return scaled
}

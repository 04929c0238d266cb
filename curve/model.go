package curve

// Vertex is one plotted location. Resampled vertices carry the series' own
// units on Y; normalized vertices live in [0,1]x[0,1] with Y pointing up.
type Vertex struct {
	X float64
	Y float64
}

type Kind uint8

const (
	KindSharp Kind = iota
	KindSmooth
)

func (k Kind) String() string {
	switch k {
	case KindSharp:
		return "sharp"
	case KindSmooth:
		return "smooth"
	default:
		return "unknown"
	}
}

// Extremum is a minimum or maximum of the raw series together with the
// vertex of the resampled curve that visually shows it.
type Extremum struct {
	Index       int
	Value       float64
	VertexIndex int
	Vertex      Vertex
}

type Curve struct {
	Kind       Kind
	Tolerance  int
	Vertices   Vertices
	Normalized Vertices
	Open       Path
	Closed     Path

	Min Extremum
	Max Extremum
	// HasExtrema is false only for curves built from an empty series.
	HasExtrema bool
}

// Pair is what the line graph caches per series: the smoothed curve shown at
// rest and the sharp one shown while scrubbing.
type Pair struct {
	Smooth *Curve
	Sharp  *Curve
}

// Rect is a drawing area in screen space, Y growing downwards.
type Rect struct {
	X, Y float64
	W, H float64
}

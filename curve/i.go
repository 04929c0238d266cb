package curve

type ComputeFunc func(raw []float64, tolerance, density int) (*Pair, error)

// Entry is one memoized series. Raw is a private copy, compared bit for bit on
// lookup (with -0 read as +0) so that two keys hashing alike never share a curve.
type Entry struct {
	Raw       []float64
	Tolerance int
	Density   int
	Pair      *Pair
}

type Store interface {
	Get(key uint64) (*Entry, bool)
	Add(key uint64, e *Entry)
	Len() int
	Purge()
}

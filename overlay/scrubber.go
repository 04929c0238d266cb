package overlay

type State uint8

const (
	StateIdle State = iota
	StateDragging
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Scrubber turns drag gestures over a chart into a selected sample index.
// A live drag selection takes precedence over a committed one. It is driven
// from the UI goroutine and is not safe for concurrent use.
type Scrubber struct {
	// OnSelect is called every time Selection changes.
	OnSelect func(index int, ok bool)

	state State

	live    int
	hasLive bool

	committed    int
	hasCommitted bool

	reported   int
	reportedOK bool
}

func (s *Scrubber) State() State {
	return s.state
}

// DragChanged moves the live selection to the sample under x. n is the
// number of samples in the series.
func (s *Scrubber) DragChanged(x, width float64, n int) {
	s.state = StateDragging
	s.live, s.hasLive = IndexForPosition(x, width, n)

	s.report()
}

func (s *Scrubber) DragEnded() {
	s.state = StateIdle
	s.hasLive = false

	s.report()
}

// Commit selects index outside of a drag. A negative index clears it.
func (s *Scrubber) Commit(index int) {
	if index < 0 {
		s.ClearCommitted()

		return
	}

	s.committed, s.hasCommitted = index, true

	s.report()
}

func (s *Scrubber) ClearCommitted() {
	s.hasCommitted = false

	s.report()
}

func (s *Scrubber) Selection() (index int, ok bool) {
	switch {
	case s.hasLive:
		index, ok = s.live, true
	case s.hasCommitted:
		index, ok = s.committed, true
	default:
		index = -1
	}

	return
}

// ShowExtrema reports whether the min and max labels are drawn: never while
// something is selected, and only when they point at different samples.
func (s *Scrubber) ShowExtrema(minIndex, maxIndex int) bool {
	if _, ok := s.Selection(); ok {
		return false
	}

	return minIndex != maxIndex
}

func (s *Scrubber) report() {
	index, ok := s.Selection()
	if ok == s.reportedOK && (!ok || index == s.reported) {
		return
	}

	s.reported, s.reportedOK = index, ok

	if s.OnSelect != nil {
		s.OnSelect(index, ok)
	}
}

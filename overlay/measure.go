package overlay

const (
	LabelMin       = "min"
	LabelMax       = "max"
	LabelSelection = "selection"
)

// Measurements keeps the latest measured size of every label. Labels are
// placed from the previous frame's sizes; a changed size asks for another
// layout pass.
type Measurements struct {
	sizes map[string]Size
}

// Report stores size for key and returns true when it differs from the last
// reported one.
func (m *Measurements) Report(key string, size Size) bool {
	if m.sizes == nil {
		m.sizes = make(map[string]Size)
	}

	if old, ok := m.sizes[key]; ok && old == size {
		return false
	}

	m.sizes[key] = size

	return true
}

func (m *Measurements) Size(key string) (size Size, ok bool) {
	size, ok = m.sizes[key]

	return
}

func (m *Measurements) Forget(key string) {
	delete(m.sizes, key)
}

package curve

func less(a, b float64) bool {
	return a < b
}

func greater(a, b float64) bool {
	return a > b
}

// Extrema finds the global minimum and maximum of raw and maps each of them
// onto vertices, the resampled curve of raw (its density is len(vertices)).
//
// Ties resolve to the first occurrence. NaN samples are skipped unless the
// series holds nothing else, in which case index 0 is reported.
//
// Smoothing moves peaks, so the raw index is scaled onto the vertices and
// then walked in both directions while the neighbouring vertex is strictly
// better. The better end of the two walks wins, the left one on ties.
func Extrema(raw []float64, vertices Vertices) (minimum, maximum Extremum, ok bool) {
	if len(raw) == 0 {
		return
	}

	minIdx := firstBest(raw, less)
	maxIdx := firstBest(raw, greater)

	minimum = locate(raw, vertices, minIdx, less)
	maximum = locate(raw, vertices, maxIdx, greater)
	ok = true

	return
}

func firstBest(raw []float64, better func(a, b float64) bool) int {
	best := -1

	for idx, v := range raw {
		if v != v { // NaN
			continue
		}

		if best < 0 || better(v, raw[best]) {
			best = idx
		}
	}

	if best < 0 {
		return 0
	}

	return best
}

func approxVertexIndex(rawIndex, rawCount, vertexCount int) int {
	idx := int(float64(rawIndex) / float64(rawCount) * float64(vertexCount))

	return max(0, min(idx, vertexCount-1))
}

func locate(raw []float64, vertices Vertices, rawIndex int, better func(a, b float64) bool) Extremum {
	e := Extremum{
		Index:       rawIndex,
		Value:       raw[rawIndex],
		VertexIndex: -1,
	}

	if len(vertices) == 0 {
		return e
	}

	approx := approxVertexIndex(rawIndex, len(raw), len(vertices))

	left := approx
	for left > 0 && better(vertices[left-1].Y, vertices[left].Y) {
		left--
	}

	right := approx
	for right < len(vertices)-1 && better(vertices[right+1].Y, vertices[right].Y) {
		right++
	}

	best := left
	if better(vertices[right].Y, vertices[left].Y) {
		best = right
	}

	e.VertexIndex = best
	e.Vertex = vertices[best]

	return e
}

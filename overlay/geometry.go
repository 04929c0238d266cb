package overlay

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Point and Size are in screen space, Y growing downwards.
type Point struct {
	X, Y float64
}

type Size struct {
	W, H float64
}

// clamp bounds v to [lo, hi]; lo wins when the range is empty.
func clamp[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	return max(lo, min(v, hi))
}

// IndexForFraction maps a horizontal fraction of the chart onto one of n
// samples: round((n-1)*fraction), clamped to the last valid index.
func IndexForFraction(n int, fraction float64) (int, bool) {
	if n <= 0 || math.IsNaN(fraction) {
		return 0, false
	}

	fraction = clamp(fraction, 0, 1)

	return clamp(int(math.Round(float64(n-1)*fraction)), 0, n-1), true
}

// IndexForPosition is IndexForFraction for a pointer x inside a chart width
// pixels wide.
func IndexForPosition(x, width float64, n int) (int, bool) {
	if width <= 0 {
		return 0, false
	}

	return IndexForFraction(n, x/width)
}

// PositionForIndex is the x of sample index inside a chart width pixels wide.
func PositionForIndex(index, n int, width float64) float64 {
	if n <= 1 {
		return 0
	}

	return float64(clamp(index, 0, n-1)) / float64(n-1) * width
}

// PlaceExtremumLabel returns the top-left corner of a label pointing at
// anchor. The label is centred horizontally on the anchor and sits gap above
// it (or below), flipping to the other side when it would leave bounds.
func PlaceExtremumLabel(anchor Point, label, bounds Size, above bool, gap float64) Point {
	aboveY := anchor.Y - gap - label.H
	belowY := anchor.Y + gap

	y := belowY
	if above {
		y = aboveY
	}

	switch {
	case above && aboveY < 0 && belowY+label.H <= bounds.H:
		y = belowY
	case !above && belowY+label.H > bounds.H && aboveY >= 0:
		y = aboveY
	}

	return Point{
		X: clamp(anchor.X-label.W/2, 0, bounds.W-label.W),
		Y: clamp(y, 0, bounds.H-label.H),
	}
}

// PlaceSelectionLabel centres the selected value label on x along the top
// edge.
func PlaceSelectionLabel(x float64, label, bounds Size) Point {
	return Point{
		X: clamp(x-label.W/2, 0, bounds.W-label.W),
	}
}

package linegraph

import (
	"time"

	"github.com/sgostarter/libchart/curve"
)

const DefaultFadeDuration = 150 * time.Millisecond

// crossFade animates between the vertices last drawn and those of a new
// target curve.
type crossFade struct {
	duration time.Duration

	target   *curve.Curve
	from, to curve.Vertices
	start    time.Time
	current  curve.Vertices
}

func (f *crossFade) retarget(c *curve.Curve, now time.Time) {
	if c == f.target {
		return
	}

	f.target = c
	f.from = f.current
	f.to = c.Normalized
	f.start = now
}

// at returns the vertices to draw at now and whether the fade is still
// running.
func (f *crossFade) at(now time.Time) (vs curve.Vertices, animating bool) {
	duration := f.duration
	if duration <= 0 {
		duration = DefaultFadeDuration
	}

	t := float64(now.Sub(f.start)) / float64(duration)

	if len(f.from) == 0 || t >= 1 {
		f.from = nil
		f.current = f.to

		return f.current, false
	}

	f.current = curve.Interpolate(f.from, f.to, t)

	return f.current, true
}

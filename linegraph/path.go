package linegraph

import (
	"gioui.org/f32"
	"gioui.org/op"
	"gioui.org/op/clip"

	"github.com/sgostarter/libchart/curve"
)

// PathSpec scales a unit space path into r and records it as a clip path.
func PathSpec(ops *op.Ops, p curve.Path, r curve.Rect) clip.PathSpec {
	var path clip.Path

	path.Begin(ops)

	for _, seg := range p.Scale(r) {
		switch seg.Op {
		case curve.OpMove:
			path.MoveTo(f32.Pt(float32(seg.To.X), float32(seg.To.Y)))
		case curve.OpLine:
			path.LineTo(f32.Pt(float32(seg.To.X), float32(seg.To.Y)))
		case curve.OpClose:
			path.Close()
		}
	}

	return path.End()
}

package main

import (
	"html"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/sgostarter/libchart/curve"
	"github.com/sgostarter/libchart/overlay"
)

const (
	svgStrokeWidth  = 2
	svgFontSize     = 9
	svgLabelPadding = 4
	svgFillAlpha    = 64
)

type svgStyle struct {
	Width, Height float64
	Stroke, Fill  drawing.Color
	Format        func(float64) string
}

func px(v float64) int {
	return int(math.Round(v))
}

// tracePath replays p onto the renderer's pending path. The caller decides
// whether it gets filled or stroked.
func tracePath(r chart.Renderer, p curve.Path) {
	for _, seg := range p {
		switch seg.Op {
		case curve.OpMove:
			r.MoveTo(px(seg.To.X), px(seg.To.Y))
		case curve.OpLine:
			r.LineTo(px(seg.To.X), px(seg.To.Y))
		case curve.OpClose:
			r.Close()
		}
	}
}

// writeSVG renders c with its extrema labelled.
func writeSVG(w io.Writer, c *curve.Curve, style svgStyle) (err error) {
	r, err := chart.SVG(px(style.Width), px(style.Height))
	if err != nil {
		return
	}

	rect := curve.Rect{W: style.Width, H: style.Height}

	r.SetFillColor(style.Fill.WithAlpha(svgFillAlpha))
	tracePath(r, c.Closed.Scale(rect))
	r.Fill()

	r.ResetStyle()
	r.SetStrokeColor(style.Stroke)
	r.SetStrokeWidth(svgStrokeWidth)
	tracePath(r, c.Open.Scale(rect))
	r.Stroke()

	if c.HasExtrema && c.Min.Index != c.Max.Index {
		err = writeExtremumLabels(r, c, style)
		if err != nil {
			return
		}
	}

	err = r.Save(w)

	return
}

func writeExtremumLabels(r chart.Renderer, c *curve.Curve, style svgStyle) error {
	font, err := chart.GetDefaultFont()
	if err != nil {
		return err
	}

	r.ResetStyle()
	r.SetFont(font)
	r.SetFontSize(svgFontSize)
	r.SetFontColor(style.Stroke)

	bounds := overlay.Size{W: style.Width, H: style.Height}

	for _, e := range []struct {
		point func() (curve.Vertex, bool)
		value float64
		above bool
	}{
		{c.MaxPoint, c.Max.Value, true},
		{c.MinPoint, c.Min.Value, false},
	} {
		v, ok := e.point()
		if !ok {
			continue
		}

		text := style.Format(e.value)
		box := r.MeasureText(text)
		label := overlay.Size{W: float64(box.Width()), H: float64(box.Height())}
		anchor := overlay.Point{X: v.X * style.Width, Y: (1 - v.Y) * style.Height}
		pt := overlay.PlaceExtremumLabel(anchor, label, bounds, e.above, svgLabelPadding)

		// text is positioned by its baseline
		r.Text(html.EscapeString(text), px(pt.X), px(pt.Y+label.H))
	}

	return nil
}

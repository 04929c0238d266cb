package linegraph

import (
	"image"
	"image/color"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"github.com/sgostarter/i/l"

	"github.com/sgostarter/libchart/curve"
	"github.com/sgostarter/libchart/overlay"
)

type Config struct {
	Tolerance   int     `yaml:"tolerance" json:"tolerance"`
	Density     int     `yaml:"density" json:"density"`
	StrokeWidth unit.Dp `yaml:"strokeWidth" json:"strokeWidth"`
	Locale      string  `yaml:"locale" json:"locale"`
	Decimals    int     `yaml:"decimals" json:"decimals"`
}

// LineGraph draws a sample series as a filled curve. Dragging across it
// scrubs through the samples: the sharp curve fades in and the value under
// the pointer is labelled. At rest the smooth curve is shown with its
// minimum and maximum labelled.
type LineGraph struct {
	Cache     *curve.Cache
	Tolerance int
	Density   int

	Stroke      color.NRGBA
	Fill        color.NRGBA
	StrokeWidth unit.Dp
	Gap         unit.Dp

	// Format renders sample values; Label, when set, renders the selected
	// value label instead.
	Format func(float64) string
	Label  func(index int) string

	Scrubber     overlay.Scrubber
	Measurements overlay.Measurements

	Logger l.Wrapper

	fade crossFade
}

func New(cfg Config, cache *curve.Cache, logger l.Wrapper) *LineGraph {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	if cache == nil {
		cache = curve.NewCache(nil, curve.WithLogger(logger))
	}

	return &LineGraph{
		Cache:       cache,
		Tolerance:   cfg.Tolerance,
		Density:     cfg.Density,
		StrokeWidth: cfg.StrokeWidth,
		Format:      overlay.ValueFormatter(cfg.Locale, cfg.Decimals),
		Logger:      logger.WithFields(l.StringField(l.ClsKey, "LineGraph")),
	}
}

func (g *LineGraph) settings() (tolerance, density int, strokeWidth unit.Dp) {
	tolerance, density, strokeWidth = g.Tolerance, g.Density, g.StrokeWidth

	if tolerance < 1 {
		tolerance = 3
	}

	if density < 2 {
		density = 100
	}

	if strokeWidth <= 0 {
		strokeWidth = 2
	}

	return
}

func (g *LineGraph) init(th *material.Theme) {
	if g.Cache == nil {
		g.Cache = curve.NewCache(nil)
	}

	if g.Logger == nil {
		g.Logger = l.NewNopLoggerWrapper()
	}

	if g.Format == nil {
		g.Format = overlay.ValueFormatter("", 2)
	}

	if g.Stroke == (color.NRGBA{}) {
		g.Stroke = th.Palette.ContrastBg
	}

	if g.Fill == (color.NRGBA{}) {
		g.Fill = g.Stroke
		g.Fill.A = 0x40
	}
}

func (g *LineGraph) Update(gtx layout.Context, n int) {
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: g,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel,
		})
		if !ok {
			break
		}

		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}

		switch e.Kind {
		case pointer.Press, pointer.Drag:
			g.Scrubber.DragChanged(float64(e.Position.X), float64(gtx.Constraints.Max.X), n)
		case pointer.Release, pointer.Cancel:
			g.Scrubber.DragEnded()
		}
	}
}

func (g *LineGraph) Layout(gtx layout.Context, th *material.Theme, raw []float64) layout.Dimensions {
	g.init(th)
	g.Update(gtx, len(raw))

	size := gtx.Constraints.Max
	tolerance, density, strokeWidth := g.settings()

	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, g)

	pair, err := g.Cache.Lookup(raw, tolerance, density)
	if err != nil {
		g.Logger.WithFields(l.ErrorField(err)).Debug("nothing to draw")

		return layout.Dimensions{Size: size}
	}

	target := pair.Smooth
	if g.Scrubber.State() == overlay.StateDragging {
		target = pair.Sharp
	}

	g.fade.retarget(target, gtx.Now)

	vs, animating := g.fade.at(gtx.Now)
	if animating {
		gtx.Execute(op.InvalidateCmd{})
	}

	rect := curve.Rect{W: float64(size.X), H: float64(size.Y)}

	paint.FillShape(gtx.Ops, g.Fill, clip.Outline{Path: PathSpec(gtx.Ops, curve.ClosedPath(vs), rect)}.Op())
	paint.FillShape(gtx.Ops, g.Stroke, clip.Stroke{
		Path:  PathSpec(gtx.Ops, curve.OpenPath(vs), rect),
		Width: float32(gtx.Dp(strokeWidth)),
	}.Op())

	if idx, ok := g.Scrubber.Selection(); ok && idx < len(raw) {
		g.layoutSelection(gtx, th, raw, idx)
	} else if g.Scrubber.ShowExtrema(target.Min.Index, target.Max.Index) {
		g.layoutExtremum(gtx, th, overlay.LabelMax, target, target.Max, true)
		g.layoutExtremum(gtx, th, overlay.LabelMin, target, target.Min, false)
	}

	return layout.Dimensions{Size: size}
}

func (g *LineGraph) layoutSelection(gtx layout.Context, th *material.Theme, raw []float64, idx int) {
	size := gtx.Constraints.Max
	x := int(overlay.PositionForIndex(idx, len(raw), float64(size.X)))
	w := max(gtx.Dp(1), 1)

	paint.FillShape(gtx.Ops, th.Palette.Fg, clip.Rect{
		Min: image.Pt(x-w/2, 0),
		Max: image.Pt(x-w/2+w, size.Y),
	}.Op())

	var text string
	if g.Label != nil {
		text = g.Label(idx)
	} else {
		text = g.Format(raw[idx])
	}

	g.layoutLabel(gtx, th, overlay.LabelSelection, text, func(label overlay.Size) overlay.Point {
		return overlay.PlaceSelectionLabel(float64(x), label, boundsOf(size))
	})
}

func (g *LineGraph) layoutExtremum(gtx layout.Context, th *material.Theme, key string, c *curve.Curve,
	e curve.Extremum, above bool) {
	var (
		v  curve.Vertex
		ok bool
	)

	if above {
		v, ok = c.MaxPoint()
	} else {
		v, ok = c.MinPoint()
	}

	if !ok {
		return
	}

	size := gtx.Constraints.Max
	anchor := overlay.Point{X: v.X * float64(size.X), Y: (1 - v.Y) * float64(size.Y)}

	g.layoutLabel(gtx, th, key, g.Format(e.Value), func(label overlay.Size) overlay.Point {
		return overlay.PlaceExtremumLabel(anchor, label, boundsOf(size), above, float64(gtx.Dp(g.Gap)))
	})
}

// layoutLabel measures the label, feeds the size back through Measurements
// and draws it where place puts it.
func (g *LineGraph) layoutLabel(gtx layout.Context, th *material.Theme, key, text string,
	place func(label overlay.Size) overlay.Point) {
	gtx.Constraints.Min = image.Point{}

	macro := op.Record(gtx.Ops)
	dims := material.Body2(th, text).Layout(gtx)
	call := macro.Stop()

	if g.Measurements.Report(key, overlay.Size{W: float64(dims.Size.X), H: float64(dims.Size.Y)}) {
		gtx.Execute(op.InvalidateCmd{})
	}

	label, _ := g.Measurements.Size(key)
	pt := place(label)

	defer op.Offset(image.Pt(int(pt.X), int(pt.Y))).Push(gtx.Ops).Pop()
	call.Add(gtx.Ops)
}

func boundsOf(size image.Point) overlay.Size {
	return overlay.Size{W: float64(size.X), H: float64(size.Y)}
}

package main

import (
	"context"
	"os"

	"gioui.org/app"
	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/sgostarter/i/l"
	"github.com/spf13/cobra"

	"github.com/sgostarter/libchart/curve"
	"github.com/sgostarter/libchart/history"
	"github.com/sgostarter/libchart/linegraph"
	"github.com/sgostarter/libchart/loader"
	"github.com/sgostarter/libchart/phase"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

const seriesView = "series"

type UI struct {
	th     *material.Theme
	graph  *linegraph.LineGraph
	loader *loader.Loader[[]float64]

	retry    widget.Clickable
	selected string
}

func NewUI(w *app.Window, cfg linegraph.Config, logger l.Wrapper) *UI {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()), text.NoSystemFonts())

	ui := &UI{
		th:    th,
		graph: linegraph.New(cfg, curve.NewCache(nil, curve.WithLogger(logger)), logger),
		loader: loader.New(func(_ context.Context, file string) ([]float64, error) {
			d, err := os.ReadFile(file)
			if err != nil {
				return nil, err
			}

			return history.DecodeSeries(d)
		}, logger),
	}

	ui.loader.Subscribe(func(string, phase.Phase[[]float64]) {
		w.Invalidate()
	})

	return ui
}

func (ui *UI) Layout(gtx C) D {
	if ui.retry.Clicked(gtx) {
		_ = ui.loader.Retry(seriesView)
	}

	return layout.UniformInset(16).Layout(gtx, func(gtx C) D {
		return phase.Match(ui.loader.Phase(seriesView),
			func() D {
				return material.Body1(ui.th, "loading").Layout(gtx)
			},
			func(raw []float64) D {
				ui.graph.Scrubber.OnSelect = func(index int, ok bool) {
					ui.selected = ""
					if ok && index < len(raw) {
						ui.selected = ui.graph.Format(raw[index])
					}
				}

				return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
					layout.Rigid(material.H6(ui.th, ui.selected).Layout),
					layout.Rigid(layout.Spacer{Height: 8}.Layout),
					layout.Flexed(1, func(gtx C) D {
						return ui.graph.Layout(gtx, ui.th, raw)
					}),
				)
			},
			func(err error) D {
				return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
					layout.Rigid(material.Body1(ui.th, err.Error()).Layout),
					layout.Rigid(layout.Spacer{Height: 8}.Layout),
					layout.Rigid(material.Button(ui.th, &ui.retry, "Retry").Layout),
				)
			},
		)
	})
}

func loop(w *app.Window, ui *UI) error {
	var ops op.Ops

	for {
		switch ev := w.NextEvent().(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, ev)
			ui.Layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}

func main() {
	var (
		tolerance, density int
		locale             string
		verbose            bool
	)

	cmd := &cobra.Command{
		Use:   "linegraph-gio <series.yaml>",
		Short: "Show a price series in the interactive line graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := l.NewNopLoggerWrapper()
			if verbose {
				logger = l.NewConsoleLoggerWrapper()
			}

			w := app.NewWindow(app.Title("linegraph"), app.Size(unit.Dp(640), unit.Dp(360)))

			ui := NewUI(w, linegraph.Config{
				Tolerance: tolerance,
				Density:   density,
				Locale:    locale,
				Decimals:  2,
			}, logger)

			if err := ui.loader.Bind(seriesView, args[0]); err != nil {
				return err
			}

			go func() {
				err := loop(w, ui)

				ui.loader.Stop()

				if err != nil {
					logger.WithFields(l.ErrorField(err)).Fatal("window closed")
				}

				os.Exit(0)
			}()

			app.Main()

			return nil
		},
	}

	cmd.Flags().IntVarP(&tolerance, "tolerance", "t", 3, "smoothing radius")
	cmd.Flags().IntVarP(&density, "density", "d", 100, "resampled points")
	cmd.Flags().StringVar(&locale, "locale", "en", "label locale")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log to console")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

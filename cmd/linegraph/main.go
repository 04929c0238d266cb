package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sgostarter/i/l"
	"github.com/spf13/cobra"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/sgostarter/libchart/curve"
	"github.com/sgostarter/libchart/history"
	"github.com/sgostarter/libchart/overlay"
)

type app struct {
	configFile string
	verbose    bool

	cfg    Config
	logger l.Wrapper
	cache  *curve.Cache
}

func (a *app) prepare(_ *cobra.Command, _ []string) (err error) {
	a.cfg, err = loadConfig(a.configFile)
	if err != nil {
		return
	}

	a.logger = l.NewNopLoggerWrapper()
	if a.verbose {
		a.logger = l.NewConsoleLoggerWrapper()
	}

	a.cache, err = curve.NewCacheFromConfig(a.cfg.Cache, curve.WithLogger(a.logger))

	return
}

func (a *app) lookup(file string, stdin io.Reader, sharp bool) (*curve.Curve, []float64, error) {
	raw, err := readSeries(file, stdin)
	if err != nil {
		return nil, nil, err
	}

	pair, err := a.cache.Lookup(raw, a.cfg.Graph.Tolerance, a.cfg.Graph.Density)
	if err != nil {
		return nil, nil, err
	}

	if sharp {
		return pair.Sharp, raw, nil
	}

	return pair.Smooth, raw, nil
}

func (a *app) format() func(float64) string {
	return overlay.ValueFormatter(a.cfg.Graph.Locale, a.cfg.Graph.Decimals)
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:               "linegraph",
		Short:             "Inspect price series the way the wallet line graph draws them",
		SilenceUsage:      true,
		PersistentPreRunE: a.prepare,
	}

	root.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", "yaml config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log to console")

	root.AddCommand(a.extremaCmd(), a.svgCmd(), a.scrubCmd(), a.seriesCmd())

	return root
}

func (a *app) extremaCmd() *cobra.Command {
	var sharp bool

	cmd := &cobra.Command{
		Use:   "extrema <series.yaml|->",
		Short: "Print the labelled minimum and maximum",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := a.lookup(args[0], cmd.InOrStdin(), sharp)
			if err != nil {
				return err
			}

			format := a.format()
			out := cmd.OutOrStdout()

			for _, e := range []struct {
				name string
				e    curve.Extremum
			}{{"min", c.Min}, {"max", c.Max}} {
				fmt.Fprintf(out, "%s\tindex=%d\tvalue=%s\tvertex=%d\n", e.name, e.e.Index, format(e.e.Value), e.e.VertexIndex)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&sharp, "sharp", false, "use the unsmoothed curve")

	return cmd
}

func (a *app) svgCmd() *cobra.Command {
	var (
		output        string
		sharp         bool
		width, height float64
	)

	cmd := &cobra.Command{
		Use:   "svg <series.yaml|->",
		Short: "Render the curve as svg",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := a.lookup(args[0], cmd.InOrStdin(), sharp)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()

			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}

				defer f.Close()

				w = f
			}

			return writeSVG(w, c, svgStyle{
				Width:  width,
				Height: height,
				Stroke: drawing.ColorFromHex("2b7fa8"),
				Fill:   drawing.ColorFromHex("2b7fa8"),
				Format: a.format(),
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&sharp, "sharp", false, "use the unsmoothed curve")
	cmd.Flags().Float64Var(&width, "width", 600, "image width")
	cmd.Flags().Float64Var(&height, "height", 200, "image height")

	return cmd
}

func (a *app) scrubCmd() *cobra.Command {
	var fractions []float64

	cmd := &cobra.Command{
		Use:   "scrub <series.yaml|->",
		Short: "Print the samples a drag would select at the given fractions of the width",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readSeries(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}

			format := a.format()
			out := cmd.OutOrStdout()

			for _, fraction := range fractions {
				idx, ok := overlay.IndexForFraction(len(raw), fraction)
				if !ok {
					fmt.Fprintf(out, "%g\tnone\n", fraction)

					continue
				}

				fmt.Fprintf(out, "%g\tindex=%d\tvalue=%s\n", fraction, idx, format(raw[idx]))
			}

			return nil
		},
	}

	cmd.Flags().Float64SliceVarP(&fractions, "at", "a", []float64{0, 0.5, 1}, "drag positions as fractions of the width")

	return cmd
}

func (a *app) seriesCmd() *cobra.Command {
	var (
		key   string
		speed int
		count int
	)

	cmd := &cobra.Command{
		Use:   "series",
		Short: "Export a recorded price history as a series file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			hcfg := a.cfg.History
			hcfg.Keys = []string{key}

			root := a.cfg.HistoryRoot
			if root == "" {
				root = "."
			}

			r := history.NewRecorder(hcfg, history.NewFileStorage(root, nil), a.logger)
			defer func() {
				r.TriggerStop()
				r.Wait()
			}()

			_, values := r.Series(speed, key, count)

			d, err := history.EncodeSeries(values)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(d)

			return err
		},
	}

	cmd.Flags().StringVarP(&key, "key", "k", "", "price key")
	cmd.Flags().IntVar(&speed, "speed", 1, "bucket speed")
	cmd.Flags().IntVar(&count, "count", 100, "number of samples")

	_ = cmd.MarkFlagRequired("key")

	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/harbik/splinify"
	"github.com/spf13/cobra"
)

func newPlotCmd(a *app) *cobra.Command {
	var (
		index  int
		output string
		data   string
		path   bool
		opts   splinify.PlotOptions
	)
	cmd := &cobra.Command{
		Use:   "plot [curves.json]",
		Short: "Draw a fitted curve as SVG",
		Long: `plot draws one curve of a document written by fit, optionally with the
data it was fitted to and its control polygon. Curves of degree 3 or less
are drawn exactly as Bézier paths; --path writes only that path's data.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) > 0 {
				name = args[0]
			}
			sc, err := pickCurve(name, cmd.InOrStdin(), a.cfg.Format, index)
			if err != nil {
				return err
			}
			if data != "" {
				f, err := os.Open(data)
				if err != nil {
					return err
				}
				t, err := readTable(f)
				f.Close()
				if err != nil {
					return err
				}
				if opts.Data, err = t.points(a.cfg); err != nil {
					return err
				}
			}
			a.log.Debug("plotting curve", "index", index, "degree", sc.Degree(), "dim", sc.Dim(), "points", len(opts.Data))
			return writeOutput(cmd.OutOrStdout(), output, func(w io.Writer) error {
				if !path {
					return sc.Plot(w, opts)
				}
				p, err := sc.Bezier()
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(w, p.SVG(opts.SVG))
				return err
			})
		},
	}
	f := cmd.Flags()
	f.IntVar(&index, "index", 0, "index of the curve in the document")
	f.StringVarP(&output, "output", "o", "", "write the SVG to this file instead of stdout")
	f.StringVar(&data, "data", "", "CSV file with the data points to draw")
	f.BoolVar(&path, "path", false, "write only the curve's SVG path data, in curve coordinates")
	f.BoolVar(&opts.ControlPolygon, "control", false, "draw the control polygon")
	f.IntVar(&opts.Width, "width", 640, "image width in pixels")
	f.IntVar(&opts.Height, "height", 480, "image height in pixels")
	f.IntVar(&opts.Samples, "samples", 256, "polyline vertices for curves of degree above 3")
	f.IntVar(&opts.SVG.MaxPrecision, "precision", 3, "maximum decimals of SVG coordinates")
	return cmd
}

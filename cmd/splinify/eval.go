package main

import (
	"encoding/csv"
	"errors"
	"slices"
	"strconv"

	"github.com/harbik/splinify"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
)

type evalOptions struct {
	index      int
	at         []float64
	from, to   float64
	n          int
	derivative int
}

func newEvalCmd(a *app) *cobra.Command {
	var opts evalOptions
	cmd := &cobra.Command{
		Use:   "eval [curves.json]",
		Short: "Evaluate a fitted curve and write CSV",
		Long: `eval evaluates one curve of a document written by fit, at the values given
with --at or on an even grid of -n points, by default spanning the curve's
domain. Each output row holds the parameter and the curve's coordinates.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) > 0 {
				name = args[0]
			}
			sc, err := pickCurve(name, cmd.InOrStdin(), a.cfg.Format, opts.index)
			if err != nil {
				return err
			}
			for range opts.derivative {
				if sc, err = sc.Derivative(); err != nil {
					return err
				}
			}
			x, err := opts.grid(cmd, sc)
			if err != nil {
				return err
			}
			v, err := sc.Evaluate(x)
			if err != nil {
				return err
			}
			return writeValues(csv.NewWriter(cmd.OutOrStdout()), x, v, sc.Dim())
		},
	}
	f := cmd.Flags()
	f.IntVar(&opts.index, "index", 0, "index of the curve in the document")
	f.Float64SliceVar(&opts.at, "at", nil, "evaluate at these non-decreasing values")
	f.Float64Var(&opts.from, "from", 0, "start of the grid (default: start of the domain)")
	f.Float64Var(&opts.to, "to", 0, "end of the grid (default: end of the domain)")
	f.IntVarP(&opts.n, "points", "n", 101, "number of grid points")
	f.IntVarP(&opts.derivative, "derivative", "d", 0, "evaluate this derivative of the curve")
	return cmd
}

// grid returns the evaluation points.
func (o evalOptions) grid(cmd *cobra.Command, sc *splinify.SplineCurve) ([]float64, error) {
	if len(o.at) > 0 {
		if !slices.IsSorted(o.at) {
			return nil, errors.New("--at values must be non-decreasing")
		}
		return o.at, nil
	}
	if o.n < 2 {
		return nil, errors.New("a grid needs at least 2 points")
	}
	lo, hi := sc.Domain()
	if cmd.Flags().Changed("from") {
		lo = o.from
	}
	if cmd.Flags().Changed("to") {
		hi = o.to
	}
	if hi < lo {
		return nil, errors.New("grid end before its start")
	}
	return floats.Span(make([]float64, o.n), lo, hi), nil
}

func writeValues(w *csv.Writer, x, v []float64, dim int) error {
	row := make([]string, dim+1)
	for i, xi := range x {
		row[0] = strconv.FormatFloat(xi, 'g', -1, 64)
		for d := range dim {
			row[d+1] = strconv.FormatFloat(v[i*dim+d], 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

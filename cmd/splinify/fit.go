package main

import (
	"cmp"
	"context"
	"fmt"
	"io"

	"github.com/harbik/splinify"
	"github.com/spf13/cobra"
)

func newFitCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "fit [data.csv]",
		Short: "Fit splines to CSV data and write them as JSON or YAML",
		Long: `fit reads CSV data from the named file or stdin. Function data has an x
column and one column per function, each fitted separately. Parametric
and closed data has a parameter column (unless --chord is set) followed
by one column per coordinate.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) > 0 {
				name = args[0]
			}
			in, err := openInput(name, cmd.InOrStdin())
			if err != nil {
				return err
			}
			defer in.Close()
			t, err := readTable(in)
			if err != nil {
				return fmt.Errorf("reading %s: %w", cmp.Or(name, "stdin"), err)
			}
			curves, err := a.fit(cmd.Context(), t)
			if err != nil {
				return err
			}
			format := documentFormat(output, a.cfg.Format)
			return writeOutput(cmd.OutOrStdout(), output, func(w io.Writer) error {
				return writeCurves(w, format, curves)
			})
		},
	}
	f := cmd.Flags()
	f.StringVarP(&output, "output", "o", "", "write the curves to this file instead of stdout")
	f.IntP("degree", "k", 3, "spline degree, 1 to 5")
	f.String("mode", "smooth", "fitting mode: interpolate, smooth, cardinal or optimize")
	f.Float64("rms", 0, "rms error target of smooth, starting target of optimize")
	f.Float64("spacing", 0, "knot spacing of cardinal fits")
	f.Int("max-knots", 50, "knot count at which optimize stops")
	f.Float64("scale-ratio", splinify.DefaultScaleRatio, "factor by which optimize tightens the rms target")
	f.Int("max-iter", splinify.DefaultMaxIter, "maximum optimize steps")
	f.Bool("chord", false, "use chord lengths as parameter values")
	return cmd
}

// fit fits every request of t concurrently with the configured mode.
func (a *app) fit(ctx context.Context, t table) ([]*splinify.SplineCurve, error) {
	reqs, err := t.requests(a.cfg)
	if err != nil {
		return nil, err
	}
	curves, err := splinify.FitAll(ctx, reqs, a.fitFunc(), splinify.WithLogger(a.log))
	if err != nil {
		return nil, err
	}
	for i, sc := range curves {
		rms, _ := sc.RMSError()
		a.log.Info("fitted curve", "index", i, "knots", sc.NumKnots(), "rms", rms)
	}
	return curves, nil
}

func (a *app) fitFunc() splinify.FitFunc {
	cfg := a.cfg
	switch cfg.Mode {
	case "interpolate":
		return func(_ context.Context, s *splinify.Session) (*splinify.SplineCurve, error) {
			return s.Interpolate()
		}
	case "cardinal":
		return func(_ context.Context, s *splinify.Session) (*splinify.SplineCurve, error) {
			return s.Cardinal(cfg.Spacing)
		}
	case "optimize":
		opts := splinify.SearchOptions{
			RMSStart:   cfg.RMS,
			ScaleRatio: cfg.ScaleRatio,
			MaxIter:    cfg.MaxIter,
			Converged:  splinify.MaxKnots(cfg.MaxKnots),
		}
		return func(ctx context.Context, s *splinify.Session) (*splinify.SplineCurve, error) {
			return s.Optimize(ctx, opts)
		}
	default:
		return func(_ context.Context, s *splinify.Session) (*splinify.SplineCurve, error) {
			return s.Smooth(cfg.RMS)
		}
	}
}

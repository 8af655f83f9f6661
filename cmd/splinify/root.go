package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// app is the state shared by the commands of one invocation.
type app struct {
	configPath string
	cfg        Config
	log        *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "splinify",
		Short: "Fit B-spline curves to sampled data",
		Long: `splinify fits smoothing, interpolating and least-squares B-splines to
CSV data, evaluates the fitted curves and plots them as SVG.

Settings come from SPLINIFY_* environment variables (and a .env file),
then from the YAML file given with --config, then from flags.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			level := slog.LevelInfo
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			return nil
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML configuration file")
	pf.String("kind", "function", "kind of curve: function, parametric or closed")
	pf.String("format", "json", "curve document format: json or yaml")
	pf.BoolP("verbose", "v", false, "log every solver call")

	root.AddCommand(newFitCmd(a), newEvalCmd(a), newPlotCmd(a))
	return root
}

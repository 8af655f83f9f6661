package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by all commands. They are read from
// the environment first, then from the YAML file named by --config, then
// from the command line.
type Config struct {
	// Kind is the kind of fit: function, parametric or closed.
	Kind string `env:"SPLINIFY_KIND" envDefault:"function" yaml:"kind" validate:"oneof=function parametric closed"`
	// Degree is the spline degree K.
	Degree int `env:"SPLINIFY_DEGREE" envDefault:"3" yaml:"degree" validate:"min=1,max=5"`
	// Mode selects the fitting mode.
	Mode string `env:"SPLINIFY_MODE" envDefault:"smooth" yaml:"mode" validate:"oneof=interpolate smooth cardinal optimize"`
	// RMS is the error target of smooth and the starting target of
	// optimize.
	RMS float64 `env:"SPLINIFY_RMS" envDefault:"0" yaml:"rms" validate:"gte=0"`
	// Spacing is the knot distance of cardinal fits.
	Spacing float64 `env:"SPLINIFY_SPACING" yaml:"spacing" validate:"gte=0"`
	// MaxKnots ends an optimize search once a curve needs more knots.
	MaxKnots int `env:"SPLINIFY_MAX_KNOTS" envDefault:"50" yaml:"max_knots" validate:"min=1"`
	// ScaleRatio is the factor by which optimize tightens the target.
	ScaleRatio float64 `env:"SPLINIFY_SCALE_RATIO" envDefault:"0.8" yaml:"scale_ratio" validate:"gt=0,lt=1"`
	// MaxIter bounds the steps of optimize.
	MaxIter int `env:"SPLINIFY_MAX_ITER" envDefault:"40" yaml:"max_iter" validate:"min=1"`
	// Chord derives the parameter values of parametric input from chord
	// lengths instead of reading them from the first column.
	Chord bool `env:"SPLINIFY_CHORD" yaml:"chord"`
	// Format is the curve document format, json or yaml.
	Format string `env:"SPLINIFY_FORMAT" envDefault:"json" yaml:"format" validate:"oneof=json yaml"`
	// Verbose enables debug logging.
	Verbose bool `env:"SPLINIFY_VERBOSE" yaml:"verbose"`
}

var validate = validator.New()

// loadConfig builds the configuration of cmd: a .env file in the working
// directory and the environment, then the YAML file at path, if any, then
// the flags set on the command line.
func loadConfig(cmd *cobra.Command, path string) (Config, error) {
	// a missing .env file is fine
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("reading environment: %w", err)
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	if err := applyFlags(cmd, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyFlags copies the flags that were set explicitly into cfg.
func applyFlags(cmd *cobra.Command, cfg *Config) error {
	fs := cmd.Flags()
	var err error
	set := func(name string, apply func() error) {
		if err == nil && fs.Changed(name) {
			err = apply()
		}
	}
	set("kind", func() (e error) { cfg.Kind, e = fs.GetString("kind"); return })
	set("degree", func() (e error) { cfg.Degree, e = fs.GetInt("degree"); return })
	set("mode", func() (e error) { cfg.Mode, e = fs.GetString("mode"); return })
	set("rms", func() (e error) { cfg.RMS, e = fs.GetFloat64("rms"); return })
	set("spacing", func() (e error) { cfg.Spacing, e = fs.GetFloat64("spacing"); return })
	set("max-knots", func() (e error) { cfg.MaxKnots, e = fs.GetInt("max-knots"); return })
	set("scale-ratio", func() (e error) { cfg.ScaleRatio, e = fs.GetFloat64("scale-ratio"); return })
	set("max-iter", func() (e error) { cfg.MaxIter, e = fs.GetInt("max-iter"); return })
	set("chord", func() (e error) { cfg.Chord, e = fs.GetBool("chord"); return })
	set("format", func() (e error) { cfg.Format, e = fs.GetString("format"); return })
	set("verbose", func() (e error) { cfg.Verbose, e = fs.GetBool("verbose"); return })
	return err
}

// Validate checks the field constraints and the ones between fields.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, len(verrs))
			for i, fe := range verrs {
				msgs[i] = fmt.Sprintf("%s: failed %q (got %v)", fe.Field(), fe.Tag(), fe.Value())
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return err
	}
	if c.Mode == "cardinal" && c.Spacing == 0 {
		return errors.New("invalid config: cardinal mode needs a spacing")
	}
	if c.Kind != "function" && c.Degree%2 == 0 {
		return fmt.Errorf("invalid config: %s curves need an odd degree, got %d", c.Kind, c.Degree)
	}
	return nil
}

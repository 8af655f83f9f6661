package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harbik/splinify"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the command line args with the given stdin and returns
// stdout and stderr.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// sineCSV returns x, sin(x), cos(x) rows with a header.
func sineCSV(m int) string {
	var sb strings.Builder
	sb.WriteString("x,sin,cos\n")
	for i := range m {
		x := 2 * math.Pi * float64(i) / float64(m-1)
		fmt.Fprintf(&sb, "%v,%v,%v\n", x, math.Sin(x), math.Cos(x))
	}
	return sb.String()
}

func circleCSV(m int) string {
	var sb strings.Builder
	sb.WriteString("# unit circle\n")
	for i := range m {
		u := float64(i) / float64(m-1)
		x, y := math.Cos(2*math.Pi*u), math.Sin(2*math.Pi*u)
		if i == m-1 {
			x, y = 1, 0
		}
		fmt.Fprintf(&sb, "%v,%v,%v\n", u, x, y)
	}
	return sb.String()
}

func writeCurveFile(t *testing.T, name string, curves ...*splinify.SplineCurve) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, writeCurves(&buf, documentFormat(name, "json"), curves))
	return writeFile(t, name, buf.String())
}

func TestFitInterpolatesEveryColumn(t *testing.T) {
	data := writeFile(t, "sine.csv", sineCSV(20))
	out := filepath.Join(t.TempDir(), "curves.json")
	_, stderr, err := run(t, "", "fit", data, "--mode", "interpolate", "-o", out)
	require.NoError(t, err)
	assert.Contains(t, stderr, "fitted curve")

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	curves, err := readCurves(f, "json")
	require.NoError(t, err)
	require.Len(t, curves, 2)

	tbl, err := readTable(strings.NewReader(sineCSV(20)))
	require.NoError(t, err)
	for i, sc := range curves {
		v, err := sc.Evaluate(tbl.cols[0])
		require.NoError(t, err)
		assert.InDeltaSlice(t, tbl.cols[i+1], v, 1e-8)
	}
}

func TestFitYAMLFromStdin(t *testing.T) {
	stdout, _, err := run(t, circleCSV(30), "fit", "--kind", "closed", "--rms", "0.001", "--format", "yaml")
	require.NoError(t, err)
	curves, err := readCurves(strings.NewReader(stdout), "yaml")
	require.NoError(t, err)
	require.Len(t, curves, 1)
	assert.Equal(t, 2, curves[0].Dim())
	rms, ok := curves[0].RMSError()
	assert.True(t, ok)
	assert.LessOrEqual(t, rms, 0.0011)
}

func TestFitOptimize(t *testing.T) {
	stdout, _, err := run(t, sineCSV(200), "fit", "--mode", "optimize", "--rms", "0.5", "--max-knots", "12", "-v")
	require.NoError(t, err)
	curves, err := readCurves(strings.NewReader(stdout), "json")
	require.NoError(t, err)
	assert.Len(t, curves, 2)
}

func TestFitCardinalChord(t *testing.T) {
	// only coordinates, parametrized by chord length
	var sb strings.Builder
	for i := range 40 {
		a := math.Pi * float64(i) / 39
		fmt.Fprintf(&sb, "%v,%v\n", math.Cos(a), math.Sin(a))
	}
	stdout, _, err := run(t, sb.String(), "fit", "--kind", "parametric", "--chord", "--mode", "cardinal", "--spacing", "0.1")
	require.NoError(t, err)
	curves, err := readCurves(strings.NewReader(stdout), "json")
	require.NoError(t, err)
	require.Len(t, curves, 1)
	assert.Equal(t, 9+8, curves[0].NumKnots())
}

func TestFitRejectsInvalidConfig(t *testing.T) {
	_, stderr, err := run(t, sineCSV(10), "fit", "--degree", "7")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Degree")
	assert.Contains(t, stderr, "Error:")

	_, _, err = run(t, sineCSV(10), "fit", "--mode", "cardinal")
	assert.ErrorContains(t, err, "spacing")
}

func TestFitReportsFitErrors(t *testing.T) {
	// x is not increasing
	_, _, err := run(t, "0,1\n1,2\n1,3\n2,4\n3,5\n", "fit")
	require.Error(t, err)
	assert.ErrorIs(t, err, splinify.ErrParameterOrder)
	assert.Contains(t, err.Error(), "request 0")
}

func TestEval(t *testing.T) {
	sc, err := splinify.NewSplineCurve([]float64{0, 0, 1, 2, 2}, []float64{0, 1, 4}, 1, 1)
	require.NoError(t, err)
	path := writeCurveFile(t, "linear.json", sc)

	stdout, _, err := run(t, "", "eval", path, "--at", "0.5,1.5")
	require.NoError(t, err)
	assert.Equal(t, "0.5,0.5\n1.5,2.5\n", stdout)

	stdout, _, err = run(t, "", "eval", path, "-n", "3", "--from", "1")
	require.NoError(t, err)
	assert.Equal(t, "1,1\n1.5,2.5\n2,4\n", stdout)

	_, _, err = run(t, "", "eval", path, "--at", "1,0.5")
	assert.ErrorContains(t, err, "non-decreasing")

	_, _, err = run(t, "", "eval", path, "--index", "1")
	assert.ErrorContains(t, err, "out of range")
}

func TestEvalNullCurve(t *testing.T) {
	_, _, err := run(t, "[null]", "eval")
	assert.ErrorContains(t, err, "curve 0: empty document")

	_, _, err = run(t, "- ~\n", "eval", "--format", "yaml")
	assert.ErrorContains(t, err, "curve 0: empty document")

	_, _, err = run(t, "null", "plot")
	assert.ErrorContains(t, err, "empty document")
}

func TestWriteOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, writeOutput(nil, path, func(w io.Writer) error {
		_, err := io.WriteString(w, "spline")
		return err
	}))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "spline", string(b))

	var stdout bytes.Buffer
	require.NoError(t, writeOutput(&stdout, "", func(w io.Writer) error {
		_, err := io.WriteString(w, "stdout")
		return err
	}))
	assert.Equal(t, "stdout", stdout.String())

	failed := errors.New("write failed")
	assert.ErrorIs(t, writeOutput(nil, path, func(io.Writer) error { return failed }), failed)
	assert.Error(t, writeOutput(nil, filepath.Join(path, "sub", "out.txt"), func(io.Writer) error { return nil }))
}

func TestEvalDerivativeYAML(t *testing.T) {
	// x² on [0, 1]
	sc, err := splinify.NewSplineCurve([]float64{0, 0, 0, 1, 1, 1}, []float64{0, 0, 1}, 2, 1)
	require.NoError(t, err)
	path := writeCurveFile(t, "square.yaml", sc)

	stdout, _, err := run(t, "", "eval", path, "-n", "3", "-d", "1")
	require.NoError(t, err)
	assert.Equal(t, "0,0\n0.5,1\n1,2\n", stdout)

	_, _, err = run(t, "", "eval", path, "-d", "2")
	assert.ErrorIs(t, err, splinify.ErrDegree)
}

func TestPlot(t *testing.T) {
	csv := circleCSV(16)
	data := writeFile(t, "circle.csv", csv)
	curves, _, err := run(t, csv, "fit", "--kind", "closed", "--mode", "interpolate")
	require.NoError(t, err)
	path := writeFile(t, "circle.json", curves)

	svg, _, err := run(t, "", "plot", path, "--kind", "closed", "--data", data, "--control", "--width", "200", "--height", "200")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(svg, "<svg"))
	assert.Equal(t, 16, strings.Count(svg, "<circle"))
	assert.Equal(t, 2, strings.Count(svg, "<path"))
	assert.Contains(t, svg, `width="200"`)
}

func TestPlotPath(t *testing.T) {
	sc, err := splinify.NewSplineCurve([]float64{0, 0, 1, 2, 2}, []float64{0, 1, 4}, 1, 1)
	require.NoError(t, err)
	path := writeCurveFile(t, "linear.json", sc)

	stdout, _, err := run(t, "", "plot", path, "--path")
	require.NoError(t, err)
	assert.Equal(t, "M0,0 L1,1 L2,4\n", stdout)

	quintic, err := splinify.NewSplineCurve([]float64{0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1}, make([]float64, 6), 5, 1)
	require.NoError(t, err)
	_, _, err = run(t, "", "plot", writeCurveFile(t, "quintic.json", quintic), "--path")
	assert.ErrorIs(t, err, splinify.ErrDegree)
}

func TestConfigLayers(t *testing.T) {
	t.Setenv("SPLINIFY_DEGREE", "5")
	t.Setenv("SPLINIFY_MODE", "interpolate")
	path := writeFile(t, "config.yaml", "degree: 1\nrms: 0.25\nmax_knots: 7\n")

	cmd := &cobra.Command{}
	cmd.Flags().Int("degree", 3, "")
	require.NoError(t, cmd.Flags().Set("degree", "3"))

	cfg, err := loadConfig(cmd, path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Degree)
	assert.Equal(t, "interpolate", cfg.Mode)
	assert.Equal(t, 0.25, cfg.RMS)
	assert.Equal(t, 7, cfg.MaxKnots)
	assert.Equal(t, "function", cfg.Kind)
	assert.Equal(t, 0.8, cfg.ScaleRatio)
}

func TestConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(&cobra.Command{}, "")
	require.NoError(t, err)
	assert.Equal(t, Config{
		Kind:       "function",
		Degree:     3,
		Mode:       "smooth",
		MaxKnots:   50,
		ScaleRatio: 0.8,
		MaxIter:    40,
		Format:     "json",
	}, cfg)
}

func TestConfigValidate(t *testing.T) {
	valid := Config{Kind: "closed", Degree: 3, Mode: "smooth", MaxKnots: 1, ScaleRatio: 0.5, MaxIter: 1, Format: "yaml"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"kind", func(c *Config) { c.Kind = "surface" }, "Kind"},
		{"ratio", func(c *Config) { c.ScaleRatio = 1 }, "ScaleRatio"},
		{"format", func(c *Config) { c.Format = "xml" }, "Format"},
		{"even degree", func(c *Config) { c.Degree = 2 }, "odd degree"},
		{"cardinal", func(c *Config) { c.Mode = "cardinal" }, "spacing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.modify(&c)
			assert.ErrorContains(t, c.Validate(), tt.want)
		})
	}
}

func TestReadTable(t *testing.T) {
	tbl, err := readTable(strings.NewReader("# comment\nx, y\n0, 1\n1, 3\n"))
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 1}, {1, 3}}, tbl.cols)

	_, err = readTable(strings.NewReader("0,1\n1,x\n"))
	assert.ErrorContains(t, err, "line 2")

	_, err = readTable(strings.NewReader("x,y\n"))
	assert.ErrorContains(t, err, "no data rows")
}

package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/harbik/splinify"
	"gopkg.in/yaml.v3"
)

// table is numeric CSV data, stored column by column.
type table struct {
	cols [][]float64
}

func (t table) rows() int {
	if len(t.cols) == 0 {
		return 0
	}
	return len(t.cols[0])
}

// readTable reads comma separated numbers. Lines starting with # are
// skipped, as is a first row that does not parse as numbers.
func readTable(r io.Reader) (table, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	var t table
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return table{}, err
		}
		row := make([]float64, len(rec))
		for i, f := range rec {
			row[i], err = strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				break
			}
		}
		if err != nil {
			if line == 1 {
				continue
			}
			return table{}, fmt.Errorf("line %d: %w", line, err)
		}
		if t.cols == nil {
			t.cols = make([][]float64, len(row))
		}
		for i, v := range row {
			t.cols[i] = append(t.cols[i], v)
		}
	}
	if t.rows() == 0 {
		return table{}, errors.New("no data rows")
	}
	return t, nil
}

// requests turns the table into fit requests. Function data has an x
// column followed by one column per fitted function. Parametric and closed
// data has a parameter column followed by the coordinates, or only the
// coordinates if chord is set.
func (t table) requests(cfg Config) ([]splinify.Request, error) {
	switch cfg.Kind {
	case "function":
		if len(t.cols) < 2 {
			return nil, errors.New("function data needs an x and at least one y column")
		}
		reqs := make([]splinify.Request, 0, len(t.cols)-1)
		for _, y := range t.cols[1:] {
			reqs = append(reqs, splinify.FunctionRequest(t.cols[0], y, cfg.Degree))
		}
		return reqs, nil
	case "parametric", "closed":
		coords := t.cols
		var u []float64
		if !cfg.Chord {
			if len(t.cols) < 2 {
				return nil, errors.New("parametric data needs a parameter and at least one coordinate column")
			}
			u, coords = t.cols[0], t.cols[1:]
		}
		dim := len(coords)
		xn := make([]float64, 0, dim*t.rows())
		for i := range t.rows() {
			for _, c := range coords {
				xn = append(xn, c[i])
			}
		}
		if cfg.Kind == "closed" {
			return []splinify.Request{splinify.ClosedRequest(u, xn, cfg.Degree, dim)}, nil
		}
		return []splinify.Request{splinify.ParametricRequest(u, xn, cfg.Degree, dim)}, nil
	default:
		return nil, fmt.Errorf("unknown kind %q", cfg.Kind)
	}
}

// points returns the data to draw next to a curve: x and the first
// function for function data, the first two coordinates otherwise.
func (t table) points(cfg Config) ([]splinify.Point, error) {
	first := 0
	if cfg.Kind != "function" && !cfg.Chord {
		first = 1
	}
	if len(t.cols) < first+2 {
		return nil, fmt.Errorf("plotting needs %d data columns, got %d", first+2, len(t.cols))
	}
	pts := make([]splinify.Point, t.rows())
	for i := range pts {
		pts[i] = splinify.Pt(t.cols[first][i], t.cols[first+1][i])
	}
	return pts, nil
}

// openInput opens the named file, or stdin for "" and "-".
func openInput(name string, stdin io.Reader) (io.ReadCloser, error) {
	if name == "" || name == "-" {
		return io.NopCloser(stdin), nil
	}
	return os.Open(name)
}

// documentFormat returns the format of the named curve file, from its
// extension if it has a known one.
func documentFormat(name, fallback string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	default:
		return fallback
	}
}

// writeOutput calls write with the named file, or with stdout if name is
// empty. Errors closing the file are reported.
func writeOutput(stdout io.Writer, name string, write func(io.Writer) error) (err error) {
	if name == "" {
		return write(stdout)
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return write(f)
}

func writeCurves(w io.Writer, format string, curves []*splinify.SplineCurve) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(curves); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(curves)
}

func readCurves(r io.Reader, format string) ([]*splinify.SplineCurve, error) {
	var curves []*splinify.SplineCurve
	var err error
	if format == "yaml" {
		err = yaml.NewDecoder(r).Decode(&curves)
	} else {
		err = json.NewDecoder(r).Decode(&curves)
	}
	if err != nil {
		return nil, fmt.Errorf("reading curves: %w", err)
	}
	if len(curves) == 0 {
		return nil, errors.New("reading curves: empty document")
	}
	for i, sc := range curves {
		if sc == nil {
			return nil, fmt.Errorf("reading curves: curve %d: empty document", i)
		}
	}
	return curves, nil
}

// pickCurve selects curve i of the document in the named file.
func pickCurve(name string, stdin io.Reader, format string, i int) (*splinify.SplineCurve, error) {
	f, err := openInput(name, stdin)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	curves, err := readCurves(f, documentFormat(name, format))
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= len(curves) {
		return nil, fmt.Errorf("curve index %d out of range [0, %d)", i, len(curves))
	}
	return curves[i], nil
}

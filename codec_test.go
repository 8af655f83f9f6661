package splinify

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

func fittedCurve(t *testing.T) *SplineCurve {
	t.Helper()
	u, xy := circle(20)
	sc, err := mustSession(t, ClosedRequest(u, xy, 3, 2)).Smooth(0.01)
	if err != nil {
		t.Fatal(err)
	}
	return sc
}

func sameCurve(t *testing.T, want, got *SplineCurve) {
	t.Helper()
	diff(t, want.Knots(), got.Knots())
	diff(t, want.Coefficients(), got.Coefficients())
	diff(t, want.Degree(), got.Degree())
	diff(t, want.Dim(), got.Dim())
	wrms, wok := want.RMSError()
	grms, gok := got.RMSError()
	diff(t, wok, gok)
	diff(t, wrms, grms)
}

func TestJSONRoundTrip(t *testing.T) {
	sc := fittedCurve(t)
	b, err := json.Marshal(sc)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"t":`, `"c":`, `"k":3`, `"dim":2`, `"rms_error":`} {
		if !bytes.Contains(b, []byte(key)) {
			t.Errorf("%s lacks %s", b, key)
		}
	}
	got, err := ReadJSON(bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}
	sameCurve(t, sc, got)
}

func TestJSONOmitsUnknownRMS(t *testing.T) {
	sc, err := NewSplineCurve([]float64{0, 0, 1, 1}, []float64{2, 3}, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	b, err := json.Marshal(sc)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, `{"t":[0,0,1,1],"c":[2,3],"k":1,"dim":1}`, string(b))
}

func TestJSONRejectsInvalid(t *testing.T) {
	var sc SplineCurve
	err := sc.UnmarshalJSON([]byte(`{"t":[0,0,1,1],"c":[2,3,4],"k":1,"dim":1}`))
	if !errors.Is(err, ErrCoefficientLength) {
		t.Errorf("got %v, want ErrCoefficientLength", err)
	}
	if err := sc.UnmarshalJSON([]byte(`{"t":`)); err == nil {
		t.Error("truncated document accepted")
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	sc := fittedCurve(t)
	b, err := yaml.Marshal(sc)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "dim: 2") {
		t.Errorf("unexpected document:\n%s", b)
	}
	got, err := ReadYAML(bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}
	sameCurve(t, sc, got)
}

func TestYAMLRejectsInvalid(t *testing.T) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte("t: [0, 0, 1, 1]\nc: [2, 3]\nk: 2\ndim: 1\n"), &doc); err != nil {
		t.Fatal(err)
	}
	var sc SplineCurve
	if err := sc.UnmarshalYAML(doc.Content[0]); !errors.Is(err, ErrKnotVector) {
		t.Errorf("got %v, want ErrKnotVector", err)
	}
}

func TestReadNullDocument(t *testing.T) {
	for _, doc := range []string{"null", "{}"} {
		if sc, err := ReadJSON(strings.NewReader(doc)); err == nil {
			t.Errorf("JSON %q: got curve %v", doc, sc)
		}
	}
	for _, doc := range []string{"~\n", "null\n", "{}\n", ""} {
		if sc, err := ReadYAML(strings.NewReader(doc)); err == nil {
			t.Errorf("YAML %q: got curve %v", doc, sc)
		}
	}
	if _, err := ReadYAML(strings.NewReader("~\n")); !errors.Is(err, ErrDegree) {
		t.Errorf("got %v, want ErrDegree", err)
	}
}

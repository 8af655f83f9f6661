package splinify

import (
	"io"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// curveDocument is the serialized form of a SplineCurve, in JSON and
// YAML alike.
type curveDocument struct {
	T        []float64 `json:"t" yaml:"t,flow"`
	C        []float64 `json:"c" yaml:"c,flow"`
	K        int       `json:"k" yaml:"k"`
	Dim      int       `json:"dim" yaml:"dim"`
	RMSError *float64  `json:"rms_error,omitempty" yaml:"rms_error,omitempty"`
}

func (sc *SplineCurve) document() curveDocument {
	doc := curveDocument{T: sc.t, C: sc.c, K: sc.k, Dim: sc.dim}
	if sc.rms.isSet {
		rms := sc.rms.value
		doc.RMSError = &rms
	}
	return doc
}

// decode validates doc and stores it in sc.
func (sc *SplineCurve) decode(doc curveDocument) error {
	if err := checkCurve(doc.T, doc.C, doc.K, doc.Dim); err != nil {
		return err
	}
	*sc = SplineCurve{t: doc.T, c: doc.C, k: doc.K, dim: doc.Dim}
	if doc.RMSError != nil {
		sc.rms.set(*doc.RMSError)
	}
	return nil
}

// MarshalJSON encodes the curve as {"t": [...], "c": [...], "k": k, "dim":
// dim, "rms_error": rms}. The rms error is omitted if unknown.
func (sc *SplineCurve) MarshalJSON() ([]byte, error) {
	return json.Marshal(sc.document())
}

// UnmarshalJSON decodes a curve encoded by [SplineCurve.MarshalJSON]. The
// decoded curve is validated as by [NewSplineCurve].
func (sc *SplineCurve) UnmarshalJSON(b []byte) error {
	var doc curveDocument
	if err := json.Unmarshal(b, &doc); err != nil {
		return err
	}
	return sc.decode(doc)
}

// MarshalYAML encodes the curve as a mapping with the keys of
// [SplineCurve.MarshalJSON].
func (sc *SplineCurve) MarshalYAML() (any, error) {
	return sc.document(), nil
}

// UnmarshalYAML decodes and validates a curve encoded by
// [SplineCurve.MarshalYAML].
func (sc *SplineCurve) UnmarshalYAML(value *yaml.Node) error {
	var doc curveDocument
	if err := value.Decode(&doc); err != nil {
		return err
	}
	return sc.decode(doc)
}

// ReadJSON decodes one curve from r. A null document is rejected like any
// other invalid curve.
func ReadJSON(r io.Reader) (*SplineCurve, error) {
	var doc curveDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	sc := new(SplineCurve)
	if err := sc.decode(doc); err != nil {
		return nil, err
	}
	return sc, nil
}

// ReadYAML decodes one curve from r. Empty and null documents are
// rejected.
func ReadYAML(r io.Reader) (*SplineCurve, error) {
	var doc curveDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	sc := new(SplineCurve)
	if err := sc.decode(doc); err != nil {
		return nil, err
	}
	return sc, nil
}

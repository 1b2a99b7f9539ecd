// Package metadata assembles the descriptive record written next to the
// upscaling QC tables: canonical property and selector lists, resolved wells,
// display names per source and the ordering of categorical selector values.
package metadata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/upscalingqc/pkg/errors"
)

// Column names tagged onto extracted rows. They equal the JSON names of the
// entry fields below, so a row can always be matched to its entry.
const (
	ColumnLogrun     = "logrun"
	ColumnTrajectory = "trajectory"
	ColumnGrid       = "grid"
	ColumnName       = "name"
)

// Record is the metadata of one upscaling QC run.
type Record struct {
	Selectors            []string           `json:"selectors" yaml:"selectors"`
	Properties           []string           `json:"properties" yaml:"properties"`
	WellNames            []string           `json:"well_names" yaml:"well_names"`
	RawLogNames          []WellEntry        `json:"raw_log_names" yaml:"raw_log_names"`
	BWNames              []BlockedWellEntry `json:"bw_names" yaml:"bw_names"`
	GridNames            []GridEntry        `json:"grid_names" yaml:"grid_names"`
	SelectorValuesSorted SelectorValues     `json:"selector_values_sorted" yaml:"selector_values_sorted"`
}

// WellEntry describes one well source.
type WellEntry struct {
	Logrun      string `json:"logrun" yaml:"logrun"`
	Trajectory  string `json:"trajectory" yaml:"trajectory"`
	DisplayName string `json:"display_name" yaml:"display_name"`
}

// BlockedWellEntry describes one blocked well source.
type BlockedWellEntry struct {
	Name        string `json:"name" yaml:"name"`
	Grid        string `json:"grid" yaml:"grid"`
	DisplayName string `json:"display_name" yaml:"display_name"`
}

// GridEntry describes one grid source.
type GridEntry struct {
	Name        string `json:"name" yaml:"name"`
	DisplayName string `json:"display_name" yaml:"display_name"`
}

// SelectorOrder is the ordered value list of one selector.
type SelectorOrder struct {
	Selector string
	Values   []string
}

// SelectorValues maps selectors to their ordered values. It serializes as an
// object whose keys keep the selector order.
type SelectorValues []SelectorOrder

// Get returns the values of a selector.
func (s SelectorValues) Get(selector string) ([]string, bool) {
	for _, o := range s {
		if o.Selector == selector {
			return o.Values, true
		}
	}
	return nil, false
}

// MarshalJSON implements json.Marshaler.
func (s SelectorValues) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, o := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(o.Selector)
		if err != nil {
			return nil, err
		}
		values, err := json.Marshal(nonNil(o.Values))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(values)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler, keeping the key order.
func (s *SelectorValues) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*s = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("selector_values_sorted: expected an object")
	}
	out := SelectorValues{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("selector_values_sorted: expected a key")
		}
		var values []string
		if err := dec.Decode(&values); err != nil {
			return fmt.Errorf("selector_values_sorted.%s: %w", key, err)
		}
		out = append(out, SelectorOrder{Selector: key, Values: nonNil(values)})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*s = out
	return nil
}

// MarshalYAML implements yaml.InterfaceMarshaler.
func (s SelectorValues) MarshalYAML() (any, error) {
	out := make(yaml.MapSlice, 0, len(s))
	for _, o := range s {
		out = append(out, yaml.MapItem{Key: o.Selector, Value: nonNil(o.Values)})
	}
	return out, nil
}

// Encode writes the record as indented JSON. Empty lists are written as [].
func Encode(w io.Writer, rec *Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	return enc.Encode(rec.normalized())
}

// Marshal returns the JSON encoding of the record.
func Marshal(rec *Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, rec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads a record written by Encode.
func Decode(r io.Reader) (*Record, error) {
	var rec Record
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return nil, errors.WrapParse("json", "", err)
	}
	return rec.normalized(), nil
}

// ReadFile reads a metadata file.
func ReadFile(path string) (*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer func() { _ = f.Close() }()

	rec, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return rec, nil
}

// normalized returns a copy without nil lists.
func (r *Record) normalized() *Record {
	out := *r
	out.Selectors = nonNil(r.Selectors)
	out.Properties = nonNil(r.Properties)
	out.WellNames = nonNil(r.WellNames)
	if out.RawLogNames == nil {
		out.RawLogNames = []WellEntry{}
	}
	if out.BWNames == nil {
		out.BWNames = []BlockedWellEntry{}
	}
	if out.GridNames == nil {
		out.GridNames = []GridEntry{}
	}
	if out.SelectorValuesSorted == nil {
		out.SelectorValuesSorted = SelectorValues{}
	}
	return &out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

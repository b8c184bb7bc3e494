package page

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"gopkg.in/yaml.v3"

	"blockstyle/common"
)

// Occurrence is a single placement of a block on a page.
type Occurrence struct {
	// Key identifies occurrence across renders, position in layout is used
	// when empty.
	Key      string           `yaml:"key,omitempty"`
	Type     string           `yaml:"type"`
	Behavior *common.Behavior `yaml:"behavior,omitempty"`
	Props    map[string]any   `yaml:"props,omitempty"`
	Markup   string           `yaml:"markup,omitempty"`
}

// Layout is opaque page composition supplied by site builder.
type Layout struct {
	Title  string       `yaml:"title,omitempty"`
	Blocks []Occurrence `yaml:"blocks"`
}

// Decode reads layout document (YAML or JSON). When label is not empty it
// names character set of the document, otherwise non UTF-8 input is sniffed.
func Decode(r io.Reader, label string) (*Layout, error) {
	var err error
	if len(label) > 0 {
		if r, err = charset.NewReaderLabel(label, r); err != nil {
			return nil, fmt.Errorf("unable to decode layout from %s: %w", label, err)
		}
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read layout: %w", err)
	}
	if len(label) == 0 && !utf8.Valid(data) {
		enc, name, _ := charset.DetermineEncoding(data, "text/plain")
		if data, err = enc.NewDecoder().Bytes(data); err != nil {
			return nil, fmt.Errorf("unable to decode layout from %s: %w", name, err)
		}
	}

	var l Layout
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&l); err != nil {
		return nil, fmt.Errorf("failed to decode layout: %w", err)
	}
	for i, b := range l.Blocks {
		if b.Type == "" {
			return nil, fmt.Errorf("block %d has no type", i)
		}
	}
	return &l, nil
}

// Encode serializes layout as YAML.
func (l *Layout) Encode() ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := yaml.NewEncoder(buf)
	enc.SetIndent(2)
	if err := enc.Encode(l); err != nil {
		return nil, fmt.Errorf("unable to encode layout: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("unable to encode layout: %w", err)
	}
	return buf.Bytes(), nil
}

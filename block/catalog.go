// Package block describes block types a page is composed of: which
// breakpoint table they use, their default mobile behavior and style
// properties they accept. Catalog turns raw block occurrence properties into
// style specifications.
package block

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/maruel/natural"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"blockstyle/common"
	"blockstyle/css"
	"blockstyle/responsive"
	"blockstyle/style"
)

//go:embed catalog.yaml
var builtin []byte

// ErrUnknownType is returned for block types missing from catalog.
var ErrUnknownType = errors.New("unknown block type")

// PropertyDef declares one style property of block type.
type PropertyDef struct {
	Name     string              `yaml:"name"`
	Selector string              `yaml:"selector,omitempty"`
	Kind     common.PropertyKind `yaml:"kind"`
	CSS      string              `yaml:"css,omitempty"`
	Template string              `yaml:"template,omitempty"`
	Default  any                 `yaml:"default,omitempty"`
	Allowed  []string            `yaml:"allowed,omitempty"`
	Derive   *responsive.Factors `yaml:"derive,omitempty"`

	num style.Template[float64]
	str style.Template[string]
}

// Type is block type definition.
type Type struct {
	Name       string              `yaml:"-"`
	Variant    common.TableVariant `yaml:"variant"`
	Behavior   common.Behavior     `yaml:"behavior"`
	Overlay    style.OverlayParams `yaml:"overlay,omitempty"`
	Properties []*PropertyDef      `yaml:"properties"`
}

// Catalog is immutable set of block types, safe for concurrent use once
// loaded.
type Catalog struct {
	types map[string]*Type
}

// Default returns catalog of built-in block types.
func Default() (*Catalog, error) {
	return Load(builtin)
}

// Load parses catalog definition and prepares property templates.
func Load(data []byte) (*Catalog, error) {
	var types map[string]*Type

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&types); err != nil {
		return nil, fmt.Errorf("failed to decode block catalog: %w", err)
	}

	for name, t := range types {
		if t == nil {
			return nil, fmt.Errorf("block type %q is empty", name)
		}
		t.Name = name
		if t.Overlay.ItemSelector != "" && !confined(t.Overlay.ItemSelector) {
			return nil, fmt.Errorf("block type %q: item selector %q escapes block", name, t.Overlay.ItemSelector)
		}
		for _, p := range t.Properties {
			if err := p.prepare(name); err != nil {
				return nil, err
			}
		}
	}
	return &Catalog{types: types}, nil
}

// Merge returns catalog with types of other added, replacing same named ones.
func (c *Catalog) Merge(other *Catalog) *Catalog {
	types := make(map[string]*Type, len(c.types)+len(other.types))
	for n, t := range c.types {
		types[n] = t
	}
	for n, t := range other.types {
		types[n] = t
	}
	return &Catalog{types: types}
}

// Lookup returns block type by name.
func (c *Catalog) Lookup(name string) (*Type, error) {
	t, ok := c.types[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
	return t, nil
}

// Names returns block type names in natural order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.types))
	for n := range c.types {
		names = append(names, n)
	}
	slices.SortFunc(names, func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		}
		return 0
	})
	return names
}

// DisplayName returns human readable block type name, "call-to-action"
// becomes "Call To Action".
func DisplayName(name string) string {
	return cases.Title(language.English).String(strings.NewReplacer("-", " ", "_", " ").Replace(name))
}

func (p *PropertyDef) prepare(block string) error {
	if p.Name == "" {
		return fmt.Errorf("block type %q: property without name", block)
	}
	if !p.Kind.IsValid() {
		return fmt.Errorf("block type %q, property %q: invalid kind %s", block, p.Name, p.Kind)
	}
	if p.Template == "" && p.CSS == "" {
		return fmt.Errorf("block type %q, property %q: either css or template is required", block, p.Name)
	}
	if !confined(p.Selector) {
		return fmt.Errorf("block type %q, property %q: selector %q escapes block", block, p.Name, p.Selector)
	}

	name := block + "." + p.Name
	if p.Template != "" {
		var err error
		if p.Kind == common.PropertyKindNumber {
			p.num, err = style.TextTemplate[float64](name, p.Template)
		} else {
			p.str, err = style.TextTemplate[string](name, p.Template)
		}
		if err != nil {
			return fmt.Errorf("block type %q, property %q: %w", block, p.Name, err)
		}
		return nil
	}

	switch p.Kind {
	case common.PropertyKindNumber:
		p.num = style.Px[float64](p.CSS)
	case common.PropertyKindLength:
		p.str = style.Length[string](p.CSS)
	case common.PropertyKindColor:
		p.str = style.Color[string](p.CSS)
	case common.PropertyKindKeyword:
		p.str = style.Keyword[string](p.CSS, p.Allowed...)
	}
	return nil
}

// confined reports whether selector relative to block root stays inside it.
func confined(selector string) bool {
	const root = "block"
	return css.ScopedSelector(root, selector).ScopedTo(root)
}

// Package style compiles block style specifications into scoped, responsive
// stylesheets.
//
// Block supplies ordered property declarations (responsive value + template)
// and optional mobile behavior; Compiler resolves every property for every
// breakpoint of a table and emits base rule followed by media overrides, all
// rooted under the instance token class.
package style

import (
	"fmt"

	"blockstyle/common"
	"blockstyle/responsive"
)

// Property is one declared style property of a block.
type Property interface {
	// Name identifies property in logs.
	Name() string
	// Selector is relative to instance root: "" for the root itself, a
	// descendant selector (".title", "> *") or "&..." for root compounds.
	Selector() string
	// Resolve returns value at tier, false when there is nothing to emit.
	Resolve(tier common.Tier) (any, bool)
	// Render turns resolved value into declaration list text.
	Render(resolved any) (string, error)
}

// Decl is a typed property declaration.
type Decl[T responsive.Scalar] struct {
	name     string
	selector string
	value    responsive.Value[T]
	fallback *T
	derive   responsive.Derive[T]
	template Template[T]
}

// Prop declares property with responsive value.
func Prop[T responsive.Scalar](name string, value responsive.Value[T], tmpl Template[T]) *Decl[T] {
	return &Decl[T]{name: name, value: value, template: tmpl}
}

// Bind declares property from untyped block input (plain scalar or tier
// mapping). Malformed input leaves the value empty so only fallback, if any,
// is emitted.
func Bind[T responsive.Scalar](name string, raw any, tmpl Template[T]) *Decl[T] {
	v, _ := responsive.FromAny[T](raw)
	return Prop(name, v, tmpl)
}

// On sets selector relative to instance root.
func (d *Decl[T]) On(selector string) *Decl[T] {
	d.selector = selector
	return d
}

// Default sets value used when no tier up the chain has an entry.
func (d *Decl[T]) Default(v T) *Decl[T] {
	d.fallback = &v
	return d
}

// Derive sets derivation used for absent tablet and mobile entries.
func (d *Decl[T]) Derive(fn responsive.Derive[T]) *Decl[T] {
	d.derive = fn
	return d
}

// Name implements Property.
func (d *Decl[T]) Name() string {
	return d.name
}

// Selector implements Property.
func (d *Decl[T]) Selector() string {
	return d.selector
}

// Resolve implements Property.
func (d *Decl[T]) Resolve(tier common.Tier) (any, bool) {
	if d.value.IsEmpty() && d.fallback == nil {
		return nil, false
	}
	var fallback T
	if d.fallback != nil {
		fallback = *d.fallback
	} else if d.chainEmpty(tier) {
		return nil, false
	}
	return responsive.ResolveWith(d.value, tier, fallback, d.derive), true
}

// chainEmpty reports whether nothing from tier up to desktop is set.
func (d *Decl[T]) chainEmpty(tier common.Tier) bool {
	for t := tier; ; {
		if _, ok := d.value.At(t); ok {
			return false
		}
		wider, ok := t.Wider()
		if !ok {
			return true
		}
		t = wider
	}
}

// Render implements Property. Panics raised by template are converted to
// errors.
func (d *Decl[T]) Render(resolved any) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", ErrTemplate, d.name, r)
		}
	}()
	v, ok := resolved.(T)
	if !ok {
		return "", fmt.Errorf("%w: %s: unexpected %T", ErrMalformedValue, d.name, resolved)
	}
	if d.template == nil {
		return "", fmt.Errorf("%w: %s: no template", ErrTemplate, d.name)
	}
	return d.template(v)
}

package block

import (
	"blockstyle/common"
	"blockstyle/responsive"
	"blockstyle/style"
)

// Options carry engine wide settings applied to every block type.
type Options struct {
	// Factors replace zero factors of properties that ask for derivation.
	Factors responsive.Factors
	// Overlay supplies overlay parameters block type does not set.
	Overlay style.OverlayParams
	// Tables maps variant to breakpoint table, built-in table is used for
	// missing variants.
	Tables map[common.TableVariant]responsive.Table
}

// Table returns breakpoint table of block type.
func (t *Type) Table(opts Options) responsive.Table {
	if table, ok := opts.Tables[t.Variant]; ok && len(table) > 0 {
		return table
	}
	return responsive.TableFor(t.Variant)
}

// Spec builds fresh style specification for block occurrence. Props are raw
// occurrence properties keyed by property name, behavior overrides block
// type default when not nil. Unknown props are ignored.
func (t *Type) Spec(props map[string]any, behavior *common.Behavior, opts Options) style.Spec {
	spec := style.Spec{
		Behavior: t.Behavior,
		Overlay:  t.Overlay.Merge(opts.Overlay),
	}
	if behavior != nil && behavior.IsValid() {
		spec.Behavior = *behavior
	}
	for _, p := range t.Properties {
		raw := props[p.Name]
		if raw == nil && p.Default == nil {
			continue
		}
		spec.Add(p.property(raw, opts.Factors))
	}
	return spec
}

// property binds raw occurrence value. Absent value falls back to property
// default which, unlike plain occurrence value, is still subject to
// derivation.
func (p *PropertyDef) property(raw any, defaults responsive.Factors) style.Property {
	var factors responsive.Factors
	if p.Derive != nil {
		factors = *p.Derive
		if factors.IsZero() {
			factors = defaults
		}
	}

	if p.Kind == common.PropertyKindNumber {
		return bind(p, raw, p.num, func(d *style.Decl[float64]) {
			if !factors.IsZero() {
				d.Derive(responsive.ScaleNumber[float64](factors))
			}
		})
	}
	return bind(p, raw, p.str, func(d *style.Decl[string]) {
		if p.Kind == common.PropertyKindLength && !factors.IsZero() {
			d.Derive(responsive.ScaleLength[string](factors))
		}
	})
}

func bind[T responsive.Scalar](p *PropertyDef, raw any, tmpl style.Template[T], setup func(*style.Decl[T])) *style.Decl[T] {
	var d *style.Decl[T]
	def, hasDefault := defaultOf[T](p.Default)
	if raw == nil && hasDefault {
		d = style.Prop(p.Name, responsive.Of(def), tmpl)
	} else {
		d = style.Bind(p.Name, raw, tmpl)
	}
	if hasDefault {
		d.Default(def)
	}
	setup(d.On(p.Selector))
	return d
}

func defaultOf[T responsive.Scalar](raw any) (T, bool) {
	v, ok := responsive.FromAny[T](raw)
	if !ok {
		var zero T
		return zero, false
	}
	return v.At(common.TierDesktop)
}

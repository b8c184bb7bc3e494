// Package responsive implements per-breakpoint design tokens and the
// inheritance rules used to resolve them.
//
// A Value carries up to three tier entries. Absent entry means "inherit from
// the next wider tier", presence of an entry (even zero) always overrides.
// Values built from plain scalars resolve to the same thing everywhere and
// are never subject to derivation.
package responsive

import (
	"math"
	"reflect"
	"strconv"

	"gopkg.in/yaml.v3"

	"blockstyle/common"
)

// Scalar is any type property values may resolve to: numbers, lengths and
// colors as strings, and string or integer based enumerations.
type Scalar interface {
	~int | ~int64 | ~float64 | ~string
}

// Value is a responsive design token.
type Value[T Scalar] struct {
	Desktop *T
	Tablet  *T
	Mobile  *T

	plain bool
}

// Plain returns non-responsive constant.
func Plain[T Scalar](v T) Value[T] {
	return Value[T]{Desktop: &v, plain: true}
}

// Of returns responsive value with only desktop entry set.
func Of[T Scalar](desktop T) Value[T] {
	return Value[T]{Desktop: &desktop}
}

// Tiered returns responsive value with all three entries set.
func Tiered[T Scalar](desktop, tablet, mobile T) Value[T] {
	return Value[T]{Desktop: &desktop, Tablet: &tablet, Mobile: &mobile}
}

// With returns copy of v with entry for tier set to x. Setting an entry on
// a plain value turns it into responsive one.
func (v Value[T]) With(tier common.Tier, x T) Value[T] {
	out := Value[T]{Desktop: v.Desktop, Tablet: v.Tablet, Mobile: v.Mobile}
	switch tier {
	case common.TierDesktop:
		out.Desktop = &x
	case common.TierTablet:
		out.Tablet = &x
	case common.TierMobile:
		out.Mobile = &x
	}
	return out
}

// IsPlain reports whether value was specified as non-responsive constant.
func (v Value[T]) IsPlain() bool {
	return v.plain
}

// IsEmpty reports whether value has no entries at all.
func (v Value[T]) IsEmpty() bool {
	return v.Desktop == nil && v.Tablet == nil && v.Mobile == nil
}

// At returns entry explicitly set for tier, without inheritance.
func (v Value[T]) At(tier common.Tier) (T, bool) {
	var p *T
	switch tier {
	case common.TierDesktop:
		p = v.Desktop
	case common.TierTablet:
		p = v.Tablet
	case common.TierMobile:
		p = v.Mobile
	}
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}

// FromAny converts untyped property input into Value. Accepted forms are a
// plain T (numbers are widened or narrowed when exact), Value[T], *Value[T],
// and maps keyed by tier names. Entries of the wrong type are left absent.
// It returns false only when raw cannot be a value at all.
func FromAny[T Scalar](raw any) (Value[T], bool) {
	switch x := raw.(type) {
	case nil:
		return Value[T]{}, false
	case Value[T]:
		return x, true
	case *Value[T]:
		if x == nil {
			return Value[T]{}, false
		}
		return *x, true
	case map[string]any:
		var v Value[T]
		for k, e := range x {
			tier, err := common.ParseTier(k)
			if err != nil {
				continue
			}
			if s, ok := convert[T](e); ok {
				v = v.With(tier, s)
			}
		}
		return v, true
	case map[string]T:
		var v Value[T]
		for k, e := range x {
			if tier, err := common.ParseTier(k); err == nil {
				v = v.With(tier, e)
			}
		}
		return v, true
	}
	if s, ok := convert[T](raw); ok {
		return Plain(s), true
	}
	return Value[T]{}, false
}

// UnmarshalYAML accepts either a scalar or a mapping of tier names. It never
// fails: malformed entries are treated as absent.
func (v *Value[T]) UnmarshalYAML(node *yaml.Node) error {
	*v = Value[T]{}
	switch node.Kind {
	case yaml.ScalarNode:
		var raw any
		if err := node.Decode(&raw); err != nil {
			return nil
		}
		if s, ok := convert[T](raw); ok {
			*v = Plain(s)
		}
	case yaml.MappingNode:
		var raw map[string]any
		if err := node.Decode(&raw); err != nil {
			return nil
		}
		*v, _ = FromAny[T](raw)
	}
	return nil
}

// MarshalYAML writes plain values as scalars and responsive ones as mappings
// of present entries.
func (v Value[T]) MarshalYAML() (any, error) {
	if v.plain && v.Desktop != nil {
		return *v.Desktop, nil
	}
	out := make(map[string]T, 3)
	for _, tier := range common.TierValues() {
		if x, ok := v.At(tier); ok {
			out[tier.String()] = x
		}
	}
	return out, nil
}

// convert coerces decoded input to T. Numbers are formatted when T is string
// based and converted only when exact otherwise, strings are never parsed
// into numbers.
func convert[T Scalar](x any) (T, bool) {
	var out T
	if v, ok := x.(T); ok {
		return v, true
	}
	rv := reflect.ValueOf(&out).Elem()
	switch rv.Kind() {
	case reflect.String:
		if s, ok := x.(string); ok {
			rv.SetString(s)
			break
		}
		f, ok := toFloat(x)
		if !ok {
			return out, false
		}
		rv.SetString(strconv.FormatFloat(f, 'f', -1, 64))
	case reflect.Float64:
		f, ok := toFloat(x)
		if !ok {
			return out, false
		}
		rv.SetFloat(f)
	case reflect.Int, reflect.Int64:
		f, ok := toFloat(x)
		if !ok || f != math.Trunc(f) {
			return out, false
		}
		rv.SetInt(int64(f))
	default:
		return out, false
	}
	return out, true
}

func toFloat(x any) (float64, bool) {
	switch n := x.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return finite(float64(n))
	case float64:
		return finite(n)
	}
	return 0, false
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

package responsive

import (
	"blockstyle/common"
)

// Derive supplies a value for a tier that has no entry of its own before
// inheritance moves to the next wider tier. It is presentation policy of the
// caller, the resolver only decides when to ask.
type Derive[T Scalar] func(tier common.Tier, v Value[T]) (T, bool)

// Resolve returns value of v at tier following mobile -> tablet -> desktop ->
// fallback chain. Plain values are returned unchanged for every tier.
func Resolve[T Scalar](v Value[T], tier common.Tier, fallback T) T {
	return ResolveWith(v, tier, fallback, nil)
}

// ResolveWith is Resolve with optional derivation. For every tier visited on
// the way up that has no entry, derive is consulted first.
func ResolveWith[T Scalar](v Value[T], tier common.Tier, fallback T, derive Derive[T]) T {
	if v.plain {
		if v.Desktop != nil {
			return *v.Desktop
		}
		return fallback
	}
	if !tier.IsValid() {
		tier = common.TierDesktop
	}
	for t := tier; ; {
		if x, ok := v.At(t); ok {
			return x
		}
		if derive != nil {
			if x, ok := derive(t, v); ok {
				return x
			}
		}
		wider, ok := t.Wider()
		if !ok {
			break
		}
		t = wider
	}
	return fallback
}

// ResolveAny resolves untyped property input, see FromAny for accepted forms.
// Anything else resolves to fallback.
func ResolveAny[T Scalar](raw any, tier common.Tier, fallback T) T {
	v, ok := FromAny[T](raw)
	if !ok {
		return fallback
	}
	return Resolve(v, tier, fallback)
}

// Chain returns resolved value for every tier of the table, in table order.
func Chain[T Scalar](v Value[T], table Table, fallback T, derive Derive[T]) []T {
	out := make([]T, 0, len(table))
	for _, b := range table {
		out = append(out, ResolveWith(v, b.Tier, fallback, derive))
	}
	return out
}

package responsive

import (
	"math"
	"reflect"
	"strconv"

	"blockstyle/common"
	"blockstyle/css"
)

// Number is the subset of scalars derivation can scale.
type Number interface {
	~int | ~int64 | ~float64
}

// Factors are multipliers applied to desktop entry to derive absent tablet
// and mobile entries. Zero factor disables derivation for that tier.
type Factors struct {
	Tablet float64 `yaml:"tablet" validate:"gte=0"`
	Mobile float64 `yaml:"mobile" validate:"gte=0"`
}

// For returns factor for tier, desktop is never derived.
func (f Factors) For(tier common.Tier) float64 {
	switch tier {
	case common.TierTablet:
		return f.Tablet
	case common.TierMobile:
		return f.Mobile
	default:
		return 0
	}
}

// IsZero reports whether derivation is disabled for every tier.
func (f Factors) IsZero() bool {
	return f.Tablet == 0 && f.Mobile == 0
}

// ScaleNumber derives absent entries by scaling desktop entry. Integer
// results are rounded.
func ScaleNumber[T Number](f Factors) Derive[T] {
	return func(tier common.Tier, v Value[T]) (T, bool) {
		factor := f.For(tier)
		if factor == 0 || v.Desktop == nil {
			var zero T
			return zero, false
		}
		scaled := float64(*v.Desktop) * factor
		if reflect.TypeFor[T]().Kind() == reflect.Float64 {
			return T(roundTo(scaled, 2)), true
		}
		return T(math.Round(scaled)), true
	}
}

// ScaleLength derives absent entries of number-with-unit strings ("24px",
// "1.5rem") by scaling numeric part of desktop entry and keeping the unit.
// Desktop entries without numeric part are not derived.
func ScaleLength[T ~string](f Factors) Derive[T] {
	return func(tier common.Tier, v Value[T]) (T, bool) {
		factor := f.For(tier)
		if factor == 0 || v.Desktop == nil {
			return "", false
		}
		num, unit, ok := css.ParseDimension(string(*v.Desktop))
		if !ok {
			return "", false
		}
		return T(strconv.FormatFloat(roundTo(num*factor, 2), 'f', -1, 64) + unit), true
	}
}

func roundTo(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

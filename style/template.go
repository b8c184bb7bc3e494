package style

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"blockstyle/css"
	"blockstyle/responsive"
)

var (
	// ErrTemplate is reported when property template fails.
	ErrTemplate = errors.New("template failed")
	// ErrMalformedValue is reported when resolved value cannot be rendered.
	ErrMalformedValue = errors.New("malformed value")
)

// Template renders resolved value into one or more CSS declarations,
// e.g. "padding: 48px" or "display: flex; gap: 12px".
type Template[T responsive.Scalar] func(v T) (string, error)

// Format returns template formatting value with fmt verbs.
func Format[T responsive.Scalar](format string) Template[T] {
	return func(v T) (string, error) {
		return fmt.Sprintf(format, v), nil
	}
}

// Px renders numeric value in pixels.
func Px[T responsive.Number](property string) Template[T] {
	return func(v T) (string, error) {
		return property + ": " + strconv.FormatFloat(float64(v), 'f', -1, 64) + "px", nil
	}
}

// Length renders number-with-unit value. Bare numbers get px unit, anything
// that is not a dimension (except a few keywords) is malformed.
func Length[T ~string](property string) Template[T] {
	return func(v T) (string, error) {
		s := strings.TrimSpace(string(v))
		switch strings.ToLower(s) {
		case "auto", "none", "inherit", "initial", "unset", "fit-content", "max-content", "min-content":
			return property + ": " + s, nil
		}
		num, unit, ok := css.ParseDimension(s)
		if !ok {
			return "", fmt.Errorf("%w: %q is not a length", ErrMalformedValue, s)
		}
		if unit == "" {
			unit = "px"
		}
		return property + ": " + strconv.FormatFloat(num, 'f', -1, 64) + unit, nil
	}
}

var (
	hexColor  = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	funcColor = regexp.MustCompile(`^(?:rgba?|hsla?|hwb|lab|lch|oklab|oklch|color|var|color-mix)\([^;{}]*\)$`)
	namedWord = regexp.MustCompile(`^[a-zA-Z]+$`)
)

// ValidColor reports whether s looks like a CSS color value.
func ValidColor(s string) bool {
	s = strings.TrimSpace(s)
	return hexColor.MatchString(s) || funcColor.MatchString(s) || namedWord.MatchString(s)
}

// Color renders free-form color string, values that do not look like colors
// are malformed.
func Color[T ~string](property string) Template[T] {
	return func(v T) (string, error) {
		s := strings.TrimSpace(string(v))
		if !ValidColor(s) {
			return "", fmt.Errorf("%w: %q is not a color", ErrMalformedValue, s)
		}
		return property + ": " + s, nil
	}
}

// Keyword renders enumerated value, allowed lists accepted values (empty
// list accepts any identifier).
func Keyword[T ~string](property string, allowed ...string) Template[T] {
	return func(v T) (string, error) {
		s := strings.TrimSpace(string(v))
		if len(allowed) == 0 {
			if !namedWord.MatchString(strings.ReplaceAll(s, "-", "")) {
				return "", fmt.Errorf("%w: %q is not a keyword", ErrMalformedValue, s)
			}
			return property + ": " + s, nil
		}
		for _, a := range allowed {
			if a == s {
				return property + ": " + s, nil
			}
		}
		return "", fmt.Errorf("%w: %q is not one of %s", ErrMalformedValue, s, strings.Join(allowed, ", "))
	}
}

// TextTemplate parses Go text/template with slim-sprig functions. Resolved
// value is available as dot, e.g. `padding: {{ . }}px {{ div . 2 }}px`.
func TextTemplate[T responsive.Scalar](name, src string) (Template[T], error) {
	tmpl, err := template.New(name).Funcs(sprig.FuncMap()).Option("missingkey=error").Parse(src)
	if err != nil {
		return nil, fmt.Errorf("unable to parse template %s: %w", name, err)
	}
	return func(v T) (string, error) {
		buf := new(bytes.Buffer)
		if err := tmpl.Execute(buf, v); err != nil {
			return "", fmt.Errorf("%w: %w", ErrTemplate, err)
		}
		return strings.TrimSpace(buf.String()), nil
	}, nil
}

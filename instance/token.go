// Package instance issues scoping tokens for rendered block occurrences.
//
// A token is used verbatim as CSS class name, so it must be a valid
// identifier and unique among everything mounted on a page at the same time.
package instance

import (
	"regexp"
	"strings"

	"github.com/gosimple/slug"
)

// Token identifies one block occurrence, it is used as its root class.
type Token string

// DefaultPrefix is used when configuration does not provide one.
const DefaultPrefix = "bs"

func (t Token) String() string {
	return string(t)
}

// Selector returns class selector for the token.
func (t Token) Selector() string {
	return "." + string(t)
}

var validToken = regexp.MustCompile(`^-?[A-Za-z_][A-Za-z0-9_-]*$`)

// Valid reports whether token can be used as CSS class without escaping.
func Valid(t Token) bool {
	return len(t) > 0 && !strings.HasPrefix(string(t), "--") && validToken.MatchString(string(t))
}

// Sanitize turns arbitrary text (block type names, configured prefixes)
// into identifier fragment: lowercase ascii letters, digits and dashes,
// never starting with a digit. Empty result is replaced by DefaultPrefix.
func Sanitize(s string) string {
	out := slug.Make(s)
	if out == "" {
		return DefaultPrefix
	}
	if out[0] >= '0' && out[0] <= '9' {
		out = DefaultPrefix + "-" + out
	}
	return out
}

package css

import (
	"fmt"
	"io"
	"strings"
	"unicode"
)

// MediaQuery represents a parsed @media query condition. Only viewport width
// conditions are interpreted, anything else is kept in Raw.
type MediaQuery struct {
	Raw      string // Original media query string, e.g. "(max-width: 1024px)"
	MaxWidth int    // max-width in px, 0 when absent
	MinWidth int    // min-width in px, 0 when absent
}

// MaxWidthQuery returns media query matching viewports up to width pixels.
func MaxWidthQuery(width int) MediaQuery {
	return MediaQuery{Raw: fmt.Sprintf("(max-width: %dpx)", width), MaxWidth: width}
}

// Evaluate returns true if this media query matches viewport of given width.
func (mq MediaQuery) Evaluate(width int) bool {
	if mq.MaxWidth > 0 && width > mq.MaxWidth {
		return false
	}
	if mq.MinWidth > 0 && width < mq.MinWidth {
		return false
	}
	return true
}

// Value represents a parsed CSS property value.
type Value struct {
	Raw     string  // Original CSS value string (e.g., "1.2em", "bold", "#ff0000")
	Value   float64 // Numeric value if applicable
	Unit    string  // Unit if applicable: "em", "px", "%", "pt", etc.
	Keyword string  // Keyword if applicable: "bold", "italic", "center", etc.
}

// RawValue returns Value carrying only raw text.
func RawValue(raw string) Value {
	return Value{Raw: raw}
}

// IsNumeric returns true if the value has a numeric component.
// This includes explicit zero values like "0" or "0px".
func (v Value) IsNumeric() bool {
	// If there's a unit, it's definitely numeric
	if v.Unit != "" {
		return true
	}
	// Non-zero value with no keyword is numeric
	if v.Value != 0 && v.Keyword == "" {
		return true
	}
	// Check if Raw looks like a numeric value (handles "0" case)
	if v.Raw != "" && v.Keyword == "" {
		firstChar := rune(v.Raw[0])
		if unicode.IsDigit(firstChar) || firstChar == '.' || firstChar == '-' || firstChar == '+' {
			return true
		}
	}
	return false
}

// IsKeyword returns true if the value is a keyword (no numeric component).
func (v Value) IsKeyword() bool {
	return v.Keyword != "" && v.Unit == ""
}

// Declaration is a single "property: value" pair.
type Declaration struct {
	Property string
	Value    Value
}

// Decl is shorthand for a declaration with raw value.
func Decl(property, raw string) Declaration {
	return Declaration{Property: property, Value: RawValue(raw)}
}

func (d Declaration) String() string {
	return d.Property + ": " + d.Value.Raw
}

// Selector represents a parsed CSS selector. Only the leading class is
// interpreted since it decides which element subtree rule is rooted under.
type Selector struct {
	Raw   string // Original selector string
	Class string // Class of leftmost compound selector without dot, e.g. "bs-1" for ".bs-1 > *"
	Rest  string // Everything after leading class, e.g. " > *", ":hover", ".active"
}

// ParseSelector splits selector into its leading class and the rest.
func ParseSelector(raw string) Selector {
	raw = strings.TrimSpace(raw)
	sel := Selector{Raw: raw}
	if !strings.HasPrefix(raw, ".") {
		return sel
	}
	end := 1
	for end < len(raw) && isIdentByte(raw[end]) {
		end++
	}
	sel.Class = raw[1:end]
	sel.Rest = raw[end:]
	return sel
}

// ScopedSelector builds selector rooted under class. Rest is a descendant
// selector (".title", "> *") unless it starts with "&" in which case it is
// attached to the root compound ("&:hover", "&.active").
func ScopedSelector(class, rest string) Selector {
	rest = strings.TrimSpace(rest)
	switch {
	case rest == "":
		return ParseSelector("." + class)
	case strings.HasPrefix(rest, "&"):
		return ParseSelector("." + class + strings.TrimSpace(rest[1:]))
	default:
		return ParseSelector("." + class + " " + rest)
	}
}

// ScopedTo reports whether selector is rooted under element with class and
// can only match that element and its descendants. Grouping and sibling
// combinators are refused.
func (s Selector) ScopedTo(class string) bool {
	return class != "" && s.Class == class && confined(s.Rest)
}

// confined checks selector tail. Commas and combinators are allowed inside
// functional pseudo-classes and attribute brackets only. Characters able to
// end the rule or start another one are never allowed.
func confined(rest string) bool {
	if strings.Contains(rest, "/*") || strings.Contains(rest, "||") {
		return false
	}
	var (
		depth int
		quote byte
	)
	for i := 0; i < len(rest); i++ {
		c := rest[i]
		if quote != 0 {
			switch c {
			case quote:
				quote = 0
			case '{', '}', ';', '\\', '\n', '<':
				return false
			}
			continue
		}
		switch c {
		case '{', '}', ';', '\\', '@', '&', '<':
			return false
		case '"', '\'':
			quote = c
		case '(', '[':
			depth++
		case ')', ']':
			if depth--; depth < 0 {
				return false
			}
		case ',', '~', '+':
			if depth == 0 {
				return false
			}
		}
	}
	return depth == 0 && quote == 0
}

func isIdentByte(c byte) bool {
	return c == '-' || c == '_' || c >= 0x80 ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

// Rule represents a single CSS rule (selector + ordered declarations).
type Rule struct {
	Selector     Selector      // Parsed selector
	Declarations []Declaration // Declarations in source order
	SourceLine   int           // Line number in source for error reporting
}

// GetProperty returns the last value declared for a property.
func (r Rule) GetProperty(name string) (Value, bool) {
	for i := len(r.Declarations) - 1; i >= 0; i-- {
		if r.Declarations[i].Property == name {
			return r.Declarations[i].Value, true
		}
	}
	return Value{}, false
}

// StylesheetItem is a single top-level item in a stylesheet.
// Exactly one of Rule or MediaBlock is non-nil.
type StylesheetItem struct {
	Rule       *Rule       // A plain rule (selector + declarations)
	MediaBlock *MediaBlock // A @media block containing nested rules
}

// MediaBlock represents a @media block with its query and nested rules.
type MediaBlock struct {
	Query MediaQuery
	Rules []Rule
}

// Stylesheet represents an ordered CSS stylesheet. Order of items is
// significant: later items win the cascade for equal specificity.
type Stylesheet struct {
	Items    []StylesheetItem // All top-level items in source order
	Warnings []string         // Warnings for unsupported features
}

// IsEmpty reports whether stylesheet has nothing to emit.
func (s *Stylesheet) IsEmpty() bool {
	return s == nil || len(s.Items) == 0
}

// AddRule appends plain rule.
func (s *Stylesheet) AddRule(rule Rule) {
	s.Items = append(s.Items, StylesheetItem{Rule: &rule})
}

// AddMedia appends @media block, empty blocks are not added.
func (s *Stylesheet) AddMedia(query MediaQuery, rules []Rule) {
	if len(rules) == 0 {
		return
	}
	s.Items = append(s.Items, StylesheetItem{MediaBlock: &MediaBlock{Query: query, Rules: rules}})
}

// Append adds all items of other stylesheet after items of s.
func (s *Stylesheet) Append(other *Stylesheet) {
	if other.IsEmpty() {
		return
	}
	s.Items = append(s.Items, other.Items...)
	s.Warnings = append(s.Warnings, other.Warnings...)
}

// Rules returns all rules including ones nested in @media blocks, in source
// order.
func (s *Stylesheet) Rules() []Rule {
	if s == nil {
		return nil
	}
	var rules []Rule
	for _, item := range s.Items {
		switch {
		case item.Rule != nil:
			rules = append(rules, *item.Rule)
		case item.MediaBlock != nil:
			rules = append(rules, item.MediaBlock.Rules...)
		}
	}
	return rules
}

// RulesBySelector returns all top-level rules matching the given selector string.
func (s *Stylesheet) RulesBySelector(selector string) []Rule {
	var matches []Rule
	for _, item := range s.Items {
		if item.Rule != nil && item.Rule.Selector.Raw == selector {
			matches = append(matches, *item.Rule)
		}
	}
	return matches
}

// MediaBlocks returns all @media blocks in source order.
func (s *Stylesheet) MediaBlocks() []MediaBlock {
	var blocks []MediaBlock
	for _, item := range s.Items {
		if item.MediaBlock != nil {
			blocks = append(blocks, *item.MediaBlock)
		}
	}
	return blocks
}

// WriteTo writes the stylesheet to w in source order, implementing io.WriterTo.
// Declarations keep their order, output is deterministic.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	if s == nil {
		return 0, nil
	}
	for i, item := range s.Items {
		var n int
		var err error

		switch {
		case item.MediaBlock != nil:
			n, err = writeMediaBlock(w, item.MediaBlock)
		case item.Rule != nil:
			n, err = writeRule(w, item.Rule, "")
		}

		total += int64(n)
		if err != nil {
			return total, err
		}

		// Add blank line between items (except after last)
		if i < len(s.Items)-1 {
			n, err = fmt.Fprint(w, "\n")
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

// writeRule writes a single CSS rule to w with every line prefixed by indent.
func writeRule(w io.Writer, rule *Rule, indent string) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "%s%s {\n", indent, rule.Selector.Raw)
	total += n
	if err != nil {
		return total, err
	}
	for _, d := range rule.Declarations {
		n, err = fmt.Fprintf(w, "%s  %s: %s;\n", indent, d.Property, d.Value.Raw)
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err = fmt.Fprintf(w, "%s}\n", indent)
	total += n
	return total, err
}

// writeMediaBlock writes an @media block to w.
func writeMediaBlock(w io.Writer, mb *MediaBlock) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "@media %s {\n", mb.Query.Raw)
	total += n
	if err != nil {
		return total, err
	}

	for i := range mb.Rules {
		n, err = writeRule(w, &mb.Rules[i], "  ")
		total += n
		if err != nil {
			return total, err
		}

		// Blank line between rules in a media block (except after last)
		if i < len(mb.Rules)-1 {
			n, err = fmt.Fprint(w, "\n")
			total += n
			if err != nil {
				return total, err
			}
		}
	}

	n, err = fmt.Fprint(w, "}\n")
	total += n
	return total, err
}

package css

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"unicode"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// ErrMalformed is returned when text cannot be read as CSS declarations.
var ErrMalformed = errors.New("malformed css")

// Parser parses CSS stylesheets and declaration lists into structured form.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet.
// The optional source parameter identifies what's being parsed (for debug logging).
// At-rules other than @media are skipped and reported in Warnings.
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{
		Items:    make([]StylesheetItem, 0),
		Warnings: make([]string, 0),
	}

	// Log parsing start with source identifier if provided
	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	input := parse.NewInput(bytes.NewReader(data))
	parser := css.NewParser(input, false)
	var pending []string

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			// End of input or error
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				sheet.Warnings = append(sheet.Warnings, "parse error: "+err.Error())
				p.log.Debug("CSS parse error", zap.Error(err))
			}
			return sheet

		case css.BeginAtRuleGrammar:
			atRule := string(data)
			if atRule == "@media" {
				mq := p.parseMediaQueryFromTokens(parser.Values())
				rules := p.parseMediaBlockRules(parser, sheet)
				p.log.Debug("Parsed @media block", zap.String("query", mq.Raw), zap.Int("rules", len(rules)))
				sheet.Items = append(sheet.Items, StylesheetItem{
					MediaBlock: &MediaBlock{Query: mq, Rules: rules},
				})
				continue
			}
			p.skipAtRuleBlock(parser)
			sheet.Warnings = append(sheet.Warnings, "unsupported at-rule: "+atRule)
			p.log.Debug("Skipping @-rule", zap.String("rule", atRule))

		case css.AtRuleGrammar:
			// Simple @-rule without block (e.g., @import)
			atRule := string(data)
			sheet.Warnings = append(sheet.Warnings, "unsupported at-rule: "+atRule)
			p.log.Debug("Skipping @-rule", zap.String("rule", atRule))

		case css.QualifiedRuleGrammar:
			// all but the last selector of a group
			pending = append(pending, p.parseSelectors(data, parser.Values())...)

		case css.BeginRulesetGrammar:
			selectors := append(pending, p.parseSelectors(data, parser.Values())...)
			pending = nil
			decls := p.parseDeclarations(parser)
			for _, sel := range selectors {
				sheet.Items = append(sheet.Items, StylesheetItem{Rule: &Rule{
					Selector:     ParseSelector(sel),
					Declarations: slices.Clone(decls),
				}})
			}

		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			// Declarations outside of a ruleset have no owner
			sheet.Warnings = append(sheet.Warnings, "stray declaration or selector: "+string(data))
		}
	}
}

// ParseDeclarations parses an inline declaration list such as
// "padding: 48px; margin: 0 auto". Empty input yields no declarations.
// Anything but declarations is reported as ErrMalformed.
func (p *Parser) ParseDeclarations(text string) ([]Declaration, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	parser := css.NewParser(parse.NewInputString(text), true)

	var decls []Declaration
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
			}
			return decls, nil

		case css.DeclarationGrammar:
			values := parser.Values()
			if len(values) == 0 {
				return nil, fmt.Errorf("%w: property %q has no value", ErrMalformed, string(data))
			}
			decls = append(decls, Declaration{
				Property: strings.ToLower(string(data)),
				Value:    p.parsePropertyValue(values),
			})

		case css.CustomPropertyGrammar:
			decls = append(decls, Declaration{
				Property: string(data),
				Value:    p.parsePropertyValue(parser.Values()),
			})

		default:
			return nil, fmt.Errorf("%w: unexpected %s in %q", ErrMalformed, gt, text)
		}
	}
}

// parseSelectors extracts selector strings from token data.
func (p *Parser) parseSelectors(data []byte, values []css.Token) []string {
	// Build full selector string from data and values
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}

	selectorStr := sb.String()

	// Split by comma for grouped selectors
	var selectors []string
	for s := range strings.SplitSeq(selectorStr, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}

// parseDeclarations parses property declarations until EndRulesetGrammar.
func (p *Parser) parseDeclarations(parser *css.Parser) []Declaration {
	var decls []Declaration

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return decls

		case css.DeclarationGrammar:
			propName := strings.ToLower(string(data))
			values := parser.Values()
			if len(values) > 0 {
				decls = append(decls, Declaration{Property: propName, Value: p.parsePropertyValue(values)})
			}

		case css.CustomPropertyGrammar:
			decls = append(decls, Declaration{Property: string(data), Value: p.parsePropertyValue(parser.Values())})
		}
	}
}

// parsePropertyValue converts CSS tokens to a Value.
func (p *Parser) parsePropertyValue(tokens []css.Token) Value {
	if len(tokens) == 0 {
		return Value{}
	}

	// Build raw value string
	var rawParts []string
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			rawParts = append(rawParts, string(t.Data))
		} else if len(rawParts) > 0 {
			// Add space between non-whitespace tokens
			rawParts = append(rawParts, " ")
		}
	}
	raw := strings.TrimSpace(strings.Join(rawParts, ""))

	val := Value{Raw: raw}

	// Handle single token cases
	if len(tokens) == 1 || (len(tokens) == 2 && tokens[1].TokenType == css.WhitespaceToken) {
		t := tokens[0]
		switch t.TokenType {
		case css.DimensionToken:
			val.Value, val.Unit, _ = ParseDimension(string(t.Data))
		case css.PercentageToken:
			val.Value, _ = strconv.ParseFloat(strings.TrimSuffix(string(t.Data), "%"), 64)
			val.Unit = "%"
		case css.NumberToken:
			val.Value, _ = strconv.ParseFloat(string(t.Data), 64)
		case css.IdentToken:
			val.Keyword = strings.ToLower(string(t.Data))
		case css.StringToken:
			val.Keyword = unquote(string(t.Data))
		case css.HashToken:
			// Color value
			val.Keyword = string(t.Data)
		}
		return val
	}

	// Function tokens (rgb(), var(), etc.) and multi-value properties are kept
	// as keyword with raw value
	val.Keyword = raw
	return val
}

// ParseDimension splits number-with-unit string ("24px", "-1.5rem", "50%")
// into numeric value and lowercased unit. Bare numbers are accepted with
// empty unit. It returns false when s does not start with a number or the
// unit is not alphabetic.
func ParseDimension(s string) (float64, string, bool) {
	s = strings.TrimSpace(s)
	// Find where number ends
	numEnd := 0
	for i, r := range s {
		if unicode.IsDigit(r) || r == '.' || ((r == '-' || r == '+') && i == 0) {
			numEnd = i + 1
		} else {
			break
		}
	}

	if numEnd == 0 {
		return 0, "", false
	}

	num, err := strconv.ParseFloat(s[:numEnd], 64)
	if err != nil {
		return 0, "", false
	}
	unit := strings.ToLower(s[numEnd:])
	if unit != "%" {
		for _, r := range unit {
			if !unicode.IsLetter(r) {
				return 0, "", false
			}
		}
	}
	return num, unit, true
}

// skipAtRuleBlock skips tokens until the matching end of an @-rule block.
func (p *Parser) skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// parseMediaQueryFromTokens parses a media query from CSS tokens.
// Width conditions like "(max-width: 1024px)" are interpreted, everything
// else is preserved in Raw.
func (p *Parser) parseMediaQueryFromTokens(tokens []css.Token) MediaQuery {
	mq := MediaQuery{}

	var rawParts []string
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			rawParts = append(rawParts, string(t.Data))
		} else if len(rawParts) > 0 {
			rawParts = append(rawParts, " ")
		}
	}
	mq.Raw = strings.TrimSpace(strings.Join(rawParts, ""))

	var feature string
	for _, t := range tokens {
		switch t.TokenType {
		case css.IdentToken:
			feature = strings.ToLower(string(t.Data))
		case css.DimensionToken:
			num, unit, ok := ParseDimension(string(t.Data))
			if !ok || unit != "px" {
				feature = ""
				continue
			}
			switch feature {
			case "max-width":
				mq.MaxWidth = int(num)
			case "min-width":
				mq.MinWidth = int(num)
			}
			feature = ""
		}
	}
	return mq
}

// parseMediaBlockRules parses rules inside an @media block and returns them.
func (p *Parser) parseMediaBlockRules(parser *css.Parser, sheet *Stylesheet) []Rule {
	var (
		rules   []Rule
		pending []string
	)

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndAtRuleGrammar:
			return rules

		case css.BeginAtRuleGrammar:
			// nested at-rules are not supported
			sheet.Warnings = append(sheet.Warnings, "unsupported nested at-rule: "+string(data))
			p.skipAtRuleBlock(parser)

		case css.QualifiedRuleGrammar:
			pending = append(pending, p.parseSelectors(data, parser.Values())...)

		case css.BeginRulesetGrammar:
			selectors := append(pending, p.parseSelectors(data, parser.Values())...)
			pending = nil
			decls := p.parseDeclarations(parser)
			for _, sel := range selectors {
				rules = append(rules, Rule{
					Selector:     ParseSelector(sel),
					Declarations: slices.Clone(decls),
				})
			}
		}
	}
}

// unquote removes surrounding quotes from a string.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}

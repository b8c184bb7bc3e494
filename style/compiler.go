package style

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"blockstyle/common"
	"blockstyle/css"
	"blockstyle/instance"
	"blockstyle/responsive"
)

// ErrInvalidToken is returned when token cannot be used as class name.
var ErrInvalidToken = errors.New("invalid instance token")

// Spec is style specification of one block occurrence. It is built fresh on
// every render and owned by the render call.
type Spec struct {
	Properties []Property
	Behavior   common.Behavior
	Overlay    OverlayParams
}

// Add appends property declarations in order.
func (s *Spec) Add(props ...Property) *Spec {
	s.Properties = append(s.Properties, props...)
	return s
}

// Compiler turns specs into scoped stylesheets. It keeps no state between
// calls and is safe for concurrent use.
type Compiler struct {
	log    *zap.Logger
	parser *css.Parser
}

// NewCompiler creates compiler, nil logger is allowed.
func NewCompiler(log *zap.Logger) *Compiler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Compiler{log: log.Named("compiler"), parser: css.NewParser(log)}
}

// tierValue is resolved value of one property at one tier.
type tierValue struct {
	value any
	ok    bool
}

// Compile resolves every property for every breakpoint of table and builds
// stylesheet: base rules first, then one media block per narrower breakpoint
// carrying only properties whose value changed against the next wider tier,
// then mobile behavior overlay. Malformed properties are skipped.
func (c *Compiler) Compile(spec Spec, token instance.Token, table responsive.Table) (*css.Stylesheet, error) {
	if !instance.Valid(token) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidToken, token)
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}

	sheet := &css.Stylesheet{}
	if len(spec.Properties) == 0 && spec.Behavior == common.BehaviorStack {
		return sheet, nil
	}

	resolved := make([][]tierValue, len(spec.Properties))
	for i, p := range spec.Properties {
		resolved[i] = make([]tierValue, len(table))
		for j, b := range table {
			v, ok := p.Resolve(b.Tier)
			resolved[i][j] = tierValue{value: v, ok: ok}
		}
	}

	for j, b := range table {
		rb := newRuleBuilder(token)
		for i, p := range spec.Properties {
			cur := resolved[i][j]
			if !cur.ok {
				continue
			}
			if j > 0 {
				prev := resolved[i][j-1]
				if prev.ok && prev.value == cur.value {
					continue
				}
			}
			decls, err := c.render(p, cur.value)
			if err != nil {
				c.log.Debug("Skipping malformed property",
					zap.String("property", p.Name()), zap.Stringer("tier", b.Tier), zap.Stringer("token", token), zap.Error(err))
				continue
			}
			rb.add(p.Selector(), decls)
		}
		if b.Unbounded() {
			for _, r := range rb.rules() {
				sheet.AddRule(r)
			}
			continue
		}
		sheet.AddMedia(css.MaxWidthQuery(b.MaxWidth), rb.rules())
	}

	if rules := Overlay(spec.Behavior, token, spec.Overlay); len(rules) > 0 {
		if mobile, ok := table.Lookup(common.TierMobile); ok && !mobile.Unbounded() {
			sheet.AddMedia(css.MaxWidthQuery(mobile.MaxWidth), rules)
		} else {
			c.log.Debug("No mobile breakpoint, overlay ignored", zap.Stringer("behavior", spec.Behavior), zap.Stringer("token", token))
		}
	}
	return sheet, nil
}

// CompileText is Compile followed by serialization. Empty spec produces empty
// text.
func (c *Compiler) CompileText(spec Spec, token instance.Token, table responsive.Table) (string, error) {
	sheet, err := c.Compile(spec, token, table)
	if err != nil {
		return "", err
	}
	return sheet.String(), nil
}

// render runs property template and validates its output.
func (c *Compiler) render(p Property, v any) ([]css.Declaration, error) {
	text, err := p.Render(v)
	if err != nil {
		return nil, err
	}
	decls, err := c.parser.ParseDeclarations(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedValue, err)
	}
	return decls, nil
}

// ruleBuilder groups declarations by selector keeping first-seen order.
type ruleBuilder struct {
	token instance.Token
	order []string
	decls map[string][]css.Declaration
}

func newRuleBuilder(token instance.Token) *ruleBuilder {
	return &ruleBuilder{token: token, decls: make(map[string][]css.Declaration)}
}

func (rb *ruleBuilder) add(selector string, decls []css.Declaration) {
	if len(decls) == 0 {
		return
	}
	if _, ok := rb.decls[selector]; !ok {
		rb.order = append(rb.order, selector)
	}
	rb.decls[selector] = append(rb.decls[selector], decls...)
}

func (rb *ruleBuilder) rules() []css.Rule {
	rules := make([]css.Rule, 0, len(rb.order))
	for _, sel := range rb.order {
		rules = append(rules, css.Rule{
			Selector:     css.ScopedSelector(string(rb.token), sel),
			Declarations: rb.decls[sel],
		})
	}
	return rules
}

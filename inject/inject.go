// Package inject is the boundary where compiled block styles leave the
// engine: it checks that every rule is confined to its instance, serializes
// the stylesheet into a style element and tags block markup with the
// instance class.
package inject

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"go.uber.org/zap"

	"blockstyle/css"
	"blockstyle/instance"
)

// ErrUnscoped is returned when stylesheet contains anything that could
// affect elements outside of its instance.
var ErrUnscoped = errors.New("stylesheet is not scoped to instance")

// Fragment is injectable result for one block occurrence.
type Fragment struct {
	Token  instance.Token
	CSS    string // serialized stylesheet, safe to embed into style element
	Markup string // block markup with token class on its root, set by Wrap
}

// Injector validates and serializes compiled stylesheets. It is stateless and
// safe for concurrent use.
type Injector struct {
	log    *zap.Logger
	parser *css.Parser
}

// New creates injector, nil logger is allowed.
func New(log *zap.Logger) *Injector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Injector{log: log.Named("injector"), parser: css.NewParser(log)}
}

// InjectSheet checks that every rule of sheet, top level and inside media
// blocks, is rooted under token class and serializes it.
func (in *Injector) InjectSheet(sheet *css.Stylesheet, token instance.Token) (Fragment, error) {
	if err := checkToken(token); err != nil {
		return Fragment{}, err
	}
	if sheet.IsEmpty() {
		return Fragment{Token: token}, nil
	}
	if err := checkScope(sheet, token); err != nil {
		return Fragment{}, err
	}
	return Fragment{Token: token, CSS: escape(sheet.String())}, nil
}

// Inject accepts stylesheet text produced elsewhere. Text is parsed to apply
// the same scoping rule as InjectSheet, at-rules other than @media are
// rejected. Accepted text is kept verbatim.
func (in *Injector) Inject(text string, token instance.Token) (Fragment, error) {
	if err := checkToken(token); err != nil {
		return Fragment{}, err
	}
	if strings.TrimSpace(text) == "" {
		return Fragment{Token: token}, nil
	}
	sheet := in.parser.Parse([]byte(text), string(token))
	if len(sheet.Warnings) > 0 {
		in.log.Debug("Rejecting stylesheet", zap.Stringer("token", token), zap.Strings("warnings", sheet.Warnings))
		return Fragment{}, fmt.Errorf("%w: %s", ErrUnscoped, sheet.Warnings[0])
	}
	if err := checkScope(sheet, token); err != nil {
		return Fragment{}, err
	}
	return Fragment{Token: token, CSS: escape(text)}, nil
}

// Style returns style element carrying the fragment stylesheet, empty when
// there is nothing to inject.
func (f Fragment) Style() string {
	if f.CSS == "" {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(`<style data-instance="`)
	sb.WriteString(html.EscapeString(string(f.Token)))
	sb.WriteString("\">\n")
	sb.WriteString(f.CSS)
	if !strings.HasSuffix(f.CSS, "\n") {
		sb.WriteByte('\n')
	}
	sb.WriteString("</style>")
	return sb.String()
}

// HTML returns style element followed by wrapped markup.
func (f Fragment) HTML() string {
	style := f.Style()
	switch {
	case style == "":
		return f.Markup
	case f.Markup == "":
		return style
	}
	return style + "\n" + f.Markup
}

func checkToken(token instance.Token) error {
	if !instance.Valid(token) {
		return fmt.Errorf("%w: invalid token %q", ErrUnscoped, token)
	}
	return nil
}

func checkScope(sheet *css.Stylesheet, token instance.Token) error {
	for _, r := range sheet.Rules() {
		if !r.Selector.ScopedTo(string(token)) {
			return fmt.Errorf("%w: selector %q escapes .%s", ErrUnscoped, r.Selector.Raw, token)
		}
	}
	return nil
}

// escape keeps stylesheet text from closing the style element early.
func escape(text string) string {
	return strings.ReplaceAll(text, "</", `<\/`)
}

package inject

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"blockstyle/css"
)

func scopedSheet(token string) *css.Stylesheet {
	sheet := &css.Stylesheet{}
	sheet.AddRule(css.Rule{
		Selector:     css.ScopedSelector(token, ""),
		Declarations: []css.Declaration{css.Decl("padding", "48px")},
	})
	sheet.AddMedia(css.MaxWidthQuery(768), []css.Rule{{
		Selector:     css.ScopedSelector(token, ".title"),
		Declarations: []css.Declaration{css.Decl("font-size", "20px")},
	}})
	return sheet
}

func TestInjectSheet(t *testing.T) {
	in := New(zap.NewNop())
	f, err := in.InjectSheet(scopedSheet("bs-1"), "bs-1")
	if err != nil {
		t.Fatalf("InjectSheet() error = %v", err)
	}
	want := `<style data-instance="bs-1">
.bs-1 {
  padding: 48px;
}

@media (max-width: 768px) {
  .bs-1 .title {
    font-size: 20px;
  }
}
</style>`
	if got := f.Style(); got != want {
		t.Errorf("Style() =\n%s\nwant:\n%s", got, want)
	}
}

func TestInjectSheet_RejectsUnscoped(t *testing.T) {
	in := New(zap.NewNop())

	sheet := scopedSheet("bs-1")
	sheet.AddMedia(css.MaxWidthQuery(640), []css.Rule{{
		Selector:     css.ParseSelector("body"),
		Declarations: []css.Declaration{css.Decl("margin", "0")},
	}})
	if _, err := in.InjectSheet(sheet, "bs-1"); !errors.Is(err, ErrUnscoped) {
		t.Errorf("expected ErrUnscoped for global rule, got %v", err)
	}

	if _, err := in.InjectSheet(scopedSheet("bs-1"), "bs-2"); !errors.Is(err, ErrUnscoped) {
		t.Errorf("expected ErrUnscoped for foreign token, got %v", err)
	}
	if _, err := in.InjectSheet(scopedSheet("bs-10"), "bs-1"); !errors.Is(err, ErrUnscoped) {
		t.Errorf("expected ErrUnscoped for token with common prefix, got %v", err)
	}
	if _, err := in.InjectSheet(scopedSheet("bs-1"), "not a token"); !errors.Is(err, ErrUnscoped) {
		t.Errorf("expected ErrUnscoped for invalid token, got %v", err)
	}

	for _, rest := range []string{", body", "{} body", "~ p", "+ *", "&~ p", ".title, h1", "/* */ ~ p", ":not(.a"} {
		sheet := scopedSheet("bs-1")
		sheet.AddRule(css.Rule{
			Selector:     css.ScopedSelector("bs-1", rest),
			Declarations: []css.Declaration{css.Decl("color", "red")},
		})
		if _, err := in.InjectSheet(sheet, "bs-1"); !errors.Is(err, ErrUnscoped) {
			t.Errorf("expected ErrUnscoped for rest %q, got %v", rest, err)
		}
	}
}

func TestInject_Text(t *testing.T) {
	in := New(zap.NewNop())
	text := ".bs-1 { color: red }\n@media (max-width: 640px) { .bs-1 > * { flex: 0 0 85vw } }\n"

	a, err := in.Inject(text, "bs-1")
	if err != nil {
		t.Fatalf("Inject() error = %v", err)
	}
	b, err := in.Inject(text, "bs-1")
	if err != nil {
		t.Fatalf("Inject() error = %v", err)
	}
	if a != b {
		t.Errorf("Inject() is not deterministic")
	}
	if a.CSS != text {
		t.Errorf("text must be kept verbatim, got %q", a.CSS)
	}

	rejected := []string{
		"body { color: red }",
		".bs-1 { color: red } .other { color: blue }",
		".bs-1, h1 { color: red }",
		"h1, .bs-1 { color: red }",
		"@media (max-width: 640px) { body, .bs-1 { color: red } }",
		"@import url(x.css); .bs-1 { color: red }",
		"@font-face { font-family: x } .bs-1 { color: red }",
		".bs-1 ~ p { color: red }",
		".bs-1 + * { color: red }",
		"@media (max-width: 640px) { .bs-1 .title ~ p { color: red } }",
	}
	for _, text := range rejected {
		if _, err := in.Inject(text, "bs-1"); !errors.Is(err, ErrUnscoped) {
			t.Errorf("Inject(%q) expected ErrUnscoped, got %v", text, err)
		}
	}
}

func TestInject_EscapesClosingTag(t *testing.T) {
	in := New(zap.NewNop())
	f, err := in.Inject(`.bs-1::after { content: "</style><script>" }`, "bs-1")
	if err != nil {
		t.Fatalf("Inject() error = %v", err)
	}
	if strings.Contains(f.CSS, "</") {
		t.Errorf("closing sequence not escaped: %q", f.CSS)
	}
}

func TestInject_Empty(t *testing.T) {
	in := New(zap.NewNop())
	f, err := in.Inject("  \n", "bs-1")
	if err != nil {
		t.Fatalf("Inject() error = %v", err)
	}
	if f.Style() != "" {
		t.Errorf("expected no style element, got %q", f.Style())
	}
	if f, _ = f.Wrap("<p>x</p>"); f.HTML() != `<p class="bs-1">x</p>` {
		t.Errorf("HTML() = %q", f.HTML())
	}
}

func TestWrap(t *testing.T) {
	f := Fragment{Token: "bs-1"}
	tests := []struct {
		name, markup, want string
	}{
		{"root element", `<section><h2>Hi</h2></section>`, `<section class="bs-1"><h2>Hi</h2></section>`},
		{"existing class", `<div class="hero dark">x</div>`, `<div class="hero dark bs-1">x</div>`},
		{"surrounding whitespace", "\n  <div>x</div>\n", "\n  <div class=\"bs-1\">x</div>\n"},
		{"text only", `Hello`, `<div class="bs-1">Hello</div>`},
		{"several roots", `<p>a</p><p>b</p>`, `<div class="bs-1"><p>a</p><p>b</p></div>`},
		{"empty", ``, `<div class="bs-1"></div>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.Wrap(tt.markup)
			if err != nil {
				t.Fatalf("Wrap() error = %v", err)
			}
			if got.Markup != tt.want {
				t.Errorf("Wrap() = %q, want %q", got.Markup, tt.want)
			}
			again, err := got.Wrap(got.Markup)
			if err != nil {
				t.Fatalf("Wrap() error = %v", err)
			}
			if again.Markup != got.Markup {
				t.Errorf("Wrap() is not idempotent: %q -> %q", got.Markup, again.Markup)
			}
		})
	}
}

func TestFragment_HTML(t *testing.T) {
	in := New(nil)
	f, err := in.InjectSheet(scopedSheet("bs-3"), "bs-3")
	if err != nil {
		t.Fatalf("InjectSheet() error = %v", err)
	}
	f, err = f.Wrap(`<div class="pricing">x</div>`)
	if err != nil {
		t.Fatalf("Wrap() error = %v", err)
	}
	got := f.HTML()
	if !strings.HasPrefix(got, `<style data-instance="bs-3">`) || !strings.HasSuffix(got, "</style>\n"+`<div class="pricing bs-3">x</div>`) {
		t.Errorf("HTML() = %q", got)
	}
}

package style

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"blockstyle/common"
	"blockstyle/instance"
	"blockstyle/responsive"
)

func TestCompile_PaddingPerTier(t *testing.T) {
	c := NewCompiler(zap.NewNop())
	var spec Spec
	spec.Add(Prop("padding", responsive.Tiered(48, 32, 24), Px[int]("padding")))

	got, err := c.CompileText(spec, "bs-1", responsive.StandardTable())
	if err != nil {
		t.Fatalf("CompileText() error = %v", err)
	}
	want := `.bs-1 {
  padding: 48px;
}

@media (max-width: 1024px) {
  .bs-1 {
    padding: 32px;
  }
}

@media (max-width: 768px) {
  .bs-1 {
    padding: 24px;
  }
}
`
	if got != want {
		t.Errorf("CompileText() =\n%s\nwant:\n%s", got, want)
	}
}

func TestCompile_EmptySpec(t *testing.T) {
	c := NewCompiler(zap.NewNop())
	got, err := c.CompileText(Spec{}, "bs-1", responsive.StandardTable())
	if err != nil {
		t.Fatalf("CompileText() error = %v", err)
	}
	if got != "" {
		t.Errorf("expected empty stylesheet, got %q", got)
	}
}

func TestCompile_OnlyChangedValuesInMedia(t *testing.T) {
	c := NewCompiler(zap.NewNop())
	var spec Spec
	spec.Add(
		Prop("padding", responsive.Of(40).With(common.TierMobile, 16), Px[int]("padding")),
		Prop("color", responsive.Of("red"), Color[string]("color")),
	)

	sheet, err := c.Compile(spec, "bs-2", responsive.StandardTable())
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	blocks := sheet.MediaBlocks()
	if len(blocks) != 1 {
		t.Fatalf("expected 1 media block (tablet inherits desktop), got %d:\n%s", len(blocks), sheet)
	}
	if blocks[0].Query.MaxWidth != responsive.MobileMaxWidth {
		t.Errorf("expected mobile media block, got %q", blocks[0].Query.Raw)
	}
	if len(blocks[0].Rules) != 1 || len(blocks[0].Rules[0].Declarations) != 1 {
		t.Fatalf("expected single padding override, got:\n%s", sheet)
	}
	if d := blocks[0].Rules[0].Declarations[0]; d.Property != "padding" || d.Value.Raw != "16px" {
		t.Errorf("unexpected override %s", d)
	}
}

func TestCompile_EverySelectorScoped(t *testing.T) {
	c := NewCompiler(zap.NewNop())
	var spec Spec
	spec.Add(
		Prop("gap", responsive.Tiered("24px", "16px", "8px"), Length[string]("gap")),
		Prop("title", responsive.Tiered(32, 28, 20), Px[int]("font-size")).On(".title"),
		Prop("hover", responsive.Of("blue"), Color[string]("color")).On("&:hover"),
	)
	spec.Behavior = common.BehaviorCompactGrid

	const token = "bs-scoped"
	sheet, err := c.Compile(spec, token, responsive.NarrowTable())
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	for _, r := range sheet.Rules() {
		if !r.Selector.ScopedTo(token) {
			t.Errorf("rule %q is not scoped to %s", r.Selector.Raw, token)
		}
	}
	if got := sheet.RulesBySelector(".bs-scoped .title"); len(got) != 3 {
		t.Errorf("expected title rule per tier, got %d", len(got))
	}
	if got := sheet.RulesBySelector(".bs-scoped:hover"); len(got) != 1 {
		t.Errorf("expected single hover rule, got %d", len(got))
	}
}

func TestCompile_HorizontalScrollOverridesWrap(t *testing.T) {
	c := NewCompiler(zap.NewNop())
	var spec Spec
	spec.Add(Prop("wrap", responsive.Plain("wrap"), Keyword[string]("flex-wrap", "wrap", "nowrap")))
	spec.Behavior = common.BehaviorHorizontalScroll

	sheet, err := c.Compile(spec, "bs-3", responsive.StandardTable())
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	// last item must be mobile block carrying overlay
	last := sheet.Items[len(sheet.Items)-1]
	if last.MediaBlock == nil || last.MediaBlock.Query.MaxWidth != responsive.MobileMaxWidth {
		t.Fatalf("expected overlay in trailing mobile block, got:\n%s", sheet)
	}

	// effective value at 375px is the last declaration among matching rules
	var wrap string
	for _, item := range sheet.Items {
		switch {
		case item.Rule != nil && item.Rule.Selector.Raw == ".bs-3":
			if v, ok := item.Rule.GetProperty("flex-wrap"); ok {
				wrap = v.Raw
			}
		case item.MediaBlock != nil && item.MediaBlock.Query.Evaluate(375):
			for _, r := range item.MediaBlock.Rules {
				if r.Selector.Raw != ".bs-3" {
					continue
				}
				if v, ok := r.GetProperty("flex-wrap"); ok {
					wrap = v.Raw
				}
			}
		}
	}
	if wrap != "nowrap" {
		t.Errorf("effective flex-wrap at 375px = %q, want nowrap", wrap)
	}

	if rules := sheet.RulesBySelector(".bs-3 > *"); len(rules) != 1 {
		t.Errorf("expected overlay item rule, got %d", len(rules))
	} else if v, _ := rules[0].GetProperty("flex"); v.Raw != "0 0 85vw" {
		t.Errorf("item flex = %q", v.Raw)
	}
}

func TestCompile_OverlayWithoutMobileTier(t *testing.T) {
	c := NewCompiler(zap.NewNop())
	spec := Spec{Behavior: common.BehaviorHorizontalScroll}
	table := responsive.Table{{Tier: common.TierDesktop}, {Tier: common.TierTablet, MaxWidth: 900}}

	got, err := c.CompileText(spec, "bs-4", table)
	if err != nil {
		t.Fatalf("CompileText() error = %v", err)
	}
	if got != "" {
		t.Errorf("expected no overlay without mobile tier, got:\n%s", got)
	}
}

func TestCompile_FailingTemplateIsIsolated(t *testing.T) {
	c := NewCompiler(zap.NewNop())
	panicky := Template[int](func(v int) (string, error) {
		if v < 30 {
			panic("boom")
		}
		return Px[int]("margin")(v)
	})
	broken := Template[string](func(string) (string, error) {
		return "", errors.New("no luck")
	})

	var spec Spec
	spec.Add(
		Prop("margin", responsive.Tiered(48, 32, 24), panicky),
		Prop("border", responsive.Of("1px"), broken),
		Prop("body", responsive.Of("body { color: red }"), Format[string]("%s")),
		Prop("padding", responsive.Tiered(48, 32, 24), Px[int]("padding")),
	)

	sheet, err := c.Compile(spec, "bs-5", responsive.StandardTable())
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	out := sheet.String()
	if strings.Contains(out, "border") || strings.Contains(out, "color") {
		t.Errorf("malformed properties leaked into output:\n%s", out)
	}
	if !strings.Contains(out, "margin: 48px;") || !strings.Contains(out, "margin: 32px;") {
		t.Errorf("working tiers of margin are missing:\n%s", out)
	}
	if strings.Contains(out, "margin: 24px;") {
		t.Errorf("panicking tier was emitted:\n%s", out)
	}
	for _, want := range []string{"padding: 48px;", "padding: 32px;", "padding: 24px;"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestCompile_DerivedValues(t *testing.T) {
	c := NewCompiler(zap.NewNop())
	f := responsive.Factors{Tablet: 0.75, Mobile: 0.5}
	var spec Spec
	spec.Add(
		Prop("padding", responsive.Of(48), Px[int]("padding")).Derive(responsive.ScaleNumber[int](f)),
		Prop("gap", responsive.Of("2rem"), Length[string]("gap")).Derive(responsive.ScaleLength[string](f)),
	)

	out, err := c.CompileText(spec, "bs-6", responsive.StandardTable())
	if err != nil {
		t.Fatalf("CompileText() error = %v", err)
	}
	for _, want := range []string{"padding: 36px;", "padding: 24px;", "gap: 1.5rem;", "gap: 1rem;"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestCompile_TextTemplateAndBind(t *testing.T) {
	tmpl, err := TextTemplate[int]("padding", `padding: {{ . }}px {{ div . 2 }}px`)
	if err != nil {
		t.Fatalf("TextTemplate() error = %v", err)
	}
	c := NewCompiler(zap.NewNop())
	var spec Spec
	spec.Add(Bind("padding", map[string]any{"desktop": 40, "mobile": 20}, tmpl))

	sheet, err := c.Compile(spec, "bs-7", responsive.StandardTable())
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	rules := sheet.Rules()
	if len(rules) != 2 {
		t.Fatalf("expected base rule and mobile override, got:\n%s", sheet)
	}
	if v, _ := rules[0].GetProperty("padding"); v.Raw != "40px 20px" {
		t.Errorf("desktop padding = %q", v.Raw)
	}
	if v, _ := rules[1].GetProperty("padding"); v.Raw != "20px 10px" {
		t.Errorf("mobile padding = %q", v.Raw)
	}
}

func TestCompile_Rejects(t *testing.T) {
	c := NewCompiler(nil)
	if _, err := c.Compile(Spec{}, "1bad token", responsive.StandardTable()); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
	if _, err := c.Compile(Spec{}, "bs-1", responsive.Table{}); !errors.Is(err, responsive.ErrEmptyTable) {
		t.Errorf("expected ErrEmptyTable, got %v", err)
	}
}

func TestCompile_Deterministic(t *testing.T) {
	c := NewCompiler(zap.NewNop())
	build := func() Spec {
		var s Spec
		s.Add(
			Prop("padding", responsive.Tiered(48, 32, 24), Px[int]("padding")),
			Prop("title", responsive.Of("1.5rem").With(common.TierMobile, "1rem"), Length[string]("font-size")).On(".title"),
		)
		s.Behavior = common.BehaviorCompactGrid
		return s
	}
	token := instance.NewCounter("bs").Next()
	a, _ := c.CompileText(build(), token, responsive.StandardTable())
	b, _ := c.CompileText(build(), token, responsive.StandardTable())
	if a != b {
		t.Errorf("output is not deterministic:\n%s\n---\n%s", a, b)
	}
}

package style

import (
	"math"
	"strconv"

	"blockstyle/common"
	"blockstyle/css"
	"blockstyle/instance"
)

// OverlayParams tune structural mobile overrides.
type OverlayParams struct {
	ItemSelector    string           `yaml:"item_selector"`
	ItemWidth       float64          `yaml:"item_width" validate:"gte=0,lte=1"`
	Gap             string           `yaml:"gap"`
	Columns         int              `yaml:"columns" validate:"gte=0"`
	CompactPadding  string           `yaml:"compact_padding"`
	CompactFontSize string           `yaml:"compact_font_size"`
	Scrollbar       common.Scrollbar `yaml:"scrollbar"`
}

// DefaultOverlay returns parameters used when block does not override them.
func DefaultOverlay() OverlayParams {
	return OverlayParams{
		ItemSelector:    "> *",
		ItemWidth:       0.85,
		Gap:             "12px",
		Columns:         2,
		CompactPadding:  "12px",
		CompactFontSize: "0.875rem",
		Scrollbar:       common.ScrollbarThin,
	}
}

// Merge returns p with zero fields taken from defaults.
func (p OverlayParams) Merge(defaults OverlayParams) OverlayParams {
	if p.ItemSelector == "" {
		p.ItemSelector = defaults.ItemSelector
	}
	if p.ItemWidth <= 0 {
		p.ItemWidth = defaults.ItemWidth
	}
	if p.Gap == "" {
		p.Gap = defaults.Gap
	}
	if p.Columns <= 0 {
		p.Columns = defaults.Columns
	}
	if p.CompactPadding == "" {
		p.CompactPadding = defaults.CompactPadding
	}
	if p.CompactFontSize == "" {
		p.CompactFontSize = defaults.CompactFontSize
	}
	if p.Scrollbar == common.ScrollbarDefault {
		p.Scrollbar = defaults.Scrollbar
	}
	return p
}

// Overlay returns rules implementing mobile behavior for instance token.
// Stack is default flow and yields no rules. Caller places the rules in the
// narrowest media block after everything else so they win the cascade.
func Overlay(behavior common.Behavior, token instance.Token, params OverlayParams) []css.Rule {
	params = params.Merge(DefaultOverlay())
	root := css.ScopedSelector(string(token), "")
	items := css.ScopedSelector(string(token), params.ItemSelector)

	switch behavior {
	case common.BehaviorHorizontalScroll:
		width := strconv.FormatFloat(math.Round(params.ItemWidth*10000)/100, 'f', -1, 64) + "vw"
		container := []css.Declaration{
			css.Decl("display", "flex"),
			css.Decl("flex-direction", "row"),
			css.Decl("flex-wrap", "nowrap"),
			css.Decl("overflow-x", "auto"),
			css.Decl("scroll-snap-type", "x mandatory"),
			css.Decl("-webkit-overflow-scrolling", "touch"),
			css.Decl("gap", params.Gap),
		}
		switch params.Scrollbar {
		case common.ScrollbarThin:
			container = append(container, css.Decl("scrollbar-width", "thin"))
		case common.ScrollbarHidden:
			container = append(container, css.Decl("scrollbar-width", "none"))
		}
		rules := []css.Rule{
			{Selector: root, Declarations: container},
			{Selector: items, Declarations: []css.Declaration{
				css.Decl("flex", "0 0 "+width),
				css.Decl("max-width", width),
				css.Decl("scroll-snap-align", "start"),
			}},
		}
		switch params.Scrollbar {
		case common.ScrollbarThin:
			rules = append(rules,
				css.Rule{Selector: css.ScopedSelector(string(token), "&::-webkit-scrollbar"),
					Declarations: []css.Declaration{css.Decl("height", "6px")}},
				css.Rule{Selector: css.ScopedSelector(string(token), "&::-webkit-scrollbar-thumb"),
					Declarations: []css.Declaration{css.Decl("background", "rgba(0, 0, 0, 0.2)"), css.Decl("border-radius", "3px")}},
			)
		case common.ScrollbarHidden:
			rules = append(rules,
				css.Rule{Selector: css.ScopedSelector(string(token), "&::-webkit-scrollbar"),
					Declarations: []css.Declaration{css.Decl("display", "none")}},
			)
		}
		return rules

	case common.BehaviorCompactGrid:
		return []css.Rule{
			{Selector: root, Declarations: []css.Declaration{
				css.Decl("display", "grid"),
				css.Decl("grid-template-columns", "repeat("+strconv.Itoa(params.Columns)+", minmax(0, 1fr))"),
				css.Decl("gap", params.Gap),
			}},
			{Selector: items, Declarations: []css.Declaration{
				css.Decl("min-width", "0"),
				css.Decl("padding", params.CompactPadding),
				css.Decl("font-size", params.CompactFontSize),
			}},
		}
	}
	return nil
}

package responsive

import (
	"errors"
	"fmt"

	"blockstyle/common"
)

// Thresholds are public contract shared by all saved content, changing them
// changes how existing pages look.
const (
	TabletMaxWidth       = 1024
	MobileMaxWidth       = 768
	NarrowMobileMaxWidth = 640
)

// Breakpoint is a tier with maximum viewport width its overrides apply to.
// Zero MaxWidth means unbounded: base rule, no media query.
type Breakpoint struct {
	Tier     common.Tier `yaml:"tier"`
	MaxWidth int         `yaml:"max_width" validate:"gte=0"`
}

// Unbounded reports whether breakpoint is emitted as base rule.
func (b Breakpoint) Unbounded() bool {
	return b.MaxWidth <= 0
}

// MediaQuery returns media condition for the breakpoint, empty for unbounded one.
func (b Breakpoint) MediaQuery() string {
	if b.Unbounded() {
		return ""
	}
	return fmt.Sprintf("(max-width: %dpx)", b.MaxWidth)
}

func (b Breakpoint) String() string {
	if b.Unbounded() {
		return b.Tier.String()
	}
	return fmt.Sprintf("%s<=%dpx", b.Tier, b.MaxWidth)
}

// Table is ordered list of breakpoints, widest first.
type Table []Breakpoint

var (
	ErrEmptyTable      = errors.New("breakpoint table is empty")
	ErrTableNotDesktop = errors.New("first breakpoint must be unbounded desktop")
	ErrTableOrder      = errors.New("breakpoints must be ordered by strictly decreasing width")
)

// StandardTable returns desktop, tablet (<=1024px) and mobile (<=768px).
func StandardTable() Table {
	return Table{
		{Tier: common.TierDesktop},
		{Tier: common.TierTablet, MaxWidth: TabletMaxWidth},
		{Tier: common.TierMobile, MaxWidth: MobileMaxWidth},
	}
}

// NarrowTable returns desktop, tablet (<=1024px) and mobile (<=640px).
func NarrowTable() Table {
	return Table{
		{Tier: common.TierDesktop},
		{Tier: common.TierTablet, MaxWidth: TabletMaxWidth},
		{Tier: common.TierMobile, MaxWidth: NarrowMobileMaxWidth},
	}
}

// TableFor returns built-in table for the variant.
func TableFor(variant common.TableVariant) Table {
	if variant == common.TableVariantNarrow {
		return NarrowTable()
	}
	return StandardTable()
}

// Validate checks table invariants: desktop first and unbounded, every other
// breakpoint bounded, tiers and widths strictly decreasing.
func (t Table) Validate() error {
	if len(t) == 0 {
		return ErrEmptyTable
	}
	if t[0].Tier != common.TierDesktop || !t[0].Unbounded() {
		return ErrTableNotDesktop
	}
	for i := 1; i < len(t); i++ {
		prev, cur := t[i-1], t[i]
		if !cur.Tier.IsValid() || cur.Tier <= prev.Tier {
			return fmt.Errorf("%w: tier %s after %s", ErrTableOrder, cur.Tier, prev.Tier)
		}
		if cur.Unbounded() || (!prev.Unbounded() && cur.MaxWidth >= prev.MaxWidth) {
			return fmt.Errorf("%w: %s after %s", ErrTableOrder, cur, prev)
		}
	}
	return nil
}

// Lookup returns breakpoint for the tier.
func (t Table) Lookup(tier common.Tier) (Breakpoint, bool) {
	for _, b := range t {
		if b.Tier == tier {
			return b, true
		}
	}
	return Breakpoint{}, false
}

// Narrowest returns last (smallest) breakpoint of the table.
func (t Table) Narrowest() Breakpoint {
	if len(t) == 0 {
		return Breakpoint{Tier: common.TierDesktop}
	}
	return t[len(t)-1]
}

// TierForWidth returns the narrowest tier whose range includes viewport width.
func (t Table) TierForWidth(width int) common.Tier {
	tier := common.TierDesktop
	for _, b := range t {
		if b.Unbounded() || width <= b.MaxWidth {
			tier = b.Tier
		}
	}
	return tier
}

// Package common keeps enumerations shared by the engine, configuration and
// command line so none of them has to import the others.
package common

//go:generate go tool go-enum --marshal --names --values

// Breakpoint tier, widest first. Order matters: inheritance walks from a
// tier towards TierDesktop.
// ENUM(desktop, tablet, mobile)
type Tier int

// Wider returns next wider tier and false when called on desktop.
func (t Tier) Wider() (Tier, bool) {
	if t <= TierDesktop || !t.IsValid() {
		return TierDesktop, false
	}
	return t - 1, true
}

// Alternate mobile layout applied as structural override at the narrowest
// breakpoint.
// ENUM(stack, horizontal-scroll, compact-grid)
type Behavior int

// Instance token generation strategy.
// ENUM(counter, random, path)
type TokenStrategy int

// Scrollbar styling for horizontally scrolled blocks. Default defers to
// engine setting.
// ENUM(default, thin, hidden, auto)
type Scrollbar int

// Breakpoint table variant. Blocks differ in mobile cutoff: 768px for
// standard, 640px for narrow.
// ENUM(standard, narrow)
type TableVariant int

// Kind of catalog property value, decides value type, built-in template and
// validation.
// ENUM(length, number, color, keyword)
type PropertyKind int

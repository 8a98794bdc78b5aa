package cellmodel

import (
	"patchdisplay/internal/protocol"
	"patchdisplay/internal/surface"
)

// Mode is the mutually-exclusive rendering mode a cell is in (§3
// invariant 1).
type Mode int

const (
	ModeText Mode = iota
	ModeBar
	ModeRing
)

// defaultRingStyle is pushed the first time a cell enters Ring mode
// without an explicit RING/RINGSET style command (§4.5).
func defaultRingStyle() surface.RingStyle {
	return surface.RingStyle{
		FgOuter: "#606060", FgInner: "#ffffff", Bg: "#000000",
		SizePx: 280, WidthOuter: 10, WidthInner: 27,
	}
}

// lastApplied caches the most recent value of each dedup-eligible text
// attribute actually pushed to the Surface (§3 invariant 6). Presence
// flags distinguish "never set" from "set to the zero value".
type lastApplied struct {
	text   string
	hasTxt bool
	fg     string
	hasFg  bool
	bg     string
	hasBg  bool
	anchor protocol.Anchor
	hasAnc bool
}

// ringState is Ring-mode sub-state (§3). It is released in full on any
// transition away from Ring.
type ringState struct {
	outerVal, innerVal     int
	extra1Val, extra2Val   int
	centerOverride         string
	hasCenterOverride      bool
	style                  surface.RingStyle
	styled                 bool
}

// Cell is one addressable grid cell's full state (§3).
type Cell struct {
	mode     Mode
	text     string
	fg, bg   string
	anchor   protocol.Anchor
	barValue int
	ring     ringState
	last     lastApplied
}

func newCell() *Cell {
	return &Cell{anchor: protocol.AnchorLeft}
}

// Mode reports the cell's current rendering mode.
func (c *Cell) Mode() Mode { return c.mode }

// BarValue reports the cell's current bar value (only meaningful in
// Bar mode).
func (c *Cell) BarValue() int { return c.barValue }

// RingValues reports outer/inner/extra1/extra2 (only meaningful in
// Ring mode).
func (c *Cell) RingValues() (outer, inner, extra1, extra2 int) {
	return c.ring.outerVal, c.ring.innerVal, c.ring.extra1Val, c.ring.extra2Val
}

// Text reports the cell's current text (only meaningful in Text mode).
func (c *Cell) Text() string { return c.text }

// Package cellmodel implements the Cell Model (§4.5): the per-cell
// state machine governing the mutually-exclusive Text/Bar/Ring render
// modes, dispatched from coalesced Commands onto a Surface.
package cellmodel

import (
	"strconv"

	"patchdisplay/internal/colorutil"
	"patchdisplay/internal/protocol"
	"patchdisplay/internal/ringgeom"
	"patchdisplay/internal/surface"
)

// Model owns every cell in the grid and the Surface they render
// through. It implements coalesce.Applier.
type Model struct {
	geometry Geometry
	surf     surface.Surface
	cells    [][]*Cell
}

// New builds a Model with one Cell per address in geometry, all
// starting in Text mode (§3 lifecycle).
func New(geometry Geometry, surf surface.Surface) *Model {
	cells := make([][]*Cell, geometry.Rows)
	for r := 0; r < geometry.Rows; r++ {
		cells[r] = make([]*Cell, geometry.ColsPerRow[r])
		for c := range cells[r] {
			cells[r][c] = newCell()
		}
	}
	return &Model{geometry: geometry, surf: surf, cells: cells}
}

// Cell returns the cell at (r, c), or nil if out of range. Intended
// for tests and telemetry, not for the hot apply path.
func (m *Model) Cell(r, c int) *Cell {
	if !m.geometry.Valid(r, c) {
		return nil
	}
	return m.cells[r][c]
}

// Apply dispatches cmd to the appropriate mutator by its Kind. Unknown
// kinds are ignored. This is the sole entry point the Coalescer calls.
func (m *Model) Apply(cmd protocol.Command) {
	switch cmd.Kind {
	case protocol.KindSet:
		m.setCell(cmd.Row, cmd.Col, cmd.Text, cmd.Fg, cmd.Bg, cmd.Align, cmd.HasAlign)
	case protocol.KindBG:
		m.setBg(cmd.Row, cmd.Col, cmd.Bg)
	case protocol.KindAlign:
		m.setAlign(cmd.Row, cmd.Col, cmd.Align)
	case protocol.KindBar:
		m.setBarValue(cmd.Row, cmd.Col, cmd.BarValue)
	case protocol.KindRingStyle:
		m.setRingStyle(cmd.Row, cmd.Col, styleFromCommand(cmd))
	case protocol.KindRingValue:
		m.setRingValue(cmd.Row, cmd.Col, cmd.Outer, cmd.Inner, cmd.CenterText, cmd.HasCenter)
	case protocol.KindRingSet:
		m.setRingStyle(cmd.Row, cmd.Col, styleFromCommand(cmd))
		m.setRingValue(cmd.Row, cmd.Col, cmd.Outer, cmd.Inner, "", false)
	case protocol.KindArc:
		m.setRingExtras(cmd.Row, cmd.Col, cmd.Arc1, cmd.Arc2)
	}
}

func styleFromCommand(cmd protocol.Command) surface.RingStyle {
	return surface.RingStyle{
		FgOuter: cmd.FgOuter, FgInner: cmd.FgInner, Bg: cmd.RingBg,
		SizePx: cmd.SizePx, WidthOuter: cmd.WidthOuter, WidthInner: cmd.WidthInner,
	}
}

// teardownMode releases whatever mode-specific sub-state cell
// currently holds, in preparation for a mode switch. It must be called
// before the cell's mode field changes (§3 invariant 2).
func (m *Model) teardownMode(cell *Cell, r, c int) {
	switch cell.mode {
	case ModeBar:
		m.surf.EndBar(r, c)
		cell.barValue = 0
	case ModeRing:
		m.surf.EndRing(r, c)
		cell.ring = ringState{}
	}
}

// setCell implements the implicit SET command: text/fg/bg/align, with
// per-attribute dedup against last_applied (P5) and a mode switch to
// Text if the cell isn't already there and text is non-empty.
func (m *Model) setCell(r, c int, text, fg, bg string, align protocol.Anchor, hasAlign bool) {
	if !m.geometry.Valid(r, c) {
		return
	}
	cell := m.cells[r][c]

	if text != "" && cell.mode != ModeText {
		m.teardownMode(cell, r, c)
		cell.mode = ModeText
	}

	if text != "" && (!cell.last.hasTxt || cell.last.text != text) {
		m.surf.SetText(r, c, text)
		cell.text = text
		cell.last.text, cell.last.hasTxt = text, true
	}

	if fg != "" && colorutil.Validate(fg) {
		fg = colorutil.Normalize(fg)
		if !cell.last.hasFg || cell.last.fg != fg {
			m.surf.SetFg(r, c, fg)
			cell.fg = fg
			cell.last.fg, cell.last.hasFg = fg, true
		}
	}

	if bg != "" && colorutil.Validate(bg) {
		bg = colorutil.Normalize(bg)
		if !cell.last.hasBg || cell.last.bg != bg {
			m.surf.SetBg(r, c, bg)
			cell.bg = bg
			cell.last.bg, cell.last.hasBg = bg, true
		}
	}

	if hasAlign && (!cell.last.hasAnc || cell.last.anchor != align) {
		m.surf.SetAnchor(r, c, align)
		cell.anchor = align
		cell.last.anchor, cell.last.hasAnc = align, true
	}
}

func (m *Model) setBg(r, c int, bg string) {
	if !m.geometry.Valid(r, c) || !colorutil.Validate(bg) {
		return
	}
	bg = colorutil.Normalize(bg)
	cell := m.cells[r][c]
	if !cell.last.hasBg || cell.last.bg != bg {
		m.surf.SetBg(r, c, bg)
		cell.bg = bg
		cell.last.bg, cell.last.hasBg = bg, true
	}
}

func (m *Model) setAlign(r, c int, align protocol.Anchor) {
	if !m.geometry.Valid(r, c) {
		return
	}
	cell := m.cells[r][c]
	if !cell.last.hasAnc || cell.last.anchor != align {
		m.surf.SetAnchor(r, c, align)
		cell.anchor = align
		cell.last.anchor, cell.last.hasAnc = align, true
	}
}

// setBarValue implements BAR (§4.5). Only accepted on designated bar
// rows (§3 invariant 3, P7).
func (m *Model) setBarValue(r, c, v int) {
	if !m.geometry.Valid(r, c) || !m.geometry.IsBarRow(r) {
		return
	}
	cell := m.cells[r][c]
	if cell.mode != ModeBar {
		m.teardownMode(cell, r, c)
		cell.mode = ModeBar
		m.surf.BeginBar(r, c)
	}
	v = ringgeom.Clamp(v)
	cell.barValue = v
	m.surf.SetBarValue(r, c, v)
}

// ensureRingMode switches cell into Ring mode if needed, and pushes the
// default ring style (§4.5) if the cell has never been explicitly
// styled.
func (m *Model) ensureRingMode(cell *Cell, r, c int) {
	if cell.mode != ModeRing {
		m.teardownMode(cell, r, c)
		cell.mode = ModeRing
	}
	if !cell.ring.styled {
		cell.ring.style = defaultRingStyle()
		m.surf.BeginRing(r, c, cell.ring.style)
		cell.ring.styled = true
	}
}

func (m *Model) setRingStyle(r, c int, style surface.RingStyle) {
	if !m.geometry.Valid(r, c) {
		return
	}
	cell := m.cells[r][c]
	if cell.mode != ModeRing {
		m.teardownMode(cell, r, c)
		cell.mode = ModeRing
	}
	cell.ring.style = mergeValidStyle(cell.ring.style, cell.ring.styled, style)
	cell.ring.styled = true
	m.surf.BeginRing(r, c, cell.ring.style)
}

// mergeValidStyle keeps any color field of next that fails validation
// at its previous value (§3 invariant 5), falling back to the default
// style for a cell that was never styled before.
func mergeValidStyle(prev surface.RingStyle, prevValid bool, next surface.RingStyle) surface.RingStyle {
	base := prev
	if !prevValid {
		base = defaultRingStyle()
	}
	if colorutil.Validate(next.FgOuter) {
		base.FgOuter = colorutil.Normalize(next.FgOuter)
	}
	if colorutil.Validate(next.FgInner) {
		base.FgInner = colorutil.Normalize(next.FgInner)
	}
	if colorutil.Validate(next.Bg) {
		base.Bg = colorutil.Normalize(next.Bg)
	}
	base.SizePx = next.SizePx
	base.WidthOuter = next.WidthOuter
	base.WidthInner = next.WidthInner
	return base
}

func (m *Model) setRingValue(r, c, outer, inner int, centerText string, hasCenter bool) {
	if !m.geometry.Valid(r, c) {
		return
	}
	cell := m.cells[r][c]
	m.ensureRingMode(cell, r, c)

	outer, inner = ringgeom.Clamp(outer), ringgeom.Clamp(inner)
	cell.ring.outerVal, cell.ring.innerVal = outer, inner
	m.surf.SetRingValue(r, c, outer, inner)

	if hasCenter {
		cell.ring.hasCenterOverride = centerText != ""
		cell.ring.centerOverride = centerText
	}
	m.pushCenterLabel(cell, r, c)
}

func (m *Model) setRingExtras(r, c, v1, v2 int) {
	if !m.geometry.Valid(r, c) {
		return
	}
	cell := m.cells[r][c]
	m.ensureRingMode(cell, r, c)

	v1, v2 = ringgeom.Clamp(v1), ringgeom.Clamp(v2)
	cell.ring.extra1Val, cell.ring.extra2Val = v1, v2
	m.surf.SetRingExtras(r, c, v1, v2)
}

// pushCenterLabel recomputes and pushes the ring's center label: the
// override if one is set, otherwise max(1, inner_val) so the center
// never shows "0" (§4.5).
func (m *Model) pushCenterLabel(cell *Cell, r, c int) {
	var text string
	if cell.ring.hasCenterOverride {
		text = cell.ring.centerOverride
	} else {
		inner := cell.ring.innerVal
		if inner < 1 {
			inner = 1
		}
		text = strconv.Itoa(inner)
	}
	m.surf.SetRingCenter(r, c, text, true)
}

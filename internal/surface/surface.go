// Package surface defines the abstract rendering boundary the Cell
// Model draws through (§4.6), plus a recording Null implementation used
// by every test in this module.
package surface

import "patchdisplay/internal/protocol"

// RingStyle bundles the advisory style hints for a ring cell.
type RingStyle struct {
	FgOuter, FgInner, Bg string
	SizePx                int
	WidthOuter, WidthInner int
}

// Surface is the set of operations the Cell Model uses to mutate the
// visible pixels of a cell. begin_*/end_* are idempotent: calling
// BeginRing on an already-ring cell restyles it in place; calling
// EndRing on a non-ring cell is a no-op. This lets the Cell Model
// express mode transitions without tracking Surface-side state itself.
type Surface interface {
	SetText(r, c int, text string)
	SetFg(r, c int, color string)
	SetBg(r, c int, color string)
	SetAnchor(r, c int, anchor protocol.Anchor)

	BeginBar(r, c int)
	SetBarValue(r, c int, v int)
	EndBar(r, c int)

	BeginRing(r, c int, style RingStyle)
	SetRingValue(r, c int, outer, inner int)
	SetRingExtras(r, c int, v1, v2 int)
	SetRingCenter(r, c int, text string, hasText bool)
	EndRing(r, c int)
}

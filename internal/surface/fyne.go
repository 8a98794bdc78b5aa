package surface

import (
	"fmt"
	"image/color"
	"strings"
	"sync"

	"patchdisplay/internal/colorutil"
	"patchdisplay/internal/protocol"
	"patchdisplay/internal/ringgeom"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

// cellSizePx is the footprint of one grid cell on screen, matching the
// teacher's fixed-scale emulator framebuffer approach (internal/ui
// sizes its canvas.Image in whole multiples of a base resolution)
// rather than a dynamically reflowing layout.
const cellSizePx = 64

// cellWidget holds every canvas primitive that can appear inside one
// grid cell. Exactly one of textGroup/barGroup/ringGroup is visible at
// a time; begin_*/end_* toggle visibility rather than destroy/recreate,
// mirroring the teacher's panel show/hide pattern (FyneUI.showLogViewer
// et al. calling Show()/Hide() on persistent containers).
type cellWidget struct {
	root *fyne.Container
	bg   *canvas.Rectangle

	label  *canvas.Text
	anchor protocol.Anchor

	barGroup *fyne.Container
	barFill  *canvas.Rectangle

	ringGroup     *fyne.Container
	ringOuter     *canvas.Circle
	ringInner     *canvas.Circle
	ringDot       *canvas.Circle
	ringCenter    *canvas.Text
	ringExtra1Arc *canvas.Circle
	ringExtra1Dot *canvas.Circle
	ringExtra1    *canvas.Text
	ringExtra2Arc *canvas.Circle
	ringExtra2Dot *canvas.Circle
	ringExtra2    *canvas.Text

	fgInner string // cached from the last BeginRing style, for the extra arcs' lightened strokes
}

// Fyne is a Surface backed by a grid of fyne.io canvas objects, one
// cellWidget per addressable cell, grounded on the teacher's
// container/canvas wiring in internal/ui/fyne_ui.go and
// internal/ui/panels (container.NewVBox/NewHBox trees of persistent,
// shown/hidden widgets rather than a single draw callback).
type Fyne struct {
	mu    sync.Mutex
	cells map[[2]int]*cellWidget
	grid  *fyne.Container
}

// NewFyne builds an empty Fyne surface. Cells are created lazily on
// first use so callers never have to pre-declare grid geometry here —
// the Cell Model is the sole owner of addressable-cell bounds.
func NewFyne() *Fyne {
	return &Fyne{
		cells: make(map[[2]int]*cellWidget),
		grid:  container.NewWithoutLayout(),
	}
}

// Container returns the root fyne.Container a caller can embed in a
// window, e.g. via container.NewBorder or container.NewScroll.
func (f *Fyne) Container() *fyne.Container {
	return f.grid
}

func (f *Fyne) cell(r, c int) *cellWidget {
	key := [2]int{r, c}
	cw, ok := f.cells[key]
	if ok {
		return cw
	}

	bg := canvas.NewRectangle(color.Black)
	bg.Resize(fyne.NewSize(cellSizePx, cellSizePx))
	bg.Move(fyne.NewPos(float32(c*cellSizePx), float32(r*cellSizePx)))

	label := canvas.NewText("", color.White)
	label.Move(fyne.NewPos(float32(c*cellSizePx), float32(r*cellSizePx)+cellSizePx/2))
	label.Hide()

	barFill := canvas.NewRectangle(color.White)
	barGroup := container.NewWithoutLayout(barFill)
	barGroup.Hide()

	ringOuter := canvas.NewCircle(color.Transparent)
	ringInner := canvas.NewCircle(color.Transparent)
	ringDot := canvas.NewCircle(color.White)
	ringCenter := canvas.NewText("", color.White)

	// extra1_val shows top-right, extra2_val top-left (§4.5), defaulting
	// to "0" as soon as the ring exists rather than staying blank until
	// the first ARC command.
	ringExtra1Arc := canvas.NewCircle(color.Transparent)
	ringExtra1Dot := canvas.NewCircle(color.White)
	ringExtra1 := canvas.NewText("0", color.White)
	ringExtra1.Alignment = fyne.TextAlignTrailing
	ringExtra1.Move(fyne.NewPos(float32(c*cellSizePx), float32(r*cellSizePx)))
	ringExtra1.Resize(fyne.NewSize(cellSizePx, 0))

	ringExtra2Arc := canvas.NewCircle(color.Transparent)
	ringExtra2Dot := canvas.NewCircle(color.White)
	ringExtra2 := canvas.NewText("0", color.White)
	ringExtra2.Alignment = fyne.TextAlignLeading
	ringExtra2.Move(fyne.NewPos(float32(c*cellSizePx), float32(r*cellSizePx)))
	ringGroup := container.NewWithoutLayout(
		ringOuter, ringInner, ringDot, ringCenter,
		ringExtra1Arc, ringExtra1Dot, ringExtra1,
		ringExtra2Arc, ringExtra2Dot, ringExtra2,
	)
	ringGroup.Hide()

	cw = &cellWidget{
		root: container.NewWithoutLayout(bg, label, barGroup, ringGroup),
		bg:   bg, label: label,
		barGroup: barGroup, barFill: barFill,
		ringGroup: ringGroup, ringOuter: ringOuter, ringInner: ringInner,
		ringDot: ringDot, ringCenter: ringCenter,
		ringExtra1Arc: ringExtra1Arc, ringExtra1Dot: ringExtra1Dot, ringExtra1: ringExtra1,
		ringExtra2Arc: ringExtra2Arc, ringExtra2Dot: ringExtra2Dot, ringExtra2: ringExtra2,
	}
	f.cells[key] = cw
	f.grid.Add(cw.root)
	return cw
}

// namedColors covers the CSS-style color names the wire protocol may
// pass through opaquely per colorutil.Validate's non-"#" branch.
var namedColors = map[string]color.Color{
	"black": color.Black, "white": color.White,
	"red":   color.NRGBA{R: 0xff, A: 0xff},
	"green": color.NRGBA{G: 0x80, A: 0xff},
	"blue":  color.NRGBA{B: 0xff, A: 0xff},
	"amber": color.NRGBA{R: 0xff, G: 0xbf, A: 0xff},
}

func parseColorOr(hex string, fallback color.Color) color.Color {
	if !colorutil.Validate(hex) {
		return fallback
	}
	norm := colorutil.Normalize(hex)
	if !strings.HasPrefix(norm, "#") {
		if c, ok := namedColors[norm]; ok {
			return c
		}
		return fallback
	}

	digits := norm[1:]
	if len(digits) == 3 {
		expanded := make([]byte, 0, 6)
		for _, c := range digits {
			expanded = append(expanded, byte(c), byte(c))
		}
		digits = string(expanded)
	}
	if len(digits) < 6 {
		return fallback
	}

	var r, g, b uint8
	fmt.Sscanf(digits[0:2], "%02x", &r)
	fmt.Sscanf(digits[2:4], "%02x", &g)
	fmt.Sscanf(digits[4:6], "%02x", &b)

	a := uint8(0xff)
	if len(digits) >= 8 {
		fmt.Sscanf(digits[6:8], "%02x", &a)
	}
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

func (f *Fyne) SetText(r, c int, text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cw := f.cell(r, c)
	cw.label.Text = text
	cw.label.Show()
	canvas.Refresh(cw.label)
}

func (f *Fyne) SetFg(r, c int, col string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cw := f.cell(r, c)
	cw.label.Color = parseColorOr(col, color.White)
	canvas.Refresh(cw.label)
}

func (f *Fyne) SetBg(r, c int, col string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cw := f.cell(r, c)
	cw.bg.FillColor = parseColorOr(col, color.Black)
	canvas.Refresh(cw.bg)
}

func (f *Fyne) SetAnchor(r, c int, anchor protocol.Anchor) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cw := f.cell(r, c)
	cw.anchor = anchor
	switch anchor {
	case protocol.AnchorCenter:
		cw.label.Alignment = fyne.TextAlignCenter
	case protocol.AnchorRight:
		cw.label.Alignment = fyne.TextAlignTrailing
	default:
		cw.label.Alignment = fyne.TextAlignLeading
	}
	canvas.Refresh(cw.label)
}

func (f *Fyne) BeginBar(r, c int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cw := f.cell(r, c)
	cw.label.Hide()
	cw.ringGroup.Hide()
	cw.barGroup.Show()
}

func (f *Fyne) SetBarValue(r, c int, v int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cw := f.cell(r, c)
	v = ringgeom.Clamp(v)
	height := float32(v) / 127.0 * cellSizePx
	cw.barFill.Resize(fyne.NewSize(cellSizePx, height))
	cw.barFill.Move(fyne.NewPos(float32(c*cellSizePx), float32(r*cellSizePx)+cellSizePx-height))
	canvas.Refresh(cw.barFill)
}

func (f *Fyne) EndBar(r, c int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cell(r, c).barGroup.Hide()
}

func (f *Fyne) BeginRing(r, c int, style RingStyle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cw := f.cell(r, c)
	cw.label.Hide()
	cw.barGroup.Hide()

	cw.ringOuter.StrokeColor = parseColorOr(style.FgOuter, color.White)
	cw.ringOuter.StrokeWidth = float32(style.WidthOuter)
	cw.ringInner.StrokeColor = parseColorOr(style.FgInner, color.White)
	cw.ringInner.StrokeWidth = float32(style.WidthInner)
	cw.bg.FillColor = parseColorOr(style.Bg, cw.bg.FillColor)
	cw.fgInner = style.FgInner

	size := float32(style.SizePx)
	if size <= 0 {
		size = ringgeom.OuterRadius * 2
	}
	cx, cy := float32(c*cellSizePx)+cellSizePx/2, float32(r*cellSizePx)+cellSizePx/2
	cw.ringOuter.Resize(fyne.NewSize(size, size))
	cw.ringOuter.Move(fyne.NewPos(cx-size/2, cy-size/2))
	cw.ringInner.Resize(fyne.NewSize(size*0.7, size*0.7))
	cw.ringInner.Move(fyne.NewPos(cx-size*0.35, cy-size*0.35))

	// The two extra arcs (§4.5) sit at their own fixed radii, stroked
	// with fg_inner lightened by 0.3 and 0.5 (§4.9).
	extra1Color := parseColorOr(colorutil.Lighten(style.FgInner, 0.3), color.White)
	extra2Color := parseColorOr(colorutil.Lighten(style.FgInner, 0.5), color.White)
	e1Size := float32(ringgeom.Extra1Radius * 2)
	e2Size := float32(ringgeom.Extra2Radius * 2)
	cw.ringExtra1Arc.StrokeColor = extra1Color
	cw.ringExtra1Arc.StrokeWidth = 2
	cw.ringExtra1Arc.Resize(fyne.NewSize(e1Size, e1Size))
	cw.ringExtra1Arc.Move(fyne.NewPos(cx-e1Size/2, cy-e1Size/2))
	cw.ringExtra1Dot.FillColor = extra1Color
	cw.ringExtra2Arc.StrokeColor = extra2Color
	cw.ringExtra2Arc.StrokeWidth = 2
	cw.ringExtra2Arc.Resize(fyne.NewSize(e2Size, e2Size))
	cw.ringExtra2Arc.Move(fyne.NewPos(cx-e2Size/2, cy-e2Size/2))
	cw.ringExtra2Dot.FillColor = extra2Color

	cw.ringGroup.Show()
	canvas.Refresh(cw.ringOuter)
	canvas.Refresh(cw.ringInner)
	canvas.Refresh(cw.ringExtra1Arc)
	canvas.Refresh(cw.ringExtra2Arc)
}

func (f *Fyne) SetRingValue(r, c int, outer, inner int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cw := f.cell(r, c)

	cx, cy := float64(c*cellSizePx)+cellSizePx/2, float64(r*cellSizePx)+cellSizePx/2
	dot := ringgeom.PeakDot(cx, cy, ringgeom.OuterRadius, outer)
	cw.ringDot.Resize(fyne.NewSize(ringgeom.DotDiameter, ringgeom.DotDiameter))
	cw.ringDot.Move(fyne.NewPos(float32(dot.X-ringgeom.DotDiameter/2), float32(dot.Y-ringgeom.DotDiameter/2)))
	canvas.Refresh(cw.ringDot)
}

func (f *Fyne) SetRingExtras(r, c int, v1, v2 int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cw := f.cell(r, c)

	cx, cy := float64(c*cellSizePx)+cellSizePx/2, float64(r*cellSizePx)+cellSizePx/2

	dot1 := ringgeom.PeakDot(cx, cy, ringgeom.Extra1Radius, v1)
	cw.ringExtra1Dot.Resize(fyne.NewSize(ringgeom.DotDiameter, ringgeom.DotDiameter))
	cw.ringExtra1Dot.Move(fyne.NewPos(float32(dot1.X-ringgeom.DotDiameter/2), float32(dot1.Y-ringgeom.DotDiameter/2)))

	dot2 := ringgeom.PeakDot(cx, cy, ringgeom.Extra2Radius, v2)
	cw.ringExtra2Dot.Resize(fyne.NewSize(ringgeom.DotDiameter, ringgeom.DotDiameter))
	cw.ringExtra2Dot.Move(fyne.NewPos(float32(dot2.X-ringgeom.DotDiameter/2), float32(dot2.Y-ringgeom.DotDiameter/2)))

	cw.ringExtra1.Text = fmt.Sprintf("%d", v1)
	cw.ringExtra2.Text = fmt.Sprintf("%d", v2)

	canvas.Refresh(cw.ringExtra1Dot)
	canvas.Refresh(cw.ringExtra2Dot)
	canvas.Refresh(cw.ringExtra1)
	canvas.Refresh(cw.ringExtra2)
}

func (f *Fyne) SetRingCenter(r, c int, text string, hasText bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cw := f.cell(r, c)
	if !hasText {
		cw.ringCenter.Hide()
		return
	}
	cw.ringCenter.Text = text
	cw.ringCenter.Show()
	canvas.Refresh(cw.ringCenter)
}

func (f *Fyne) EndRing(r, c int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cell(r, c).ringGroup.Hide()
}

package surface

import (
	"sync"

	"patchdisplay/internal/protocol"
)

// Call records a single Surface method invocation, for test assertions.
type Call struct {
	Op   string
	Row  int
	Col  int
	Args []any
}

// Null is a recording, no-op Surface implementation: it never touches
// a real rendering backend, only appends to Calls. Used by every table
// test in this module to assert P1-P8 without a windowing system.
type Null struct {
	mu    sync.Mutex
	Calls []Call
}

func NewNull() *Null {
	return &Null{}
}

func (n *Null) record(op string, r, c int, args ...any) {
	n.mu.Lock()
	n.Calls = append(n.Calls, Call{Op: op, Row: r, Col: c, Args: args})
	n.mu.Unlock()
}

func (n *Null) SetText(r, c int, text string)               { n.record("SetText", r, c, text) }
func (n *Null) SetFg(r, c int, color string)                 { n.record("SetFg", r, c, color) }
func (n *Null) SetBg(r, c int, color string)                 { n.record("SetBg", r, c, color) }
func (n *Null) SetAnchor(r, c int, anchor protocol.Anchor)   { n.record("SetAnchor", r, c, anchor) }
func (n *Null) BeginBar(r, c int)                            { n.record("BeginBar", r, c) }
func (n *Null) SetBarValue(r, c int, v int)                  { n.record("SetBarValue", r, c, v) }
func (n *Null) EndBar(r, c int)                              { n.record("EndBar", r, c) }
func (n *Null) BeginRing(r, c int, style RingStyle)          { n.record("BeginRing", r, c, style) }
func (n *Null) SetRingValue(r, c int, outer, inner int)      { n.record("SetRingValue", r, c, outer, inner) }
func (n *Null) SetRingExtras(r, c int, v1, v2 int)           { n.record("SetRingExtras", r, c, v1, v2) }
func (n *Null) SetRingCenter(r, c int, text string, has bool) {
	n.record("SetRingCenter", r, c, text, has)
}
func (n *Null) EndRing(r, c int) { n.record("EndRing", r, c) }

// Ops returns the Op field of every recorded call, in order. Handy for
// asserting relative ordering (e.g. EndRing before SetText).
func (n *Null) Ops() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	ops := make([]string, len(n.Calls))
	for i, call := range n.Calls {
		ops[i] = call.Op
	}
	return ops
}

// IndexOf returns the index of the first call matching op at (r, c),
// or -1 if none.
func (n *Null) IndexOf(op string, r, c int) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, call := range n.Calls {
		if call.Op == op && call.Row == r && call.Col == c {
			return i
		}
	}
	return -1
}

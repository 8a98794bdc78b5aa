package coalesce

import (
	"testing"

	"patchdisplay/internal/protocol"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDrainer hands back a fixed batch once, then nothing.
type fakeDrainer struct {
	batches [][]protocol.Command
	idx     int
}

func (f *fakeDrainer) Drain() []protocol.Command {
	if f.idx >= len(f.batches) {
		return nil
	}
	b := f.batches[f.idx]
	f.idx++
	return b
}

// recordingApplier records every Apply call in order.
type recordingApplier struct {
	applied []protocol.Command
}

func (r *recordingApplier) Apply(cmd protocol.Command) {
	r.applied = append(r.applied, cmd)
}

func TestLastWriteWinsWithinOneDrain(t *testing.T) {
	drainer := &fakeDrainer{batches: [][]protocol.Command{{
		{Kind: protocol.KindBar, Row: 3, Col: 0, BarValue: 10},
		{Kind: protocol.KindBar, Row: 3, Col: 0, BarValue: 20},
	}}}
	c := New(drainer, 50)
	applier := &recordingApplier{}
	applied := c.Tick(applier)

	require.Equal(t, 1, applied)
	require.Len(t, applier.applied, 1)
	assert.Equal(t, 20, applier.applied[0].BarValue)
}

func TestLastWriteWinsAcrossTwoDrainsBeforeApply(t *testing.T) {
	// Both arrive "between ticks" in the spec's sense: the earlier one
	// already sits in the pending map, as an earlier Drain leaves it, and
	// the later one is folded in by this Tick's Drain before any apply.
	drainer := &fakeDrainer{batches: [][]protocol.Command{
		{{Kind: protocol.KindBar, Row: 0, Col: 0, BarValue: 2}},
	}}
	c := New(drainer, 50)
	c.pending[protocol.Key{Kind: protocol.KindBar, Row: 0, Col: 0}] = protocol.Command{Kind: protocol.KindBar, Row: 0, Col: 0, BarValue: 1}
	applier := &recordingApplier{}
	applied := c.Tick(applier)
	require.Equal(t, 1, applied)
	assert.Equal(t, 2, applier.applied[0].BarValue)
}

func TestClassOrderStyleBeforeValue(t *testing.T) {
	drainer := &fakeDrainer{batches: [][]protocol.Command{{
		{Kind: protocol.KindRingValue, Row: 1, Col: 2, Outer: 10, Inner: 20},
		{Kind: protocol.KindRingStyle, Row: 1, Col: 2, FgOuter: "#aaa", FgInner: "#bbb"},
	}}}
	c := New(drainer, 50)
	applier := &recordingApplier{}
	c.Tick(applier)

	require.Len(t, applier.applied, 2)
	assert.Equal(t, protocol.KindRingStyle, applier.applied[0].Kind, "style must apply before value")
	assert.Equal(t, protocol.KindRingValue, applier.applied[1].Kind)
}

func TestTextAppliesLast(t *testing.T) {
	drainer := &fakeDrainer{batches: [][]protocol.Command{{
		{Kind: protocol.KindSet, Row: 0, Col: 0, Text: "HI"},
		{Kind: protocol.KindBG, Row: 0, Col: 0, Bg: "#123456"},
	}}}
	c := New(drainer, 50)
	applier := &recordingApplier{}
	c.Tick(applier)

	require.Len(t, applier.applied, 2)
	assert.Equal(t, protocol.KindBG, applier.applied[0].Kind)
	assert.Equal(t, protocol.KindSet, applier.applied[1].Kind)
}

func TestWorkCapDefersExcessToNextTick(t *testing.T) {
	var batch []protocol.Command
	for i := 0; i < 200; i++ {
		batch = append(batch, protocol.Command{Kind: protocol.KindSet, Row: i % 11, Col: i, Text: "x"})
	}
	drainer := &fakeDrainer{batches: [][]protocol.Command{batch}}
	c := New(drainer, 50)
	applier := &recordingApplier{}

	applied := c.Tick(applier)
	assert.Equal(t, 50, applied)
	assert.Equal(t, 150, c.Pending(), "150 entries should remain for subsequent ticks")

	// Subsequent ticks (with nothing new arriving) keep draining the
	// backlog; no entry is ever lost.
	total := applied
	for c.Pending() > 0 {
		total += c.Tick(applier)
	}
	assert.Equal(t, 200, total)
	assert.Len(t, applier.applied, 200)
}

func TestDifferentKindsSameCellDoNotCollide(t *testing.T) {
	drainer := &fakeDrainer{batches: [][]protocol.Command{{
		{Kind: protocol.KindBar, Row: 3, Col: 0, BarValue: 5},
		{Kind: protocol.KindSet, Row: 3, Col: 0, Text: "x"},
	}}}
	c := New(drainer, 50)
	applier := &recordingApplier{}
	applied := c.Tick(applier)
	assert.Equal(t, 2, applied)
}

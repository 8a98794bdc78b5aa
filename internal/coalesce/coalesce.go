// Package coalesce implements the Coalescer (§4.4): it drains the
// Command Queue into a last-write-wins map keyed by (kind, row, col),
// then applies pending entries in a fixed class precedence order, up
// to a per-tick work cap.
package coalesce

import (
	"sort"

	"patchdisplay/internal/protocol"
)

// DefaultMaxAppliesPerTick is the default cap on §4.4.
const DefaultMaxAppliesPerTick = 50

// Applier receives coalesced commands in class order. cellmodel.Model
// implements this by dispatching on cmd.Kind.
type Applier interface {
	Apply(cmd protocol.Command)
}

// Drainer supplies the commands accumulated since the last tick.
// queue.Queue implements this.
type Drainer interface {
	Drain() []protocol.Command
}

// classOrder is the application order from §4.4: style changes before
// the values that paint on top of them, text (which may tear down a
// ring) applied last.
var classOrder = []protocol.Kind{
	protocol.KindBG,
	protocol.KindAlign,
	protocol.KindBar,
	protocol.KindRingSet,
	protocol.KindRingStyle,
	protocol.KindRingValue,
	protocol.KindArc,
	protocol.KindSet,
}

// Coalescer holds the pending-command map across ticks; entries beyond
// the per-tick cap simply survive to the next Tick call, since the map
// is already last-write-wins.
type Coalescer struct {
	source     Drainer
	maxApplies int
	pending    map[protocol.Key]protocol.Command
}

// New builds a Coalescer reading from source, applying at most
// maxApplies commands per Tick. A maxApplies <= 0 uses
// DefaultMaxAppliesPerTick.
func New(source Drainer, maxApplies int) *Coalescer {
	if maxApplies <= 0 {
		maxApplies = DefaultMaxAppliesPerTick
	}
	return &Coalescer{
		source:     source,
		maxApplies: maxApplies,
		pending:    make(map[protocol.Key]protocol.Command),
	}
}

// Tick drains the source, folds new commands into the pending map
// (later command for a key replaces the earlier one), then applies
// pending entries to dst in class order up to the per-tick cap.
// Applied entries are removed from the map; the rest persist. Tick
// returns the number of commands applied this call.
func (c *Coalescer) Tick(dst Applier) int {
	for _, cmd := range c.source.Drain() {
		c.pending[cmd.Key()] = cmd
	}

	applied := 0
	for _, kind := range classOrder {
		if applied >= c.maxApplies {
			break
		}
		keys := c.keysForKind(kind)
		for _, key := range keys {
			if applied >= c.maxApplies {
				break
			}
			dst.Apply(c.pending[key])
			delete(c.pending, key)
			applied++
		}
	}
	return applied
}

// keysForKind returns the pending keys of the given kind, sorted by
// (row, col) so that iteration order within a class is deterministic
// per tick, as required by §4.4.
func (c *Coalescer) keysForKind(kind protocol.Kind) []protocol.Key {
	var keys []protocol.Key
	for key := range c.pending {
		if key.Kind == kind {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Row != keys[j].Row {
			return keys[i].Row < keys[j].Row
		}
		return keys[i].Col < keys[j].Col
	})
	return keys
}

// Pending reports how many commands are currently buffered and not yet
// applied (applied entries are removed from the map). Intended for
// telemetry.
func (c *Coalescer) Pending() int {
	return len(c.pending)
}

// Package render implements the Render Tick (§4.7): a single,
// fixed-period driver that invokes the Coalescer and yields. It never
// blocks on the network — datagram receipt happens on a separate
// goroutine (internal/netsrc).
package render

import (
	"context"
	"time"
)

// TickFunc performs one tick's worth of coalesce-and-apply work and
// returns how many commands it applied. A bound
// `func() int { return coalescer.Tick(model) }` closure is the
// intended caller.
type TickFunc func() int

// Driver fires a TickFunc every period, on its own goroutine, until
// Stop is called or ctx is cancelled. It replaces the teacher's
// UI-framework after(ms, fn) callback chain with an explicit,
// independently-testable scheduler (see SPEC_FULL.md §11 / the
// teacher's internal/clock.MasterClock, which is advanced the same
// "driver owns the loop" way rather than via a toolkit timer).
type Driver struct {
	period time.Duration
	tick   TickFunc
	onTick func(applied int) // optional hook, e.g. for telemetry

	cancel context.CancelFunc
	done   chan struct{}
}

// New builds a Driver. onTick may be nil.
func New(period time.Duration, tick TickFunc, onTick func(applied int)) *Driver {
	return &Driver{period: period, tick: tick, onTick: onTick}
}

// Start begins firing ticks on a new goroutine. It is a no-op if
// already running.
func (d *Driver) Start(ctx context.Context) {
	if d.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.done = make(chan struct{})

	go func() {
		defer close(d.done)
		ticker := time.NewTicker(d.period)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				applied := d.tick()
				if d.onTick != nil {
					d.onTick(applied)
				}
			}
		}
	}()
}

// Stop cancels the driver and waits for its goroutine to exit.
func (d *Driver) Stop() {
	if d.cancel == nil {
		return
	}
	d.cancel()
	<-d.done
	d.cancel = nil
}

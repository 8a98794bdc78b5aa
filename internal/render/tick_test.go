package render

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriverFiresPeriodically(t *testing.T) {
	var ticks int32
	d := New(5*time.Millisecond, func() int {
		atomic.AddInt32(&ticks, 1)
		return 0
	}, nil)

	d.Start(context.Background())
	time.Sleep(40 * time.Millisecond)
	d.Stop()

	got := atomic.LoadInt32(&ticks)
	assert.GreaterOrEqual(t, got, int32(3), "expected several ticks in 40ms at a 5ms period")
}

func TestDriverStopIsClean(t *testing.T) {
	d := New(time.Millisecond, func() int { return 0 }, nil)
	d.Start(context.Background())
	d.Stop()
	// A second Stop must not hang or panic.
	d.Stop()
}

func TestDriverOnTickHook(t *testing.T) {
	applied := make(chan int, 1)
	d := New(5*time.Millisecond, func() int { return 7 }, func(n int) {
		select {
		case applied <- n:
		default:
		}
	})
	d.Start(context.Background())
	defer d.Stop()

	select {
	case n := <-applied:
		assert.Equal(t, 7, n)
	case <-time.After(time.Second):
		t.Fatal("onTick never fired")
	}
}

func TestDriverStartTwiceIsNoop(t *testing.T) {
	d := New(5*time.Millisecond, func() int { return 0 }, nil)
	d.Start(context.Background())
	d.Start(context.Background())
	d.Stop()
	require.Nil(t, d.cancel)
}

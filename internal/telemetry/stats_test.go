package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatsCountersAndSnapshot(t *testing.T) {
	s := NewStats()
	snap := s.Snapshot()
	assert.Equal(t, int64(0), snap.MessagesReceived)
	assert.Empty(t, snap.LastMessageTime)

	s.MessageReceived()
	s.MessageReceived()
	s.MessageProcessed()

	snap = s.Snapshot()
	assert.Equal(t, int64(2), snap.MessagesReceived)
	assert.Equal(t, int64(1), snap.MessagesProcessed)
	assert.NotEmpty(t, snap.LastMessageTime)
}

func TestLoggerComponentDoesNotPanic(t *testing.T) {
	l := New(nil, "debug")
	sub := l.Component("netsrc")
	sub.Debug("receiver started", "bind", "0.0.0.0:9001")
	sub.Info("tick", "applied", 3)
	sub.Warn("slow tick", "duration_ms", 42)
	sub.Error("receive error", "error", "boom")
}

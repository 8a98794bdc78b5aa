package telemetry

import (
	"sync/atomic"
	"time"
)

// Stats holds atomic runtime counters for the stats HTTP endpoint
// (§10), grounded on the original implementation's PerformanceMetrics
// dataclass (messages_received / messages_processed / last_message_time).
type Stats struct {
	messagesReceived  int64
	messagesProcessed int64
	lastMessageUnixNs int64
}

// NewStats returns a zeroed Stats.
func NewStats() *Stats {
	return &Stats{}
}

// MessageReceived records that one datagram was read off the socket,
// before it is parsed.
func (s *Stats) MessageReceived() {
	atomic.AddInt64(&s.messagesReceived, 1)
	atomic.StoreInt64(&s.lastMessageUnixNs, time.Now().UnixNano())
}

// MessageProcessed records that a datagram parsed into a Command and
// was pushed onto the queue.
func (s *Stats) MessageProcessed() {
	atomic.AddInt64(&s.messagesProcessed, 1)
}

// Snapshot is a point-in-time, JSON-marshalable copy of Stats.
type Snapshot struct {
	MessagesReceived  int64  `json:"messages_received"`
	MessagesProcessed int64  `json:"messages_processed"`
	LastMessageTime   string `json:"last_message_time,omitempty"`
}

// Snapshot reads every counter atomically and returns a Snapshot.
func (s *Stats) Snapshot() Snapshot {
	ns := atomic.LoadInt64(&s.lastMessageUnixNs)
	snap := Snapshot{
		MessagesReceived:  atomic.LoadInt64(&s.messagesReceived),
		MessagesProcessed: atomic.LoadInt64(&s.messagesProcessed),
	}
	if ns != 0 {
		snap.LastMessageTime = time.Unix(0, ns).UTC().Format(time.RFC3339Nano)
	}
	return snap
}

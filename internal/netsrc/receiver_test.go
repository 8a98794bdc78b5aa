package netsrc

import (
	"net"
	"testing"
	"time"

	"patchdisplay/internal/queue"
	"patchdisplay/internal/telemetry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startTestReceiver(t *testing.T) (*Receiver, *queue.Queue, *telemetry.Stats) {
	t.Helper()
	q := queue.New()
	stats := telemetry.NewStats()
	r := New("127.0.0.1:0", 4096, q, nil, stats)
	require.NoError(t, r.Start())
	t.Cleanup(r.Stop)
	return r, q, stats
}

func TestReceiverParsesAndEnqueues(t *testing.T) {
	r, q, stats := startTestReceiver(t)

	conn, err := net.Dial("udp", r.LocalAddr().String())
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte("0 0 #fff #000 left HELLO;"))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return q.Len() == 1
	}, time.Second, 5*time.Millisecond)

	cmds := q.Drain()
	require.Len(t, cmds, 1)
	assert.Equal(t, "HELLO", cmds[0].Text)

	snap := stats.Snapshot()
	assert.Equal(t, int64(1), snap.MessagesReceived)
	assert.Equal(t, int64(1), snap.MessagesProcessed)
}

func TestReceiverDropsUnparsableDatagramSilently(t *testing.T) {
	r, q, stats := startTestReceiver(t)

	conn, err := net.Dial("udp", r.LocalAddr().String())
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte("NOT_A_REAL_COMMAND"))
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, q.Len())
	assert.Equal(t, int64(1), stats.Snapshot().MessagesReceived)
	assert.Equal(t, int64(0), stats.Snapshot().MessagesProcessed)
}

func TestReceiverStopIsClean(t *testing.T) {
	r := New("127.0.0.1:0", 0, queue.New(), nil, nil)
	require.NoError(t, r.Start())
	r.Stop()
	r.Stop() // idempotent
}

// Package netsrc implements the Datagram Receiver (§4.1): binds the
// UDP socket, reads individual datagrams, and hands parsed commands to
// the Command Queue.
package netsrc

import (
	"errors"
	"net"
	"strings"
	"time"

	"patchdisplay/internal/protocol"
	"patchdisplay/internal/queue"
	"patchdisplay/internal/telemetry"
)

const (
	// MaxDatagramSize is the largest UDP payload accepted (§6.1).
	MaxDatagramSize = 16 * 1024
	// readTimeout bounds each blocking recv so Stop can be observed
	// promptly, matching the "short timeout" requirement in §4.1.
	readTimeout = time.Second
)

// Receiver binds a UDP socket and feeds parsed commands into a Queue.
type Receiver struct {
	bind       string
	recvBuffer int
	queue      *queue.Queue
	logger     *telemetry.Logger
	stats      *telemetry.Stats

	conn   *net.UDPConn
	done   chan struct{}
	stopCh chan struct{}
}

// New builds a Receiver bound to bind (host:port), raising the kernel
// receive buffer to recvBuffer bytes on a best-effort basis.
func New(bind string, recvBuffer int, q *queue.Queue, logger *telemetry.Logger, stats *telemetry.Stats) *Receiver {
	return &Receiver{
		bind:       bind,
		recvBuffer: recvBuffer,
		queue:      q,
		logger:     logger,
		stats:      stats,
	}
}

// Start binds the socket and begins the receive loop on a new
// goroutine. A fatal bind failure is returned synchronously — it is
// the one error in this module allowed to abort startup (§7).
func (r *Receiver) Start() error {
	addr, err := net.ResolveUDPAddr("udp", r.bind)
	if err != nil {
		return err
	}
	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return err
	}
	if err := raiseReadBuffer(conn, r.recvBuffer); err != nil && r.logger != nil {
		r.logger.Debug("netsrc: could not raise SO_RCVBUF", "error", err)
	}

	r.conn = conn
	r.done = make(chan struct{})
	r.stopCh = make(chan struct{})

	go r.loop()
	return nil
}

// LocalAddr reports the socket's bound address, valid after Start
// returns successfully. Used by tests that bind to an ephemeral port.
func (r *Receiver) LocalAddr() net.Addr {
	if r.conn == nil {
		return nil
	}
	return r.conn.LocalAddr()
}

// Stop closes the socket and waits for the receive loop to exit. Any
// datagram in flight is simply dropped (§5 cancellation). Calling Stop
// again after it has returned is a no-op.
func (r *Receiver) Stop() {
	if r.stopCh == nil {
		return
	}
	close(r.stopCh)
	if r.conn != nil {
		r.conn.Close()
	}
	<-r.done
	r.stopCh = nil
}

func (r *Receiver) loop() {
	defer close(r.done)
	buf := make([]byte, MaxDatagramSize)

	for {
		select {
		case <-r.stopCh:
			return
		default:
		}

		_ = r.conn.SetReadDeadline(time.Now().Add(readTimeout))
		n, _, err := r.conn.ReadFromUDP(buf)
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}
			// Non-timeout socket errors terminate only the receiver
			// (§4.1, §7); the render loop continues with its last
			// state.
			if r.logger != nil {
				r.logger.Debug("netsrc: receive error, stopping receiver", "error", err)
			}
			return
		}

		if r.stats != nil {
			r.stats.MessageReceived()
		}

		line := decodeLine(buf[:n])
		cmd, err := protocol.Parse(line)
		if err != nil {
			continue
		}
		r.queue.Push(cmd)
		if r.stats != nil {
			r.stats.MessageProcessed()
		}
	}
}

// decodeLine applies the UTF-8-with-replacement decode described in
// §4.1: invalid byte sequences are replaced with U+FFFD rather than
// passed through, matching the original's
// data.decode("utf-8", errors="replace"). The trailing-";" and
// whitespace trim is left to protocol.Parse.
func decodeLine(raw []byte) string {
	return strings.ToValidUTF8(string(raw), "�")
}

//go:build !linux

package netsrc

import "net"

// raiseReadBuffer falls back to the portable stdlib call on platforms
// where the raw SO_RCVBUF syscall path isn't wired up.
func raiseReadBuffer(conn *net.UDPConn, size int) error {
	if size <= 0 {
		return nil
	}
	return conn.SetReadBuffer(size)
}

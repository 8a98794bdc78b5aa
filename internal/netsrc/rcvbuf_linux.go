//go:build linux

package netsrc

import (
	"net"

	"golang.org/x/sys/unix"
)

// raiseReadBuffer sets SO_RCVBUF directly via the raw socket descriptor
// so the kernel is asked for exactly size bytes rather than the
// doubled, OS-clamped value net.UDPConn.SetReadBuffer would request
// through setsockopt on some platforms.
func raiseReadBuffer(conn *net.UDPConn, size int) error {
	if size <= 0 {
		return nil
	}
	raw, err := conn.SyscallConn()
	if err != nil {
		return err
	}
	var sockErr error
	err = raw.Control(func(fd uintptr) {
		sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_RCVBUF, size)
	})
	if err != nil {
		return err
	}
	return sockErr
}

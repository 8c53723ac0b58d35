//go:build linux

package console

import (
	"net"
	"syscall"

	"golang.org/x/sys/unix"
)

// listenConfig sets SO_REUSEADDR on the console's TCP listener so sandosd
// can restart and rebind --console-addr immediately instead of waiting
// out TIME_WAIT, grounded on the teacher's src/server.go (which sets the
// same option with the stdlib syscall package; golang.org/x/sys/unix is
// the declared-but-otherwise-unused dependency this repo gives that
// concern a home with the modern, non-deprecated constants).
var listenConfig = net.ListenConfig{
	Control: func(_, _ string, c syscall.RawConn) error {
		var setErr error
		err := c.Control(func(fd uintptr) {
			setErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
		})
		if err != nil {
			return err
		}
		return setErr
	},
}

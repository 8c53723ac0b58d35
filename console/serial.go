package console

import (
	"fmt"
	"io"
	"net"
	"time"

	"github.com/pkg/term"
)

// serialConn adapts a raw read/write/close device (a real serial port via
// pkg/term, or a pty master in tests) to net.Conn so Server.Attach can
// serve the console protocol over it the same way it serves a TCP
// connection. Grounded on the teacher's src/serial_port.go (term.Open +
// RawMode + SetSpeed).
type serialConn struct {
	io.ReadWriteCloser
	name string
}

func (s *serialConn) LocalAddr() net.Addr             { return serialAddr(s.name) }
func (s *serialConn) RemoteAddr() net.Addr            { return serialAddr(s.name) }
func (s *serialConn) SetDeadline(time.Time) error     { return nil }
func (s *serialConn) SetReadDeadline(time.Time) error { return nil }
func (s *serialConn) SetWriteDeadline(time.Time) error {
	return nil
}

type serialAddr string

func (a serialAddr) Network() string { return "serial" }
func (a serialAddr) String() string  { return string(a) }

// OpenSerial opens devicePath in raw mode at baud and returns a net.Conn
// wrapper suitable for Server.Attach. baud must be one of the standard
// rates pkg/term.SetSpeed recognizes (e.g. 9600, 19200, 38400, 57600,
// 115200); the teacher's serial_port_open switches over exactly this set.
func OpenSerial(devicePath string, baud int) (net.Conn, error) {
	t, err := term.Open(devicePath, term.RawMode)
	if err != nil {
		return nil, fmt.Errorf("console: open serial %s: %w", devicePath, err)
	}
	if err := t.SetSpeed(baud); err != nil {
		t.Close()
		return nil, fmt.Errorf("console: set speed %d on %s: %w", baud, devicePath, err)
	}
	return &serialConn{ReadWriteCloser: t, name: devicePath}, nil
}

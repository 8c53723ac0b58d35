package console

import (
	"fmt"
	"net"
	"os"
	"sync"

	"github.com/creack/pty"
)

// virtualSerialSlaves holds every slave end OpenVirtualSerial has opened,
// so none of them is finalized (and thereby closed) by the garbage
// collector.
var (
	virtualSerialMu     sync.Mutex
	virtualSerialSlaves []*os.File
)

// OpenVirtualSerial allocates a pseudo-terminal pair and returns the
// master end wrapped as a net.Conn, plus the slave's device path, so a
// serial console can be demoed or tested without a real USB-serial
// adapter attached. Grounded on the teacher's src/kiss.go, which uses
// github.com/creack/pty the same way to drive its own KISS unit tests
// against a synthetic terminal instead of real hardware.
func OpenVirtualSerial() (conn net.Conn, slaveName string, err error) {
	master, slave, err := pty.Open()
	if err != nil {
		return nil, "", fmt.Errorf("console: open virtual serial pty: %w", err)
	}
	// The slave end is left open for the lifetime of the process: on most
	// platforms reading the master after the slave closes returns EOF, and
	// nothing else here holds the slave open on the caller's behalf.
	virtualSerialMu.Lock()
	virtualSerialSlaves = append(virtualSerialSlaves, slave)
	virtualSerialMu.Unlock()
	slaveName = slave.Name()
	return &serialConn{ReadWriteCloser: master, name: master.Name()}, slaveName, nil
}

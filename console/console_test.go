package console

import (
	"bufio"
	"io"
	"net"
	"testing"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"

	"github.com/sandocean/sandos-go/kernel"
)

type fakeSnapshotter struct {
	snap kernel.Snapshot
}

func (f fakeSnapshotter) Snapshot() kernel.Snapshot { return f.snap }

func newTestServer(t *testing.T) *Server {
	t.Helper()
	snap := kernel.Snapshot{
		Tick:        42,
		ReadyBitmap: 0b101,
		Running:     true,
		Tasks: []kernel.TaskSnapshot{
			{Name: "idle", Priority: 31, OriginalPriority: 31, State: kernel.Ready, StackWords: 64, StackOK: true},
			{Name: "worker", Priority: 10, OriginalPriority: 10, State: kernel.Blocked, DelayTicks: 7, StackWords: 128, StackOK: true},
		},
	}
	srv, err := New(fakeSnapshotter{snap: snap}, charmlog.New(io.Discard))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return srv
}

func TestHandleTicksAndBitmap(t *testing.T) {
	srv := newTestServer(t)
	assert.Equal(t, "tick=42 running=true\n", srv.handle("ticks"))
	assert.Equal(t, "00000000000000000000000000000101\n", srv.handle("bitmap"))
}

func TestHandleUnknownCommand(t *testing.T) {
	srv := newTestServer(t)
	got := srv.handle("bogus")
	assert.Contains(t, got, "unknown command")
}

func TestHandleTasksListsEveryTask(t *testing.T) {
	srv := newTestServer(t)
	got := srv.renderTasks()
	assert.Contains(t, got, "idle")
	assert.Contains(t, got, "worker")
	assert.Contains(t, got, "Blocked")
}

// TestServeConnOverTCP exercises the full listener/accept/serve path
// against a real loopback connection, grounded on the teacher's
// goroutine-per-client server test style.
func TestServeConnOverTCP(t *testing.T) {
	srv := newTestServer(t)
	if err := srv.ListenTCP("127.0.0.1:0"); err != nil {
		t.Fatalf("ListenTCP: %v", err)
	}
	defer srv.Close()

	addr := srv.listeners[0].Addr().String()
	conn, err := net.DialTimeout("tcp", addr, time.Second)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	reader := bufio.NewReader(conn)
	// Banner line.
	if _, err := reader.ReadString('\n'); err != nil {
		t.Fatalf("read banner: %v", err)
	}

	conn.SetDeadline(time.Now().Add(2 * time.Second))
	io.WriteString(conn, "ticks\n")
	line, err := reader.ReadString('\n')
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	assert.Equal(t, "tick=42 running=true\n", line)

	io.WriteString(conn, "quit\n")
}

// TestServeConnOverVirtualSerial is TestServeConnOverTCP's counterpart
// for the serial transport, using a pty in place of real hardware.
func TestServeConnOverVirtualSerial(t *testing.T) {
	srv := newTestServer(t)
	conn, _, err := OpenVirtualSerial()
	if err != nil {
		t.Skipf("pty unavailable in this environment: %v", err)
	}
	srv.Attach(conn)

	reader := bufio.NewReader(conn)
	conn.SetDeadline(time.Now().Add(2 * time.Second))
	if _, err := reader.ReadString('\n'); err != nil {
		t.Fatalf("read banner: %v", err)
	}

	io.WriteString(conn, "bitmap\n")
	line, err := reader.ReadString('\n')
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	assert.Equal(t, "00000000000000000000000000000101\n", line)
}

// Package console is a read-only introspection surface for a running
// kernel.Kernel: a tiny line-oriented protocol ("tasks", "bitmap",
// "ticks", "quit") served over TCP and/or a serial port, grounded on the
// teacher's AGWPE socket service (src/server.go: a listener goroutine plus
// one goroutine per client) and its serial transport (src/serial_port.go).
// console never mutates kernel state — every command is answered from one
// kernel.Snapshot call, so it cannot violate the kernel's invariants.
package console

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/lestrrat-go/strftime"

	"github.com/sandocean/sandos-go/kernel"
)

// Snapshotter is the subset of *kernel.Kernel the console needs; tests
// substitute a fake to assert formatting without a real kernel.
type Snapshotter interface {
	Snapshot() kernel.Snapshot
}

// Server serves the introspection protocol to any number of concurrently
// connected clients (TCP, serial, or both).
type Server struct {
	k   Snapshotter
	log *charmlog.Logger

	timeFormat *strftime.Strftime

	mu        sync.Mutex
	listeners []net.Listener
	started   time.Time
}

// New constructs a Server over k. The banner timestamp uses the fixed
// strftime layout "%Y-%m-%d %H:%M:%S", in the style a devboard's console
// banner uses; New takes no parameter to change it.
func New(k Snapshotter, log *charmlog.Logger) (*Server, error) {
	f, err := strftime.New("%Y-%m-%d %H:%M:%S")
	if err != nil {
		return nil, fmt.Errorf("console: build timestamp formatter: %w", err)
	}
	return &Server{k: k, log: log, timeFormat: f, started: time.Now()}, nil
}

// ListenTCP starts accepting console connections on addr (e.g. ":7878")
// and serves them on background goroutines, mirroring the teacher's
// per-client-goroutine AGWPE server structure. It returns once the
// listener is bound; Close stops it.
func (s *Server) ListenTCP(addr string) error {
	ln, err := listenConfig.Listen(context.Background(), "tcp", addr)
	if err != nil {
		return fmt.Errorf("console: listen %s: %w", addr, err)
	}
	s.mu.Lock()
	s.listeners = append(s.listeners, ln)
	s.mu.Unlock()

	s.log.Info("console listening", "addr", ln.Addr().String())
	go s.acceptLoop(ln)
	return nil
}

func (s *Server) acceptLoop(ln net.Listener) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			s.log.Debug("console accept loop stopped", "err", err)
			return
		}
		go s.serveConn(conn)
	}
}

// Attach serves the console protocol over an already-open connection, the
// shape OpenSerial or a hotplug event hands us, rather than a listener's
// Accept result.
func (s *Server) Attach(conn net.Conn) {
	go s.serveConn(conn)
}

func (s *Server) serveConn(conn net.Conn) {
	defer conn.Close()
	remote := conn.RemoteAddr()
	s.log.Info("console client connected", "remote", remote)
	defer s.log.Info("console client disconnected", "remote", remote)

	fmt.Fprintf(conn, "sandos console — %s\n", s.timeFormat.FormatString(time.Now()))

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" {
			return
		}
		fmt.Fprint(conn, s.handle(line))
	}
}

func (s *Server) handle(cmd string) string {
	switch cmd {
	case "tasks":
		return s.renderTasks()
	case "bitmap":
		return s.renderBitmap()
	case "ticks":
		snap := s.k.Snapshot()
		return fmt.Sprintf("tick=%d running=%v\n", snap.Tick, snap.Running)
	case "help":
		return "commands: tasks, bitmap, ticks, help, quit\n"
	default:
		return fmt.Sprintf("unknown command %q (try help)\n", cmd)
	}
}

func (s *Server) renderTasks() string {
	snap := s.k.Snapshot()
	var b strings.Builder
	fmt.Fprintf(&b, "%-16s %-5s %-5s %-9s %-6s %-5s\n", "NAME", "PRIO", "ORIG", "STATE", "DELAY", "STACK")
	for _, t := range snap.Tasks {
		stackState := "ok"
		if !t.StackOK {
			stackState = "OVERFLOW"
		}
		fmt.Fprintf(&b, "%-16s %-5d %-5d %-9s %-6d %-5s\n",
			t.Name, t.Priority, t.OriginalPriority, t.State, t.DelayTicks, stackState)
	}
	return b.String()
}

func (s *Server) renderBitmap() string {
	snap := s.k.Snapshot()
	return fmt.Sprintf("%032b\n", snap.ReadyBitmap)
}

// Close stops every listener this server owns. It does not close
// already-accepted client connections; those exit on their own once the
// client disconnects or sends "quit".
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var firstErr error
	for _, ln := range s.listeners {
		if err := ln.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	s.listeners = nil
	return firstErr
}

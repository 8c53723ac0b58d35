// Package hostport implements kernel.Port on goroutines, for running and
// demoing the kernel on a development host where there is no CPU register
// file to save, no NVIC, and no SysTick.
//
// Each task is one goroutine. Exactly one goroutine is ever runnable at a
// time: ownership of "the CPU" is a single token passed hand-to-hand over
// unbuffered channels, so a context switch is a rendezvous send (wake the
// next task) followed by the outgoing task blocking on its own channel
// until it is handed the token again. This mirrors the single-CPU illusion
// the same way a toy cooperative scheduler pairs a parked goroutine with a
// single wakeup (see the Go runtime's own semaphore-based park/ready).
//
// The one divergence from real hardware: a tick is a hardware interrupt
// there, so it preempts whatever is running, including a task that never
// calls back into the kernel. Go cannot preempt arbitrary goroutine code
// from the outside, so here the tick is only actually applied when the
// idle task holds the token and reaches its checkpoint loop, i.e. once
// every other task is blocked. A task that never blocks in a kernel call
// keeps idle from running and starves the clock, same as it would wedge a
// real single-core target that masked interrupts forever.
package hostport

import (
	"io"
	"sync"
	"time"

	charmlog "github.com/charmbracelet/log"

	"github.com/sandocean/sandos-go/kernel"
)

// Logger is the interface hostport needs from a charmbracelet/log.Logger
// for its Debug-level scheduling trace.
type Logger interface {
	Debug(msg interface{}, keyvals ...interface{})
}

type taskRuntime struct {
	resume chan struct{}
}

// Heartbeat is toggled once per serviced tick from idle's checkpoint loop
// (not from the tick-source goroutine). A real board wires this to a GPIO line (see
// NewGPIOHeartbeat); tests and headless demos use a no-op.
type Heartbeat interface {
	Toggle()
	Close() error
}

type noopHeartbeat struct{}

func (noopHeartbeat) Toggle() {}

func (noopHeartbeat) Close() error { return nil }

// Host is a kernel.Port implementation plus the bookkeeping needed to run
// it: one goroutine per task, a wall-clock tick source, and an optional
// GPIO heartbeat.
type Host struct {
	k *kernel.Kernel

	mu        sync.Mutex
	runtimes  map[uintptr]*taskRuntime
	nextSP    uintptr
	idleSeen  bool

	tickInterval time.Duration
	ticks        chan struct{}
	heartbeat    Heartbeat

	log Logger
}

// Option configures a Host at construction.
type Option func(*Host)

// WithTickInterval overrides the default 1ms tick period (spec.md §6:
// "typically 1kHz").
func WithTickInterval(d time.Duration) Option {
	return func(h *Host) { h.tickInterval = d }
}

// WithHeartbeat wires a GPIO (or other) heartbeat, toggled once per
// serviced tick.
func WithHeartbeat(hb Heartbeat) Option {
	return func(h *Host) { h.heartbeat = hb }
}

// WithLogger attaches a Debug-level scheduling trace sink. Defaults to a
// discarding charmbracelet/log Logger, since hostport has no opinion on whether a demo
// binary wants console or file output (spec.md §7.2's ambient logging
// stack lives in cmd/, not here).
func WithLogger(l Logger) Option {
	return func(h *Host) { h.log = l }
}

// New constructs a Host and its bound Kernel, and runs Kernel.Init. The
// returned Kernel has its idle task already created; callers add their own
// tasks with Kernel.TaskCreate before calling StartScheduler.
func New(opts ...Option) (*Host, *kernel.Kernel) {
	h := &Host{
		runtimes:     map[uintptr]*taskRuntime{},
		nextSP:       0x1000,
		tickInterval: time.Millisecond,
		ticks:        make(chan struct{}, 1),
		heartbeat:    noopHeartbeat{},
		log:          charmlog.New(io.Discard),
	}
	h.k = kernel.New(h)
	h.k.Init()
	return h, h.k
}

// Run starts the wall-clock tick source and the scheduler, then blocks
// until stop is closed. StartScheduler itself returns as soon as the first
// task is dispatched (see kernel.Kernel.StartScheduler); Run is what keeps
// the host process alive afterward, the way a real target's main() never
// returns from its reset handler.
func (h *Host) Run(stop <-chan struct{}) {
	go h.tickSource(stop)
	h.k.StartScheduler()
	<-stop
	h.heartbeat.Close()
}

// tickSource feeds the ticks channel at tickInterval. It never touches
// kernel state directly — only the goroutine currently holding the token
// (idle, via its checkpoint loop) may call TickHandler, to keep every
// kernel-state access confined to a single goroutine at a time.
func (h *Host) tickSource(stop <-chan struct{}) {
	t := time.NewTicker(h.tickInterval)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			select {
			case h.ticks <- struct{}{}:
			default:
				// A tick is already pending; idle hasn't drained it yet.
				// Ticks do not queue (spec.md §4.6 processes one tick's
				// worth of bookkeeping per TickHandler call) — a slow
				// idle checkpoint coalesces missed wall-clock ticks into
				// one, the same way a hardware tick ISR that re-fires
				// before the pending flag is cleared just re-triggers
				// the same pending interrupt rather than queuing twice.
			}
		}
	}
}

// StackInit implements kernel.Port. The first call is always for the
// kernel's own idle task (kernel.Init creates it before returning, before
// any other TaskCreate can run) — its stored fn is the kernel's internal
// busy-spin body, which never checkpoints, so Host substitutes its own
// idleBody, the only task body that is allowed to service the tick
// channel directly.
func (h *Host) StackInit(fn kernel.TaskFunc, arg any, stack []uint32) uintptr {
	h.mu.Lock()
	sp := h.nextSP
	h.nextSP += uintptr(len(stack)) * 4
	isIdle := !h.idleSeen
	h.idleSeen = true
	rt := &taskRuntime{resume: make(chan struct{})}
	h.runtimes[sp] = rt
	h.mu.Unlock()

	body := fn
	if isIdle {
		body = h.idleBody
	}

	go func() {
		<-rt.resume
		h.k.CommitSwitch()
		body(arg)
	}()

	return sp
}

// idleBody replaces the kernel's internal idle task body. It is the only
// goroutine ever allowed to drain h.ticks and call TickHandler, since it
// is the one legitimately holding the CPU token whenever the system has
// nothing else ready to run — the host-simulation analogue of a real
// target's idle task executing WFI and waking only for the next
// interrupt.
func (h *Host) idleBody(any) {
	for {
		<-h.ticks
		h.heartbeat.Toggle()
		h.k.TickHandler()
	}
}

func (h *Host) runtimeFor(tcb *kernel.TCB) *taskRuntime {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.runtimes[tcb.SP]
}

// TimerInit and TimerReset are no-ops: the tick source is a plain
// goroutine driven by time.Ticker, not a maskable hardware timer, so
// there is no register to program or acknowledge.
func (h *Host) TimerInit()  {}
func (h *Host) TimerReset() {}

// TriggerSwitch implements kernel.Port by handing the CPU token from the
// calling goroutine (kernel.Current, if any) to kernel.NextTCB, then
// parking the caller until it is handed the token again. It is always
// called with interrupts already masked (spec.md §5), so there is no race
// between reading Current/NextTCB here and the kernel mutating them.
func (h *Host) TriggerSwitch() {
	next := h.k.NextTCB()
	nextRT := h.runtimeFor(next)

	cur := h.k.Current()
	if cur == nil {
		// Boot dispatch (Kernel.StartScheduler): no caller to park.
		nextRT.resume <- struct{}{}
		h.log.Debug("switch", "from", "<boot>", "to", next.Name)
		return
	}
	if next == cur {
		return
	}

	curRT := h.runtimeFor(cur)
	h.log.Debug("switch", "from", cur.Name, "to", next.Name)
	nextRT.resume <- struct{}{}
	<-curRT.resume
	h.k.CommitSwitch()
}

// EnableIRQ/DisableIRQ are no-ops on the host: the cooperative token
// handoff in TriggerSwitch already guarantees only one goroutine ever
// touches kernel state at a time, so there is no second thread of
// execution left for a hardware-style interrupt mask to guard against.
// The tick source's goroutine may still fire into h.ticks while
// "disabled" — that channel send never blocks past its buffer of 1, and
// idle only drains it from inside a dispatched checkpoint — but that is
// bookkeeping, not a kernel-state race. These exist purely so
// EnterCritical/ExitCritical's nesting discipline has a port method to
// call, matching the real Port contract (spec.md §5).
func (h *Host) DisableIRQ() {}
func (h *Host) EnableIRQ()  {}

// TopPriority mirrors kernel.topPriority for parity with a real port that
// offloads the scan to a CLZ instruction; hostport has no such
// instruction, so it scans the bits one by one from bit 0 upward, giving
// the same result as kernel/bitmap.go's lookup table for a non-zero map.
func (h *Host) TopPriority(prioMap uint32) uint8 {
	for p := uint8(0); p < kernel.MaxPriority; p++ {
		if prioMap&(1<<p) != 0 {
			return p
		}
	}
	return kernel.MaxPriority - 1
}

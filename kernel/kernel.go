package kernel

// Kernel is the kernel singleton: every piece of global, kernel-owned
// state (spec §9 "global mutable kernel state") lives here, and every
// method that touches it is guarded by the critical-section discipline
// described in spec §5. Applications create exactly one Kernel (cmd/sandosd
// gets its one from hostport.New; unit tests create one per test).
type Kernel struct {
	ready       [MaxPriority]list
	readyBitmap uint32

	delayList list

	current *TCB
	next    *TCB

	tickCount       uint32
	criticalNesting uint32
	running         bool

	port Port

	idle      TCB
	idleStack [64]uint32

	// onFatal, if set, is invoked with a diagnostic message before a
	// fatal assertion halts execution (spec §7: "no recovery is
	// attempted" — console/logging output from assertion handlers is
	// explicitly out of scope for the kernel itself, spec §1; onFatal
	// is how a host application wires that up without the kernel
	// package doing I/O itself).
	onFatal func(msg string)
}

// New creates a Kernel bound to the given Port. Call Init before creating
// any tasks.
func New(port Port) *Kernel {
	return &Kernel{port: port}
}

// SetFatalHook installs a callback invoked just before a fatal assertion
// halts the kernel. It must not itself call back into the kernel.
func (k *Kernel) SetFatalHook(f func(msg string)) {
	k.onFatal = f
}

// assert halts the kernel if cond is false, mirroring spec §7: "interrupts
// are disabled and execution halts in an infinite loop — no recovery is
// attempted." Go has no literal equivalent of halting a core that keeps
// the rest of the system alive, so this renders "halt, no recovery" as a
// panic after disabling interrupts and running the fatal hook: the
// goroutine this runs on never returns, and nothing downstream of the
// panic should ever run.
func (k *Kernel) assert(cond bool, msg string) {
	if cond {
		return
	}
	k.port.DisableIRQ()
	if k.onFatal != nil {
		k.onFatal(msg)
	}
	panic("kernel: fatal assertion: " + msg)
}

// Init initializes the kernel's internal data structures and creates the
// idle task at the lowest priority (spec §4.5, §9: the idle task
// guarantees findNext's precondition that the ready bitmap is never zero
// once the scheduler starts). Must be called before any other kernel API,
// and before creating any other task.
func (k *Kernel) Init() {
	k.running = false
	k.tickCount = 0
	k.criticalNesting = 0
	k.readyBitmap = 0

	for i := range k.ready {
		k.ready[i].init()
	}
	k.delayList.init()

	status := k.TaskCreate(&k.idle, idleTaskFunc, nil, k.idleStack[:], MaxPriority-1)
	k.assert(status == Ok, "Init: idle task creation failed")
}

func idleTaskFunc(_ any) {
	for {
	}
}

// StartScheduler hands control to the first task. It never returns on a
// real target; the hostport simulation returns once the goroutine-based
// dispatch loop is running, since Go has no "jump to address" primitive.
func (k *Kernel) StartScheduler() {
	k.assert(k.readyBitmap != 0, "StartScheduler: ready-set empty")
	k.next = k.findNext()
	k.port.TimerInit()
	k.running = true
	k.port.TriggerSwitch()
}

// Running reports whether StartScheduler has been called.
func (k *Kernel) Running() bool { return k.running }

// TickCount returns the free-running, wrapping tick counter.
func (k *Kernel) TickCount() uint32 { return k.tickCount }

// Current returns the currently scheduled TCB, or nil before
// StartScheduler.
func (k *Kernel) Current() *TCB { return k.current }

// ReadyBitmap returns the current priority bitmap, exposed read-only for
// debug/console snapshots and tests (invariant P1).
func (k *Kernel) ReadyBitmap() uint32 { return k.readyBitmap }

func (k *Kernel) readyAdd(t *TCB) {
	k.readyBitmap |= 1 << t.Priority
	k.ready[t.Priority].insertTail(t)
}

func (k *Kernel) readyRemove(t *TCB) {
	k.ready[t.Priority].remove(t)
	if k.ready[t.Priority].empty() {
		k.readyBitmap &^= 1 << t.Priority
	}
}

// findNext returns the head of the highest-priority non-empty ready
// queue (spec §4.4). Requires readyBitmap != 0; the idle task guarantees
// that once Init has run.
func (k *Kernel) findNext() *TCB {
	k.assert(k.readyBitmap != 0, "findNext: ready bitmap is empty")
	top := topPriority(k.readyBitmap)
	next := k.ready[top].head
	k.assert(next != nil, "findNext: ready bitmap/list out of sync")
	return next
}

// requestSwitch recomputes next and, if it differs from current, asks the
// port to perform a context switch (spec §4.4). The kernel commits
// current = next only as the last act of a serviced switch — in this
// simulation that commit happens inside Port.TriggerSwitch's dispatch, via
// Kernel.CommitSwitch, mirroring "the kernel commits current_tcb = next_tcb
// as the last act of the switch."
func (k *Kernel) requestSwitch() {
	k.next = k.findNext()
	if k.next != k.current {
		k.port.TriggerSwitch()
	}
}

// CommitSwitch is called by a Port implementation's context-switch
// trampoline once it has serviced a pending TriggerSwitch, to tell the
// kernel the new current task. The kernel never calls this itself —
// it is part of the kernel/port boundary described in spec §9.
func (k *Kernel) CommitSwitch() {
	k.current = k.next
}

// NextTCB returns the task the next serviced switch will dispatch to.
// Used by Port implementations to know who to resume.
func (k *Kernel) NextTCB() *TCB { return k.next }

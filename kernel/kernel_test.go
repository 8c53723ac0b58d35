package kernel

// fakePort is a minimal, fully synchronous Port used by kernel unit
// tests. It performs no real interrupt masking or context switching:
// TriggerSwitch just commits the pending switch immediately, since tests
// drive every kernel entry point by hand on a single goroutine (see
// SPEC_FULL.md §6.2 — the kernel package is tested directly, never
// through the goroutine-based hostport simulation).
type fakePort struct {
	k             *Kernel
	switches      int
	nextStackAddr uintptr
}

func newFakePort() *fakePort {
	return &fakePort{nextStackAddr: 0x1000}
}

func (p *fakePort) StackInit(fn TaskFunc, arg any, stack []uint32) uintptr {
	p.nextStackAddr += uintptr(len(stack)) * 4
	return p.nextStackAddr
}

func (p *fakePort) TimerInit()  {}
func (p *fakePort) TimerReset() {}

func (p *fakePort) TriggerSwitch() {
	p.switches++
	if p.k.next != nil {
		p.k.CommitSwitch()
	}
}

func (p *fakePort) EnableIRQ()  {}
func (p *fakePort) DisableIRQ() {}

func (p *fakePort) TopPriority(m uint32) uint8 { return topPriority(m) }

// newTestKernel returns an initialized Kernel wired to a fakePort, ready
// for tests to create tasks on.
func newTestKernel() (*Kernel, *fakePort) {
	p := newFakePort()
	k := New(p)
	p.k = k
	k.Init()
	return k, p
}

// newTask is a test helper: allocates a TCB+stack and creates a task at
// the given priority with a no-op body (tests drive scheduling decisions
// directly, not by actually running task bodies).
func newTask(k *Kernel, name string, prio uint8) *TCB {
	tcb := &TCB{}
	stack := make([]uint32, 32)
	status := k.TaskCreate(tcb, func(any) {}, nil, stack, prio)
	if status != Ok {
		panic("newTask: TaskCreate failed: " + status.String())
	}
	tcb.Name = name
	return tcb
}

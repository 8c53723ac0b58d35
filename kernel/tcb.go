package kernel

// MaxPriority is the number of priority levels, 0 (highest) .. MaxPriority-1
// (lowest). The idle task always occupies the lowest priority.
const MaxPriority = 32

// StackMagic is written to the low word of a task's stack at creation and
// checked on every tick to detect stack overflow.
const StackMagic = 0xDEADBEEF

// TaskState is the task lifecycle state (spec §3).
type TaskState int

const (
	// Ready means the task is on the ready-set, eligible to run.
	Ready TaskState = iota
	// Blocked means the task is on the delay list or a primitive's
	// wait list.
	Blocked
	// Deleted is reserved; this version never transitions a task here.
	Deleted
)

func (s TaskState) String() string {
	switch s {
	case Ready:
		return "Ready"
	case Blocked:
		return "Blocked"
	case Deleted:
		return "Deleted"
	default:
		return "TaskState(?)"
	}
}

// TaskFunc is a task's entry point, invoked by the port with its arg when
// first dispatched.
type TaskFunc func(arg any)

// TCB is the task control block. All fields are kernel-owned; the struct
// itself and its backing stack are allocated by the caller of TaskCreate,
// never by the kernel (spec §1 non-goals: no dynamic task creation from
// heap allocation inside the kernel).
//
// A TCB is a member of at most one list at a time (ready-set bucket, delay
// list, or exactly one primitive's wait list) — invariant I1. prev/next are
// the intrusive links for whichever list currently holds it.
type TCB struct {
	// SP is the saved stack pointer, valid only while the task is not
	// running. Populated by Port.StackInit and later maintained by the
	// port's context-switch trampoline; the kernel never dereferences
	// it, only stores and hands it back to the port.
	SP uintptr

	// Stack is the backing stack region, low address first. Stack[0]
	// carries the overflow-detection sentinel.
	Stack []uint32

	// Name is a debug label; it has no effect on scheduling. Optional.
	Name string

	State TaskState

	// DelayTicks holds the delta ticks remaining relative to this
	// node's predecessor while on the delay list; zero whenever the
	// task is not on the delay list (invariant I3).
	DelayTicks uint32

	// Priority is the current effective priority (0 highest), possibly
	// boosted above OriginalPriority by mutex priority inheritance.
	Priority uint8

	// OriginalPriority is the priority given at TaskCreate, restored on
	// mutex release.
	OriginalPriority uint8

	prev, next *TCB

	// fn/arg record the entry point TaskCreate handed to Port.StackInit.
	// Nothing reads them back: every port, the host simulation included,
	// receives fn/arg through StackInit itself.
	fn  TaskFunc
	arg any
}

// stackSentinelOK reports whether the overflow sentinel in the low (first)
// word of the backing stack is still intact.
func (t *TCB) stackSentinelOK() bool {
	return len(t.Stack) > 0 && t.Stack[0] == StackMagic
}

package kernel

// TaskSnapshot is a read-only view of one task's state, used by debug
// tooling (see the console package) to report on a running kernel without
// exposing mutable TCB internals.
type TaskSnapshot struct {
	Name             string
	Priority         uint8
	OriginalPriority uint8
	State            TaskState
	DelayTicks       uint32
	StackWords       int
	StackOK          bool
}

// Snapshot is a point-in-time view of kernel state for introspection. It
// is gathered under one critical section, so it cannot observe a kernel
// list mid-mutation, but by the time the caller reads it the real kernel
// state may already have moved on — it is a snapshot, not a live view.
type Snapshot struct {
	Tick        uint32
	ReadyBitmap uint32
	Running     bool
	Tasks       []TaskSnapshot
}

// Snapshot walks the ready-set buckets and the delay list under a single
// critical section and returns a description of every task found there.
// Tasks blocked on a semaphore, mutex, queue or memory-pool wait list are
// on none of those lists and do not appear in Tasks. O(n) in the number of
// tasks; never call this from a hot scheduling path.
func (k *Kernel) Snapshot() Snapshot {
	k.enterCritical()
	defer k.exitCritical()

	snap := Snapshot{
		Tick:        k.tickCount,
		ReadyBitmap: k.readyBitmap,
		Running:     k.running,
	}

	visit := func(t *TCB) {
		snap.Tasks = append(snap.Tasks, TaskSnapshot{
			Name:             t.Name,
			Priority:         t.Priority,
			OriginalPriority: t.OriginalPriority,
			State:            t.State,
			DelayTicks:       t.DelayTicks,
			StackWords:       len(t.Stack),
			StackOK:          t.stackSentinelOK(),
		})
	}

	for p := 0; p < MaxPriority; p++ {
		for t := k.ready[p].head; t != nil; t = t.next {
			visit(t)
		}
	}
	for t := k.delayList.head; t != nil; t = t.next {
		visit(t)
	}

	return snap
}

package kernel

// TaskCreate registers tcb (and its backing stack) as a new task and adds
// it to the ready-set (spec §4.5). tcb and stack are allocated by the
// caller; the kernel never allocates on a task's behalf (spec §1
// non-goals).
//
// TaskCreate may be called before or after StartScheduler; if called
// after, and the new task outranks the caller, the caller is preempted as
// soon as it next allows a switch (requestSwitch below).
func (k *Kernel) TaskCreate(tcb *TCB, fn TaskFunc, arg any, stack []uint32, priority uint8) Status {
	if tcb == nil || fn == nil || stack == nil || priority >= MaxPriority {
		return Param
	}

	tcb.SP = k.port.StackInit(fn, arg, stack)
	tcb.Stack = stack
	tcb.Stack[0] = StackMagic
	tcb.fn = fn
	tcb.arg = arg

	tcb.DelayTicks = 0
	tcb.State = Ready
	tcb.Priority = priority
	tcb.OriginalPriority = priority

	k.enterCritical()
	k.readyAdd(tcb)
	if k.running {
		k.requestSwitch()
	}
	k.exitCritical()

	return Ok
}

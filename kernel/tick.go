package kernel

// TickHandler drives the kernel's periodic heartbeat (spec §4.6). Call it
// from the port's tick-timer interrupt; it must run with interrupts
// already masked by hardware entry to that ISR (spec §5: "Interrupt-
// context APIs must not themselves call enter_critical/exit_critical").
func (k *Kernel) TickHandler() {
	if !k.running {
		return
	}

	k.assert(k.current != nil, "TickHandler: no current task")
	k.checkStackOverflow()

	k.tickCount++

	k.tickDelayList()

	ls := &k.ready[k.current.Priority]
	if k.current.State == Ready && ls.head != ls.tail {
		ls.remove(k.current)
		ls.insertTail(k.current)
	}

	k.requestSwitch()

	k.port.TimerReset()
}

// checkStackOverflow audits the current task's stack sentinel (spec
// §4.6 step 1). A real target also checks that SP still lies above the
// stack base; the host simulation's SP field is not a live hardware
// pointer (goroutines carry their own Go stacks), so only the sentinel
// word is meaningful there — see hostport for the concrete Port.
func (k *Kernel) checkStackOverflow() {
	k.assert(k.current.stackSentinelOK(), "stack overflow detected on task "+k.current.Name)
}

package kernel

// Sem is a counting semaphore with a FIFO waiter list (spec §4.7).
type Sem struct {
	count    uint32
	waitList list
}

// SemInit initializes sem with the given initial count.
func (k *Kernel) SemInit(sem *Sem, initial uint32) Status {
	if sem == nil {
		return Param
	}
	sem.count = initial
	sem.waitList.init()
	return Ok
}

// SemWait decrements sem's count, blocking the caller (FIFO among
// waiters) if it is already zero. Unlike queue/mempool waits, a woken
// semaphore waiter does not recheck count on wake: SemPost's handoff to
// a waiter and this decrement cancel by construction (spec §4.7), so
// there is nothing left to recheck.
func (k *Kernel) SemWait(sem *Sem) Status {
	if sem == nil {
		return Param
	}
	k.enterCritical()
	if sem.count > 0 {
		sem.count--
		k.exitCritical()
		return Ok
	}
	k.blockOn(&sem.waitList)
	k.exitCritical()
	return Ok
}

// SemPost increments sem's count, or — if a task is already waiting —
// wakes the head waiter instead. The increment and the woken waiter's
// pending decrement cancel, so count does not change in that case (spec
// §4.7).
func (k *Kernel) SemPost(sem *Sem) Status {
	if sem == nil {
		return Param
	}
	k.enterCritical()
	if sem.waitList.empty() {
		sem.count++
	} else {
		woken := sem.waitList.popHead()
		woken.State = Ready
		k.readyAdd(woken)
		k.requestSwitch()
	}
	k.exitCritical()
	return Ok
}

// SemPostFromISR is SemPost's ISR-safe counterpart: it must not be called
// from task context, and it never toggles the hardware interrupt mask —
// the ISR entry already masked interrupts (spec §5). higherPrioWoken, if
// non-nil, is set true when the woken waiter outranks the current task;
// the ISR epilogue is expected to call RequestSwitch (or trust the flag)
// to trigger the pending context switch at ISR exit.
func (k *Kernel) SemPostFromISR(sem *Sem, higherPrioWoken *bool) Status {
	if sem == nil {
		return Param
	}
	if sem.waitList.empty() {
		sem.count++
		return Ok
	}
	woken := sem.waitList.popHead()
	woken.State = Ready
	k.readyAdd(woken)
	if higherPrioWoken != nil && k.current != nil && woken.Priority < k.current.Priority {
		*higherPrioWoken = true
	}
	return Ok
}

// blockOn is the shared "suspension rule" tail (spec §4.4 steps b-d): move
// the current task off the ready-set, onto list, and request a switch.
// The caller performs step (a) (object mutation) before calling this, and
// step (e) (exit critical section) after.
func (k *Kernel) blockOn(waitList *list) *TCB {
	cur := k.current
	cur.State = Blocked
	k.readyRemove(cur)
	waitList.insertTail(cur)
	k.requestSwitch()
	return cur
}

// RequestSwitch lets an ISR-context caller (e.g. after *FromISR set its
// higher-priority-woken flag) ask the scheduler to act on it. This is the
// only kernel entry point ISR code needs beyond the *_from_isr primitives
// themselves.
func (k *Kernel) RequestSwitch() {
	k.requestSwitch()
}

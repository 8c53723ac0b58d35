package kernel

// Mutex is a priority-inheriting mutex (spec §4.8): recursive for its
// owner, with a waiter list kept in priority order (smaller value = higher
// priority; ties FIFO).
type Mutex struct {
	owner    *TCB
	nest     uint32
	waitList list
}

// MutexInit initializes mutex as unowned.
func (k *Kernel) MutexInit(mutex *Mutex) Status {
	if mutex == nil {
		return Param
	}
	mutex.owner = nil
	mutex.nest = 0
	mutex.waitList.init()
	return Ok
}

// MutexPend acquires mutex, blocking (priority-ordered) if it is held by
// another task, boosting that owner's effective priority first if the
// caller outranks it (single-step priority inheritance — spec §4.8, §9).
func (k *Kernel) MutexPend(mutex *Mutex) Status {
	if mutex == nil {
		return Param
	}
	k.enterCritical()
	defer k.exitCritical()

	cur := k.current

	if mutex.owner == nil {
		mutex.owner = cur
		mutex.nest = 1
		return Ok
	}
	if mutex.owner == cur {
		mutex.nest++
		return Ok
	}

	if cur.Priority < mutex.owner.Priority {
		k.boostOwner(mutex.owner, cur.Priority)
	}

	cur.State = Blocked
	k.readyRemove(cur)
	k.mutexWaitInsert(mutex, cur)

	k.requestSwitch()
	return Ok
}

// boostOwner raises owner's effective priority to at most newPrio. If
// owner is presently on the ready-set it is removed and reinserted so the
// bitmap/queues reflect the new priority (invariant I2). If owner is
// blocked elsewhere, its priority is mutated in place — the wait list
// that currently holds it is not re-sorted (spec §9 open question,
// option (a): replicate the documented C behavior rather than the more
// conservative re-sort).
func (k *Kernel) boostOwner(owner *TCB, newPrio uint8) {
	if owner.State == Ready {
		k.readyRemove(owner)
		owner.Priority = newPrio
		k.readyAdd(owner)
		return
	}
	owner.Priority = newPrio
}

// mutexWaitInsert inserts t into mutex's waiter list in priority order,
// FIFO among equal priorities (spec §4.8).
func (k *Kernel) mutexWaitInsert(mutex *Mutex, t *TCB) {
	if mutex.waitList.empty() || mutex.waitList.head.Priority > t.Priority {
		mutex.waitList.insertHead(t)
		return
	}
	iter := mutex.waitList.head
	for iter.next != nil && iter.next.Priority <= t.Priority {
		iter = iter.next
	}
	mutex.waitList.insertAfter(iter, t)
}

// MutexPost releases one level of mutex. Fails with NotOwner if the
// caller does not hold it. When the nest count reaches zero, the caller's
// boosted priority (if any) is restored and, if a task is waiting, it
// becomes the new owner and is moved to the ready-set (spec §4.8).
// Invariant I6 holds at every return.
func (k *Kernel) MutexPost(mutex *Mutex) Status {
	if mutex == nil {
		return Param
	}
	k.enterCritical()
	defer k.exitCritical()

	cur := k.current
	if mutex.owner != cur {
		return NotOwner
	}

	mutex.nest--
	if mutex.nest > 0 {
		return Ok
	}

	if cur.Priority != cur.OriginalPriority {
		k.readyRemove(cur)
		cur.Priority = cur.OriginalPriority
		k.readyAdd(cur)
	}

	if mutex.waitList.empty() {
		mutex.owner = nil
		return Ok
	}

	woken := mutex.waitList.popHead()
	mutex.owner = woken
	mutex.nest = 1
	woken.State = Ready
	k.readyAdd(woken)
	k.requestSwitch()
	return Ok
}

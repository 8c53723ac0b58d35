package kernel

// Delay blocks the current task for ticks ticks (spec §4.5). The delay
// list is kept in delta-encoded order: each node's DelayTicks holds the
// ticks remaining relative to its predecessor, so the tick handler's
// per-tick work is O(1) regardless of how many tasks are sleeping (spec
// §9) — only insertion here is O(n).
//
// Delay(0) yields the CPU: the delay-list walk stops at the first node
// whose DelayTicks exceeds 0, so the task is inserted at the head (behind
// any other zero-residual entries) with residual 0. It stays off the
// ready-set until the next TickHandler call wakes it; until then any other
// ready task, including a lower-priority one, may run.
func (k *Kernel) Delay(ticks uint32) {
	k.enterCritical()

	cur := k.current
	cur.State = Blocked
	k.readyRemove(cur)

	k.delayInsert(cur, ticks)

	k.requestSwitch()
	k.exitCritical()
}

// delayInsert walks the delta-encoded delay list to find where ticks
// belongs, subtracting each predecessor's residual along the way, then
// splices the task in and fixes up the successor's residual so absolute
// wake times are preserved (invariant I3).
func (k *Kernel) delayInsert(t *TCB, ticks uint32) {
	var prev *TCB
	iter := k.delayList.head
	for iter != nil && ticks >= iter.DelayTicks {
		ticks -= iter.DelayTicks
		prev = iter
		iter = iter.next
	}

	t.DelayTicks = ticks

	if iter != nil {
		iter.DelayTicks -= ticks
	}
	k.delayList.insertAfter(prev, t)
}

// tickDelayList is step 3 of the tick handler (spec §4.6): decrement the
// head's residual, then wake every task whose residual has reached zero.
// Multiple tasks may wake on the same tick; they wake in delay-list order.
func (k *Kernel) tickDelayList() {
	if k.delayList.empty() {
		return
	}
	if k.delayList.head.DelayTicks > 0 {
		k.delayList.head.DelayTicks--
	}
	for !k.delayList.empty() && k.delayList.head.DelayTicks == 0 {
		woken := k.delayList.popHead()
		woken.State = Ready
		k.readyAdd(woken)
	}
}

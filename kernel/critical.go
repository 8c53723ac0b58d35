package kernel

// criticalNesting tracks the nest count for the single, global interrupt
// mask (spec §4.3). Nesting is global because there is exactly one CPU.

func (k *Kernel) enterCritical() {
	k.port.DisableIRQ()
	k.criticalNesting++
}

func (k *Kernel) exitCritical() {
	k.assert(k.criticalNesting != 0, "ExitCritical: nesting underflow")
	k.criticalNesting--
	if k.criticalNesting == 0 {
		k.port.EnableIRQ()
	}
}

// EnterCritical masks interrupts and increments the nest counter. Exposed
// for application code that needs to protect its own data against
// preemption using the same global mask the kernel uses (spec §6).
func (k *Kernel) EnterCritical() { k.enterCritical() }

// ExitCritical decrements the nest counter, re-enabling interrupts only
// when it reaches zero. Calling it more times than EnterCritical was
// called is a fatal assertion (invariant I5).
func (k *Kernel) ExitCritical() { k.exitCritical() }

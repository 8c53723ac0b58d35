// Package kernel implements a small preemptive, priority-based real-time
// kernel for a single-core target: a scheduler, task lifecycle and delay
// mechanism, and a set of blocking synchronization primitives (counting
// semaphore, priority-inheriting mutex, message queue, fixed-block memory
// pool).
//
// The kernel owns exactly one invariant shared by every subsystem here:
// the ready-bitmap/ready-queue. Every operation that can block follows one
// protocol: mutate the object, move the current task off the ready-set and
// onto a wait list, then ask the scheduler to recompute the next task and
// request a context switch (see Kernel.requestSwitch).
//
// Everything in this package is expected to run with interrupts masked by
// the caller's critical section, or from tick-interrupt context. Apart
// from the debug Snapshot and Status.AsError, none of it allocates after
// Init, and none of it performs I/O: a CPU port
// (Port) is the only collaborator that touches real hardware.
package kernel

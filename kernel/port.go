package kernel

// Port is the CPU/board collaborator the kernel requires but never
// implements (spec §1, §6): interrupt masking, initial stack frame
// construction, tick-timer programming, and the software-interrupt
// trampoline that actually performs a context switch. The kernel calls
// Port methods from within a critical section or from TickHandler, with
// these exceptions: TaskCreate calls StackInit before entering its
// critical section, and StartScheduler calls TimerInit and TriggerSwitch
// without one. It never touches registers or hardware directly.
//
// A real target implements Port with inline assembly and memory-mapped
// peripherals (see original_source/Source/Portable/RISC-V QingkeV4 for
// the reference this kernel's algorithms were ported from). The hostport
// package implements it in pure Go for development and testing.
type Port interface {
	// StackInit builds an initial frame at the high end of stack such
	// that the first dispatch begins executing fn(arg); if fn ever
	// returns, control must land in an infinite loop. Returns the
	// initial saved stack pointer.
	StackInit(fn TaskFunc, arg any, stack []uint32) uintptr

	// TimerInit programs the periodic tick interrupt and enables it.
	TimerInit()

	// TimerReset acknowledges the tick interrupt's hardware flag.
	TimerReset()

	// TriggerSwitch requests a software interrupt that, once serviced,
	// context-switches from the kernel's current task to its next
	// task.
	TriggerSwitch()

	// EnableIRQ / DisableIRQ mask global interrupts. Must nest
	// correctly with the kernel's own criticalNesting counter (the
	// kernel calls these from EnterCritical/ExitCritical, and DisableIRQ
	// also from a failing fatal assertion).
	EnableIRQ()
	DisableIRQ()

	// TopPriority is the port's own fast bit-scan, offered for parity
	// with hardware ports that have a single-cycle CLZ instruction.
	// The kernel's bitmap.go has its own portable implementation and
	// does not call this one; it exists so Port fully mirrors spec §6.
	TopPriority(prioMap uint32) uint8
}

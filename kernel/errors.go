package kernel

// Status is the kernel's flat error taxonomy (spec §7). Programmer-logic
// violations that threaten a kernel invariant never return a Status — they
// call Kernel.assert, which is fatal.
type Status int

const (
	// Ok indicates success.
	Ok Status = iota
	// Param indicates a null or out-of-range argument.
	Param
	// Timeout is reserved; this version never produces it (no timed
	// waits other than Delay).
	Timeout
	// Resource indicates a non-blocking request found the resource
	// unavailable, e.g. an empty queue read from ISR context.
	Resource
	// NotOwner indicates MutexPost was called by a task that does not
	// hold the mutex.
	NotOwner
	// Nesting is reserved for mutex nest-count overflow.
	Nesting
	// QFull indicates QueueSend found the queue at capacity.
	QFull
	// InvalidAddr indicates MemPut was given an address outside the
	// pool's backing region.
	InvalidAddr
	// NotAlign indicates MemPut was given an address not aligned to
	// the pool's block size.
	NotAlign
	// Isr is reserved for disallowed API invoked from ISR context.
	Isr
)

func (s Status) String() string {
	switch s {
	case Ok:
		return "Ok"
	case Param:
		return "Param"
	case Timeout:
		return "Timeout"
	case Resource:
		return "Resource"
	case NotOwner:
		return "NotOwner"
	case Nesting:
		return "Nesting"
	case QFull:
		return "QFull"
	case InvalidAddr:
		return "InvalidAddr"
	case NotAlign:
		return "NotAlign"
	case Isr:
		return "Isr"
	default:
		return "Status(?)"
	}
}

// StatusError adapts a non-Ok Status to the error interface so callers
// that prefer idiomatic Go error handling can do so; callers that want
// the raw tag can keep using Status directly.
type StatusError struct {
	Status Status
	Op     string
}

func (e *StatusError) Error() string {
	if e.Op == "" {
		return e.Status.String()
	}
	return e.Op + ": " + e.Status.String()
}

// AsError wraps a Status as an error, returning nil for Ok.
func (s Status) AsError(op string) error {
	if s == Ok {
		return nil
	}
	return &StatusError{Status: s, Op: op}
}

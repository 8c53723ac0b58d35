package kernel

// list is the intrusive doubly-linked queue of TCBs used by the ready-set,
// the delay list, and every primitive's wait list (spec §4.1). It does not
// own the TCBs it holds — removal assumes the caller guarantees the TCB is
// currently a member.
type list struct {
	head, tail *TCB
}

func (l *list) init() {
	l.head = nil
	l.tail = nil
}

func (l *list) empty() bool {
	return l.head == nil
}

// insertTail appends tcb to the list in O(1).
func (l *list) insertTail(tcb *TCB) {
	tcb.next = nil
	if l.head == nil {
		l.head = tcb
		l.tail = tcb
		tcb.prev = nil
		return
	}
	l.tail.next = tcb
	tcb.prev = l.tail
	l.tail = tcb
}

// insertHead prepends tcb to the list in O(1).
func (l *list) insertHead(tcb *TCB) {
	tcb.prev = nil
	if l.head == nil {
		l.head = tcb
		l.tail = tcb
		tcb.next = nil
		return
	}
	tcb.next = l.head
	l.head.prev = tcb
	l.head = tcb
}

// insertAfter inserts tcb immediately after at, which must be a current
// member of the list (or nil, meaning insert at head).
func (l *list) insertAfter(at, tcb *TCB) {
	if at == nil {
		l.insertHead(tcb)
		return
	}
	tcb.prev = at
	tcb.next = at.next
	if at.next != nil {
		at.next.prev = tcb
	} else {
		l.tail = tcb
	}
	at.next = tcb
}

// remove detaches tcb from the list in O(1). The caller guarantees tcb is
// currently a member of this list (spec §4.1).
func (l *list) remove(tcb *TCB) {
	if tcb.prev == nil {
		l.head = tcb.next
	} else {
		tcb.prev.next = tcb.next
	}
	if tcb.next == nil {
		l.tail = tcb.prev
	} else {
		tcb.next.prev = tcb.prev
	}
	tcb.prev = nil
	tcb.next = nil
}

// popHead removes and returns the head of the list, or nil if empty.
func (l *list) popHead() *TCB {
	head := l.head
	if head != nil {
		l.remove(head)
	}
	return head
}

// length walks the list. O(n); used only by tests, never on a kernel fast
// path.
func (l *list) length() int {
	n := 0
	for t := l.head; t != nil; t = t.next {
		n++
	}
	return n
}

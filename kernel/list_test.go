package kernel

import "testing"

func TestListInsertTailPopHeadFIFO(t *testing.T) {
	var l list
	l.init()

	a, b, c := &TCB{Name: "a"}, &TCB{Name: "b"}, &TCB{Name: "c"}
	l.insertTail(a)
	l.insertTail(b)
	l.insertTail(c)

	if l.length() != 3 {
		t.Fatalf("length = %d, want 3", l.length())
	}
	for _, want := range []*TCB{a, b, c} {
		if got := l.popHead(); got != want {
			t.Fatalf("popHead = %v, want %v", got.Name, want.Name)
		}
	}
	if !l.empty() {
		t.Fatalf("expected empty list")
	}
}

func TestListRemoveArbitrary(t *testing.T) {
	var l list
	l.init()
	a, b, c := &TCB{Name: "a"}, &TCB{Name: "b"}, &TCB{Name: "c"}
	l.insertTail(a)
	l.insertTail(b)
	l.insertTail(c)

	l.remove(b)
	if l.length() != 2 {
		t.Fatalf("length = %d, want 2", l.length())
	}
	if l.head != a || l.tail != c {
		t.Fatalf("unexpected head/tail after removing middle element")
	}
	if a.next != c || c.prev != a {
		t.Fatalf("links not repaired after remove")
	}
}

func TestListInsertAfterHead(t *testing.T) {
	var l list
	l.init()
	a := &TCB{Name: "a"}
	l.insertTail(a)
	b := &TCB{Name: "b"}
	l.insertAfter(nil, b) // insert before head
	if l.head != b || b.next != a {
		t.Fatalf("insertAfter(nil, ...) should insert at head")
	}
}

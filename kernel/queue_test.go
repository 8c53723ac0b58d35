package kernel

import (
	"bytes"
	"testing"
)

func TestQueueSendReceiveFIFO(t *testing.T) {
	k, _ := newTestKernel()
	reader := newTask(k, "reader", 20)
	k.current = reader

	var q Queue
	buf := make([]byte, 4*3)
	if st := k.QueueInit(&q, buf, 4, 3); st != Ok {
		t.Fatalf("QueueInit = %v", st)
	}

	if st := k.QueueSend(&q, []byte("aaaa")); st != Ok {
		t.Fatalf("QueueSend 1 = %v", st)
	}
	if st := k.QueueSend(&q, []byte("bbbb")); st != Ok {
		t.Fatalf("QueueSend 2 = %v", st)
	}

	got := make([]byte, 4)
	if st := k.QueueReceive(&q, got); st != Ok {
		t.Fatalf("QueueReceive 1 = %v", st)
	}
	if !bytes.Equal(got, []byte("aaaa")) {
		t.Fatalf("received %q, want aaaa (FIFO order)", got)
	}
}

func TestQueueFullReturnsQFull(t *testing.T) {
	k, _ := newTestKernel()
	k.current = newTask(k, "sender", 10)

	var q Queue
	buf := make([]byte, 2*1)
	k.QueueInit(&q, buf, 1, 2)

	if st := k.QueueSend(&q, []byte("x")); st != Ok {
		t.Fatalf("QueueSend 1 = %v", st)
	}
	if st := k.QueueSend(&q, []byte("y")); st != Ok {
		t.Fatalf("QueueSend 2 = %v", st)
	}
	if st := k.QueueSend(&q, []byte("z")); st != QFull {
		t.Fatalf("QueueSend on full queue = %v, want QFull", st)
	}
}

func TestQueueReceiveFromISRNeverBlocks(t *testing.T) {
	k, _ := newTestKernel()
	k.current = newTask(k, "t", 10)

	var q Queue
	buf := make([]byte, 2)
	k.QueueInit(&q, buf, 2, 1)

	got := make([]byte, 2)
	if st := k.QueueReceiveFromISR(&q, got); st != Resource {
		t.Fatalf("QueueReceiveFromISR on empty = %v, want Resource", st)
	}
}

// TestQueueWakeOnSend is spec §8 scenario 5: a receiver blocked on an
// empty queue unblocks and preempts the sender as soon as a message
// arrives, and the bytes received equal the bytes sent.
func TestQueueWakeOnSend(t *testing.T) {
	k, _ := newTestKernel()
	r := newTask(k, "R", 8)
	s := newTask(k, "S", 12)

	var q Queue
	buf := make([]byte, 4)
	k.QueueInit(&q, buf, 4, 1)

	// R blocks on the empty queue (suspension rule steps a-d). A real
	// scheduler stops executing QueueReceive right here until R is
	// rescheduled; this test drives that suspension by hand since
	// fakePort commits switches synchronously rather than parking a
	// goroutine, so a live call to QueueReceive on an empty queue would
	// just spin its recheck loop against a current task that never
	// changes underneath it.
	k.current = r
	k.enterCritical()
	k.blockOn(&q.waitRead)
	k.exitCritical()
	if k.Current() != s {
		t.Fatalf("after R blocks, current = %s, want S", k.Current().Name)
	}

	k.current = s
	sent := []byte("msg!")
	if st := k.QueueSend(&q, sent); st != Ok {
		t.Fatalf("QueueSend = %v", st)
	}
	if k.Current() != r {
		t.Fatalf("after send wakes receiver, current = %s, want R (higher priority)", k.Current().Name)
	}

	// R resumes inside QueueReceive's loop; count is now 1 so it
	// completes without blocking again.
	got := make([]byte, 4)
	if st := k.QueueReceive(&q, got); st != Ok {
		t.Fatalf("QueueReceive on resume = %v", st)
	}
	if !bytes.Equal(got, sent) {
		t.Fatalf("received %q, want %q", got, sent)
	}
}

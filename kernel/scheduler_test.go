package kernel

import "testing"

// TestTwoTaskPriorityPreemption is spec §8 scenario 1: B (low priority
// number wins; here A=5, B=10) runs, posts a semaphore A is waiting on,
// and A must run immediately, preempting B.
func TestTwoTaskPriorityPreemption(t *testing.T) {
	k, _ := newTestKernel()

	var sem Sem
	k.SemInit(&sem, 0)

	a := newTask(k, "A", 5)
	_ = newTask(k, "B", 10)

	k.StartScheduler() // idle (31) is lowest ready; current should now be A (prio 5)
	if k.Current().Name != "A" {
		t.Fatalf("current = %s, want A", k.Current().Name)
	}

	// A blocks on the semaphore; B becomes current.
	k.current = a
	k.SemWait(&sem)
	if k.Current().Name != "B" {
		t.Fatalf("after SemWait, current = %s, want B", k.Current().Name)
	}

	// B posts; A should be woken and become current (preempting B).
	k.current = k.findNextNamed("B")
	status := k.SemPost(&sem)
	if status != Ok {
		t.Fatalf("SemPost = %v", status)
	}
	if k.Current().Name != "A" {
		t.Fatalf("after SemPost, current = %s, want A", k.Current().Name)
	}

	want := uint32(1<<5) | uint32(1<<10) | uint32(1<<(MaxPriority-1))
	if k.ReadyBitmap() != want {
		t.Fatalf("ready bitmap = %#x, want %#x", k.ReadyBitmap(), want)
	}
}

// findNextNamed is a test-only helper to fetch a TCB by name from any
// kernel list, used to simulate "this task is now executing" without a
// real context switch.
func (k *Kernel) findNextNamed(name string) *TCB {
	for p := 0; p < MaxPriority; p++ {
		for t := k.ready[p].head; t != nil; t = t.next {
			if t.Name == name {
				return t
			}
		}
	}
	return nil
}

// TestSamePriorityRotation is spec §8 scenario 2: three tasks at the same
// priority, no blocking; each tick rotates the ready-queue so each task
// gets exactly one tick before the cycle repeats.
func TestSamePriorityRotation(t *testing.T) {
	k, _ := newTestKernel()

	t1 := newTask(k, "T1", 10)
	t2 := newTask(k, "T2", 10)
	t3 := newTask(k, "T3", 10)

	k.StartScheduler()
	if k.Current() != t1 {
		t.Fatalf("initial current = %s, want T1", k.Current().Name)
	}

	k.TickHandler()
	if k.Current() != t2 {
		t.Fatalf("after tick 1, current = %s, want T2", k.Current().Name)
	}
	k.TickHandler()
	if k.Current() != t3 {
		t.Fatalf("after tick 2, current = %s, want T3", k.Current().Name)
	}
	k.TickHandler()
	if k.Current() != t1 {
		t.Fatalf("after tick 3, current = %s, want T1 (full rotation)", k.Current().Name)
	}
}

// TestDelayOrdering is spec §8 scenario 3: delay list delta encoding and
// wake order for delay(50), delay(10), delay(30) issued in that order.
func TestDelayOrdering(t *testing.T) {
	k, _ := newTestKernel()

	t1 := newTask(k, "T1", 5)
	t2 := newTask(k, "T2", 6)
	t3 := newTask(k, "T3", 7)

	k.StartScheduler() // T1 is current (highest priority)

	k.current = t1
	k.Delay(50)
	k.current = t2
	k.Delay(10)
	k.current = t3
	k.Delay(30)

	// Expected delta-encoded order: T2:10, T3:20, T1:20
	names := []string{}
	deltas := []uint32{}
	for n := k.delayList.head; n != nil; n = n.next {
		names = append(names, n.Name)
		deltas = append(deltas, n.DelayTicks)
	}
	wantNames := []string{"T2", "T3", "T1"}
	wantDeltas := []uint32{10, 20, 20}
	for i := range wantNames {
		if names[i] != wantNames[i] || deltas[i] != wantDeltas[i] {
			t.Fatalf("delay list = %v/%v, want %v/%v", names, deltas, wantNames, wantDeltas)
		}
	}

	// Advance 10 ticks: T2 should wake.
	for i := 0; i < 10; i++ {
		k.TickHandler()
	}
	if t2.State != Ready {
		t.Fatalf("T2 should be ready after 10 ticks")
	}
	if t1.State != Blocked || t3.State != Blocked {
		t.Fatalf("T1/T3 should still be blocked after 10 ticks")
	}

	// Advance to tick 30: T3 wakes.
	for i := 0; i < 20; i++ {
		k.TickHandler()
	}
	if t3.State != Ready {
		t.Fatalf("T3 should be ready after 30 ticks")
	}
	if t1.State != Blocked {
		t.Fatalf("T1 should still be blocked after 30 ticks")
	}

	// Advance to tick 50: T1 wakes.
	for i := 0; i < 20; i++ {
		k.TickHandler()
	}
	if t1.State != Ready {
		t.Fatalf("T1 should be ready after 50 ticks")
	}
}

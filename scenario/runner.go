package scenario

import (
	"fmt"
	"strconv"

	"github.com/sandocean/sandos-go/kernel"
)

// Runtime holds the kernel resources and tasks a Scenario was built into,
// keeping the backing Go objects (TCBs, stacks, object buffers) alive for
// as long as the kernel runs against them.
type Runtime struct {
	k *kernel.Kernel

	sems          map[string]*kernel.Sem
	mutexes       map[string]*kernel.Mutex
	queues        map[string]*kernel.Queue
	queueItemSize map[string]int
	pools         map[string]*kernel.Mem

	tcbs   []*kernel.TCB
	stacks [][]uint32
}

// DefaultStackWords is the stack size given to every scenario task; the
// interpreter loop itself needs very little stack, but the host
// simulation's StackInit only uses the slice's length for bookkeeping, not
// as a real stack (see hostport.Host.StackInit), so this is generous on
// purpose.
const DefaultStackWords = 64

// Build creates every resource and task a Scenario names, wiring each
// task's program to a kernel.TaskFunc that interprets it. Tasks are
// created in the order they appear in the scenario, which is also their
// initial ready-queue order among tasks of equal priority.
func Build(k *kernel.Kernel, s *Scenario) (*Runtime, error) {
	rt := &Runtime{
		k:             k,
		sems:          map[string]*kernel.Sem{},
		mutexes:       map[string]*kernel.Mutex{},
		queues:        map[string]*kernel.Queue{},
		queueItemSize: map[string]int{},
		pools:         map[string]*kernel.Mem{},
	}

	for _, spec := range s.Semaphores {
		sem := &kernel.Sem{}
		if st := k.SemInit(sem, spec.Initial); st != kernel.Ok {
			return nil, fmt.Errorf("scenario: semaphore %q: %s", spec.Name, st)
		}
		rt.sems[spec.Name] = sem
	}
	for _, name := range s.Mutexes {
		m := &kernel.Mutex{}
		if st := k.MutexInit(m); st != kernel.Ok {
			return nil, fmt.Errorf("scenario: mutex %q: %s", name, st)
		}
		rt.mutexes[name] = m
	}
	for _, spec := range s.Queues {
		q := &kernel.Queue{}
		buf := make([]byte, spec.ItemSize*spec.Capacity)
		if st := k.QueueInit(q, buf, spec.ItemSize, spec.Capacity); st != kernel.Ok {
			return nil, fmt.Errorf("scenario: queue %q: %s", spec.Name, st)
		}
		rt.queues[spec.Name] = q
		rt.queueItemSize[spec.Name] = spec.ItemSize
	}
	for _, spec := range s.Pools {
		m := &kernel.Mem{}
		backing := make([]byte, spec.BlockSize*spec.TotalBlocks)
		if st := k.MemInit(m, backing, spec.TotalBlocks, spec.BlockSize); st != kernel.Ok {
			return nil, fmt.Errorf("scenario: pool %q: %s", spec.Name, st)
		}
		rt.pools[spec.Name] = m
	}

	ops, err := s.Compile()
	if err != nil {
		return nil, err
	}

	for _, t := range s.Tasks {
		tcb := &kernel.TCB{}
		stack := make([]uint32, DefaultStackWords)
		body, err := rt.taskBody(t.Name, ops[t.Name])
		if err != nil {
			return nil, err
		}
		if st := k.TaskCreate(tcb, body, nil, stack, t.Priority); st != kernel.Ok {
			return nil, fmt.Errorf("scenario: task %q: %s", t.Name, st)
		}
		tcb.Name = t.Name
		rt.tcbs = append(rt.tcbs, tcb)
		rt.stacks = append(rt.stacks, stack)
	}

	return rt, nil
}

// taskBody returns the interpreter loop for one task's compiled program.
// The program runs top to bottom forever; "loop" explicitly restarts it,
// and falling off the end restarts it implicitly too, since a real RTOS
// task body is always an infinite loop (spec.md §1: dynamic task
// deletion is out of scope).
func (rt *Runtime) taskBody(name string, ops []Op) (kernel.TaskFunc, error) {
	for _, op := range ops {
		switch op.Verb {
		case "sem_wait", "sem_post":
			if rt.sems[op.Arg] == nil {
				return nil, fmt.Errorf("scenario: task %q: unknown semaphore %q", name, op.Arg)
			}
		case "mutex_pend", "mutex_post":
			if rt.mutexes[op.Arg] == nil {
				return nil, fmt.Errorf("scenario: task %q: unknown mutex %q", name, op.Arg)
			}
		case "queue_send", "queue_receive":
			if rt.queues[op.Arg] == nil {
				return nil, fmt.Errorf("scenario: task %q: unknown queue %q", name, op.Arg)
			}
		case "mem_get", "mem_put":
			if rt.pools[op.Arg] == nil {
				return nil, fmt.Errorf("scenario: task %q: unknown pool %q", name, op.Arg)
			}
		}
	}

	return func(any) {
		held := map[string]uintptr{}
	outer:
		for {
			for _, op := range ops {
				switch op.Verb {
				case "loop":
					continue outer
				case "delay":
					n, _ := strconv.Atoi(op.Arg)
					rt.k.Delay(uint32(n))
				case "sem_wait":
					rt.k.SemWait(rt.sems[op.Arg])
				case "sem_post":
					rt.k.SemPost(rt.sems[op.Arg])
				case "mutex_pend":
					rt.k.MutexPend(rt.mutexes[op.Arg])
				case "mutex_post":
					rt.k.MutexPost(rt.mutexes[op.Arg])
				case "queue_send":
					size := rt.queueItemSize[op.Arg]
					rt.k.QueueSend(rt.queues[op.Arg], make([]byte, size))
				case "queue_receive":
					size := rt.queueItemSize[op.Arg]
					rt.k.QueueReceive(rt.queues[op.Arg], make([]byte, size))
				case "mem_get":
					held[op.Arg] = rt.k.MemGet(rt.pools[op.Arg])
				case "mem_put":
					if addr, ok := held[op.Arg]; ok {
						rt.k.MemPut(rt.pools[op.Arg], addr)
						delete(held, op.Arg)
					}
				}
			}
		}
	}, nil
}

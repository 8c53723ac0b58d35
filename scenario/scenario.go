// Package scenario parses and runs a small YAML workload description: a
// set of demo tasks, and the semaphores/mutexes/queues/memory pools they
// share, expressed as a tiny line-oriented DSL (spec.md §7.3's ambient
// configuration layer). Grounded on the teacher's src/deviceid.go, which
// loads tocalls.yaml with gopkg.in/yaml.v3 the same way: unmarshal into a
// plain Go struct, then build runtime objects from it.
package scenario

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scenario is the parsed form of a scenario file.
type Scenario struct {
	Semaphores []SemSpec   `yaml:"semaphores"`
	Mutexes    []string    `yaml:"mutexes"`
	Queues     []QueueSpec `yaml:"queues"`
	Pools      []PoolSpec  `yaml:"pools"`
	Tasks      []TaskSpec  `yaml:"tasks"`
}

// SemSpec names a semaphore and its initial count.
type SemSpec struct {
	Name    string `yaml:"name"`
	Initial uint32 `yaml:"initial"`
}

// QueueSpec names a message queue and its item size/capacity.
type QueueSpec struct {
	Name     string `yaml:"name"`
	ItemSize int    `yaml:"itemSize"`
	Capacity int    `yaml:"capacity"`
}

// PoolSpec names a fixed-block memory pool.
type PoolSpec struct {
	Name        string `yaml:"name"`
	BlockSize   int    `yaml:"blockSize"`
	TotalBlocks int    `yaml:"totalBlocks"`
}

// TaskSpec describes one demo task: its scheduling priority and its
// workload program, one DSL line per step.
type TaskSpec struct {
	Name     string   `yaml:"name"`
	Priority uint8    `yaml:"priority"`
	Program  []string `yaml:"program"`
}

// Op is one parsed workload DSL instruction.
type Op struct {
	Verb string // delay, sem_wait, sem_post, mutex_pend, mutex_post,
	// queue_send, queue_receive, mem_get, mem_put, loop
	Arg string // resource name, tick count (delay), or empty (loop)
}

// Parse unmarshals a scenario YAML document.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("scenario: parse: %w", err)
	}
	return &s, nil
}

// Compile parses every task's program strings into Ops, validating the
// DSL up front so a typo in a scenario file fails at load time rather
// than mid-run.
func (s *Scenario) Compile() (map[string][]Op, error) {
	out := make(map[string][]Op, len(s.Tasks))
	for _, t := range s.Tasks {
		ops := make([]Op, 0, len(t.Program))
		for _, line := range t.Program {
			op, err := parseLine(line)
			if err != nil {
				return nil, fmt.Errorf("scenario: task %q: %w", t.Name, err)
			}
			ops = append(ops, op)
		}
		out[t.Name] = ops
	}
	return out, nil
}

func parseLine(line string) (Op, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Op{}, fmt.Errorf("empty program line")
	}
	verb := fields[0]
	switch verb {
	case "loop":
		if len(fields) != 1 {
			return Op{}, fmt.Errorf("%q takes no argument", verb)
		}
		return Op{Verb: verb}, nil
	case "delay":
		if len(fields) != 2 {
			return Op{}, fmt.Errorf("%q requires a tick count", verb)
		}
		if _, err := strconv.Atoi(fields[1]); err != nil {
			return Op{}, fmt.Errorf("%q: invalid tick count %q: %w", verb, fields[1], err)
		}
		return Op{Verb: verb, Arg: fields[1]}, nil
	case "sem_wait", "sem_post", "mutex_pend", "mutex_post", "queue_send", "queue_receive", "mem_get", "mem_put":
		if len(fields) != 2 {
			return Op{}, fmt.Errorf("%q requires a resource name", verb)
		}
		return Op{Verb: verb, Arg: fields[1]}, nil
	default:
		return Op{}, fmt.Errorf("unknown verb %q", verb)
	}
}

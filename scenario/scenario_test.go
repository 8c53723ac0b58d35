package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sample = `
semaphores:
  - name: alarm
    initial: 0
mutexes:
  - shared
queues:
  - name: mailbox
    itemSize: 4
    capacity: 2
pools:
  - name: buffers
    blockSize: 16
    totalBlocks: 2
tasks:
  - name: producer
    priority: 10
    program:
      - "delay 50"
      - "sem_post alarm"
      - "mutex_pend shared"
      - "queue_send mailbox"
      - "mutex_post shared"
      - "loop"
  - name: consumer
    priority: 8
    program:
      - "sem_wait alarm"
      - "queue_receive mailbox"
      - "mem_get buffers"
      - "mem_put buffers"
      - "loop"
`

func TestParseAndCompile(t *testing.T) {
	s, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	assert.Len(t, s.Tasks, 2)
	assert.Equal(t, "alarm", s.Semaphores[0].Name)
	assert.Equal(t, uint32(0), s.Semaphores[0].Initial)

	ops, err := s.Compile()
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	assert.Len(t, ops["producer"], 6)
	assert.Equal(t, Op{Verb: "delay", Arg: "50"}, ops["producer"][0])
	assert.Equal(t, Op{Verb: "loop"}, ops["producer"][5])
}

func TestCompileRejectsUnknownVerb(t *testing.T) {
	s, err := Parse([]byte("tasks:\n  - name: bad\n    priority: 1\n    program:\n      - \"frobnicate x\"\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	_, err = s.Compile()
	assert.ErrorContains(t, err, "unknown verb")
}

func TestCompileRejectsMissingArgument(t *testing.T) {
	s, err := Parse([]byte("tasks:\n  - name: bad\n    priority: 1\n    program:\n      - \"delay\"\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	_, err = s.Compile()
	assert.ErrorContains(t, err, "requires a tick count")
}

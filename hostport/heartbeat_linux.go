//go:build linux

package hostport

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// gpioHeartbeat toggles a single GPIO output line once per call to
// Toggle, the host-simulation analogue of a board blinking a heartbeat
// LED from its SysTick ISR (spec.md §6 draws that squarely as port-layer,
// optional, and never touched by kernel/).
type gpioHeartbeat struct {
	line  *gpiocdev.Line
	value int
}

// NewGPIOHeartbeat requests chip/line as an output and returns a Heartbeat
// that flips it high/low on each Toggle. Absent a real chip (the common
// case on a dev host or in CI) this fails fast; callers are expected to
// fall back to a no-op heartbeat and log once, per spec.md §6.2.
func NewGPIOHeartbeat(chip string, line int) (Heartbeat, error) {
	l, err := gpiocdev.RequestLine(chip, line, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, fmt.Errorf("hostport: gpio heartbeat on %s:%d: %w", chip, line, err)
	}
	return &gpioHeartbeat{line: l}, nil
}

func (h *gpioHeartbeat) Toggle() {
	h.value ^= 1
	_ = h.line.SetValue(h.value)
}

func (h *gpioHeartbeat) Close() error {
	return h.line.Close()
}

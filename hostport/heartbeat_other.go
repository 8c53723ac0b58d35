//go:build !linux

package hostport

import "fmt"

// NewGPIOHeartbeat is only implemented on linux, where go-gpiocdev talks
// to the kernel's gpio character-device ABI. Elsewhere it fails fast so
// callers fall back to a no-op heartbeat, same as the no-chip-present case
// on linux itself.
func NewGPIOHeartbeat(chip string, line int) (Heartbeat, error) {
	return nil, fmt.Errorf("hostport: gpio heartbeat unsupported on this platform")
}

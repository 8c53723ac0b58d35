//go:build !linux

package hotplug

import (
	"context"
	"fmt"

	"github.com/sandocean/sandos-go/console"
)

// Watcher is only implemented on linux, where go-udev talks to the
// kernel's netlink uevent socket. Elsewhere Run fails fast; callers fall
// back to a fixed device path or a TCP console.
type Watcher struct{}

func New(srv *console.Server, namePrefix string, baud int) *Watcher { return &Watcher{} }

func (w *Watcher) Run(ctx context.Context) error {
	return fmt.Errorf("hotplug: unsupported on this platform")
}

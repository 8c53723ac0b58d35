//go:build linux

// Package hotplug auto-attaches a console.Server to a USB-serial adapter
// as soon as it appears, instead of requiring a device path up front.
// Grounded on github.com/jochenvg/go-udev, a dependency the teacher
// declares (for cgo libudev constants it never actually calls through the
// Go wrapper) but never exercises as a netlink monitor.
package hotplug

import (
	"context"
	"fmt"
	"strings"

	"github.com/jochenvg/go-udev"

	"github.com/sandocean/sandos-go/console"
)

// Watcher monitors udev for tty devices matching namePrefix (e.g. "ttyUSB",
// "ttyACM") and attaches each one to srv at baud as soon as it appears.
type Watcher struct {
	srv        *console.Server
	namePrefix string
	baud       int
}

// New returns a Watcher bound to srv. Run blocks servicing udev events
// until ctx is canceled.
func New(srv *console.Server, namePrefix string, baud int) *Watcher {
	return &Watcher{srv: srv, namePrefix: namePrefix, baud: baud}
}

// Run subscribes to udev "add" events on subsystem tty and attaches
// matching devices to the console server until ctx is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	u := udev.Udev{}
	mon := u.NewMonitorFromNetlink("udev")
	if err := mon.FilterAddMatchSubsystem("tty"); err != nil {
		return fmt.Errorf("hotplug: filter tty subsystem: %w", err)
	}

	devices, errs, err := mon.DeviceChan(ctx)
	if err != nil {
		return fmt.Errorf("hotplug: start udev monitor: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errs:
			if err != nil {
				return fmt.Errorf("hotplug: udev monitor: %w", err)
			}
		case dev := <-devices:
			if dev == nil || dev.Action() != "add" {
				continue
			}
			w.maybeAttach(dev.Devnode())
		}
	}
}

func (w *Watcher) maybeAttach(devnode string) {
	if devnode == "" || !strings.Contains(devnode, w.namePrefix) {
		return
	}
	conn, err := console.OpenSerial(devnode, w.baud)
	if err != nil {
		return
	}
	w.srv.Attach(conn)
}

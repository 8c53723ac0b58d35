//go:build !linux

package console

import "net"

// listenConfig is a plain listener on platforms other than linux, where
// the unix.SO_REUSEADDR wiring in reuseaddr_linux.go doesn't apply.
var listenConfig = net.ListenConfig{}

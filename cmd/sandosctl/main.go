// Command sandosctl is a small single-purpose console client: it connects
// to a running sandosd's debug console, sends one command, prints the
// reply, and exits — the same "one tool, one job" shape as the teacher's
// cmd/decode_aprs or cmd/tt2text, rather than sandosd's long-running
// daemon.
package main

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

func main() {
	addr := pflag.StringP("addr", "a", "localhost:7878", "Console TCP address to connect to.")
	timeout := pflag.DurationP("timeout", "T", 3*time.Second, "Dial and read timeout.")
	help := pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s — send one command to a sandosd debug console.\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <command>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Commands: tasks, bitmap, ticks, help\n\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help || pflag.NArg() != 1 {
		pflag.Usage()
		if *help {
			os.Exit(0)
		}
		os.Exit(2)
	}
	cmd := pflag.Arg(0)

	conn, err := net.DialTimeout("tcp", *addr, *timeout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sandosctl: dial %s: %v\n", *addr, err)
		os.Exit(1)
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(*timeout))

	reader := bufio.NewReader(conn)
	// Discard the banner line.
	if _, err := reader.ReadString('\n'); err != nil {
		fmt.Fprintf(os.Stderr, "sandosctl: read banner: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(conn, "%s\n", strings.TrimSpace(cmd))

	buf := make([]byte, 4096)
	n, err := reader.Read(buf)
	if n > 0 {
		os.Stdout.Write(buf[:n])
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "sandosctl: read reply: %v\n", err)
		os.Exit(1)
	}
}

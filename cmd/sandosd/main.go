// Command sandosd runs the kernel against a scenario file on the host
// simulation port, serving a debug console over TCP. It does not attach
// serial adapters; console/hotplug is not wired in here. Flag handling and
// startup/shutdown logging follow the teacher's src/kissutil.go.
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/sandocean/sandos-go/console"
	"github.com/sandocean/sandos-go/hostport"
	"github.com/sandocean/sandos-go/internal/buildinfo"
	"github.com/sandocean/sandos-go/scenario"
)

// version is set via -ldflags at release build time, same as the
// teacher's SAMOYED_VERSION.
var version = ""

func main() {
	var (
		scenarioPath = pflag.StringP("scenario", "s", "scenario.yaml", "Scenario file describing demo tasks and resources.")
		tickHz       = pflag.IntP("tick-hz", "t", 1000, "Simulated tick-timer frequency, in Hz.")
		consoleAddr  = pflag.StringP("console-addr", "c", ":7878", "TCP address the debug console listens on.")
		gpioChip     = pflag.String("gpio-chip", "", "gpiochip device for the heartbeat line, e.g. /dev/gpiochip0. Empty disables the heartbeat.")
		gpioLine     = pflag.Int("gpio-line", 0, "GPIO line offset on --gpio-chip for the heartbeat.")
		mdnsName     = pflag.String("mdns-name", "", "Instance name to announce the console as over mDNS. Empty disables the announcement.")
		help         = pflag.Bool("help", false, "Display help text.")
		showVersion  = pflag.Bool("version", false, "Display version information and exit.")
	)

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s — a single-core preemptive RTOS kernel, host simulation\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(0)
	}
	if *showVersion {
		fmt.Println(buildinfo.Read(version))
		os.Exit(0)
	}

	log := charmlog.NewWithOptions(os.Stderr, charmlog.Options{ReportTimestamp: true})

	scenarioData, err := os.ReadFile(*scenarioPath)
	if err != nil {
		log.Fatal("read scenario file", "path", *scenarioPath, "err", err)
	}
	scen, err := scenario.Parse(scenarioData)
	if err != nil {
		log.Fatal("parse scenario file", "path", *scenarioPath, "err", err)
	}

	hbOpt := []hostport.Option{
		hostport.WithTickInterval(time.Second / time.Duration(*tickHz)),
		hostport.WithLogger(log),
	}
	if *gpioChip != "" {
		hb, err := hostport.NewGPIOHeartbeat(*gpioChip, *gpioLine)
		if err != nil {
			log.Warn("gpio heartbeat unavailable, continuing without it", "err", err)
		} else {
			hbOpt = append(hbOpt, hostport.WithHeartbeat(hb))
		}
	}

	host, k := hostport.New(hbOpt...)

	k.SetFatalHook(func(msg string) {
		log.Fatal("kernel assertion failed", "msg", msg)
	})

	if _, err := scenario.Build(k, scen); err != nil {
		log.Fatal("build scenario", "err", err)
	}

	srv, err := console.New(k, log)
	if err != nil {
		log.Fatal("build console server", "err", err)
	}
	if err := srv.ListenTCP(*consoleAddr); err != nil {
		log.Fatal("start console", "err", err)
	}
	defer srv.Close()

	if *mdnsName != "" {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		_, consolePort, err := splitPort(*consoleAddr)
		if err != nil {
			log.Warn("mdns announcement disabled", "err", err)
		} else if err := console.AnnounceMDNS(ctx, *mdnsName, consolePort); err != nil {
			log.Warn("mdns announcement failed", "err", err)
		}
	}

	stop := make(chan struct{})
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	log.Info("starting kernel", "scenario", *scenarioPath, "tick-hz", *tickHz, "console", *consoleAddr)
	go host.Run(stop)

	<-sig
	log.Info("shutting down")
	close(stop)
}

func splitPort(addr string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 0, err
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid port %q: %w", portStr, err)
	}
	return host, port, nil
}

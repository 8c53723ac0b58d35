package console

import (
	"context"
	"fmt"

	"github.com/brutella/dnssd"
)

// AnnounceMDNS advertises a console TCP listener as service type
// "_sandos-console._tcp" on the local network, so a workstation can
// discover a devboard's console the way a KISS TNC is discovered over
// "_kiss-tnc._tcp" (grounded on the teacher's src/dns_sd.go: dnssd.Config,
// dnssd.NewService, dnssd.NewResponder, Responder.Add, then Respond in a
// background goroutine). Cancel ctx to stop responding.
func AnnounceMDNS(ctx context.Context, instanceName string, port int) error {
	cfg := dnssd.Config{
		Name: instanceName,
		Type: "_sandos-console._tcp",
		Port: port,
	}
	svc, err := dnssd.NewService(cfg)
	if err != nil {
		return fmt.Errorf("console: build mdns service: %w", err)
	}

	responder, err := dnssd.NewResponder()
	if err != nil {
		return fmt.Errorf("console: build mdns responder: %w", err)
	}
	if _, err := responder.Add(svc); err != nil {
		return fmt.Errorf("console: register mdns service: %w", err)
	}

	go func() {
		_ = responder.Respond(ctx)
	}()
	return nil
}

// internal/discovery/mdns.go
package discovery

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync"

	"github.com/enbility/zeroconf/v3"
	"github.com/rs/zerolog"
)

const (
	// ServiceType is the DNS-SD service type of the control surface.
	ServiceType = "_pemf._tcp"

	// Domain is the mDNS domain.
	Domain = "local."

	// TXTVersion is bumped when the TXT layout changes.
	TXTVersion = 1
)

// Config describes one advertisement.
type Config struct {
	Instance  string // DNS-SD instance name, e.g. "PEMF Wireless"
	Name      string // controller name, published in TXT
	Port      int
	Interface string // "" = all interfaces
}

type shutdowner interface {
	Shutdown()
}

// register is swapped in tests.
var register = func(instance, service, domain string, port int, txt []string, ifaces []net.Interface) (shutdowner, error) {
	srv, err := zeroconf.Register(instance, service, domain, port, txt, ifaces)
	if err != nil {
		return nil, err
	}
	return srv, nil
}

// Advertiser publishes the control surface over mDNS.
type Advertiser struct {
	cfg Config
	log zerolog.Logger

	mu     sync.Mutex
	server shutdowner
}

func NewAdvertiser(cfg Config, log zerolog.Logger) (*Advertiser, error) {
	if cfg.Instance == "" {
		return nil, errors.New("discovery: instance required")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("discovery: port %d out of range", cfg.Port)
	}
	return &Advertiser{
		cfg: cfg,
		log: log.With().Str("module", "discovery").Logger(),
	}, nil
}

// Advertise registers the service. It is withdrawn when ctx is done or Stop is called.
func (a *Advertiser) Advertise(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Stop existing if any
	if a.server != nil {
		a.server.Shutdown()
		a.server = nil
	}

	srv, err := register(a.cfg.Instance, ServiceType, Domain, a.cfg.Port, TXT(a.cfg.Name), a.interfaces())
	if err != nil {
		return fmt.Errorf("discovery: register %s: %w", a.cfg.Instance, err)
	}
	a.server = srv

	a.log.Info().
		Str("instance", a.cfg.Instance).
		Str("service", ServiceType).
		Int("port", a.cfg.Port).
		Msg("advertising")

	go func() {
		<-ctx.Done()
		a.Stop()
	}()
	return nil
}

// Stop withdraws the advertisement. Safe to call more than once.
func (a *Advertiser) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server != nil {
		a.server.Shutdown()
		a.server = nil
		a.log.Info().Msg("advertisement withdrawn")
	}
}

// interfaces returns nil (all interfaces) unless one is configured and exists.
func (a *Advertiser) interfaces() []net.Interface {
	if a.cfg.Interface == "" {
		return nil
	}
	iface, err := net.InterfaceByName(a.cfg.Interface)
	if err != nil {
		a.log.Warn().Err(err).Str("interface", a.cfg.Interface).Msg("interface not found, using all")
		return nil
	}
	return []net.Interface{*iface}
}

// TXT builds the TXT record strings.
func TXT(name string) []string {
	txt := []string{"ver=" + strconv.Itoa(TXTVersion)}
	if name != "" {
		txt = append(txt, "name="+name)
	}
	return txt
}

// PortFromAddr extracts the port of a listen address such as ":80".
func PortFromAddr(addr string) (int, error) {
	_, p, err := net.SplitHostPort(addr)
	if err != nil {
		return 0, fmt.Errorf("discovery: listen addr %q: %w", addr, err)
	}
	port, err := strconv.Atoi(p)
	if err != nil {
		return 0, fmt.Errorf("discovery: listen port %q: %w", p, err)
	}
	return port, nil
}

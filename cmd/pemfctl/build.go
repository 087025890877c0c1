// cmd/pemfctl/build.go
package main

import (
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog"

	"github.com/tamzrod/pemf-controller/internal/config"
	"github.com/tamzrod/pemf-controller/internal/display"
	"github.com/tamzrod/pemf-controller/internal/mirror"
	mbclient "github.com/tamzrod/pemf-controller/internal/mirror/modbus"
	"github.com/tamzrod/pemf-controller/internal/sim"
	"github.com/tamzrod/pemf-controller/internal/transport"
	"github.com/tamzrod/pemf-controller/internal/transport/serial"
)

// buildTransports opens both module links and returns a closer for them.
func buildTransports(c config.ControllerConfig, log zerolog.Logger) (transport.Querier, transport.Sink, func(), error) {
	if c.Transport == config.TransportSim {
		log.Warn().Msg("using simulated modules, no hardware will be driven")
		return sim.NewSignalGenerator(), sim.NewRelayTimer(), func() {}, nil
	}

	gen, err := serial.Open(serial.Config{
		Name:      "signal_generator",
		Address:   c.SignalGenerator.Address,
		BaudRate:  c.SignalGenerator.BaudRate,
		ReplyWait: time.Duration(c.SignalGenerator.ReplyWaitMs) * time.Millisecond,
	}, log)
	if err != nil {
		return nil, nil, nil, err
	}

	relay, err := serial.Open(serial.Config{
		Name:      "relay_timer",
		Address:   c.RelayTimer.Address,
		BaudRate:  c.RelayTimer.BaudRate,
		ReplyWait: time.Duration(c.RelayTimer.ReplyWaitMs) * time.Millisecond,
	}, log)
	if err != nil {
		_ = gen.Close()
		return nil, nil, nil, err
	}

	closeAll := func() {
		if err := gen.Close(); err != nil {
			log.Warn().Err(err).Msg("signal generator close failed")
		}
		if err := relay.Close(); err != nil {
			log.Warn().Err(err).Msg("relay timer close failed")
		}
	}
	return gen, relay, closeAll, nil
}

// buildDisplay returns the device display, or a log-only one when no path is set.
func buildDisplay(c config.DisplayConfig, log zerolog.Logger) (display.Sink, func(), error) {
	if c.Path == "" {
		return display.NewLog(log), func() {}, nil
	}
	d, err := display.Open(c.Path, log)
	if err != nil {
		return nil, nil, err
	}
	return d, func() { _ = d.Close() }, nil
}

// buildMirror connects the Modbus mirror. A nil mirror means disabled.
func buildMirror(c config.ControllerConfig, log zerolog.Logger) (*mirror.Mirror, func(), error) {
	if c.Mirror.Endpoint == "" {
		return nil, func() {}, nil
	}

	cli, err := mbclient.NewEndpointClient(mbclient.Config{
		Endpoint: c.Mirror.Endpoint,
		Timeout:  time.Duration(c.Mirror.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		return nil, nil, err
	}

	m := mirror.New(mirror.Config{
		UnitID:   uint8(c.Mirror.UnitID),
		BaseSlot: c.Mirror.BaseSlot,
		Name:     c.Name,
	}, cli, log)

	return m, func() { _ = cli.Close() }, nil
}

// displayAddress picks the first non-loopback IPv4 address to show.
// Falls back to the listen address.
func displayAddress(listen string) string {
	_, port, err := net.SplitHostPort(listen)
	if err != nil {
		return listen
	}

	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return listen
	}
	for _, a := range addrs {
		ipn, ok := a.(*net.IPNet)
		if !ok || ipn.IP.IsLoopback() {
			continue
		}
		if ip4 := ipn.IP.To4(); ip4 != nil {
			if port == "80" {
				return ip4.String()
			}
			return fmt.Sprintf("%s:%s", ip4, port)
		}
	}
	return listen
}

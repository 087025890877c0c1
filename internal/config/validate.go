// internal/config/validate.go
package config

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	c := cfg.Controller

	// ------------------------------------------------------------
	// TRANSPORTS
	// ------------------------------------------------------------

	switch c.Transport {
	case TransportSerial, "": // "" becomes serial in Normalize
		if err := validateSerial("signal_generator", c.SignalGenerator); err != nil {
			return err
		}
		if err := validateSerial("relay_timer", c.RelayTimer); err != nil {
			return err
		}
		if c.SignalGenerator.Address == c.RelayTimer.Address {
			return fmt.Errorf(
				"signal_generator and relay_timer share address %q",
				c.SignalGenerator.Address,
			)
		}
	case TransportSim:
		// no ports
	default:
		return fmt.Errorf("transport %q: must be %q or %q", c.Transport, TransportSerial, TransportSim)
	}

	if c.SignalGenerator.ReplyWaitMs < 0 {
		return fmt.Errorf("signal_generator: reply_wait_ms must be >= 0")
	}

	// ------------------------------------------------------------
	// SURFACES
	// ------------------------------------------------------------

	if c.HTTP.Addr == "" {
		return fmt.Errorf("http: addr required")
	}
	if c.Discovery.Enabled && c.Discovery.Instance == "" && c.Name == "" {
		return fmt.Errorf("discovery: instance or controller name required")
	}

	// ASCII only: the name ends up on a character display and in Modbus registers
	for i := 0; i < len(c.Name); i++ {
		if c.Name[i] > 0x7F {
			return fmt.Errorf("name must contain ASCII characters only")
		}
	}

	// ------------------------------------------------------------
	// OPTIONAL SERVICES
	// ------------------------------------------------------------

	if c.Monitor.IntervalMs < 0 {
		return fmt.Errorf("monitor: interval_ms must be >= 0")
	}

	if c.Mirror.Endpoint != "" {
		if c.Mirror.UnitID < 0 || c.Mirror.UnitID > 255 {
			return fmt.Errorf("mirror: unit_id %d out of range", c.Mirror.UnitID)
		}
		if c.Mirror.TimeoutMs < 0 {
			return fmt.Errorf("mirror: timeout_ms must be >= 0")
		}
		if c.Mirror.BaseSlot > MaxMirrorBaseSlot {
			return fmt.Errorf("mirror: base_slot %d exceeds %d", c.Mirror.BaseSlot, MaxMirrorBaseSlot)
		}
	}

	if c.Log.Level != "" {
		if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("log: level %q: %w", c.Log.Level, err)
		}
	}

	return nil
}

func validateSerial(name string, s SerialConfig) error {
	if s.Address == "" {
		return fmt.Errorf("%s: address required", name)
	}
	if s.BaudRate < 0 {
		return fmt.Errorf("%s: baud_rate must be >= 0", name)
	}
	return nil
}

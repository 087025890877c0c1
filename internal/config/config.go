// internal/config/config.go
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Controller ControllerConfig `yaml:"controller"`
}

type ControllerConfig struct {
	Name            string          `yaml:"name"`
	Transport       string          `yaml:"transport"` // serial | sim
	SignalGenerator SerialConfig    `yaml:"signal_generator"`
	RelayTimer      SerialConfig    `yaml:"relay_timer"`
	HTTP            HTTPConfig      `yaml:"http"`
	Discovery       DiscoveryConfig `yaml:"discovery"`
	Monitor         MonitorConfig   `yaml:"monitor"`
	Mirror          MirrorConfig    `yaml:"mirror"`
	Metrics         MetricsConfig   `yaml:"metrics"`
	Display         DisplayConfig   `yaml:"display"`
	Log             LogConfig       `yaml:"log"`
}

// ---- TRANSPORT ----

const (
	TransportSerial = "serial"
	TransportSim    = "sim"
)

type SerialConfig struct {
	Address  string `yaml:"address"`
	BaudRate int    `yaml:"baud_rate"`

	// Reply window for read queries. Ignored for write-only modules.
	ReplyWaitMs int `yaml:"reply_wait_ms"`
}

// ---- SURFACES ----

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

type DiscoveryConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Instance  string `yaml:"instance"`
	Interface string `yaml:"interface"` // "" = all
}

// ---- OPTIONAL SERVICES ----

type MonitorConfig struct {
	IntervalMs int `yaml:"interval_ms"` // 0 = disabled
}

// MaxMirrorBaseSlot keeps a 20-register block inside the 16-bit address space.
const MaxMirrorBaseSlot = 3275

type MirrorConfig struct {
	Endpoint  string `yaml:"endpoint"` // "" = disabled
	UnitID    int    `yaml:"unit_id"`
	BaseSlot  uint16 `yaml:"base_slot"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// MetricsConfig exposes Prometheus metrics on the HTTP surface at /metrics.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type DisplayConfig struct {
	Path string `yaml:"path"` // "" = log only
}

type LogConfig struct {
	Level   string `yaml:"level"`
	File    string `yaml:"file"`
	Console bool   `yaml:"console"`
}

// Default returns the built-in configuration used when no file exists.
func Default() *Config {
	return &Config{
		Controller: ControllerConfig{
			Name:      "PEMF Machine",
			Transport: TransportSerial,
			SignalGenerator: SerialConfig{
				Address:     "/dev/ttyS0",
				BaudRate:    9600,
				ReplyWaitMs: 100,
			},
			RelayTimer: SerialConfig{
				Address:  "/dev/ttyS1",
				BaudRate: 9600,
			},
			HTTP: HTTPConfig{Addr: ":80"},
			Discovery: DiscoveryConfig{
				Enabled:  true,
				Instance: "PEMF Wireless",
			},
			Mirror:  MirrorConfig{UnitID: 1, TimeoutMs: 1000},
			Metrics: MetricsConfig{Enabled: true},
			Log:     LogConfig{Level: "info", Console: true},
		},
	}
}

// Load reads a YAML config on top of Default.
// A missing file is not an error: the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config load failed (%s): %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	// empty document keeps the defaults
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config parse failed (%s): %w", path, err)
	}

	return cfg, nil
}

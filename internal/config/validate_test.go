// internal/config/validate_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// helper to build a valid config quickly
func valid() *Config {
	cfg := Default()
	cfg.Controller.SignalGenerator.Address = "/dev/ttyUSB0"
	cfg.Controller.RelayTimer.Address = "/dev/ttyUSB1"
	return cfg
}

// ---- tests ----

func TestValidate_DefaultsPass(t *testing.T) {
	require.NoError(t, Validate(Default()))
}

func TestValidate_SharedSerialAddress(t *testing.T) {
	cfg := valid()
	cfg.Controller.RelayTimer.Address = cfg.Controller.SignalGenerator.Address

	require.Error(t, Validate(cfg))
}

func TestValidate_MissingSerialAddress(t *testing.T) {
	cfg := valid()
	cfg.Controller.RelayTimer.Address = ""

	require.Error(t, Validate(cfg))
}

func TestValidate_SimIgnoresPorts(t *testing.T) {
	cfg := valid()
	cfg.Controller.Transport = TransportSim
	cfg.Controller.SignalGenerator.Address = ""
	cfg.Controller.RelayTimer.Address = ""

	require.NoError(t, Validate(cfg))
}

func TestValidate_UnknownTransport(t *testing.T) {
	cfg := valid()
	cfg.Controller.Transport = "usb"

	require.Error(t, Validate(cfg))
}

func TestValidate_NonASCIIName(t *testing.T) {
	cfg := valid()
	cfg.Controller.Name = "PEMF µ"

	require.Error(t, Validate(cfg))
}

func TestValidate_MirrorUnitRange(t *testing.T) {
	cfg := valid()
	cfg.Controller.Mirror.Endpoint = "127.0.0.1:502"
	cfg.Controller.Mirror.UnitID = 300

	require.Error(t, Validate(cfg))

	cfg.Controller.Mirror.UnitID = 1
	cfg.Controller.Mirror.BaseSlot = MaxMirrorBaseSlot + 1
	require.Error(t, Validate(cfg))

	cfg.Controller.Mirror.BaseSlot = MaxMirrorBaseSlot
	require.NoError(t, Validate(cfg))
}

func TestValidate_BadLogLevel(t *testing.T) {
	cfg := valid()
	cfg.Controller.Log.Level = "loud"

	require.Error(t, Validate(cfg))
}

func TestValidate_DoesNotMutate(t *testing.T) {
	cfg := valid()
	cfg.Controller.Transport = ""
	cfg.Controller.SignalGenerator.BaudRate = 0

	require.NoError(t, Validate(cfg))
	require.Equal(t, "", cfg.Controller.Transport)
	require.Equal(t, 0, cfg.Controller.SignalGenerator.BaudRate)
}

func TestNormalize_FillsDefaults(t *testing.T) {
	cfg := valid()
	cfg.Controller.Transport = ""
	cfg.Controller.SignalGenerator.BaudRate = 0
	cfg.Controller.SignalGenerator.ReplyWaitMs = 0
	cfg.Controller.Name = "A very long controller name"
	cfg.Controller.Discovery.Instance = ""

	Normalize(cfg)

	require.Equal(t, TransportSerial, cfg.Controller.Transport)
	require.Equal(t, 9600, cfg.Controller.SignalGenerator.BaudRate)
	require.Equal(t, 100, cfg.Controller.SignalGenerator.ReplyWaitMs)
	require.Len(t, cfg.Controller.Name, DisplayLineChars)
	require.Equal(t, cfg.Controller.Name, cfg.Controller.Discovery.Instance)
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))

	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoad_OverridesAndRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte(`
controller:
  transport: sim
  http:
    addr: ":8080"
  monitor:
    interval_ms: 500
`), 0o600))

	cfg, err := Load(good)
	require.NoError(t, err)
	require.Equal(t, TransportSim, cfg.Controller.Transport)
	require.Equal(t, ":8080", cfg.Controller.HTTP.Addr)
	require.Equal(t, 500, cfg.Controller.Monitor.IntervalMs)
	// untouched keys keep their defaults
	require.Equal(t, 9600, cfg.Controller.SignalGenerator.BaudRate)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("controller:\n  bogus: 1\n"), 0o600))

	_, err = Load(bad)
	require.Error(t, err)
}

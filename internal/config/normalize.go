// internal/config/normalize.go
package config

// DisplayLineChars is the width of one character display line.
const DisplayLineChars = 21

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}
	c := &cfg.Controller

	if c.Transport == "" {
		c.Transport = TransportSerial
	}

	// Both modules ship at 9600 8N1.
	if c.SignalGenerator.BaudRate == 0 {
		c.SignalGenerator.BaudRate = 9600
	}
	if c.RelayTimer.BaudRate == 0 {
		c.RelayTimer.BaudRate = 9600
	}
	if c.SignalGenerator.ReplyWaitMs == 0 {
		c.SignalGenerator.ReplyWaitMs = 100
	}

	// Name:
	// - ASCII already validated
	// - Truncate to one display line
	if c.Name == "" {
		c.Name = "PEMF Machine"
	}
	if len(c.Name) > DisplayLineChars {
		c.Name = c.Name[:DisplayLineChars]
	}

	if c.Discovery.Instance == "" {
		c.Discovery.Instance = c.Name
	}

	if c.Mirror.Endpoint != "" && c.Mirror.TimeoutMs == 0 {
		c.Mirror.TimeoutMs = 1000
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// internal/display/display.go
package display

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// Sink receives plain status text. Write-only.
type Sink interface {
	Println(text string)
}

// ---- log-only ----

type logSink struct {
	log zerolog.Logger
}

// NewLog returns a Sink that only logs.
func NewLog(log zerolog.Logger) Sink {
	return &logSink{log: log.With().Str("module", "display").Logger()}
}

func (s *logSink) Println(text string) {
	s.log.Info().Str("text", text).Msg("display")
}

// ---- device ----

// Device writes lines to a character device or file and mirrors them to the log.
type Device struct {
	mu  sync.Mutex
	w   io.WriteCloser
	log zerolog.Logger
}

// Open opens path for appending. A missing device is a startup error.
func Open(path string, log zerolog.Logger) (*Device, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("display open failed (%s): %w", path, err)
	}
	return newDevice(f, log), nil
}

func newDevice(w io.WriteCloser, log zerolog.Logger) *Device {
	return &Device{w: w, log: log.With().Str("module", "display").Logger()}
}

// Println writes text plus a newline. Write errors are logged only.
func (d *Device) Println(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.log.Info().Str("text", text).Msg("display")
	if _, err := io.WriteString(d.w, text+"\n"); err != nil {
		d.log.Warn().Err(err).Msg("display write failed")
	}
}

func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.w.Close()
}

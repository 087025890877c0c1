// internal/monitor/monitor.go
package monitor

import (
	"context"
	"errors"
	"time"

	"github.com/tamzrod/pemf-controller/internal/protocol"
)

// Reader is the one dispatcher operation the monitor needs.
type Reader interface {
	ReadCurrent() protocol.SignalReading
}

// Result is a snapshot produced by one read cycle.
type Result struct {
	At      time.Time
	Reading protocol.SignalReading
}

// Monitor is a dumb, clock-driven reader.
type Monitor struct {
	interval time.Duration
	reader   Reader
}

// New creates a monitor with an immutable interval.
func New(interval time.Duration, reader Reader) (*Monitor, error) {
	if interval <= 0 {
		return nil, errors.New("monitor: interval must be > 0")
	}
	if reader == nil {
		return nil, errors.New("monitor: reader required")
	}
	return &Monitor{interval: interval, reader: reader}, nil
}

// PollOnce performs exactly one read.
func (m *Monitor) PollOnce() Result {
	return Result{
		At:      time.Now(),
		Reading: m.reader.ReadCurrent(),
	}
}

// Run starts the ticker loop and emits a Result per tick on out.
// No overlap. No retries. Returns when ctx is done.
func (m *Monitor) Run(ctx context.Context, out chan<- Result) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			res := m.PollOnce()
			select {
			case out <- res:
			case <-ctx.Done():
				return
			}
		}
	}
}

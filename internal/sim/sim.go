// internal/sim/sim.go
package sim

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/tamzrod/pemf-controller/internal/protocol"
)

// SignalGenerator emulates the waveform module: it interprets F and D
// commands and answers the read query with a status line.
// Unrecognized commands are ignored, as the hardware does.
type SignalGenerator struct {
	mu   sync.Mutex
	freq float64
	duty int
	sent []protocol.Command
}

// NewSignalGenerator returns an emulator in its power-on state (0 Hz, 0 %).
func NewSignalGenerator() *SignalGenerator {
	return &SignalGenerator{}
}

// Send implements transport.Sink.
func (g *SignalGenerator) Send(cmd protocol.Command) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.sent = append(g.sent, cmd)

	s := string(cmd)
	switch {
	case strings.HasPrefix(s, protocol.PrefixFrequency):
		if f, ok := parseFrequency(s[len(protocol.PrefixFrequency):]); ok {
			g.freq = f
		}
	case strings.HasPrefix(s, protocol.PrefixDuty):
		if d, err := strconv.Atoi(s[len(protocol.PrefixDuty):]); err == nil {
			g.duty = d
		}
	}
}

// Query implements transport.Querier.
func (g *SignalGenerator) Query(cmd protocol.Command) string {
	g.Send(cmd)
	if cmd != protocol.QueryRead {
		return ""
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	return fmt.Sprintf("%s%03d%s %s%03d%s",
		protocol.MarkerFrequency, int(g.freq), protocol.UnitHertz,
		protocol.MarkerDuty, g.duty, protocol.UnitPercent,
	)
}

// Output returns the waveform currently programmed.
func (g *SignalGenerator) Output() (freqHz float64, dutyPercent int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.freq, g.duty
}

// Received returns every command seen so far, in order.
func (g *SignalGenerator) Received() []protocol.Command {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]protocol.Command(nil), g.sent...)
}

// parseFrequency reverses the four F grammars.
func parseFrequency(body string) (float64, bool) {
	switch strings.Count(body, ".") {
	case 0: // Hz
		v, err := strconv.Atoi(body)
		return float64(v), err == nil
	case 1: // kHz with decimals
		v, err := strconv.ParseFloat(body, 64)
		return v * 1000, err == nil
	case 2: // kHz digits h.t.o
		parts := strings.Split(body, ".")
		khz := 0
		for _, p := range parts {
			if len(p) != 1 || p[0] < '0' || p[0] > '9' {
				return 0, false
			}
			khz = khz*10 + int(p[0]-'0')
		}
		return float64(khz * 1000), true
	}
	return 0, false
}

// RelayTimer emulates the relay/timer module. It never replies.
type RelayTimer struct {
	mu      sync.Mutex
	onSecs  int
	running bool
	sent    []protocol.Command
}

// NewRelayTimer returns an idle emulator.
func NewRelayTimer() *RelayTimer {
	return &RelayTimer{}
}

// Send implements transport.Sink.
func (r *RelayTimer) Send(cmd protocol.Command) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sent = append(r.sent, cmd)

	s := string(cmd)
	switch {
	case strings.HasPrefix(s, protocol.PrefixRelayOn):
		if v, err := strconv.Atoi(s[len(protocol.PrefixRelayOn):]); err == nil {
			r.onSecs = v
		}
	case cmd == protocol.RelayModeSelect:
		r.running = false
	case cmd == protocol.RelayModeActivate:
		r.running = true
	}
}

// OnSeconds returns the last programmed on-duration.
func (r *RelayTimer) OnSeconds() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.onSecs
}

// Running reports whether the activation mode has been sent since the last mode select.
func (r *RelayTimer) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Received returns every command seen so far, in order.
func (r *RelayTimer) Received() []protocol.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]protocol.Command(nil), r.sent...)
}

// internal/session/state.go
package session

import "sync"

// Default session, applied at startup.
const (
	DefaultFrequencyHz     = 5.0
	DefaultDutyPercent     = 10
	DefaultDurationMinutes = 10
)

// Parameters is the current treatment configuration.
type Parameters struct {
	FrequencyHz     float64 `json:"frequency_hz"`
	DutyPercent     int     `json:"duty_percent"`
	DurationMinutes int     `json:"duration_minutes"`
}

// Defaults returns the startup session.
func Defaults() Parameters {
	return Parameters{
		FrequencyHz:     DefaultFrequencyHz,
		DutyPercent:     DefaultDutyPercent,
		DurationMinutes: DefaultDurationMinutes,
	}
}

// State owns the one authoritative Parameters record.
// Only the Dispatcher writes it; surfaces read it through Snapshot.
type State struct {
	mu sync.RWMutex
	p  Parameters
}

// NewState creates a State holding the defaults.
func NewState() *State {
	return &State{p: Defaults()}
}

// Snapshot returns a copy of the current parameters.
func (s *State) Snapshot() Parameters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.p
}

func (s *State) set(p Parameters) {
	s.mu.Lock()
	s.p = p
	s.mu.Unlock()
}

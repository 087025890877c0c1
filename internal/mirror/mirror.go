// internal/mirror/mirror.go
package mirror

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/tamzrod/pemf-controller/internal/protocol"
	"github.com/tamzrod/pemf-controller/internal/session"
)

// Mirror publishes the session and the last reading to a Modbus block.
// It implements session.Observer. Nothing flows back.
type Mirror struct {
	mu   sync.Mutex
	snap Snapshot
	w    *blockWriter
	log  zerolog.Logger
}

// Config selects the block. Name is truncated to NameMaxChars.
type Config struct {
	UnitID   uint8
	BaseSlot uint16
	Name     string
}

// New binds a mirror to an endpoint client (see mirror/modbus).
func New(cfg Config, cli endpointClient, log zerolog.Logger) *Mirror {
	return &Mirror{
		w:   newBlockWriter(cli, cfg.UnitID, cfg.BaseSlot, cfg.Name),
		log: log.With().Str("module", "mirror").Logger(),
	}
}

// ParametersApplied records a transmitted parameter set and bumps the counter.
func (m *Mirror) ParametersApplied(p session.Parameters) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.snap = m.snap.withParameters(p)
	m.snap.ApplyCount++
	m.flush()
}

// SignalRead records a readback.
func (m *Mirror) SignalRead(r protocol.SignalReading) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.snap = m.snap.withReading(r)
	m.flush()
}

// Snapshot returns what was last handed to the writer.
func (m *Mirror) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap
}

func (m *Mirror) flush() {
	if err := m.w.write(m.snap); err != nil {
		m.log.Warn().Err(err).Msg("mirror write failed")
	}
}

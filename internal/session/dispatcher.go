// internal/session/dispatcher.go
package session

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/tamzrod/pemf-controller/internal/protocol"
	"github.com/tamzrod/pemf-controller/internal/transport"
)

// Observer is told about every transmitted parameter set and every reading.
// Observers are read-only: nothing they do flows back into State.
type Observer interface {
	ParametersApplied(p Parameters)
	SignalRead(r protocol.SignalReading)
}

// Dispatcher is the validation boundary between control surfaces and modules.
// All operations are synchronous and serialized: one runs at a time.
type Dispatcher struct {
	mu sync.Mutex

	state  *State
	signal transport.Querier
	relay  transport.Sink
	log    zerolog.Logger

	observers []Observer
}

// NewDispatcher wires a State to its two module transports.
func NewDispatcher(state *State, signal transport.Querier, relay transport.Sink, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		state:  state,
		signal: signal,
		relay:  relay,
		log:    log.With().Str("module", "dispatcher").Logger(),
	}
}

// AddObserver registers an observer. Call before the first operation.
func (d *Dispatcher) AddObserver(o Observer) {
	d.mu.Lock()
	d.observers = append(d.observers, o)
	d.mu.Unlock()
}

// State returns the owned session state.
func (d *Dispatcher) State() *State {
	return d.state
}

// Initialize resets the session to the defaults and programs both modules:
// frequency, duty, both duration forms, then the mode/latch/close-delay literals.
func (d *Dispatcher) Initialize() Parameters {
	d.mu.Lock()
	defer d.mu.Unlock()

	p := Defaults()
	d.state.set(p)

	d.transmit(p, protocol.InitSequence())

	d.log.Info().
		Float64("freq_hz", p.FrequencyHz).
		Int("duty_pct", p.DutyPercent).
		Int("duration_min", p.DurationMinutes).
		Msg("modules initialized")

	d.notifyApplied(p)
	return p
}

// Apply clamps the present fields of req into the session and retransmits
// the complete resulting parameter set, followed by mode activation.
// It returns the parameters now in effect.
func (d *Dispatcher) Apply(req Request) Parameters {
	d.mu.Lock()
	defer d.mu.Unlock()

	p := req.merge(d.state.Snapshot())
	d.state.set(p)

	d.transmit(p, protocol.ApplySequence())

	d.log.Info().
		Float64("freq_hz", p.FrequencyHz).
		Int("duty_pct", p.DutyPercent).
		Int("duration_min", p.DurationMinutes).
		Msg("session applied")

	d.notifyApplied(p)
	return p
}

// ReadCurrent asks the signal generator for its status and decodes the reply.
// The reading is advisory and never written into State.
// No reply within the transport's window yields the zero reading.
func (d *Dispatcher) ReadCurrent() protocol.SignalReading {
	d.mu.Lock()
	defer d.mu.Unlock()

	line := d.signal.Query(protocol.QueryRead)
	r := protocol.DecodeSignalReply(line)

	d.log.Debug().
		Str("raw", line).
		Float64("freq_hz", r.FrequencyHz).
		Float64("duty_pct", r.DutyPercent).
		Msg("signal read")

	for _, o := range d.observers {
		o.SignalRead(r)
	}
	return r
}

// transmit sends the full encoded set in the fixed module order.
func (d *Dispatcher) transmit(p Parameters, relayTail []protocol.Command) {
	d.signal.Send(protocol.EncodeFrequency(p.FrequencyHz))
	d.signal.Send(protocol.EncodeDuty(p.DutyPercent))

	d.relay.Send(protocol.EncodeRelayDuration(p.DurationMinutes))
	d.relay.Send(protocol.EncodeRelayDurationAlt(p.DurationMinutes))
	for _, cmd := range relayTail {
		d.relay.Send(cmd)
	}
}

func (d *Dispatcher) notifyApplied(p Parameters) {
	for _, o := range d.observers {
		o.ParametersApplied(p)
	}
}

// internal/session/dispatcher_test.go
package session

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/pemf-controller/internal/protocol"
)

// ---- fake transports ----

type fakeLink struct {
	sent    []protocol.Command
	queries []protocol.Command
	reply   string
}

func (f *fakeLink) Send(cmd protocol.Command) {
	f.sent = append(f.sent, cmd)
}

func (f *fakeLink) Query(cmd protocol.Command) string {
	f.queries = append(f.queries, cmd)
	return f.reply
}

func (f *fakeLink) reset() {
	f.sent = nil
	f.queries = nil
}

type fakeObserver struct {
	applied  []Parameters
	readings []protocol.SignalReading
}

func (o *fakeObserver) ParametersApplied(p Parameters) {
	o.applied = append(o.applied, p)
}

func (o *fakeObserver) SignalRead(r protocol.SignalReading) {
	o.readings = append(o.readings, r)
}

func newTestDispatcher() (*Dispatcher, *fakeLink, *fakeLink) {
	sig := &fakeLink{}
	rel := &fakeLink{}
	return NewDispatcher(NewState(), sig, rel, zerolog.Nop()), sig, rel
}

func ptrF(v float64) *float64 { return &v }
func ptrI(v int) *int { return &v }

// ---- tests ----

func TestInitialize_SendsDefaultsInOrder(t *testing.T) {
	d, sig, rel := newTestDispatcher()

	p := d.Initialize()

	require.Equal(t, Defaults(), p)
	require.Equal(t, Defaults(), d.State().Snapshot())
	require.Equal(t, []protocol.Command{"F005", "D010"}, sig.sent)
	require.Equal(t, []protocol.Command{
		"OP:0600", "OP:0600",
		"P5", "LP:0001", "LP0001", "CL:0003", "CL0003",
	}, rel.sent)
}

func TestInitialize_ResetsModifiedState(t *testing.T) {
	d, _, _ := newTestDispatcher()

	d.Apply(Request{DutyPercent: ptrF(80)})
	require.Equal(t, 80, d.State().Snapshot().DutyPercent)

	d.Initialize()
	require.Equal(t, Defaults(), d.State().Snapshot())
}

func TestApply_PartialKeepsOtherFields(t *testing.T) {
	d, sig, rel := newTestDispatcher()
	d.Initialize()
	sig.reset()
	rel.reset()

	p := d.Apply(Request{DutyPercent: ptrF(50)})

	require.Equal(t, Parameters{FrequencyHz: 5, DutyPercent: 50, DurationMinutes: 10}, p)
	require.Equal(t, p, d.State().Snapshot())

	// full set, not just the changed field
	require.Equal(t, []protocol.Command{"F005", "D050"}, sig.sent)
	require.Equal(t, []protocol.Command{"OP:0600", "OP:0600", "P6"}, rel.sent)
}

func TestApply_ClampsEveryField(t *testing.T) {
	d, sig, rel := newTestDispatcher()

	p := d.Apply(Request{
		FrequencyHz:     ptrF(200000),
		DutyPercent:     ptrF(150.7),
		DurationMinutes: ptrI(-4),
	})

	require.Equal(t, Parameters{FrequencyHz: protocol.MaxFrequencyHz, DutyPercent: 100, DurationMinutes: 0}, p)
	require.Equal(t, []protocol.Command{"F1.5.0", "D100"}, sig.sent)
	require.Equal(t, []protocol.Command{"OP:0001", "OP:0001", "P6"}, rel.sent)

	p = d.Apply(Request{FrequencyHz: ptrF(-1), DutyPercent: ptrF(-20)})
	require.Equal(t, 0.0, p.FrequencyHz)
	require.Equal(t, 0, p.DutyPercent)
}

func TestApply_DutyTruncatesTowardZero(t *testing.T) {
	d, _, _ := newTestDispatcher()

	p := d.Apply(Request{DutyPercent: ptrF(12.9)})
	require.Equal(t, 12, p.DutyPercent)
}

func TestApply_EmptyRequestRetransmits(t *testing.T) {
	d, sig, rel := newTestDispatcher()

	p := d.Apply(Request{})

	require.Equal(t, Defaults(), p)
	require.Len(t, sig.sent, 2)
	require.Len(t, rel.sent, 3)
}

func TestApply_Idempotent(t *testing.T) {
	d, sig, rel := newTestDispatcher()
	req := Request{FrequencyHz: ptrF(10500), DurationMinutes: ptrI(15)}

	first := d.Apply(req)
	sigFirst, relFirst := sig.sent, rel.sent
	sig.reset()
	rel.reset()

	second := d.Apply(req)

	require.Equal(t, first, second)
	require.Equal(t, sigFirst, sig.sent)
	require.Equal(t, relFirst, rel.sent)
	require.Equal(t, []protocol.Command{"F10.5", "D010"}, sig.sent)
	require.Equal(t, []protocol.Command{"OP:0900", "OP:0900", "P6"}, rel.sent)
}

func TestReadCurrent_DecodesWithoutTouchingState(t *testing.T) {
	d, sig, rel := newTestDispatcher()
	sig.reply = "F=440Hz D= 025%"

	r := d.ReadCurrent()

	require.Equal(t, protocol.SignalReading{FrequencyHz: 440, DutyPercent: 25}, r)
	require.Equal(t, []protocol.Command{protocol.QueryRead}, sig.queries)
	require.Empty(t, sig.sent)
	require.Empty(t, rel.sent)
	require.Equal(t, Defaults(), d.State().Snapshot())
}

func TestReadCurrent_NoReplyIsZero(t *testing.T) {
	d, _, _ := newTestDispatcher()

	require.Equal(t, protocol.SignalReading{}, d.ReadCurrent())
}

func TestObservers_SeeAppliedAndRead(t *testing.T) {
	d, sig, _ := newTestDispatcher()
	obs := &fakeObserver{}
	d.AddObserver(obs)
	sig.reply = "F=005Hz D= 010%"

	d.Initialize()
	d.Apply(Request{DurationMinutes: ptrI(20)})
	d.ReadCurrent()

	require.Len(t, obs.applied, 2)
	require.Equal(t, 20, obs.applied[1].DurationMinutes)
	require.Equal(t, []protocol.SignalReading{{FrequencyHz: 5, DutyPercent: 10}}, obs.readings)
}

// internal/console/console_test.go
package console

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/pemf-controller/internal/session"
	"github.com/tamzrod/pemf-controller/internal/sim"
)

func newController(t *testing.T) *session.Dispatcher {
	t.Helper()
	d := session.NewDispatcher(session.NewState(), sim.NewSignalGenerator(), sim.NewRelayTimer(), zerolog.Nop())
	d.Initialize()
	return d
}

func TestExec_Set(t *testing.T) {
	d := newController(t)
	var out bytes.Buffer

	quit := Exec(d, "set FREQ=440 duty=20", &out)

	require.False(t, quit)
	require.Equal(t, "freq=440 Hz duty=20 % time=10 min\n", out.String())
	require.Equal(t, 440.0, d.State().Snapshot().FrequencyHz)
}

func TestExec_SetRawValuesClamped(t *testing.T) {
	d := newController(t)
	var out bytes.Buffer

	Exec(d, "set duty=250 time=-4", &out)

	p := d.State().Snapshot()
	require.Equal(t, 100, p.DutyPercent)
	require.Equal(t, 0, p.DurationMinutes)
}

func TestExec_SetUsage(t *testing.T) {
	d := newController(t)

	var out bytes.Buffer
	Exec(d, "set", &out)
	require.Contains(t, out.String(), "Usage: set")

	out.Reset()
	Exec(d, "set bogus=1", &out)
	require.Contains(t, out.String(), "Usage: set")

	out.Reset()
	Exec(d, "set freq", &out)
	require.Contains(t, out.String(), "Invalid argument: freq")

	require.Equal(t, session.Defaults(), d.State().Snapshot())
}

func TestExec_ShowAndRead(t *testing.T) {
	d := newController(t)
	var out bytes.Buffer

	Exec(d, "show", &out)
	require.Equal(t, "freq=5 Hz duty=10 % time=10 min\n", out.String())

	out.Reset()
	Exec(d, "read", &out)
	require.Equal(t, "generator: 5 Hz, 10 %\n", out.String())
}

func TestExec_Misc(t *testing.T) {
	d := newController(t)
	var out bytes.Buffer

	require.False(t, Exec(d, "   ", &out))
	require.Empty(t, out.String())

	require.False(t, Exec(d, "dance", &out))
	require.Contains(t, out.String(), "Unknown command: dance")

	out.Reset()
	require.False(t, Exec(d, "help", &out))
	require.Contains(t, out.String(), "Commands:")

	require.True(t, Exec(d, "exit", &out))
	require.True(t, Exec(d, "q", &out))
}

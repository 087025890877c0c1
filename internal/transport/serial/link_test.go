// internal/transport/serial/link_test.go
package serial

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	goserial "github.com/goburrow/serial"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/pemf-controller/internal/protocol"
)

// ---- fake port ----

// fakePort replays scripted read chunks, then times out like a real port.
type fakePort struct {
	written  bytes.Buffer
	chunks   []string
	writeErr error
	closed   bool
}

func (f *fakePort) Write(p []byte) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	return f.written.Write(p)
}

func (f *fakePort) Read(p []byte) (int, error) {
	if len(f.chunks) == 0 {
		return 0, goserial.ErrTimeout
	}
	n := copy(p, f.chunks[0])
	if n < len(f.chunks[0]) {
		f.chunks[0] = f.chunks[0][n:]
	} else {
		f.chunks = f.chunks[1:]
	}
	return n, nil
}

func (f *fakePort) Close() error {
	f.closed = true
	return nil
}

func newLink(p *fakePort) *Link {
	return New("signal", p, 50*time.Millisecond, zerolog.Nop())
}

// ---- tests ----

func TestSend_WritesRawBytes(t *testing.T) {
	p := &fakePort{}
	l := newLink(p)

	l.Send(protocol.Command("F005"))
	l.Send(protocol.Command("D010"))

	// no terminator, no framing
	require.Equal(t, "F005D010", p.written.String())
}

func TestSend_SwallowsWriteError(t *testing.T) {
	p := &fakePort{writeErr: errors.New("unplugged")}
	l := newLink(p)

	require.NotPanics(t, func() { l.Send(protocol.Command("P6")) })
}

func TestQuery_ReadsOneLineAcrossChunks(t *testing.T) {
	p := &fakePort{chunks: []string{"F=005", "Hz D= 010%\r\n", "F=999Hz"}}
	l := newLink(p)

	line := l.Query(protocol.QueryRead)

	require.Equal(t, "read", p.written.String())
	require.Equal(t, "F=005Hz D= 010%", line)
}

func TestQuery_PartialLineOnTimeout(t *testing.T) {
	p := &fakePort{chunks: []string{"F=005Hz D="}}
	l := newLink(p)

	require.Equal(t, "F=005Hz D=", l.Query(protocol.QueryRead))
}

func TestQuery_NoReply(t *testing.T) {
	l := newLink(&fakePort{})

	require.Equal(t, "", l.Query(protocol.QueryRead))
}

func TestQuery_StopsOnEOF(t *testing.T) {
	r := struct {
		io.Reader
		io.Writer
		io.Closer
	}{
		Reader: bytes.NewBufferString("F=440Hz"),
		Writer: io.Discard,
		Closer: io.NopCloser(nil),
	}
	l := New("signal", r, time.Second, zerolog.Nop())

	require.Equal(t, "F=440Hz", l.Query(protocol.QueryRead))
}

func TestClose(t *testing.T) {
	p := &fakePort{}
	require.NoError(t, newLink(p).Close())
	require.True(t, p.closed)

	var nilLink *Link
	require.NoError(t, nilLink.Close())
}

func TestOpen_RequiresAddress(t *testing.T) {
	_, err := Open(Config{Name: "relay"}, zerolog.Nop())
	require.Error(t, err)
}

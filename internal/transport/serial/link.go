// internal/transport/serial/link.go
package serial

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	goserial "github.com/goburrow/serial"
	"github.com/rs/zerolog"

	"github.com/tamzrod/pemf-controller/internal/protocol"
)

// maxLine bounds one reply line.
const maxLine = 256

// Config is minimal port config. Framing is fixed at 8N1.
type Config struct {
	Name      string // for logs only
	Address   string
	BaudRate  int
	ReplyWait time.Duration
}

// Link is one serial-attached module.
// It implements transport.Sink and transport.Querier.
type Link struct {
	name string
	port io.ReadWriteCloser
	wait time.Duration
	log  zerolog.Logger
}

// Open opens the port. Failing to open is the only error a Link reports;
// after that every write is fire-and-forget.
func Open(cfg Config, log zerolog.Logger) (*Link, error) {
	if cfg.Address == "" {
		return nil, errors.New("serial: address required")
	}

	port, err := goserial.Open(&goserial.Config{
		Address:  cfg.Address,
		BaudRate: cfg.BaudRate,
		DataBits: 8,
		StopBits: 1,
		Parity:   "N",
		Timeout:  cfg.ReplyWait,
	})
	if err != nil {
		return nil, fmt.Errorf("serial: open %s (%s): %w", cfg.Name, cfg.Address, err)
	}

	return New(cfg.Name, port, cfg.ReplyWait, log), nil
}

// New wraps an already open stream. Reads on rw should honour a timeout,
// otherwise Query blocks until the peer sends a newline or EOF.
func New(name string, rw io.ReadWriteCloser, replyWait time.Duration, log zerolog.Logger) *Link {
	return &Link{
		name: name,
		port: rw,
		wait: replyWait,
		log:  log.With().Str("module", name).Logger(),
	}
}

// Send writes the command in full. Failures are logged and dropped:
// the modules have no acknowledgement channel.
func (l *Link) Send(cmd protocol.Command) {
	if err := writeAll(l.port, cmd.Bytes()); err != nil {
		l.log.Warn().Err(err).Str("cmd", string(cmd)).Msg("write failed")
		return
	}
	l.log.Debug().Str("cmd", string(cmd)).Msg("sent")
}

// Query sends cmd and reads one reply line within the reply window.
// A partial line is returned as-is when the window closes first.
func (l *Link) Query(cmd protocol.Command) string {
	l.Send(cmd)
	return l.readLine(time.Now().Add(l.wait))
}

// Close closes the port.
func (l *Link) Close() error {
	if l == nil || l.port == nil {
		return nil
	}
	return l.port.Close()
}

// ---- helpers ----

func (l *Link) readLine(deadline time.Time) string {
	var line []byte
	buf := make([]byte, 64)

	for len(line) < maxLine {
		n, err := l.port.Read(buf)
		if n > 0 {
			line = append(line, buf[:n]...)
			if i := bytes.IndexByte(line, '\n'); i >= 0 {
				return trimLine(line[:i])
			}
		}
		if err != nil {
			if !errors.Is(err, goserial.ErrTimeout) && !errors.Is(err, io.EOF) {
				l.log.Warn().Err(err).Msg("read failed")
			}
			break
		}
		if time.Now().After(deadline) {
			break
		}
	}

	return trimLine(line)
}

func trimLine(b []byte) string {
	return string(bytes.TrimRight(b, "\r"))
}

func writeAll(w io.Writer, b []byte) error {
	for len(b) > 0 {
		n, err := w.Write(b)
		if err != nil {
			return err
		}
		if n == 0 {
			return io.ErrShortWrite
		}
		b = b[n:]
	}
	return nil
}

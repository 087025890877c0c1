// internal/monitor/monitor_test.go
package monitor

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tamzrod/pemf-controller/internal/protocol"
)

type fakeReader struct {
	calls atomic.Int32
}

func (f *fakeReader) ReadCurrent() protocol.SignalReading {
	n := f.calls.Add(1)
	return protocol.SignalReading{FrequencyHz: float64(n), DutyPercent: 10}
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(0, &fakeReader{}); err == nil {
		t.Fatalf("expected error for zero interval")
	}
	if _, err := New(time.Second, nil); err == nil {
		t.Fatalf("expected error for nil reader")
	}
}

func TestPollOnce(t *testing.T) {
	r := &fakeReader{}
	m, err := New(time.Second, r)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	res := m.PollOnce()
	if res.Reading.FrequencyHz != 1 || res.Reading.DutyPercent != 10 {
		t.Fatalf("unexpected reading: %+v", res.Reading)
	}
	if res.At.IsZero() {
		t.Fatalf("timestamp not set")
	}
}

func TestRun_EmitsUntilCancelled(t *testing.T) {
	r := &fakeReader{}
	m, err := New(5*time.Millisecond, r)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	out := make(chan Result)
	done := make(chan struct{})

	go func() {
		m.Run(ctx, out)
		close(done)
	}()

	for i := 1; i <= 3; i++ {
		select {
		case res := <-out:
			if res.Reading.FrequencyHz != float64(i) {
				t.Fatalf("tick %d: got %v", i, res.Reading.FrequencyHz)
			}
		case <-time.After(time.Second):
			t.Fatalf("tick %d: timed out", i)
		}
	}

	// Run must not block on a reader-less channel after cancel.
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}

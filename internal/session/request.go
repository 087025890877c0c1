// internal/session/request.go
package session

import (
	"math"

	"github.com/tamzrod/pemf-controller/internal/protocol"
)

// Form field names shared by every control surface.
const (
	FieldFrequency = "freq"
	FieldDuty      = "duty"
	FieldDuration  = "time"
)

// Request is a partial update. A nil field leaves the current value alone.
// Values are raw: clamping happens in Dispatcher.Apply only.
type Request struct {
	FrequencyHz     *float64
	DutyPercent     *float64
	DurationMinutes *int
}

// ParseRequest converts loosely typed surface input (url.Values or
// equivalent) into a Request. A key that is present counts as submitted even
// when its value is empty or malformed; such values parse to 0.
func ParseRequest(values map[string][]string) Request {
	var r Request

	if v, ok := first(values, FieldFrequency); ok {
		f := protocol.ParseReal(v)
		r.FrequencyHz = &f
	}
	if v, ok := first(values, FieldDuty); ok {
		d := protocol.ParseReal(v)
		r.DutyPercent = &d
	}
	if v, ok := first(values, FieldDuration); ok {
		m := protocol.ParseInt(v)
		r.DurationMinutes = &m
	}

	return r
}

// IsEmpty reports whether the request carries no field.
func (r Request) IsEmpty() bool {
	return r.FrequencyHz == nil && r.DutyPercent == nil && r.DurationMinutes == nil
}

// merge clamps every present field and overlays it on cur.
func (r Request) merge(cur Parameters) Parameters {
	next := cur

	if r.FrequencyHz != nil {
		next.FrequencyHz = protocol.ClampFrequency(*r.FrequencyHz)
	}
	if r.DutyPercent != nil {
		next.DutyPercent = clampDuty(*r.DutyPercent)
	}
	if r.DurationMinutes != nil {
		next.DurationMinutes = *r.DurationMinutes
		if next.DurationMinutes < 0 {
			next.DurationMinutes = 0
		}
	}

	return next
}

// clampDuty truncates toward zero and saturates into [0,100].
func clampDuty(v float64) int {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > protocol.MaxDutyPercent:
		return protocol.MaxDutyPercent
	}
	return protocol.ClampDuty(int(v))
}

func first(values map[string][]string, key string) (string, bool) {
	vs, ok := values[key]
	if !ok {
		return "", false
	}
	if len(vs) == 0 {
		return "", true
	}
	return vs[0], true
}

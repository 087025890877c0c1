// internal/protocol/decode.go
package protocol

import "strings"

// DecodeSignalReply extracts frequency and duty from one signal generator
// status line, e.g. "F=005Hz D= 010%".
//
// Soft failure: a field whose markers are missing or out of order stays 0,
// and a field with malformed content parses to 0. It never fails.
func DecodeSignalReply(raw string) SignalReading {
	var r SignalReading

	if field, ok := between(raw, MarkerFrequency, UnitHertz); ok {
		r.FrequencyHz = ParseReal(field)
	}
	if field, ok := between(raw, MarkerDuty, UnitPercent); ok {
		r.DutyPercent = ParseReal(field)
	}

	return r
}

// between returns the text strictly between the first open marker and the
// first close marker. Both must be present and open must end at or before close.
func between(s, open, close string) (string, bool) {
	i := strings.Index(s, open)
	j := strings.Index(s, close)
	if i < 0 || j < 0 {
		return "", false
	}
	start := i + len(open)
	if start > j {
		return "", false
	}
	return s[start:j], true
}

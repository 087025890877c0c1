// internal/protocol/types.go
package protocol

// Command is one encoded module command, ready for a single transport write.
// Commands are opaque ASCII; no terminator is appended.
type Command string

// Bytes returns the wire bytes of the command.
func (c Command) Bytes() []byte {
	return []byte(c)
}

// SignalReading is what the signal generator reported for one read query.
// Fields the reply did not carry stay zero.
type SignalReading struct {
	FrequencyHz float64 `json:"frequency_hz"`
	DutyPercent float64 `json:"duty_percent"`
}

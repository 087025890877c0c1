// internal/protocol/encode.go
package protocol

import (
	"fmt"
	"math"
)

// EncodeFrequency converts a frequency into the signal generator's F command.
// The grammar is selected by magnitude:
//
//	f <= 999            F%03d     (Hz, truncated)
//	999 < f < 10000     F%.2f     (kHz)
//	10000 <= f < 100000 F%.1f     (kHz)
//	f >= 100000         Fh.t.o    (kHz digits joined by dots)
//
// No IO. No side effects.
func EncodeFrequency(freqHz float64) Command {
	f := ClampFrequency(freqHz)

	switch {
	case f <= 999:
		return Command(fmt.Sprintf("%s%03d", PrefixFrequency, int(f)))
	case f < 10000:
		return Command(fmt.Sprintf("%s%.2f", PrefixFrequency, f/1000))
	case f < 100000:
		return Command(fmt.Sprintf("%s%.1f", PrefixFrequency, f/1000))
	default:
		khz := int(f / 1000)
		return Command(fmt.Sprintf("%s%d.%d.%d", PrefixFrequency, khz/100, (khz/10)%10, khz%10))
	}
}

// EncodeDuty converts a duty cycle into the D command.
func EncodeDuty(dutyPercent int) Command {
	return Command(fmt.Sprintf("%s%03d", PrefixDuty, ClampDuty(dutyPercent)))
}

// EncodeRelayDuration converts a session length into the relay timer's
// colon-qualified on-duration command.
func EncodeRelayDuration(minutes int) Command {
	return Command(fmt.Sprintf("%s%04d", PrefixRelayOn, RelaySeconds(minutes)))
}

// EncodeRelayDurationAlt is the second on-duration form sent right after
// EncodeRelayDuration. Firmware revisions differ in which form they accept,
// so both are always transmitted. The payload is currently identical.
func EncodeRelayDurationAlt(minutes int) Command {
	return Command(fmt.Sprintf("%s%04d", PrefixRelayOn, RelaySeconds(minutes)))
}

// ---- clamps ----

// ClampFrequency saturates a frequency into [0, MaxFrequencyHz]. NaN becomes 0.
func ClampFrequency(freqHz float64) float64 {
	switch {
	case math.IsNaN(freqHz), freqHz < 0:
		return 0
	case freqHz > MaxFrequencyHz:
		return MaxFrequencyHz
	}
	return freqHz
}

// ClampDuty saturates a duty cycle into [0, MaxDutyPercent].
func ClampDuty(dutyPercent int) int {
	if dutyPercent < 0 {
		return 0
	}
	if dutyPercent > MaxDutyPercent {
		return MaxDutyPercent
	}
	return dutyPercent
}

// RelaySeconds converts minutes to seconds inside the relay window.
// Multiplication saturates instead of overflowing.
func RelaySeconds(minutes int) int {
	if minutes < 1 {
		return MinRelaySeconds
	}
	if minutes > MaxRelaySeconds/60 {
		return MaxRelaySeconds
	}
	return minutes * 60
}

// ---- fixed sequences ----

// InitSequence is the relay literal tail sent once after the durations at startup.
func InitSequence() []Command {
	return []Command{
		RelayModeSelect,
		RelayLockout,
		RelayLockoutAlt,
		RelayCloseDelay,
		RelayCloseDelayAlt,
	}
}

// ApplySequence is the relay literal tail sent after the durations on every apply.
func ApplySequence() []Command {
	return []Command{RelayModeActivate}
}

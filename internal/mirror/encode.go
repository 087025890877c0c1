// internal/mirror/encode.go
package mirror

import (
	"math"

	"github.com/tamzrod/pemf-controller/internal/protocol"
	"github.com/tamzrod/pemf-controller/internal/session"
)

// Snapshot represents exactly what the mirror is allowed to publish.
// All values are already scaled and saturated.
type Snapshot struct {
	FrequencyX10     uint32
	DutyPercent      uint16
	DurationMinutes  uint16
	ReadFrequencyX10 uint32
	ReadDutyX10      uint16
	ApplyCount       uint16
}

// withParameters replaces the session part of s.
func (s Snapshot) withParameters(p session.Parameters) Snapshot {
	s.FrequencyX10 = scaleX10(p.FrequencyHz)
	s.DutyPercent = sat16(p.DutyPercent)
	s.DurationMinutes = sat16(p.DurationMinutes)
	return s
}

// withReading replaces the readback part of s.
func (s Snapshot) withReading(r protocol.SignalReading) Snapshot {
	s.ReadFrequencyX10 = scaleX10(r.FrequencyHz)
	s.ReadDutyX10 = uint16(min(scaleX10(r.DutyPercent), math.MaxUint16))
	return s
}

// Encode converts a Snapshot into the live part of a block
// (slots 0..LiveSlots-1). Layout is protocol-locked.
// No IO. No side effects.
func Encode(s Snapshot) []uint16 {
	regs := make([]uint16, LiveSlots)

	regs[SlotFrequency] = uint16(s.FrequencyX10 >> 16)
	regs[SlotFrequency+1] = uint16(s.FrequencyX10)
	regs[SlotDuty] = s.DutyPercent
	regs[SlotDuration] = s.DurationMinutes
	regs[SlotReadFrequency] = uint16(s.ReadFrequencyX10 >> 16)
	regs[SlotReadFrequency+1] = uint16(s.ReadFrequencyX10)
	regs[SlotReadDuty] = s.ReadDutyX10
	regs[SlotApplyCount] = s.ApplyCount

	return regs
}

// EncodeName packs up to NameMaxChars ASCII characters into SlotNameSlots registers.
// Each register stores two bytes big-endian. Non-printable bytes become '?'.
func EncodeName(name string) []uint16 {
	out := make([]uint16, SlotNameSlots)

	b := []byte(name)
	if len(b) > NameMaxChars {
		b = b[:NameMaxChars]
	}
	for i := range b {
		if b[i] < 0x20 || b[i] > 0x7E {
			b[i] = '?'
		}
	}

	for i := 0; i < NameMaxChars; i += 2 {
		var hi, lo byte
		if i < len(b) {
			hi = b[i]
		}
		if i+1 < len(b) {
			lo = b[i+1]
		}
		out[i/2] = uint16(hi)<<8 | uint16(lo)
	}

	return out
}

// EncodeBlock returns the full block: live slots, zeroed reserved range, name.
func EncodeBlock(s Snapshot, nameRegs []uint16) []uint16 {
	regs := make([]uint16, SlotsPerBlock)
	copy(regs, Encode(s))
	for i := 0; i < SlotNameSlots && i < len(nameRegs); i++ {
		regs[SlotNameStart+i] = nameRegs[i]
	}
	return regs
}

func scaleX10(v float64) uint32 {
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v*10 >= math.MaxUint32:
		return math.MaxUint32
	}
	return uint32(math.Round(v * 10))
}

func sat16(v int) uint16 {
	switch {
	case v < 0:
		return 0
	case v > math.MaxUint16:
		return math.MaxUint16
	}
	return uint16(v)
}

// internal/mirror/writer.go
package mirror

import (
	"errors"
	"fmt"
	"strings"
)

// endpointClient is the minimal write surface the block writer needs.
// Implemented by mirror/modbus.EndpointClient.
type endpointClient interface {
	WriteRegisters(unitID uint8, addr uint16, regs []uint16) error
}

// field is one independently written span of the live slots.
type field struct {
	name  string
	slot  int
	width int
}

var liveFields = []field{
	{"frequency", SlotFrequency, 2},
	{"duty", SlotDuty, 1},
	{"duration", SlotDuration, 1},
	{"read_frequency", SlotReadFrequency, 2},
	{"read_duty", SlotReadDuty, 1},
	{"apply_count", SlotApplyCount, 1},
}

// blockWriter delivers snapshots into one holding-register block.
// No interpretation: it writes what it is given.
type blockWriter struct {
	cli    endpointClient
	unitID uint8
	base   uint16

	needFull bool
	last     []uint16
	nameRegs []uint16
}

func newBlockWriter(cli endpointClient, unitID uint8, baseSlot uint16, name string) *blockWriter {
	return &blockWriter{
		cli:      cli,
		unitID:   unitID,
		base:     baseSlot * SlotsPerBlock,
		needFull: true, // full assert on first successful write
		nameRegs: EncodeName(name),
	}
}

// write publishes s. On any failure the next call re-asserts the full block.
func (w *blockWriter) write(s Snapshot) error {
	if w.cli == nil {
		return errors.New("mirror: no client")
	}

	regs := Encode(s)

	// ------------------------------------------------------------
	// Full block write (identity re-assert)
	// ------------------------------------------------------------
	if w.needFull {
		if err := w.cli.WriteRegisters(w.unitID, w.base, EncodeBlock(s, w.nameRegs)); err != nil {
			return fmt.Errorf("mirror: full block write failed: %w", err)
		}
		w.needFull = false
		w.last = regs
		return nil
	}

	var errs []string

	for _, f := range liveFields {
		next := regs[f.slot : f.slot+f.width]
		if equalRegs(w.last[f.slot:f.slot+f.width], next) {
			continue
		}
		if err := w.cli.WriteRegisters(w.unitID, w.base+uint16(f.slot), next); err != nil {
			errs = append(errs, fmt.Sprintf("slot%d %s write failed: %v", f.slot, f.name, err))
			continue
		}
		copy(w.last[f.slot:], next)
	}

	if len(errs) > 0 {
		// partial failure: re-assert on next success
		w.needFull = true
		return errors.New("mirror: " + strings.Join(errs, " | "))
	}

	return nil
}

func equalRegs(a, b []uint16) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// internal/mirror/constants.go
package mirror

// Session mirror block layout.
// These values define the register map seen by plant tooling and MUST NOT be configurable.

// ---- BLOCK GEOMETRY ----

// SlotsPerBlock is the fixed number of holding registers per controller.
const SlotsPerBlock = 20

// ---- SESSION (what was transmitted) ----

// SlotFrequency holds frequency Hz x10, high word first (2 slots).
const SlotFrequency = 0

// SlotDuty holds the duty cycle in percent.
const SlotDuty = 2

// SlotDuration holds the session length in minutes.
const SlotDuration = 3

// ---- READBACK (what the generator reported) ----

// SlotReadFrequency holds the last read frequency Hz x10 (2 slots).
const SlotReadFrequency = 4

// SlotReadDuty holds the last read duty percent x10.
const SlotReadDuty = 6

// SlotApplyCount counts applied parameter sets. Wraps at 65535.
const SlotApplyCount = 7

// ---- RESERVED RANGE ----

// Slots 8–11 are reserved for future use.
const SlotReservedStart = 8
const SlotReservedEnd = 11

// ---- DEVICE NAME ----

// SlotNameStart is the first slot used for the controller name.
// The name is always placed at the END of the block.
const SlotNameStart = 12

// SlotNameSlots is the number of slots reserved for the name.
const SlotNameSlots = 8

// NameMaxChars is the maximum number of ASCII characters stored for the name.
const NameMaxChars = 16

// LiveSlots is the number of leading slots that change at runtime.
const LiveSlots = SlotApplyCount + 1

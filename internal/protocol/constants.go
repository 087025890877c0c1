// internal/protocol/constants.go
package protocol

// Module command grammar constants.
// These values are imposed by the module firmware and MUST NOT be configurable.

// ---- SIGNAL GENERATOR ----

// PrefixFrequency starts every frequency command.
const PrefixFrequency = "F"

// PrefixDuty starts every duty command.
const PrefixDuty = "D"

// QueryRead asks the signal generator for one status line.
const QueryRead Command = "read"

// ---- SIGNAL GENERATOR REPLY MARKERS ----

// MarkerFrequency opens the frequency field of a status line.
const MarkerFrequency = "F="

// MarkerDuty opens the duty field of a status line.
// The trailing space is part of the module grammar.
const MarkerDuty = "D= "

// UnitHertz closes the frequency field.
const UnitHertz = "Hz"

// UnitPercent closes the duty field.
const UnitPercent = "%"

// ---- RELAY TIMER ----

// PrefixRelayOn starts the colon-qualified on-duration command.
const PrefixRelayOn = "OP:"

// RelayModeSelect puts the relay timer into its programmable mode.
// Sent once during module initialization.
const RelayModeSelect Command = "P5"

// RelayModeActivate starts the cycle with the just-programmed durations.
// Sent after every apply.
const RelayModeActivate Command = "P6"

// RelayLockout is the lockout period, primary (colon) form.
const RelayLockout Command = "LP:0001"

// RelayLockoutAlt is the lockout period, secondary form.
const RelayLockoutAlt Command = "LP0001"

// RelayCloseDelay is the close (off) delay, primary (colon) form.
const RelayCloseDelay Command = "CL:0003"

// RelayCloseDelayAlt is the close (off) delay, secondary form.
const RelayCloseDelayAlt Command = "CL0003"

// ---- LIMITS ----

// MaxFrequencyHz is the signal generator ceiling.
const MaxFrequencyHz = 150000.0

// MaxDutyPercent is the upper duty bound.
const MaxDutyPercent = 100

// MinRelaySeconds is the shortest on-duration the relay timer accepts.
const MinRelaySeconds = 1

// MaxRelaySeconds is the longest on-duration the four-digit field can carry.
const MaxRelaySeconds = 9999

// internal/protocol/parse.go
package protocol

import (
	"errors"
	"strconv"
	"strings"
)

// ParseReal parses the leading decimal number of s, ignoring surrounding
// whitespace and any trailing text ("12.5kHz" -> 12.5).
// Anything without a numeric prefix, or out of float64 range, yields 0.
func ParseReal(s string) float64 {
	num := realPrefix(strings.TrimSpace(s))
	if num == "" {
		return 0
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseInt parses the leading integer of s ("12.7" -> 12, "x" -> 0).
// Values beyond the int range saturate.
func ParseInt(s string) int {
	num := intPrefix(strings.TrimSpace(s))
	if num == "" {
		return 0
	}
	v, err := strconv.ParseInt(num, 10, 0)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	return int(v)
}

// realPrefix returns the longest prefix shaped like [+-]digits[.digits][e[+-]digits].
func realPrefix(s string) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	mant := i
	i = skipDigits(s, i)
	if i < len(s) && s[i] == '.' {
		i = skipDigits(s, i+1)
	}
	// need at least one digit in the mantissa
	if i == mant || (i == mant+1 && s[mant] == '.') {
		return ""
	}

	// exponent only counts if digits follow it
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if k := skipDigits(s, j); k > j {
			i = k
		}
	}
	return s[:i]
}

func intPrefix(s string) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	j := skipDigits(s, i)
	if j == i {
		return ""
	}
	return s[:j]
}

func skipDigits(s string, i int) int {
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}

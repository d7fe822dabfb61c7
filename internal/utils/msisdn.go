package utils

import "strings"

// MSISDNLength is the exact digit count of a payout recipient identifier.
const MSISDNLength = 12

// NormalizeMSISDN strips every non-digit character, mirroring what the
// submission forms send (spaces, plus signs, dashes).
func NormalizeMSISDN(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidMSISDN reports whether raw normalizes to exactly 12 digits.
func IsValidMSISDN(raw string) bool {
	return len(NormalizeMSISDN(raw)) == MSISDNLength
}

package domain

import (
	"regexp"
	"strings"
)

// Phone numbers must already be normalized before they hit this pattern:
// optional leading +, 9 to 15 digits.
var phonePattern = regexp.MustCompile(`^\+?1?\d{9,15}$`)

// NormalizePhone reduces a phone number to its canonical form: a leading +
// if present, digits only otherwise. Every comparison, cache key and storage
// lookup in the system uses this form; dedup and scoring break without it.
func NormalizePhone(raw string) string {
	raw = strings.TrimSpace(raw)
	var b strings.Builder
	for i, r := range raw {
		if r == '+' && i == 0 {
			b.WriteRune(r)
			continue
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidPhone reports whether the normalized form of raw is a usable number.
func ValidPhone(raw string) bool {
	return phonePattern.MatchString(NormalizePhone(raw))
}

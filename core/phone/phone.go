// Package phone normalizes the phone identities used as coverage lookup keys.
package phone

import (
	"regexp"
	"strings"
)

var nonDigit = regexp.MustCompile(`\D+`)

// Normalize removes every non-digit character and returns the bare digits.
func Normalize(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	return nonDigit.ReplaceAllString(raw, "")
}

// IsValid reports whether `raw` has 10 to 15 digits after normalization.
func IsValid(raw string) bool {
	n := len(Normalize(raw))
	return n >= 10 && n <= 15
}

// Format formats digits for display by splitting them into groups of 5.
// The result is never used as a storage key.
func Format(raw string) string {
	digits := Normalize(raw)
	if digits == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(digits) + len(digits)/5)
	for i := 0; i < len(digits); i++ {
		if i > 0 && i%5 == 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(digits[i])
	}
	return b.String()
}

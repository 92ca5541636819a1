// Package sanitizer normalizes free-form client input before validation and
// persistence. It never rejects; rejection is the validator's job.
package sanitizer

import (
	"strings"
	"unicode"
)

func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

// NormalizeEmail lowercases and trims; actual address validation happens in
// the validator.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeReference strips whitespace from correlation tokens (refId,
// paymentId). References are compared verbatim otherwise.
func NormalizeReference(ref string) string {
	return strings.TrimSpace(ref)
}

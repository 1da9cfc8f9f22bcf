package security

import (
	"bytes"
	"strings"
)

// MinSecretLength is the shortest HMAC secret not reported as weak.
const MinSecretLength = 32

var weakPatterns = []string{
	"12345678", "87654321", "qwerty", "asdfgh", "zxcvbn",
	"password", "letmein", "welcome", "secret", "changeme",
	"default", "example", "admin", "token", "test",
}

// WeakSecretReason returns a short description of why secret is a weak HMAC
// key, or "" when none of the heuristics match.
func WeakSecretReason(secret []byte) string {
	switch {
	case len(secret) == 0:
		return "empty secret"
	case len(secret) < MinSecretLength:
		return "shorter than 32 bytes"
	case isRepeated(secret):
		return "repeated pattern"
	case uniqueRatio(secret) < 0.3:
		return "low entropy"
	}

	lower := strings.ToLower(string(secret))
	for _, pattern := range weakPatterns {
		if strings.Contains(lower, pattern) {
			return "contains common pattern " + pattern
		}
	}
	return ""
}

// IsWeakKey reports whether WeakSecretReason finds any weakness.
func IsWeakKey(secret []byte) bool {
	return WeakSecretReason(secret) != ""
}

// isRepeated detects secrets made of a 1-4 byte unit repeated at least three times.
func isRepeated(secret []byte) bool {
	for unit := 1; unit <= 4 && unit*3 <= len(secret); unit++ {
		pattern := secret[:unit]
		repeated := true
		for i := unit; i < len(secret); i += unit {
			end := min(i+unit, len(secret))
			if !bytes.Equal(secret[i:end], pattern[:end-i]) {
				repeated = false
				break
			}
		}
		if repeated {
			return true
		}
	}
	return false
}

func uniqueRatio(secret []byte) float64 {
	var seen [256]bool
	unique := 0
	for _, b := range secret {
		if !seen[b] {
			seen[b] = true
			unique++
		}
	}
	return float64(unique) / float64(len(secret))
}

package auth

import (
	"net/mail"
	"strings"
)

// NormalizeEmail trims s and reports whether it is a bare address
// (no display name).
func NormalizeEmail(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 255 {
		return s, false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return s, false
	}
	return s, true
}

// EmailLocalPart returns the part before @, or the whole string.
func EmailLocalPart(email string) string {
	if idx := strings.IndexByte(email, '@'); idx > 0 {
		return email[:idx]
	}
	return email
}

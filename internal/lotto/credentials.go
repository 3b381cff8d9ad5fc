package lotto

import "strings"

// Credentials holds the lottery site login pair in plaintext form.
// Values never reach disk or logs: the store encrypts them into
// self-describing tokens before persisting.
type Credentials struct {
	UserID   string
	Password string
}

// MaskedUserID returns the user ID with all but the first two characters
// replaced by asterisks. IDs of two characters or fewer are fully masked.
func (c Credentials) MaskedUserID() string {
	runes := []rune(c.UserID)
	if len(runes) <= 2 {
		return strings.Repeat("*", len(runes))
	}
	return string(runes[:2]) + strings.Repeat("*", len(runes)-2)
}

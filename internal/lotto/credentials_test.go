package lotto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lottokeeper/lottokeeper/internal/lotto"
)

func TestCredentials_MaskedUserID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		userID   string
		expected string
	}{
		{"empty", "", ""},
		{"single char", "a", "*"},
		{"two chars", "ab", "**"},
		{"three chars", "abc", "ab*"},
		{"typical", "lottouser", "lo*******"},
		{"korean", "복권왕", "복권*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := lotto.Credentials{UserID: tt.userID, Password: "irrelevant"}
			assert.Equal(t, tt.expected, c.MaskedUserID())
		})
	}
}

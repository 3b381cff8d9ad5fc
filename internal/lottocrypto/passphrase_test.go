package lottocrypto_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tyler-smith/go-bip39"

	"github.com/lottokeeper/lottokeeper/internal/lottocrypto"
)

func TestGeneratePassphrase(t *testing.T) {
	t.Parallel()

	wordSet := make(map[string]struct{})
	for _, w := range bip39.GetWordList() {
		wordSet[w] = struct{}{}
	}

	tests := []struct {
		name      string
		wordCount int
	}{
		{"minimum", lottocrypto.MinPassphraseWords},
		{"default", lottocrypto.DefaultPassphraseWords},
		{"maximum", lottocrypto.MaxPassphraseWords},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			phrase, err := lottocrypto.GeneratePassphrase(tt.wordCount)
			require.NoError(t, err)

			words := strings.Split(phrase, "-")
			require.Len(t, words, tt.wordCount)
			for _, w := range words {
				assert.Contains(t, wordSet, w)
			}
		})
	}
}

func TestGeneratePassphrase_InvalidCount(t *testing.T) {
	t.Parallel()

	for _, n := range []int{-1, 0, 3, 13, 100} {
		_, err := lottocrypto.GeneratePassphrase(n)
		assert.ErrorIs(t, err, lottocrypto.ErrInvalidWordCount, "word count %d", n)
	}
}

func TestGeneratePassphrase_Uniqueness(t *testing.T) {
	t.Parallel()

	first, err := lottocrypto.GeneratePassphrase(lottocrypto.DefaultPassphraseWords)
	require.NoError(t, err)
	second, err := lottocrypto.GeneratePassphrase(lottocrypto.DefaultPassphraseWords)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

package lottocrypto

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

const (
	// MinPassphraseWords is the smallest word count GeneratePassphrase accepts.
	MinPassphraseWords = 4

	// MaxPassphraseWords is the largest word count GeneratePassphrase accepts.
	MaxPassphraseWords = 12

	// DefaultPassphraseWords is the word count used when none is requested.
	DefaultPassphraseWords = 6
)

// ErrInvalidWordCount indicates the requested passphrase length is out of range.
var ErrInvalidWordCount = errors.New("word count must be between 4 and 12")

// GeneratePassphrase returns a memorable random passphrase of wordCount
// words drawn from the BIP39 English wordlist, joined by hyphens. Each
// word contributes 11 bits of entropy.
func GeneratePassphrase(wordCount int) (string, error) {
	if wordCount < MinPassphraseWords || wordCount > MaxPassphraseWords {
		return "", ErrInvalidWordCount
	}

	list := bip39.GetWordList()
	limit := big.NewInt(int64(len(list)))

	words := make([]string, wordCount)
	for i := range words {
		idx, err := rand.Int(Reader, limit)
		if err != nil {
			return "", err
		}
		words[i] = list[idx.Int64()]
	}

	return strings.Join(words, "-"), nil
}

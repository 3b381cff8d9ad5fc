package lottocrypto_test

import (
	"encoding/base64"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lottokeeper/lottokeeper/internal/lottocrypto"
)

func TestMain(m *testing.M) {
	lottocrypto.SetKDFIterations(1)     // Fast for tests
	lottocrypto.SetScryptWorkFactor(10) // Fast for tests
	os.Exit(m.Run())
}

func newTestCipher(t *testing.T, password string) *lottocrypto.Cipher {
	t.Helper()

	salt, err := lottocrypto.GenerateSalt()
	require.NoError(t, err)

	c, err := lottocrypto.NewCipher(password, salt)
	require.NoError(t, err)
	t.Cleanup(c.Close)

	return c
}

func TestCipher_EncryptDecrypt_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		plaintext string
	}{
		{"simple", "lottouser"},
		{"empty", ""},
		{"korean", "동행복권아이디"},
		{"special chars", `p@ss"word'!#%&`},
		{"long", strings.Repeat("credential-", 100)},
	}

	c := newTestCipher(t, "master-pass-123")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := c.Encrypt(tt.plaintext)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(token, lottocrypto.TokenPrefix))
			if tt.plaintext != "" {
				assert.NotContains(t, token[len(lottocrypto.TokenPrefix):], tt.plaintext)
			}

			decrypted, err := c.Decrypt(token)
			require.NoError(t, err)
			assert.Equal(t, tt.plaintext, decrypted)
		})
	}
}

func TestCipher_TokenUniqueness(t *testing.T) {
	t.Parallel()
	c := newTestCipher(t, "master-pass-123")

	first, err := c.Encrypt("same plaintext")
	require.NoError(t, err)
	second, err := c.Encrypt("same plaintext")
	require.NoError(t, err)

	// Random nonces make identical plaintexts produce distinct tokens
	assert.NotEqual(t, first, second)
}

func TestCipher_WrongPassword(t *testing.T) {
	t.Parallel()

	salt, err := lottocrypto.GenerateSalt()
	require.NoError(t, err)

	right, err := lottocrypto.NewCipher("correct-password", salt)
	require.NoError(t, err)
	defer right.Close()

	wrong, err := lottocrypto.NewCipher("wrong-password", salt)
	require.NoError(t, err)
	defer wrong.Close()

	token, err := right.Encrypt("secret")
	require.NoError(t, err)

	_, err = wrong.Decrypt(token)
	assert.ErrorIs(t, err, lottocrypto.ErrDecryptionFailed)
}

func TestCipher_DifferentSalt(t *testing.T) {
	t.Parallel()

	saltA, err := lottocrypto.GenerateSalt()
	require.NoError(t, err)
	saltB, err := lottocrypto.GenerateSalt()
	require.NoError(t, err)

	a, err := lottocrypto.NewCipher("same-password", saltA)
	require.NoError(t, err)
	defer a.Close()

	b, err := lottocrypto.NewCipher("same-password", saltB)
	require.NoError(t, err)
	defer b.Close()

	token, err := a.Encrypt("secret")
	require.NoError(t, err)

	// Same password with a different salt derives a different key
	_, err = b.Decrypt(token)
	assert.ErrorIs(t, err, lottocrypto.ErrDecryptionFailed)
}

func TestCipher_TamperedToken(t *testing.T) {
	t.Parallel()
	c := newTestCipher(t, "master-pass-123")

	token, err := c.Encrypt("secret")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(token, lottocrypto.TokenPrefix))
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0x01
	tampered := lottocrypto.TokenPrefix + base64.StdEncoding.EncodeToString(raw)

	_, err = c.Decrypt(tampered)
	assert.ErrorIs(t, err, lottocrypto.ErrDecryptionFailed)
}

func TestCipher_InvalidToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		token string
	}{
		{"no prefix", "plainvalue"},
		{"empty", ""},
		{"bad base64", "ENC:not-valid-base64!!!"},
		{"too short", "ENC:" + base64.StdEncoding.EncodeToString([]byte("abc"))},
	}

	c := newTestCipher(t, "master-pass-123")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Decrypt(tt.token)
			assert.ErrorIs(t, err, lottocrypto.ErrInvalidToken)
		})
	}
}

func TestNewCipher_InvalidSalt(t *testing.T) {
	t.Parallel()

	_, err := lottocrypto.NewCipher("password", []byte("short"))
	assert.ErrorIs(t, err, lottocrypto.ErrInvalidSaltSize)

	_, err = lottocrypto.NewCipher("password", nil)
	assert.ErrorIs(t, err, lottocrypto.ErrInvalidSaltSize)
}

func TestCipher_DoubleClose(t *testing.T) {
	t.Parallel()

	salt, err := lottocrypto.GenerateSalt()
	require.NoError(t, err)

	c, err := lottocrypto.NewCipher("password", salt)
	require.NoError(t, err)

	c.Close()
	// Should not panic on double close
	c.Close()
}

func TestDeriveKey(t *testing.T) {
	t.Parallel()

	salt, err := lottocrypto.GenerateSalt()
	require.NoError(t, err)

	key1, err := lottocrypto.DeriveKey("password", salt)
	require.NoError(t, err)
	assert.Len(t, key1, lottocrypto.KeySize)

	t.Run("deterministic", func(t *testing.T) {
		key2, err := lottocrypto.DeriveKey("password", salt)
		require.NoError(t, err)
		assert.Equal(t, key1, key2)
	})

	t.Run("salt changes key", func(t *testing.T) {
		other, err := lottocrypto.GenerateSalt()
		require.NoError(t, err)
		key2, err := lottocrypto.DeriveKey("password", other)
		require.NoError(t, err)
		assert.NotEqual(t, key1, key2)
	})

	t.Run("password changes key", func(t *testing.T) {
		key2, err := lottocrypto.DeriveKey("other-password", salt)
		require.NoError(t, err)
		assert.NotEqual(t, key1, key2)
	})

	t.Run("invalid salt", func(t *testing.T) {
		_, err := lottocrypto.DeriveKey("password", []byte{1, 2, 3})
		assert.ErrorIs(t, err, lottocrypto.ErrInvalidSaltSize)
	})
}

func TestGenerateSalt(t *testing.T) {
	t.Parallel()

	salt1, err := lottocrypto.GenerateSalt()
	require.NoError(t, err)
	assert.Len(t, salt1, lottocrypto.SaltSize)

	salt2, err := lottocrypto.GenerateSalt()
	require.NoError(t, err)
	assert.NotEqual(t, salt1, salt2)
}

func TestZeroBytes(t *testing.T) {
	t.Parallel()

	data := []byte{1, 2, 3, 4, 5}
	lottocrypto.ZeroBytes(data)
	assert.Equal(t, make([]byte, 5), data)

	// Nil slice is a no-op
	lottocrypto.ZeroBytes(nil)
}

func TestIsEncrypted(t *testing.T) {
	t.Parallel()

	assert.True(t, lottocrypto.IsEncrypted("ENC:abcdef"))
	assert.False(t, lottocrypto.IsEncrypted("abcdef"))
	assert.False(t, lottocrypto.IsEncrypted(""))
	assert.False(t, lottocrypto.IsEncrypted("enc:abcdef"))
}

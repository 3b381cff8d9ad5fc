// Package lottocrypto provides the cryptographic primitives for LottoKeeper:
// PBKDF2 key derivation, AES-256-GCM credential tokens, age-encrypted
// archives, and secure memory handling.
package lottocrypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// TokenPrefix marks a string as an encrypted credential token.
	TokenPrefix = "ENC:"

	// SaltSize is the size in bytes of the random KDF salt.
	SaltSize = 16

	// KeySize is the derived AES-256 key size in bytes.
	KeySize = 32

	// DefaultIterations is the PBKDF2 iteration count used outside tests.
	DefaultIterations = 100_000

	// GCM geometry, fixed by the cipher construction.
	gcmNonceSize = 12
	gcmTagSize   = 16
)

var (
	// ErrDecryptionFailed indicates a wrong password or a tampered token.
	// The two cases are indistinguishable under AES-GCM.
	ErrDecryptionFailed = errors.New("decryption failed: wrong password or corrupted data")

	// ErrInvalidToken indicates the value is not a well-formed credential token.
	ErrInvalidToken = errors.New("invalid credential token")

	// ErrInvalidSaltSize indicates the salt is not SaltSize bytes.
	ErrInvalidSaltSize = errors.New("salt must be 16 bytes")
)

//nolint:gochecknoglobals // Iteration count is tunable so test suites stay fast
var kdfIterations = DefaultIterations

// SetKDFIterations overrides the PBKDF2 iteration count.
// Intended for tests; production code uses DefaultIterations.
func SetKDFIterations(n int) {
	if n < 1 {
		n = 1
	}
	kdfIterations = n
}

// DeriveKey stretches a master password into an AES-256 key using
// PBKDF2-SHA256. The same password and salt always yield the same key.
// The caller should zero the returned key after use.
func DeriveKey(password string, salt []byte) ([]byte, error) {
	if len(salt) != SaltSize {
		return nil, ErrInvalidSaltSize
	}
	return pbkdf2.Key([]byte(password), salt, kdfIterations, KeySize, sha256.New), nil
}

// GenerateSalt returns a fresh random KDF salt.
func GenerateSalt() ([]byte, error) {
	return RandomBytes(SaltSize)
}

// ZeroBytes zeros out a byte slice.
func ZeroBytes(data []byte) {
	for i := range data {
		data[i] = 0
	}
}

// IsEncrypted reports whether the value carries the encrypted token prefix.
func IsEncrypted(value string) bool {
	return strings.HasPrefix(value, TokenPrefix)
}

// ValidTokenShape reports whether the value is a well-formed credential
// token: prefix, valid base64, and room for the nonce and the tag. It
// says nothing about whether the token will authenticate.
func ValidTokenShape(value string) bool {
	raw, ok := strings.CutPrefix(value, TokenPrefix)
	if !ok {
		return false
	}
	sealed, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return false
	}
	return len(sealed) >= gcmNonceSize+gcmTagSize
}

// Cipher seals and opens credential tokens with a key derived from the
// master password. The derived key lives in locked memory until Close.
type Cipher struct {
	key  *SecureBytes
	aead cipher.AEAD
}

// NewCipher derives an AES-256-GCM cipher from the master password and salt.
func NewCipher(password string, salt []byte) (*Cipher, error) {
	key, err := DeriveKey(password, salt)
	if err != nil {
		return nil, err
	}
	defer ZeroBytes(key)

	sb, err := SecureBytesFromSlice(key)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(sb.Bytes())
	if err != nil {
		sb.Destroy()
		return nil, err
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		sb.Destroy()
		return nil, err
	}

	return &Cipher{key: sb, aead: aead}, nil
}

// Encrypt seals a plaintext field into a self-describing token:
// TokenPrefix plus base64(nonce || ciphertext || tag).
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	nonce, err := RandomBytes(c.aead.NonceSize())
	if err != nil {
		return "", err
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return TokenPrefix + base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a token produced by Encrypt. Malformed tokens return
// ErrInvalidToken; authentication failures return ErrDecryptionFailed.
func (c *Cipher) Decrypt(token string) (string, error) {
	raw, ok := strings.CutPrefix(token, TokenPrefix)
	if !ok {
		return "", ErrInvalidToken
	}

	sealed, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", ErrInvalidToken
	}

	if len(sealed) < c.aead.NonceSize() {
		return "", ErrInvalidToken
	}

	nonce, ciphertext := sealed[:c.aead.NonceSize()], sealed[c.aead.NonceSize():]
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrDecryptionFailed
	}

	return string(plaintext), nil
}

// Close destroys the derived key material. The cipher must not be used
// after Close. Safe to call multiple times.
func (c *Cipher) Close() {
	if c.key != nil {
		c.key.Destroy()
		c.key = nil
	}
}

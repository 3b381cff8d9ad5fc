package lottocrypto

import (
	"bytes"
	"fmt"
	"io"

	"filippo.io/age"
)

//nolint:gochecknoglobals // Work factor is tunable so test suites stay fast
var scryptWorkFactor int

// SetScryptWorkFactor overrides the age scrypt work factor (log2 of N).
// Intended for tests; zero keeps the age default.
func SetScryptWorkFactor(logN int) {
	scryptWorkFactor = logN
}

// EncryptArchive encrypts plaintext using age with a password-based recipient.
func EncryptArchive(plaintext []byte, password string) ([]byte, error) {
	recipient, err := age.NewScryptRecipient(password)
	if err != nil {
		return nil, fmt.Errorf("creating scrypt recipient: %w", err)
	}
	if scryptWorkFactor > 0 {
		recipient.SetWorkFactor(scryptWorkFactor)
	}

	buf := &bytes.Buffer{}
	w, err := age.Encrypt(buf, recipient)
	if err != nil {
		return nil, fmt.Errorf("initializing encryption: %w", err)
	}

	if _, err := w.Write(plaintext); err != nil {
		return nil, fmt.Errorf("writing encrypted data: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalizing encryption: %w", err)
	}

	return buf.Bytes(), nil
}

// DecryptArchive decrypts ciphertext using age with a password-based identity.
func DecryptArchive(ciphertext []byte, password string) ([]byte, error) {
	identity, err := age.NewScryptIdentity(password)
	if err != nil {
		return nil, fmt.Errorf("creating scrypt identity: %w", err)
	}

	r, err := age.Decrypt(bytes.NewReader(ciphertext), identity)
	if err != nil {
		return nil, fmt.Errorf("initializing decryption: %w", err)
	}

	plaintext, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading decrypted data: %w", err)
	}

	return plaintext, nil
}

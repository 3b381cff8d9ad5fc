package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lottokeeper/lottokeeper/internal/lotto"
	"github.com/lottokeeper/lottokeeper/internal/lottocrypto"
)

// configFile is the on-disk document layout.
type configFile struct {
	Purchase    lotto.PurchaseSettings     `json:"purchase"`
	Recharge    lotto.RechargeSettings     `json:"recharge"`
	Discord     lotto.NotificationSettings `json:"discord"`
	Credentials encryptedCredentials       `json:"encrypted_credentials"`
	Metadata    lotto.Metadata             `json:"metadata"`
}

// encryptedCredentials carries the cipher tokens for the login pair.
type encryptedCredentials struct {
	UserID   string `json:"encrypted_user_id"`
	Password string `json:"encrypted_password"`
}

// sealConfig encrypts the credentials under a fresh salt and lays the
// document out for persistence.
func sealConfig(cfg *lotto.Config, password string) (*configFile, error) {
	salt, err := lottocrypto.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("generating salt: %w", err)
	}

	cipher, err := lottocrypto.NewCipher(password, salt)
	if err != nil {
		return nil, fmt.Errorf("deriving key: %w", err)
	}
	defer cipher.Close()

	userToken, err := cipher.Encrypt(cfg.Credentials.UserID)
	if err != nil {
		return nil, fmt.Errorf("encrypting user id: %w", err)
	}

	passToken, err := cipher.Encrypt(cfg.Credentials.Password)
	if err != nil {
		return nil, fmt.Errorf("encrypting password: %w", err)
	}

	meta := cfg.Metadata
	meta.Encrypted = true
	meta.SetSalt(salt)

	return &configFile{
		Purchase:    cfg.Purchase,
		Recharge:    cfg.Recharge,
		Discord:     cfg.Discord,
		Credentials: encryptedCredentials{UserID: userToken, Password: passToken},
		Metadata:    meta,
	}, nil
}

// openConfig decrypts the document's credentials with the master password.
func openConfig(wf *configFile, password string) (*lotto.Config, error) {
	cfg := settingsOnly(wf)

	if !wf.Metadata.Encrypted {
		// Legacy documents written before encryption carry raw values.
		cfg.Credentials = lotto.Credentials{
			UserID:   wf.Credentials.UserID,
			Password: wf.Credentials.Password,
		}
		return cfg, nil
	}

	salt, err := wf.Metadata.SaltBytes()
	if err != nil {
		return nil, ErrConfigCorrupted
	}

	cipher, err := lottocrypto.NewCipher(password, salt)
	if err != nil {
		return nil, ErrConfigCorrupted
	}
	defer cipher.Close()

	userID, err := cipher.Decrypt(wf.Credentials.UserID)
	if err != nil {
		return nil, mapDecryptErr(err)
	}

	pass, err := cipher.Decrypt(wf.Credentials.Password)
	if err != nil {
		return nil, mapDecryptErr(err)
	}

	cfg.Credentials = lotto.Credentials{UserID: userID, Password: pass}
	return cfg, nil
}

// mapDecryptErr folds malformed tokens into corruption; authentication
// failures pass through as lottocrypto.ErrDecryptionFailed.
func mapDecryptErr(err error) error {
	if errors.Is(err, lottocrypto.ErrInvalidToken) {
		return ErrConfigCorrupted
	}
	return err
}

// settingsOnly lifts the settings sections out of the document, leaving
// the credentials empty.
func settingsOnly(wf *configFile) *lotto.Config {
	return &lotto.Config{
		Purchase: wf.Purchase,
		Recharge: wf.Recharge,
		Discord:  wf.Discord,
		Metadata: wf.Metadata,
	}
}

// parseDocument unmarshals a document and runs the password-free
// integrity checks.
func parseDocument(data []byte) (*configFile, error) {
	var wf configFile
	if err := json.Unmarshal(data, &wf); err != nil {
		return nil, ErrConfigCorrupted
	}
	if err := checkDocument(&wf); err != nil {
		return nil, err
	}
	return &wf, nil
}

// checkDocument verifies structure without the master password: metadata
// must carry a version, and encrypted documents must hold well-formed
// tokens and a usable salt.
func checkDocument(wf *configFile) error {
	if wf.Metadata.Version == "" {
		return ErrConfigCorrupted
	}
	if !wf.Metadata.Encrypted {
		return nil
	}

	if !lottocrypto.ValidTokenShape(wf.Credentials.UserID) ||
		!lottocrypto.ValidTokenShape(wf.Credentials.Password) {
		return ErrConfigCorrupted
	}

	salt, err := wf.Metadata.SaltBytes()
	if err != nil || len(salt) != lottocrypto.SaltSize {
		return ErrConfigCorrupted
	}
	return nil
}

// marshalDocument renders the document for disk.
func marshalDocument(wf *configFile) ([]byte, error) {
	return json.MarshalIndent(wf, "", "  ")
}

// cloneDocument deep-copies a document through the codec.
func cloneDocument(wf *configFile) (*configFile, error) {
	data, err := marshalDocument(wf)
	if err != nil {
		return nil, err
	}
	return parseDocument(data)
}

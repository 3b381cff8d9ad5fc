package archive

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/lottokeeper/lottokeeper/internal/fileutil"
	"github.com/lottokeeper/lottokeeper/internal/lottocrypto"
)

const (
	archiveFilePermissions = 0o600

	fileNameTimeLayout = "20060102_150405"
)

// Seal encrypts a configuration document into a new archive.
// The passphrase should be zeroed by the caller after this call returns.
func Seal(document []byte, passphrase, appVersion string) (*Archive, error) {
	encrypted, err := lottocrypto.EncryptArchive(document, passphrase)
	if err != nil {
		return nil, fmt.Errorf("encrypting archive: %w", err)
	}

	host, _ := os.Hostname()
	return NewArchive(NewManifest(appVersion, host), encrypted), nil
}

// Open validates an archive and decrypts the configuration document.
// The passphrase should be zeroed by the caller after this call returns.
func Open(a *Archive, passphrase string) ([]byte, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	document, err := lottocrypto.DecryptArchive(a.EncryptedData, passphrase)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	return document, nil
}

// Write serializes an archive to the given path.
func Write(path string, a *Archive) error {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing archive: %w", err)
	}

	if err := fileutil.WriteAtomic(path, data, archiveFilePermissions); err != nil {
		return fmt.Errorf("writing archive file: %w", err)
	}

	return nil
}

// Read loads an archive from a file without decrypting it.
func Read(path string) (*Archive, error) {
	// #nosec G304 -- path is from user input
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrArchiveNotFound
		}
		return nil, fmt.Errorf("reading archive file: %w", err)
	}

	var a Archive
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}

	return &a, nil
}

// DefaultFileName builds a timestamped export file name.
func DefaultFileName(at time.Time) string {
	return "lottokeeper_export_" + at.Format(fileNameTimeLayout) + Extension
}

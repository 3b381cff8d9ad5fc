// Package archive packs the configuration document into a portable,
// passphrase-protected file for moving between machines.
package archive

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrArchiveNotFound indicates the archive file was not found.
	ErrArchiveNotFound = errors.New("archive file not found")

	// ErrArchiveCorrupted indicates the archive checksum failed.
	ErrArchiveCorrupted = errors.New("archive corrupted - checksum mismatch")

	// ErrDecryptionFailed indicates archive decryption failed.
	ErrDecryptionFailed = errors.New("archive decryption failed")

	// ErrInvalidFormat indicates the archive format is invalid.
	ErrInvalidFormat = errors.New("invalid archive format")
)

// ArchiveVersion is the current archive format version.
const ArchiveVersion = 1

// Extension is the file extension for exported archives.
const Extension = ".lotto"

// Archive is a complete export of the configuration document. The
// embedded document already carries encrypted credential tokens; the
// whole document is age-encrypted on top with the export passphrase.
type Archive struct {
	// Version is the archive format version.
	Version int `json:"version"`

	// Manifest contains archive metadata.
	Manifest Manifest `json:"manifest"`

	// EncryptedData is the age-encrypted configuration document.
	EncryptedData []byte `json:"encrypted_data"`

	// Checksum is the SHA256 hash of EncryptedData.
	Checksum string `json:"checksum"`
}

// Manifest contains metadata about the archive. It never carries
// settings or credentials.
type Manifest struct {
	// CreatedAt is when the archive was created.
	CreatedAt time.Time `json:"created_at"`

	// AppVersion is the lottokeeper version that wrote the archive.
	AppVersion string `json:"app_version"`

	// EncryptionMethod describes the encryption used.
	EncryptionMethod string `json:"encryption_method"`

	// HostInfo contains optional host information.
	HostInfo string `json:"host_info,omitempty"`
}

// NewManifest creates a new archive manifest.
func NewManifest(appVersion, hostInfo string) Manifest {
	return Manifest{
		CreatedAt:        time.Now().UTC(),
		AppVersion:       appVersion,
		EncryptionMethod: "age",
		HostInfo:         hostInfo,
	}
}

// CalculateChecksum computes the SHA256 checksum of data.
func CalculateChecksum(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// VerifyChecksum verifies that data matches the expected checksum.
func VerifyChecksum(data []byte, expected string) error {
	actual := CalculateChecksum(data)
	if actual != expected {
		return fmt.Errorf("%w: expected %s, got %s", ErrArchiveCorrupted, expected, actual)
	}
	return nil
}

// NewArchive creates a new archive with the given manifest and encrypted data.
func NewArchive(manifest Manifest, encryptedData []byte) *Archive {
	return &Archive{
		Version:       ArchiveVersion,
		Manifest:      manifest,
		EncryptedData: encryptedData,
		Checksum:      CalculateChecksum(encryptedData),
	}
}

// Validate checks the archive for consistency.
func (a *Archive) Validate() error {
	if a.Version != ArchiveVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrInvalidFormat, a.Version)
	}

	if len(a.EncryptedData) == 0 {
		return fmt.Errorf("%w: no encrypted data", ErrInvalidFormat)
	}

	return VerifyChecksum(a.EncryptedData, a.Checksum)
}

// Package errors provides structured error handling for LottoKeeper.
// It defines sentinel errors, exit codes, and helpers for adding
// context, details, and suggestions to errors.
//
//nolint:revive // Package name intentionally shadows stdlib for domain-specific error handling
package errors

import (
	"errors"
	"fmt"
	"sort"
)

// CLI exit codes.
const (
	ExitSuccess    = 0 // Successful execution
	ExitGeneral    = 1 // General/unknown error
	ExitInput      = 2 // Invalid input or validation failure
	ExitAuth       = 3 // Authentication failed
	ExitNotFound   = 4 // Resource not found
	ExitPermission = 5 // Permission denied
)

// KeeperError is the structured error type for LottoKeeper.
type KeeperError struct {
	Code       string            // Machine-readable error code
	Message    string            // Human-readable message
	Details    map[string]string // Additional context
	Suggestion string            // Actionable suggestion for user
	Cause      error             // Underlying error
	ExitCode   int               // Exit code for CLI
}

func (e *KeeperError) Error() string {
	msg := e.Message

	// Include details in error message (sorted for deterministic output)
	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			msg = fmt.Sprintf("%s (%s: %s)", msg, k, e.Details[k])
		}
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *KeeperError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for KeeperError.
func (e *KeeperError) Is(target error) bool {
	var t *KeeperError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Sentinel errors.
var (
	ErrGeneral = &KeeperError{
		Code:     "GENERAL_ERROR",
		Message:  "an error occurred",
		ExitCode: ExitGeneral,
	}

	ErrInvalidInput = &KeeperError{
		Code:     "INVALID_INPUT",
		Message:  "invalid input",
		ExitCode: ExitInput,
	}

	ErrValidation = &KeeperError{
		Code:     "VALIDATION_FAILED",
		Message:  "validation failed",
		ExitCode: ExitInput,
	}

	ErrAuthentication = &KeeperError{
		Code:     "AUTHENTICATION_FAILED",
		Message:  "authentication failed",
		ExitCode: ExitAuth,
	}

	ErrNotFound = &KeeperError{
		Code:     "NOT_FOUND",
		Message:  "resource not found",
		ExitCode: ExitNotFound,
	}

	ErrPermission = &KeeperError{
		Code:     "PERMISSION_DENIED",
		Message:  "permission denied",
		ExitCode: ExitPermission,
	}

	ErrConfirmationRequired = &KeeperError{
		Code:     "CONFIRMATION_REQUIRED",
		Message:  "confirmation required for destructive operation",
		ExitCode: ExitInput,
	}

	// Credential-specific errors.
	ErrDecryptionFailed = &KeeperError{
		Code:     "DECRYPTION_FAILED",
		Message:  "decryption failed - wrong password or corrupted file",
		ExitCode: ExitAuth,
	}

	ErrPassphraseTooShort = &KeeperError{
		Code:     "PASSPHRASE_TOO_SHORT",
		Message:  "master password is too short",
		ExitCode: ExitInput,
	}

	// Config-specific errors.
	ErrConfigNotFound = &KeeperError{
		Code:     "CONFIG_NOT_FOUND",
		Message:  "configuration file not found",
		ExitCode: ExitNotFound,
	}

	ErrConfigExists = &KeeperError{
		Code:     "CONFIG_EXISTS",
		Message:  "configuration file already exists",
		ExitCode: ExitInput,
	}

	ErrConfigCorrupted = &KeeperError{
		Code:     "CONFIG_CORRUPTED",
		Message:  "configuration file is corrupted or has been tampered with",
		ExitCode: ExitInput,
	}

	ErrUnknownConfigKey = &KeeperError{
		Code:     "UNKNOWN_CONFIG_KEY",
		Message:  "unknown config key",
		ExitCode: ExitInput,
	}

	// Purchase validation errors.
	ErrInvalidSchedule = &KeeperError{
		Code:     "INVALID_SCHEDULE",
		Message:  "invalid schedule time - expected HH:MM in 24-hour form",
		ExitCode: ExitInput,
	}

	ErrInvalidGameCount = &KeeperError{
		Code:     "INVALID_GAME_COUNT",
		Message:  "purchase count must be between 1 and 5",
		ExitCode: ExitInput,
	}

	ErrInvalidNumbers = &KeeperError{
		Code:     "INVALID_NUMBERS",
		Message:  "invalid lotto numbers",
		ExitCode: ExitInput,
	}

	ErrInvalidMode = &KeeperError{
		Code:     "INVALID_MODE",
		Message:  "invalid selection mode",
		ExitCode: ExitInput,
	}

	// Recharge validation errors.
	ErrInvalidAmount = &KeeperError{
		Code:     "INVALID_AMOUNT",
		Message:  "invalid recharge amount",
		ExitCode: ExitInput,
	}

	// Notification errors.
	ErrInvalidWebhook = &KeeperError{
		Code:     "INVALID_WEBHOOK",
		Message:  "invalid webhook URL",
		ExitCode: ExitInput,
	}

	ErrNetworkError = &KeeperError{
		Code:     "NETWORK_ERROR",
		Message:  "network communication failed",
		ExitCode: ExitGeneral,
	}

	// Backup-specific errors.
	ErrBackupNotFound = &KeeperError{
		Code:     "BACKUP_NOT_FOUND",
		Message:  "backup file not found",
		ExitCode: ExitNotFound,
	}

	ErrArchiveCorrupted = &KeeperError{
		Code:     "ARCHIVE_CORRUPTED",
		Message:  "archive file is corrupted - checksum mismatch",
		ExitCode: ExitInput,
	}

	ErrInvalidFormat = &KeeperError{
		Code:     "INVALID_FORMAT",
		Message:  "invalid format",
		ExitCode: ExitInput,
	}
)

// New creates a new KeeperError with the given code and message.
func New(code, message string) *KeeperError {
	return &KeeperError{
		Code:     code,
		Message:  message,
		ExitCode: ExitGeneral,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, args...)

	var ke *KeeperError
	if errors.As(err, &ke) {
		return &KeeperError{
			Code:       ke.Code,
			Message:    fmt.Sprintf("%s: %s", msg, ke.Message),
			Details:    ke.Details,
			Suggestion: ke.Suggestion,
			Cause:      err,
			ExitCode:   ke.ExitCode,
		}
	}

	return &KeeperError{
		Code:     "GENERAL_ERROR",
		Message:  msg,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithDetails adds details to an error.
func WithDetails(err error, details map[string]string) error {
	if err == nil {
		return nil
	}

	var ke *KeeperError
	if errors.As(err, &ke) {
		return &KeeperError{
			Code:       ke.Code,
			Message:    ke.Message,
			Details:    details,
			Suggestion: ke.Suggestion,
			Cause:      ke.Cause,
			ExitCode:   ke.ExitCode,
		}
	}

	return &KeeperError{
		Code:     "GENERAL_ERROR",
		Message:  err.Error(),
		Details:  details,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithSuggestion adds a suggestion to an error.
func WithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}

	var ke *KeeperError
	if errors.As(err, &ke) {
		return &KeeperError{
			Code:       ke.Code,
			Message:    ke.Message,
			Details:    ke.Details,
			Suggestion: suggestion,
			Cause:      ke.Cause,
			ExitCode:   ke.ExitCode,
		}
	}

	return &KeeperError{
		Code:       "GENERAL_ERROR",
		Message:    err.Error(),
		Suggestion: suggestion,
		Cause:      err,
		ExitCode:   ExitGeneral,
	}
}

// ExitCode returns the appropriate exit code for an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var ke *KeeperError
	if errors.As(err, &ke) {
		return ke.ExitCode
	}

	return ExitGeneral
}

// Code returns the error code for an error.
func Code(err error) string {
	var ke *KeeperError
	if errors.As(err, &ke) {
		return ke.Code
	}
	return "GENERAL_ERROR"
}

// Is wraps errors.Is for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience.
func As(err error, target any) bool {
	return errors.As(err, target)
}

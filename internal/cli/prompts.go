package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"
	"unicode/utf8"

	"golang.org/x/term"

	"github.com/lottokeeper/lottokeeper/internal/lottocrypto"
	"github.com/lottokeeper/lottokeeper/internal/service"
	keepererr "github.com/lottokeeper/lottokeeper/pkg/errors"
)

// Prompt indirection points. Tests swap these to stub interactive input.
//
//nolint:gochecknoglobals // Swapped in tests to stub interactive prompts
var (
	promptPasswordFn      = promptPassword
	promptNewPassphraseFn = promptNewPassphrase
	promptLineFn          = promptLine
	promptConfirmFn       = promptConfirmation
)

// promptPassword prompts for a password with hidden input.
// The caller is responsible for zeroing the returned bytes after use.
func promptPassword(prompt string) ([]byte, error) {
	out(os.Stderr, "%s", prompt)

	password, err := term.ReadPassword(syscall.Stdin)
	outln(os.Stderr) // Add newline after hidden input

	if err != nil {
		return nil, fmt.Errorf("reading password: %w", err)
	}

	return password, nil
}

// promptNewPassphrase prompts for a new master password with confirmation.
// The caller is responsible for zeroing the returned bytes after use.
func promptNewPassphrase() ([]byte, error) {
	passphrase, err := promptPassword("Enter master password: ")
	if err != nil {
		return nil, err
	}

	if utf8.RuneCount(passphrase) < service.MinPassphraseLength {
		lottocrypto.ZeroBytes(passphrase)
		return nil, keepererr.WithDetails(
			keepererr.ErrPassphraseTooShort,
			map[string]string{"minimum": fmt.Sprintf("%d", service.MinPassphraseLength)},
		)
	}

	confirm, err := promptPassword("Confirm master password: ")
	if err != nil {
		lottocrypto.ZeroBytes(passphrase)
		return nil, err
	}
	defer lottocrypto.ZeroBytes(confirm)

	if string(passphrase) != string(confirm) {
		lottocrypto.ZeroBytes(passphrase)
		return nil, keepererr.WithSuggestion(
			keepererr.ErrInvalidInput,
			"passwords do not match",
		)
	}

	return passphrase, nil
}

// promptLine reads one line of visible input from stdin.
func promptLine(label string) (string, error) {
	out(os.Stderr, "%s", label)

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading input: %w", err)
	}

	return strings.TrimSpace(line), nil
}

// promptConfirmation asks the user a yes/no question, defaulting to no.
func promptConfirmation(question string) bool {
	out(os.Stderr, "%s [y/N]: ", question)

	var response string
	_, err := fmt.Scanln(&response)
	if err != nil {
		return false
	}

	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}

// readPassphrase collects the master password as a string and zeroes the
// intermediate buffer. The string copy is handed to the use case layer and
// never logged.
func readPassphrase(prompt string) (string, error) {
	raw, err := promptPasswordFn(prompt)
	if err != nil {
		return "", err
	}
	passphrase := string(raw)
	lottocrypto.ZeroBytes(raw)
	return passphrase, nil
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/lottokeeper/lottokeeper/internal/output"
)

// validatePasswordCmd checks the master password against the stored
// credentials.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var validatePasswordCmd = &cobra.Command{
	Use:   "validate-password",
	Short: "Check the master password",
	Long: `Check whether the master password decrypts the stored credentials.

Nothing is printed about the credentials themselves; the command only
reports whether the password is correct.

Example:
  lottokeeper validate-password`,
	Args: cobra.NoArgs,
	RunE: runValidatePassword,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(validatePasswordCmd)
}

func runValidatePassword(cmd *cobra.Command, _ []string) error {
	uc := newUseCases()

	passphrase, err := readPassphrase("Master password: ")
	if err != nil {
		return err
	}

	if err := uc.ValidatePassphrase(passphrase); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if formatter.Format() == output.FormatJSON {
		return writeJSON(w, struct {
			Status string `json:"status"`
		}{Status: "valid"})
	}

	outln(w, "Master password is valid.")

	return nil
}

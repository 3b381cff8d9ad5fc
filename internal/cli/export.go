package cli

import (
	"github.com/spf13/cobra"

	"github.com/lottokeeper/lottokeeper/internal/output"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	// exportOutput is the destination path for the export archive.
	exportOutput string
	// importInput is the archive path to import.
	importInput string
	// importForce skips the confirmation prompt before replacing an
	// existing configuration.
	importForce bool
)

// exportCmd writes the configuration into a portable archive.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the configuration to an archive",
	Long: `Write the configuration into a portable archive file.

The master password is prompted and must open the current configuration.
The archive is sealed with the same password, so moving it to another
machine only needs the file and the password.

Example:
  lottokeeper export
  lottokeeper export --output lotto_config.lotto`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

// importCmd installs the configuration from an export archive.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import the configuration from an archive",
	Long: `Install the configuration from an export archive.

The archive's master password is prompted. If a configuration already
exists you are asked to confirm, a safety backup is taken, and only
then is it replaced.

Example:
  lottokeeper import --input lotto_config.lotto`,
	Args: cobra.NoArgs,
	RunE: runImport,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)

	exportCmd.Flags().StringVar(&exportOutput, "output", "", "archive path (default: timestamped name in the working directory)")

	importCmd.Flags().StringVar(&importInput, "input", "", "archive path (required)")
	importCmd.Flags().BoolVar(&importForce, "force", false, "replace the current configuration without confirmation")
	_ = importCmd.MarkFlagRequired("input")
}

func runExport(cmd *cobra.Command, _ []string) error {
	uc := newUseCases()

	passphrase, err := readPassphrase("Master password: ")
	if err != nil {
		return err
	}

	result, err := uc.Export(exportOutput, passphrase)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if formatter.Format() == output.FormatJSON {
		return writeJSON(w, result)
	}

	outln(w, "Export written.")
	outln(w)
	out(w, "  File:       %s\n", result.Path)
	out(w, "  Created:    %s\n", result.Manifest.CreatedAt.Format("2006-01-02 15:04:05"))
	out(w, "  Encryption: %s\n", result.Manifest.EncryptionMethod)
	outln(w)
	outln(w, "Importing the archive needs the same master password.")

	return nil
}

func runImport(cmd *cobra.Command, _ []string) error {
	uc := newUseCases()

	force := importForce
	if !force {
		exists, err := uc.Exists()
		if err != nil {
			return err
		}
		if exists {
			force = promptConfirmFn("Overwrite the current configuration with the archive?")
		}
	}

	passphrase, err := readPassphrase("Archive master password: ")
	if err != nil {
		return err
	}

	if err := uc.Import(importInput, passphrase, force); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if formatter.Format() == output.FormatJSON {
		return writeJSON(w, struct {
			Status string `json:"status"`
			Path   string `json:"path"`
		}{Status: "imported", Path: importInput})
	}

	out(w, "Configuration imported from %s\n", importInput)
	outln(w, "Check it with: lottokeeper status")

	return nil
}

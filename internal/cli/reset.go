package cli

import (
	"github.com/spf13/cobra"

	"github.com/lottokeeper/lottokeeper/internal/output"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	// resetForce skips the confirmation prompt before deleting.
	resetForce bool
)

// resetCmd deletes the configuration after taking a safety backup.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the configuration",
	Long: `Delete the encrypted configuration file.

A safety backup is taken first, so a reset can be undone with
'lottokeeper backup restore' as long as the master password is known.
You are asked to confirm unless --force is given.

Example:
  lottokeeper reset
  lottokeeper reset --force`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().BoolVar(&resetForce, "force", false, "delete without confirmation")
}

func runReset(cmd *cobra.Command, _ []string) error {
	uc := newUseCases()

	force := resetForce
	if !force {
		exists, err := uc.Exists()
		if err != nil {
			return err
		}
		if exists {
			force = promptConfirmFn("Delete the configuration? A safety backup is kept first.")
		}
	}

	record, err := uc.Reset(force)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if formatter.Format() == output.FormatJSON {
		return writeJSON(w, struct {
			Status     string `json:"status"`
			BackupFile string `json:"backup_file"`
		}{Status: "reset", BackupFile: record.FileName})
	}

	outln(w, "Configuration deleted.")
	out(w, "Safety backup kept: %s\n", record.FileName)
	outln(w, "Restore it with: lottokeeper backup restore --input "+record.FileName)

	return nil
}

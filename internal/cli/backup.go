package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lottokeeper/lottokeeper/internal/output"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	// backupLabel is an optional label woven into the backup file name.
	backupLabel string
	// backupInput is the backup file name for restore/verify.
	backupInput string
	// backupDeep enables the decryption check during verify.
	backupDeep bool
	// backupForce skips the confirmation prompt before restoring over an
	// existing configuration.
	backupForce bool
)

// backupCmd creates a backup and is the parent for backup subcommands.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage configuration backups",
	Long: `Create a timestamped copy of the encrypted configuration.

Backups keep the credentials sealed, so no master password is needed to
create one. Use the subcommands to list, verify, and restore backups.

Example:
  lottokeeper backup
  lottokeeper backup --name before_vacation
  lottokeeper backup list`,
	Args: cobra.NoArgs,
	RunE: runBackupCreate,
}

// backupListCmd lists available backups.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available backups",
	Long: `List all backup files in the backups directory, newest first.

Example:
  lottokeeper backup list`,
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	RunE:    runBackupList,
}

// backupVerifyCmd verifies a backup.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var backupVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify a backup file",
	Long: `Verify the structure of a backup file.

With --deep the master password is prompted and the sealed credentials
are test-decrypted as well.

Example:
  lottokeeper backup verify --input lotto_config_20250115_143000.json
  lottokeeper backup verify --input lotto_config_20250115_143000.json --deep`,
	Args: cobra.NoArgs,
	RunE: runBackupVerify,
}

// backupRestoreCmd restores the configuration from a backup.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var backupRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore the configuration from a backup",
	Long: `Replace the current configuration with a backup file.

If a configuration already exists you are asked to confirm, or pass
--force to overwrite without the prompt.

Example:
  lottokeeper backup restore --input lotto_config_20250115_143000.json`,
	Args: cobra.NoArgs,
	RunE: runBackupRestore,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupVerifyCmd)
	backupCmd.AddCommand(backupRestoreCmd)

	backupCmd.Flags().StringVar(&backupLabel, "name", "", "label for the backup file (optional)")

	backupVerifyCmd.Flags().StringVar(&backupInput, "input", "", "backup file name (required)")
	backupVerifyCmd.Flags().BoolVar(&backupDeep, "deep", false, "also test-decrypt the credentials")
	_ = backupVerifyCmd.MarkFlagRequired("input")

	backupRestoreCmd.Flags().StringVar(&backupInput, "input", "", "backup file name (required)")
	backupRestoreCmd.Flags().BoolVar(&backupForce, "force", false, "overwrite the current configuration without confirmation")
	_ = backupRestoreCmd.MarkFlagRequired("input")
}

func runBackupCreate(cmd *cobra.Command, _ []string) error {
	uc := newUseCases()

	record, err := uc.Backup(backupLabel)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if formatter.Format() == output.FormatJSON {
		return writeJSON(w, record)
	}

	outln(w, "Backup created.")
	outln(w)
	out(w, "  File:    %s\n", record.FileName)
	out(w, "  Path:    %s\n", record.Path)
	if record.Label != "" {
		out(w, "  Label:   %s\n", record.Label)
	}
	out(w, "  Created: %s\n", record.CreatedAt.Format("2006-01-02 15:04:05"))
	outln(w)
	outln(w, "The credentials inside stay sealed with the master password.")

	return nil
}

func runBackupList(cmd *cobra.Command, _ []string) error {
	uc := newUseCases()

	records, err := uc.ListBackups()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if formatter.Format() == output.FormatJSON {
		return writeJSON(w, records)
	}

	if len(records) == 0 {
		outln(w, "No backups found.")
		outln(w, "Create one with: lottokeeper backup")
		return nil
	}

	table := output.NewTable("FILE", "LABEL", "CREATED", "SIZE")
	for _, record := range records {
		label := record.Label
		if label == "" {
			label = "-"
		}
		table.AddRow(
			record.FileName,
			label,
			record.CreatedAt.Format("2006-01-02 15:04:05"),
			strconv.FormatInt(record.Size, 10),
		)
	}
	if err := table.Render(w); err != nil {
		return fmt.Errorf("rendering backup list: %w", err)
	}

	outln(w)
	out(w, "Backup directory: %s\n", openStore().BackupDir())

	return nil
}

func runBackupVerify(cmd *cobra.Command, _ []string) error {
	uc := newUseCases()

	if err := uc.VerifyBackup(backupInput); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	deepChecked := false
	if backupDeep {
		passphrase, err := readPassphrase("Master password: ")
		if err != nil {
			return err
		}
		if err := uc.VerifyBackupDeep(backupInput, passphrase); err != nil {
			return err
		}
		deepChecked = true
	}

	if formatter.Format() == output.FormatJSON {
		return writeJSON(w, struct {
			Status string `json:"status"`
			File   string `json:"file"`
			Deep   bool   `json:"deep"`
		}{Status: "valid", File: backupInput, Deep: deepChecked})
	}

	outln(w, "Backup structure verified.")
	if deepChecked {
		outln(w, "Credentials decrypt with the given master password.")
	}

	return nil
}

func runBackupRestore(cmd *cobra.Command, _ []string) error {
	uc := newUseCases()

	force := backupForce
	if !force {
		exists, err := uc.Exists()
		if err != nil {
			return err
		}
		if exists {
			force = promptConfirmFn("Overwrite the current configuration with this backup?")
		}
	}

	if err := uc.RestoreBackup(backupInput, force); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if formatter.Format() == output.FormatJSON {
		return writeJSON(w, struct {
			Status string `json:"status"`
			File   string `json:"file"`
		}{Status: "restored", File: backupInput})
	}

	out(w, "Configuration restored from %s\n", backupInput)
	outln(w, "Check it with: lottokeeper status")

	return nil
}

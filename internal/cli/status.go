package cli

import (
	"context"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lottokeeper/lottokeeper/internal/fileutil"
	"github.com/lottokeeper/lottokeeper/internal/output"
	"github.com/lottokeeper/lottokeeper/internal/usecase"
	"github.com/lottokeeper/lottokeeper/internal/watch"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	// statusWatch keeps the command running and re-reports on file changes.
	statusWatch bool
)

// statusCmd reports configuration health without needing the master password.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report configuration health",
	Long: `Inspect the configuration file and report its health: existence,
integrity, encryption markers, file permissions, and backup count.

No master password is needed; nothing is decrypted.

With --watch the command keeps running and re-reports whenever the
configuration file changes on disk. Stop it with Ctrl-C.

Example:
  lottokeeper status
  lottokeeper status --watch`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, _ []string) error {
	uc := newUseCases()

	report, err := uc.Status()
	if err != nil {
		return err
	}

	if err := renderStatus(cmd, report); err != nil {
		return err
	}

	if !statusWatch {
		return nil
	}
	return watchStatus(cmd, uc)
}

// watchStatus re-renders the status report whenever the configuration file
// changes. It returns when the context is canceled or an interrupt arrives.
func watchStatus(cmd *cobra.Command, uc *usecase.UseCases) error {
	path := cfg.StorePath()

	// The watcher registers the parent directory, which must exist even
	// when the configuration file itself does not yet.
	if err := fileutil.EnsureDir(filepath.Dir(path), 0o750); err != nil {
		return err
	}

	watcher, err := watch.New(&watch.Config{
		Path:   path,
		Logger: logger,
	})
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	base := cmd.Context()
	if base == nil {
		base = context.Background()
	}
	ctx, stop := signal.NotifyContext(base, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := watcher.Start(ctx); err != nil {
		return err
	}

	outln(cmd.ErrOrStderr(), "Watching for changes. Press Ctrl-C to stop.")

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events():
			if !ok {
				return nil
			}
			logger.Debug("configuration changed: %s %s", event.Op, event.Path)

			report, reportErr := uc.Status()
			if reportErr != nil {
				return reportErr
			}
			out(cmd.OutOrStdout(), "\n--- %s ---\n", event.At.Format("15:04:05"))
			if renderErr := renderStatus(cmd, report); renderErr != nil {
				return renderErr
			}
		case watchErr, ok := <-watcher.Errors():
			if !ok {
				return nil
			}
			logger.Error("watch error: %v", watchErr)
			out(cmd.ErrOrStderr(), "Warning: watch error: %v\n", watchErr)
		}
	}
}

// renderStatus writes the report in the active output format.
func renderStatus(cmd *cobra.Command, report *usecase.StatusReport) error {
	w := cmd.OutOrStdout()

	if formatter.Format() == output.FormatJSON {
		return writeJSON(w, report)
	}

	if !report.Exists {
		outln(w, "No configuration found.")
		outln(w)
		outln(w, "Create one with 'lottokeeper init'.")
		return nil
	}

	outln(w, "Configuration Status")
	outln(w)
	out(w, "  Status:    %s\n", report.Status)
	if report.Path != "" {
		out(w, "  Path:      %s\n", report.Path)
	}
	if report.Size > 0 {
		out(w, "  Size:      %d bytes\n", report.Size)
	}
	if report.Mode != "" {
		out(w, "  Mode:      %s\n", report.Mode)
	}
	out(w, "  Encrypted: %t\n", report.Encrypted)
	saltState := "missing"
	if report.SaltPresent {
		saltState = "present"
	}
	out(w, "  Salt:      %s\n", saltState)
	if report.Version != "" {
		out(w, "  Version:   %s\n", report.Version)
	}
	if !report.CreatedAt.IsZero() {
		out(w, "  Created:   %s\n", report.CreatedAt.Format(time.RFC3339))
	}
	out(w, "  Backups:   %d\n", report.BackupCount)

	if report.ModeWarning {
		outln(w)
		out(w, "  Warning: file mode %s is wider than 0600\n", report.Mode)
	}
	if report.Problem != "" {
		outln(w)
		out(w, "  Problem: %s\n", report.Problem)
		outln(w)
		outln(w, "  Restore a backup with 'lottokeeper backup restore --input <name>'.")
	}

	return nil
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	statusCmd.Flags().BoolVar(&statusWatch, "watch", false, "keep running and re-report on file changes")

	rootCmd.AddCommand(statusCmd)
}

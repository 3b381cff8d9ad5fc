package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/lottokeeper/lottokeeper/internal/output"
	"github.com/lottokeeper/lottokeeper/internal/version"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	// versionCheck also queries GitHub for the latest release.
	versionCheck bool
)

// versionCmd prints build information.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `Show the lottokeeper version and build details.

With --check the latest GitHub release is looked up and compared
against the running build.

Example:
  lottokeeper version
  lottokeeper version --check`,
	Args: cobra.NoArgs,
	RunE: runVersion,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVar(&versionCheck, "check", false, "check GitHub for a newer release")
}

func runVersion(cmd *cobra.Command, _ []string) error {
	details := struct {
		Version         string `json:"version"`
		Commit          string `json:"commit,omitempty"`
		Date            string `json:"date,omitempty"`
		GoVersion       string `json:"go_version"`
		OS              string `json:"os"`
		Arch            string `json:"arch"`
		Latest          string `json:"latest,omitempty"`
		UpdateAvailable bool   `json:"update_available,omitempty"`
	}{
		Version:   version.Version,
		Commit:    version.Commit,
		Date:      version.Date,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}

	var info *version.Info
	if versionCheck {
		ctx, cancel := contextWithTimeout(cmd, version.DefaultTimeout)
		defer cancel()

		checked, err := version.CheckForUpdate(ctx)
		if err != nil {
			return fmt.Errorf("checking for updates: %w", err)
		}
		info = checked
		details.Latest = info.Latest
		details.UpdateAvailable = info.IsNewer
	}

	w := cmd.OutOrStdout()
	if formatter.Format() == output.FormatJSON {
		return writeJSON(w, details)
	}

	out(w, "lottokeeper %s\n", version.String())
	out(w, "  go:       %s\n", runtime.Version())
	out(w, "  platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)

	if info == nil {
		return nil
	}

	outln(w)
	if version.IsDevBuild(version.Version) {
		output.Warnf("Current version appears to be a development build (%s)", version.Version)
	}
	if info.IsNewer {
		output.Warnf("A newer version is available: %s -> %s", info.Current, info.Latest)
		output.Info("Download it from https://github.com/lottokeeper/lottokeeper/releases")
	} else {
		output.Successf("You are on the latest version (%s)", info.Current)
	}

	return nil
}

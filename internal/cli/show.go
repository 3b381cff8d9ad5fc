package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lottokeeper/lottokeeper/internal/output"
	"github.com/lottokeeper/lottokeeper/internal/usecase"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	// showReveal displays the full user id instead of the masked form.
	showReveal bool
)

// showCmd displays the decrypted configuration.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the decrypted configuration",
	Long: `Decrypt and display the purchase configuration.

The master password is prompted. The user id is masked unless --reveal
is given; the site password is never displayed.

Example:
  lottokeeper show
  lottokeeper show --reveal`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

func runShow(cmd *cobra.Command, _ []string) error {
	passphrase, err := readPassphrase("Master password: ")
	if err != nil {
		return err
	}

	uc := newUseCases()
	dashboard, err := uc.DashboardData(passphrase, showReveal)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if formatter.Format() == output.FormatJSON {
		return writeJSON(w, dashboard)
	}

	displayDashboard(w, dashboard)
	return nil
}

// displayDashboard renders the decrypted configuration as text.
func displayDashboard(w interface {
	Write(p []byte) (n int, err error)
}, d *usecase.Dashboard,
) {
	outln(w, "Lotto Keeper Configuration")
	outln(w)
	out(w, "  User ID: %s\n", d.UserID)
	outln(w)
	outln(w, "  Purchase:")
	out(w, "    schedule_time: %s\n", d.Purchase.ScheduleTime)
	out(w, "    count:         %d\n", d.Purchase.Count)
	for i, game := range d.Purchase.Games {
		if len(game.Numbers) > 0 {
			numbers := make([]string, 0, len(game.Numbers))
			for _, n := range game.Numbers {
				numbers = append(numbers, strconv.Itoa(n))
			}
			out(w, "    game %d:        %s (%s)\n", i+1, game.Mode, strings.Join(numbers, ", "))
		} else {
			out(w, "    game %d:        %s\n", i+1, game.Mode)
		}
	}
	outln(w)
	outln(w, "  Recharge:")
	out(w, "    auto_recharge:   %t\n", d.Recharge.AutoRecharge)
	out(w, "    minimum_balance: %d\n", d.Recharge.MinimumBalance)
	out(w, "    recharge_amount: %d\n", d.Recharge.RechargeAmount)
	outln(w)
	outln(w, "  Discord:")
	webhook := d.Discord.WebhookURL
	if webhook == "" {
		webhook = "(not configured)"
	}
	out(w, "    webhook_url:          %s\n", webhook)
	out(w, "    enable_notifications: %t\n", d.Discord.EnableNotifications)
	outln(w)
	outln(w, "  Metadata:")
	out(w, "    version:    %s\n", d.Metadata.Version)
	out(w, "    created_at: %s\n", d.Metadata.CreatedAt.Format("2006-01-02 15:04:05"))
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	showCmd.Flags().BoolVar(&showReveal, "reveal", false, "display the full user id instead of the masked form")

	rootCmd.AddCommand(showCmd)
}

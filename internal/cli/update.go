package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/lottokeeper/lottokeeper/internal/lotto"
	"github.com/lottokeeper/lottokeeper/internal/notify"
	"github.com/lottokeeper/lottokeeper/internal/output"
	"github.com/lottokeeper/lottokeeper/internal/service"
	"github.com/lottokeeper/lottokeeper/internal/usecase"
	"github.com/lottokeeper/lottokeeper/internal/version"
	keepererr "github.com/lottokeeper/lottokeeper/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	// purchaseScheduleTime is the new daily purchase time.
	purchaseScheduleTime string
	// purchaseCount is the new number of games per run.
	purchaseCount int
	// purchaseGames holds replacement game specs.
	purchaseGames []string

	// rechargeAuto toggles automatic recharging.
	rechargeAuto bool
	// rechargeMinimumBalance is the new balance threshold.
	rechargeMinimumBalance int
	// rechargeAmount is the new top-up amount.
	rechargeAmount int

	// notifyWebhookURL is the new Discord webhook URL.
	notifyWebhookURL string
	// notifyEnable turns notifications on.
	notifyEnable bool
	// notifyDisable turns notifications off.
	notifyDisable bool
	// notifyTest sends a test notification after applying changes.
	notifyTest bool
)

// updatePurchaseCmd changes purchase settings without the master password.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var updatePurchaseCmd = &cobra.Command{
	Use:   "update-purchase",
	Short: "Update purchase schedule and games",
	Long: `Update the purchase schedule, game count, or game list.

Settings are stored outside the encrypted credential envelope, so no
master password is needed. Passing --game replaces the whole game list;
when --count is larger than the list, automatic entries fill the gap.

Example:
  lottokeeper update-purchase --schedule-time 20:30
  lottokeeper update-purchase --count 3
  lottokeeper update-purchase --game manual:1,9,23,28,36,41 --game auto`,
	Args: cobra.NoArgs,
	RunE: runUpdatePurchase,
}

// updateRechargeCmd changes auto-recharge settings.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var updateRechargeCmd = &cobra.Command{
	Use:   "update-recharge",
	Short: "Update balance auto-recharge settings",
	Long: `Update the automatic balance recharge rules.

When auto-recharge is on, the recharge amount must be at least 1,000,
a multiple of 1,000, and larger than the minimum balance threshold.

Example:
  lottokeeper update-recharge --auto --minimum-balance 10000 --amount 50000
  lottokeeper update-recharge --auto=false`,
	Args: cobra.NoArgs,
	RunE: runUpdateRecharge,
}

// updateNotifyCmd changes Discord notification settings.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var updateNotifyCmd = &cobra.Command{
	Use:   "update-notify",
	Short: "Update Discord notification settings",
	Long: `Update the Discord webhook settings and optionally send a test
notification.

Enabling notifications requires a well-formed http(s) webhook URL.

Example:
  lottokeeper update-notify --webhook-url https://discord.com/api/webhooks/... --enable
  lottokeeper update-notify --disable
  lottokeeper update-notify --test`,
	Args: cobra.NoArgs,
	RunE: runUpdateNotify,
}

func runUpdatePurchase(cmd *cobra.Command, _ []string) error {
	patch := usecase.PurchasePatch{}
	flags := cmd.Flags()

	if flags.Changed("schedule-time") {
		patch.ScheduleTime = &purchaseScheduleTime
	}
	if flags.Changed("count") {
		patch.Count = &purchaseCount
	}
	if len(purchaseGames) > 0 {
		games := make([]lotto.Game, 0, len(purchaseGames))
		for _, spec := range purchaseGames {
			game, err := service.ParseGameSpec(spec)
			if err != nil {
				return err
			}
			games = append(games, game)
		}
		patch.Games = games
	}

	if patch.ScheduleTime == nil && patch.Count == nil && patch.Games == nil {
		return keepererr.WithSuggestion(
			keepererr.ErrInvalidInput,
			"nothing to update: pass --schedule-time, --count, or --game",
		)
	}

	uc := newUseCases()
	if err := uc.UpdatePurchase(patch); err != nil {
		return err
	}

	return reportUpdated(cmd, "purchase")
}

func runUpdateRecharge(cmd *cobra.Command, _ []string) error {
	patch := usecase.RechargePatch{}
	flags := cmd.Flags()

	if flags.Changed("auto") {
		patch.AutoRecharge = &rechargeAuto
	}
	if flags.Changed("minimum-balance") {
		patch.MinimumBalance = &rechargeMinimumBalance
	}
	if flags.Changed("amount") {
		patch.RechargeAmount = &rechargeAmount
	}

	if patch.AutoRecharge == nil && patch.MinimumBalance == nil && patch.RechargeAmount == nil {
		return keepererr.WithSuggestion(
			keepererr.ErrInvalidInput,
			"nothing to update: pass --auto, --minimum-balance, or --amount",
		)
	}

	uc := newUseCases()
	if err := uc.UpdateRecharge(patch); err != nil {
		return err
	}

	return reportUpdated(cmd, "recharge")
}

func runUpdateNotify(cmd *cobra.Command, _ []string) error {
	if notifyEnable && notifyDisable {
		return keepererr.WithSuggestion(
			keepererr.ErrInvalidInput,
			"--enable and --disable are mutually exclusive",
		)
	}

	patch := usecase.NotifyPatch{}
	if cmd.Flags().Changed("webhook-url") {
		patch.WebhookURL = &notifyWebhookURL
	}
	enabled := true
	disabled := false
	if notifyEnable {
		patch.Enable = &enabled
	}
	if notifyDisable {
		patch.Enable = &disabled
	}

	uc := newUseCases()

	changed := patch.WebhookURL != nil || patch.Enable != nil
	if changed {
		if err := uc.UpdateNotifications(patch); err != nil {
			return err
		}
	} else if !notifyTest {
		return keepererr.WithSuggestion(
			keepererr.ErrInvalidInput,
			"nothing to update: pass --webhook-url, --enable, --disable, or --test",
		)
	}

	if notifyTest {
		if err := sendTestNotification(cmd, uc); err != nil {
			return err
		}
		outln(cmd.ErrOrStderr(), "Test notification delivered.")
	}

	if !changed {
		return nil
	}
	return reportUpdated(cmd, "notify")
}

// sendTestNotification posts a webhook test using the stored settings.
func sendTestNotification(cmd *cobra.Command, uc *usecase.UseCases) error {
	settings, err := uc.NotificationSettings()
	if err != nil {
		return err
	}

	timeout := time.Duration(cfg.Notify.TimeoutSeconds) * time.Second
	notifier := notify.FromSettings(settings, notify.WithTimeout(timeout))

	ctx, cancel := contextWithTimeout(cmd, timeout)
	defer cancel()

	if err := notifier.SendTest(ctx, version.Version); err != nil {
		if errors.Is(err, notify.ErrDisabled) {
			return keepererr.WithSuggestion(
				keepererr.ErrInvalidInput,
				"notifications are disabled or no webhook URL is set; configure one with --webhook-url and --enable",
			)
		}
		return keepererr.Wrap(keepererr.ErrNetworkError, "sending test notification: %v", err)
	}

	return nil
}

// reportUpdated prints the post-update acknowledgment for a settings section.
func reportUpdated(cmd *cobra.Command, section string) error {
	w := cmd.OutOrStdout()
	if formatter.Format() == output.FormatJSON {
		return writeJSON(w, map[string]string{
			"status":  "updated",
			"section": section,
		})
	}

	switch section {
	case "purchase":
		outln(w, "Purchase settings updated.")
	case "recharge":
		outln(w, "Recharge settings updated.")
	default:
		outln(w, "Notification settings updated.")
	}
	outln(w, "Review the stored configuration with 'lottokeeper show'.")

	return nil
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	updatePurchaseCmd.Flags().StringVar(&purchaseScheduleTime, "schedule-time", "", "daily purchase time, HH:MM 24-hour")
	updatePurchaseCmd.Flags().IntVar(&purchaseCount, "count", 0, "games per purchase run, 1-5")
	updatePurchaseCmd.Flags().StringArrayVar(&purchaseGames, "game", nil, "game spec: mode[:numbers], repeatable; replaces the stored list")

	updateRechargeCmd.Flags().BoolVar(&rechargeAuto, "auto", false, "enable or disable automatic recharge (--auto=false to disable)")
	updateRechargeCmd.Flags().IntVar(&rechargeMinimumBalance, "minimum-balance", 0, "recharge when the balance drops below this amount")
	updateRechargeCmd.Flags().IntVar(&rechargeAmount, "amount", 0, "top-up amount, a multiple of 1000")

	updateNotifyCmd.Flags().StringVar(&notifyWebhookURL, "webhook-url", "", "Discord webhook URL")
	updateNotifyCmd.Flags().BoolVar(&notifyEnable, "enable", false, "enable notifications")
	updateNotifyCmd.Flags().BoolVar(&notifyDisable, "disable", false, "disable notifications")
	updateNotifyCmd.Flags().BoolVar(&notifyTest, "test", false, "send a test notification using the stored settings")

	rootCmd.AddCommand(updatePurchaseCmd)
	rootCmd.AddCommand(updateRechargeCmd)
	rootCmd.AddCommand(updateNotifyCmd)
}

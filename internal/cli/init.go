package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lottokeeper/lottokeeper/internal/lotto"
	"github.com/lottokeeper/lottokeeper/internal/lottocrypto"
	"github.com/lottokeeper/lottokeeper/internal/output"
	"github.com/lottokeeper/lottokeeper/internal/service"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	// initUserID is the lottery site user id.
	initUserID string
	// initScheduleTime is the daily purchase time in HH:MM.
	initScheduleTime string
	// initCount is the number of games per purchase run.
	initCount int
	// initGames holds repeatable game specs like "auto" or "manual:1,9,23,28,36,41".
	initGames []string
	// initGeneratePassphrase generates a word-based master password instead of prompting.
	initGeneratePassphrase bool
	// initPassphraseWords is the word count for a generated master password.
	initPassphraseWords int
)

// initCmd creates the encrypted purchase configuration.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the encrypted purchase configuration",
	Long: `Create the initial purchase configuration and seal the lottery site
credentials with a master password.

The site password and the master password are prompted with hidden input.
The master password is never stored anywhere: losing it means losing
access to the stored credentials.

Example:
  lottokeeper init
  lottokeeper init --user-id lottouser --schedule-time 14:30
  lottokeeper init --purchase-count 3 --game auto --game manual:1,9,23,28,36,41
  lottokeeper init --generate-passphrase`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, _ []string) error {
	uc := newUseCases()

	userID := strings.TrimSpace(initUserID)
	if userID == "" {
		var err error
		userID, err = promptLineFn("Lottery site user id: ")
		if err != nil {
			return err
		}
	}

	sitePassword, err := promptPasswordFn("Lottery site password: ")
	if err != nil {
		return err
	}
	defer lottocrypto.ZeroBytes(sitePassword)

	passphrase, err := obtainNewPassphrase()
	if err != nil {
		return err
	}

	games := make([]lotto.Game, 0, len(initGames))
	for _, spec := range initGames {
		game, parseErr := service.ParseGameSpec(spec)
		if parseErr != nil {
			return parseErr
		}
		games = append(games, game)
	}

	created, err := uc.SetupInitial(service.SetupInput{
		UserID:       userID,
		Password:     string(sitePassword),
		ScheduleTime: initScheduleTime,
		Count:        initCount,
		Games:        games,
	}, passphrase)
	if err != nil {
		return err
	}

	logger.Debug("configuration initialized at %s", cfg.StorePath())

	w := cmd.OutOrStdout()
	if formatter.Format() == output.FormatJSON {
		return writeJSON(w, map[string]any{
			"status":        "created",
			"path":          cfg.StorePath(),
			"user_id":       created.Credentials.MaskedUserID(),
			"schedule_time": created.Purchase.ScheduleTime,
			"count":         created.Purchase.Count,
		})
	}

	out(w, "Configuration created at %s\n", cfg.StorePath())
	outln(w)
	out(w, "  User ID:  %s\n", created.Credentials.MaskedUserID())
	out(w, "  Schedule: %s daily, %d game(s)\n", created.Purchase.ScheduleTime, created.Purchase.Count)
	outln(w)
	outln(w, "Adjust settings later with the update-purchase, update-recharge,")
	outln(w, "and update-notify commands.")

	return nil
}

// obtainNewPassphrase either generates a word-based master password and
// shows it once, or prompts for one with confirmation.
func obtainNewPassphrase() (string, error) {
	if initGeneratePassphrase {
		generated, err := lottocrypto.GeneratePassphrase(initPassphraseWords)
		if err != nil {
			return "", fmt.Errorf("generating master password: %w", err)
		}

		outln(os.Stderr, "Generated master password (shown once, never stored):")
		outln(os.Stderr)
		outln(os.Stderr, "  "+generated)
		outln(os.Stderr)
		outln(os.Stderr, "Write it down before continuing.")

		return generated, nil
	}

	raw, err := promptNewPassphraseFn()
	if err != nil {
		return "", err
	}
	passphrase := string(raw)
	lottocrypto.ZeroBytes(raw)
	return passphrase, nil
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	initCmd.Flags().StringVar(&initUserID, "user-id", "", "lottery site user id (prompted when omitted)")
	initCmd.Flags().StringVar(&initScheduleTime, "schedule-time", "", "daily purchase time, HH:MM 24-hour (default "+lotto.DefaultScheduleTime+")")
	initCmd.Flags().IntVar(&initCount, "purchase-count", 0, "games per purchase run, 1-5")
	initCmd.Flags().StringArrayVar(&initGames, "game", nil, "game spec: mode[:numbers], repeatable (e.g. auto, manual:1,9,23,28,36,41)")
	initCmd.Flags().BoolVar(&initGeneratePassphrase, "generate-passphrase", false, "generate a word-based master password instead of prompting")
	initCmd.Flags().IntVar(&initPassphraseWords, "passphrase-words", lottocrypto.DefaultPassphraseWords, "word count for --generate-passphrase")

	rootCmd.AddCommand(initCmd)
}

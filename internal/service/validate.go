package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	sanitize "github.com/mrz1836/go-sanitize"

	"github.com/lottokeeper/lottokeeper/internal/lotto"
	keepererr "github.com/lottokeeper/lottokeeper/pkg/errors"
)

// Minimum lengths for secrets, counted in characters.
const (
	MinPassphraseLength = 6
	MinUserIDLength     = 3
	MinPasswordLength   = 4
)

// ValidateConfig checks every settings section and returns a structured
// validation error naming the failing field. Credentials are checked
// separately via ValidateCredentials.
func (s *Service) ValidateConfig(cfg *lotto.Config) error {
	if err := s.ValidatePurchase(cfg.Purchase); err != nil {
		return err
	}
	if err := s.ValidateRecharge(cfg.Recharge); err != nil {
		return err
	}
	return s.ValidateNotifications(cfg.Discord)
}

// ValidatePurchase checks the schedule, the purchase count, and each game.
func (s *Service) ValidatePurchase(p lotto.PurchaseSettings) error {
	err := p.Validate()
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, lotto.ErrInvalidScheduleTime):
		return keepererr.WithDetails(keepererr.ErrInvalidSchedule, map[string]string{
			"schedule_time": p.ScheduleTime,
			"expected":      "HH:MM in 24-hour form",
		})
	case errors.Is(err, lotto.ErrInvalidGameCount):
		return keepererr.WithDetails(keepererr.ErrInvalidGameCount, map[string]string{
			"count": strconv.Itoa(p.Count),
			"range": fmt.Sprintf("%d-%d", lotto.MinGamesPerPurchase, lotto.MaxGamesPerPurchase),
		})
	case errors.Is(err, lotto.ErrGameCountMismatch):
		return keepererr.WithDetails(keepererr.ErrInvalidGameCount, map[string]string{
			"count": strconv.Itoa(p.Count),
			"games": strconv.Itoa(len(p.Games)),
		})
	}

	// A specific game failed; locate it for an indexed report.
	for i, g := range p.Games {
		if gameErr := g.Validate(); gameErr != nil {
			return gameError(i, g, gameErr)
		}
	}

	return keepererr.Wrap(err, "purchase settings validation failed")
}

// gameError maps a game validation failure to the taxonomy, numbering
// games from 1 the way the dashboard displays them.
func gameError(index int, g lotto.Game, err error) error {
	details := map[string]string{
		"game": strconv.Itoa(index + 1),
		"mode": string(g.Mode),
	}

	if errors.Is(err, lotto.ErrUnknownMode) {
		mapped := keepererr.WithDetails(keepererr.ErrInvalidMode, details)
		if suggestion := lotto.SuggestMode(string(g.Mode)); suggestion != "" {
			return keepererr.WithSuggestion(mapped, fmt.Sprintf("did you mean '%s'?", suggestion))
		}
		return keepererr.WithSuggestion(mapped, "valid modes: "+strings.Join(lotto.ModeNames(), ", "))
	}

	details["numbers"] = fmt.Sprint(g.Numbers)
	details["reason"] = err.Error()
	return keepererr.WithDetails(keepererr.ErrInvalidNumbers, details)
}

// ValidateRecharge checks the balance threshold and top-up amount.
func (s *Service) ValidateRecharge(r lotto.RechargeSettings) error {
	err := r.Validate()
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, lotto.ErrNegativeBalance):
		return keepererr.WithDetails(keepererr.ErrInvalidAmount, map[string]string{
			"minimum_balance": strconv.Itoa(r.MinimumBalance),
			"reason":          "minimum balance cannot be negative",
		})
	case errors.Is(err, lotto.ErrAmountTooSmall):
		return keepererr.WithDetails(keepererr.ErrInvalidAmount, map[string]string{
			"recharge_amount": strconv.Itoa(r.RechargeAmount),
			"minimum":         strconv.Itoa(lotto.RechargeUnit),
		})
	case errors.Is(err, lotto.ErrAmountNotRound):
		return keepererr.WithDetails(keepererr.ErrInvalidAmount, map[string]string{
			"recharge_amount": strconv.Itoa(r.RechargeAmount),
			"unit":            strconv.Itoa(lotto.RechargeUnit),
		})
	case errors.Is(err, lotto.ErrThresholdTooHigh):
		mapped := keepererr.WithDetails(keepererr.ErrInvalidAmount, map[string]string{
			"minimum_balance": strconv.Itoa(r.MinimumBalance),
			"recharge_amount": strconv.Itoa(r.RechargeAmount),
		})
		return keepererr.WithSuggestion(mapped, "lower the minimum balance or raise the recharge amount")
	}

	return keepererr.Wrap(err, "recharge settings validation failed")
}

// ValidateNotifications checks the Discord webhook configuration.
func (s *Service) ValidateNotifications(n lotto.NotificationSettings) error {
	err := n.Validate()
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, lotto.ErrWebhookMissing):
		return keepererr.WithSuggestion(
			keepererr.ErrInvalidWebhook,
			"set a webhook URL with 'lottokeeper update-notify --webhook-url <url>' or disable notifications",
		)
	case errors.Is(err, lotto.ErrWebhookInvalid):
		return keepererr.WithDetails(keepererr.ErrInvalidWebhook, map[string]string{
			"webhook_url": n.WebhookURL,
			"expected":    "http(s) URL with a host",
		})
	}

	return keepererr.Wrap(err, "notification settings validation failed")
}

// ValidateCredentials checks the lottery site login pair. Lengths are
// counted in characters so multibyte ids are not under-counted.
func (s *Service) ValidateCredentials(creds lotto.Credentials) error {
	if utf8.RuneCountInString(strings.TrimSpace(creds.UserID)) < MinUserIDLength {
		return keepererr.WithDetails(keepererr.ErrValidation, map[string]string{
			"field":   "user_id",
			"minimum": strconv.Itoa(MinUserIDLength),
		})
	}
	if utf8.RuneCountInString(creds.Password) < MinPasswordLength {
		return keepererr.WithDetails(keepererr.ErrValidation, map[string]string{
			"field":   "password",
			"minimum": strconv.Itoa(MinPasswordLength),
		})
	}
	return nil
}

// ValidatePassphrase enforces the minimum master passphrase length. The
// passphrase itself never appears in the returned error.
func (s *Service) ValidatePassphrase(passphrase string) error {
	if utf8.RuneCountInString(passphrase) < MinPassphraseLength {
		return keepererr.WithDetails(keepererr.ErrPassphraseTooShort, map[string]string{
			"minimum": strconv.Itoa(MinPassphraseLength),
		})
	}
	return nil
}

// CleanWebhookURL strips whitespace and copy-paste artifacts from a
// webhook URL before validation.
func (s *Service) CleanWebhookURL(raw string) string {
	return sanitize.URL(strings.TrimSpace(raw))
}

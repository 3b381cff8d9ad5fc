package lotto

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

// Purchase limits imposed by the lottery site.
const (
	MinGamesPerPurchase = 1
	MaxGamesPerPurchase = 5
)

// RechargeUnit is the smallest amount the payment page accepts.
const RechargeUnit = 1_000

var (
	// ErrInvalidScheduleTime indicates a schedule outside HH:MM 24-hour form.
	ErrInvalidScheduleTime = errors.New("schedule time must be HH:MM in 24-hour form")

	// ErrInvalidGameCount indicates a purchase count outside 1-5.
	ErrInvalidGameCount = errors.New("purchase count must be between 1 and 5")

	// ErrGameCountMismatch indicates the game list does not match the count.
	ErrGameCountMismatch = errors.New("number of games does not match purchase count")

	// ErrNegativeBalance indicates a negative minimum balance.
	ErrNegativeBalance = errors.New("minimum balance cannot be negative")

	// ErrAmountTooSmall indicates a recharge amount below the smallest unit.
	ErrAmountTooSmall = errors.New("recharge amount must be at least 1,000 won")

	// ErrAmountNotRound indicates a recharge amount that is not a 1,000 won multiple.
	ErrAmountNotRound = errors.New("recharge amount must be a multiple of 1,000 won")

	// ErrThresholdTooHigh indicates a minimum balance at or above the recharge amount.
	ErrThresholdTooHigh = errors.New("minimum balance must be below the recharge amount")

	// ErrWebhookMissing indicates notifications are on without a webhook URL.
	ErrWebhookMissing = errors.New("webhook URL is required when notifications are enabled")

	// ErrWebhookInvalid indicates a webhook URL that is not a valid http(s) URL.
	ErrWebhookInvalid = errors.New("webhook URL must be a valid http(s) URL")
)

var scheduleTimeRegex = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

// PurchaseSettings controls when the scheduler buys and what it buys.
type PurchaseSettings struct {
	ScheduleTime string `json:"schedule_time"`
	Count        int    `json:"count"`
	Games        []Game `json:"lotto_list"`
}

// Validate checks the schedule, the purchase count, and each game.
func (p PurchaseSettings) Validate() error {
	if !scheduleTimeRegex.MatchString(p.ScheduleTime) {
		return ErrInvalidScheduleTime
	}
	if p.Count < MinGamesPerPurchase || p.Count > MaxGamesPerPurchase {
		return ErrInvalidGameCount
	}
	if len(p.Games) != p.Count {
		return ErrGameCountMismatch
	}
	for _, g := range p.Games {
		if err := g.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// RechargeSettings controls automatic balance top-ups.
type RechargeSettings struct {
	AutoRecharge   bool `json:"auto_recharge"`
	MinimumBalance int  `json:"minimum_balance"`
	RechargeAmount int  `json:"recharge_amount"`
}

// Validate checks the threshold and, when auto recharge is on, the amount.
func (r RechargeSettings) Validate() error {
	if r.MinimumBalance < 0 {
		return ErrNegativeBalance
	}
	if !r.AutoRecharge {
		return nil
	}
	if r.RechargeAmount < RechargeUnit {
		return ErrAmountTooSmall
	}
	if r.RechargeAmount%RechargeUnit != 0 {
		return ErrAmountNotRound
	}
	if r.MinimumBalance >= r.RechargeAmount {
		return ErrThresholdTooHigh
	}
	return nil
}

// ShouldRecharge reports whether the balance has dropped below the
// configured threshold.
func (r RechargeSettings) ShouldRecharge(balance int) bool {
	return r.AutoRecharge && balance < r.MinimumBalance
}

// AmountFor returns the amount to top up for the given balance,
// zero when no recharge is due.
func (r RechargeSettings) AmountFor(balance int) int {
	if !r.ShouldRecharge(balance) {
		return 0
	}
	return r.RechargeAmount
}

// NotificationSettings configures the Discord webhook channel.
type NotificationSettings struct {
	WebhookURL          string `json:"webhook_url"`
	EnableNotifications bool   `json:"enable_notifications"`
}

// Validate requires a well-formed http(s) URL whenever notifications
// are enabled. A disabled channel may carry any leftover URL.
func (n NotificationSettings) Validate() error {
	if !n.EnableNotifications {
		return nil
	}
	if strings.TrimSpace(n.WebhookURL) == "" {
		return ErrWebhookMissing
	}
	u, err := url.Parse(n.WebhookURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrWebhookInvalid
	}
	return nil
}

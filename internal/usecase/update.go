package usecase

import (
	"strings"

	"github.com/lottokeeper/lottokeeper/internal/lotto"
)

// PurchasePatch carries the purchase fields to change. Nil fields keep
// their stored values.
type PurchasePatch struct {
	ScheduleTime *string
	Count        *int
	Games        []lotto.Game
}

// RechargePatch carries the recharge fields to change.
type RechargePatch struct {
	AutoRecharge   *bool
	MinimumBalance *int
	RechargeAmount *int
}

// NotifyPatch carries the notification fields to change.
type NotifyPatch struct {
	WebhookURL *string
	Enable     *bool
}

// UpdatePurchase merges the patch into the stored purchase settings,
// validates, and persists. The master passphrase is not needed: the
// stored credential tokens and salt pass through untouched.
func (u *UseCases) UpdatePurchase(patch PurchasePatch) error {
	cfg, err := u.store.LoadSettings()
	if err != nil {
		return mapStoreErr(err)
	}

	if patch.ScheduleTime != nil {
		cfg.Purchase.ScheduleTime = strings.TrimSpace(*patch.ScheduleTime)
	}
	if patch.Count != nil {
		cfg.Purchase.Count = *patch.Count
	}
	if patch.Games != nil {
		cfg.Purchase.Games = patch.Games
		// A fresh game list without an explicit count sets the count.
		if patch.Count == nil {
			cfg.Purchase.Count = len(patch.Games)
		}
	} else if patch.Count != nil {
		// Changing only the count keeps existing games where possible:
		// extra slots fill with automatic entries, surplus games drop
		// from the end.
		cfg.Purchase.Games = resizeGames(cfg.Purchase.Games, cfg.Purchase.Count)
	}

	if err := u.svc.ValidatePurchase(cfg.Purchase); err != nil {
		return err
	}

	if err := u.store.SaveSettings(cfg); err != nil {
		return mapStoreErr(err)
	}

	u.logger.Debug("purchase settings updated")
	return nil
}

// UpdateRecharge merges the patch into the stored recharge settings,
// validates, and persists without the master passphrase.
func (u *UseCases) UpdateRecharge(patch RechargePatch) error {
	cfg, err := u.store.LoadSettings()
	if err != nil {
		return mapStoreErr(err)
	}

	if patch.AutoRecharge != nil {
		cfg.Recharge.AutoRecharge = *patch.AutoRecharge
	}
	if patch.MinimumBalance != nil {
		cfg.Recharge.MinimumBalance = *patch.MinimumBalance
	}
	if patch.RechargeAmount != nil {
		cfg.Recharge.RechargeAmount = *patch.RechargeAmount
	}

	if err := u.svc.ValidateRecharge(cfg.Recharge); err != nil {
		return err
	}

	if err := u.store.SaveSettings(cfg); err != nil {
		return mapStoreErr(err)
	}

	u.logger.Debug("recharge settings updated")
	return nil
}

// UpdateNotifications merges the patch into the stored notification
// settings, validates, and persists without the master passphrase.
func (u *UseCases) UpdateNotifications(patch NotifyPatch) error {
	cfg, err := u.store.LoadSettings()
	if err != nil {
		return mapStoreErr(err)
	}

	if patch.WebhookURL != nil {
		cfg.Discord.WebhookURL = u.svc.CleanWebhookURL(*patch.WebhookURL)
	}
	if patch.Enable != nil {
		cfg.Discord.EnableNotifications = *patch.Enable
	}

	if err := u.svc.ValidateNotifications(cfg.Discord); err != nil {
		return err
	}

	if err := u.store.SaveSettings(cfg); err != nil {
		return mapStoreErr(err)
	}

	u.logger.Debug("notification settings updated")
	return nil
}

// NotificationSettings returns the stored notification settings without
// requiring the master passphrase.
func (u *UseCases) NotificationSettings() (lotto.NotificationSettings, error) {
	cfg, err := u.store.LoadSettings()
	if err != nil {
		return lotto.NotificationSettings{}, mapStoreErr(err)
	}
	return cfg.Discord, nil
}

// resizeGames adjusts a game list to the target count, padding with
// automatic entries or truncating from the end.
func resizeGames(games []lotto.Game, count int) []lotto.Game {
	if count < 0 || len(games) == count {
		return games
	}
	if len(games) > count {
		return games[:count]
	}
	out := make([]lotto.Game, len(games), count)
	copy(out, games)
	for len(out) < count {
		out = append(out, lotto.AutoGame())
	}
	return out
}

package usecase

import (
	"github.com/lottokeeper/lottokeeper/internal/lotto"
)

// Dashboard is the decrypted configuration view for display. The user id
// is masked unless the caller explicitly asked to reveal it; the password
// never appears.
type Dashboard struct {
	UserID   string                     `json:"user_id"`
	Purchase lotto.PurchaseSettings     `json:"purchase"`
	Recharge lotto.RechargeSettings     `json:"recharge"`
	Discord  lotto.NotificationSettings `json:"discord"`
	Metadata lotto.Metadata             `json:"metadata"`
}

// DashboardData decrypts the configuration for display.
func (u *UseCases) DashboardData(passphrase string, revealUserID bool) (*Dashboard, error) {
	cfg, err := u.store.Load(passphrase)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	userID := cfg.Credentials.MaskedUserID()
	if revealUserID {
		userID = cfg.Credentials.UserID
	}

	return &Dashboard{
		UserID:   userID,
		Purchase: cfg.Purchase,
		Recharge: cfg.Recharge,
		Discord:  cfg.Discord,
		Metadata: cfg.Metadata,
	}, nil
}

// ValidatePassphrase checks the passphrase by attempting a decrypting
// load. It reports validity without exposing any plaintext.
func (u *UseCases) ValidatePassphrase(passphrase string) error {
	if err := u.svc.ValidatePassphrase(passphrase); err != nil {
		return err
	}
	if _, err := u.store.Load(passphrase); err != nil {
		return mapStoreErr(err)
	}
	return nil
}

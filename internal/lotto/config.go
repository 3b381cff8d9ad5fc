// Package lotto defines the domain model for automated lottery purchases:
// credentials, per-game number selections, purchase and recharge settings,
// and the configuration aggregate that ties them together.
package lotto

import (
	"encoding/base64"
	"errors"
	"time"
)

// Default values applied by the interactive setup.
const (
	DefaultScheduleTime   = "14:00"
	DefaultPurchaseCount  = 1
	DefaultMinimumBalance = 5_000
	DefaultRechargeAmount = 50_000

	// ConfigVersion is written into new configuration files.
	ConfigVersion = "1.0"
)

// ErrMissingSalt indicates the metadata carries no KDF salt.
var ErrMissingSalt = errors.New("metadata has no KDF salt")

// Metadata describes the persisted configuration artifact itself.
type Metadata struct {
	CreatedAt time.Time `json:"created_at"`
	Version   string    `json:"version"`
	Encrypted bool      `json:"encrypted"`
	Salt      string    `json:"salt,omitempty"`
}

// SetSalt stores the KDF salt as base64.
func (m *Metadata) SetSalt(salt []byte) {
	m.Salt = base64.StdEncoding.EncodeToString(salt)
}

// SaltBytes decodes the stored KDF salt.
func (m *Metadata) SaltBytes() ([]byte, error) {
	if m.Salt == "" {
		return nil, ErrMissingSalt
	}
	return base64.StdEncoding.DecodeString(m.Salt)
}

// Config is the complete purchase configuration for one user. Credentials
// are plaintext only in memory: persistence always goes through the
// credential cipher, so the field is excluded from every marshal path.
type Config struct {
	Purchase    PurchaseSettings     `json:"purchase"`
	Recharge    RechargeSettings     `json:"recharge"`
	Discord     NotificationSettings `json:"discord"`
	Credentials Credentials          `json:"-"`
	Metadata    Metadata             `json:"metadata"`
}

// Validate checks every settings section against its rules.
func (c *Config) Validate() error {
	if err := c.Purchase.Validate(); err != nil {
		return err
	}
	if err := c.Recharge.Validate(); err != nil {
		return err
	}
	return c.Discord.Validate()
}

// DefaultConfig returns the configuration the interactive setup starts
// from: one automatic game at 14:00, auto recharge topping up 50,000 won
// when the balance drops below 5,000, notifications off.
func DefaultConfig() *Config {
	return &Config{
		Purchase: PurchaseSettings{
			ScheduleTime: DefaultScheduleTime,
			Count:        DefaultPurchaseCount,
			Games:        []Game{AutoGame()},
		},
		Recharge: RechargeSettings{
			AutoRecharge:   true,
			MinimumBalance: DefaultMinimumBalance,
			RechargeAmount: DefaultRechargeAmount,
		},
		Discord: NotificationSettings{},
		Metadata: Metadata{
			CreatedAt: time.Now().UTC(),
			Version:   ConfigVersion,
			Encrypted: true,
		},
	}
}

package usecase

import (
	"github.com/lottokeeper/lottokeeper/internal/lotto"
	"github.com/lottokeeper/lottokeeper/internal/service"
	"github.com/lottokeeper/lottokeeper/internal/store"
)

// SetupInitial validates the master passphrase and the raw setup input,
// then writes the first configuration. Fails when one already exists.
func (u *UseCases) SetupInitial(input service.SetupInput, passphrase string) (*lotto.Config, error) {
	if err := u.svc.ValidatePassphrase(passphrase); err != nil {
		return nil, err
	}

	exists, err := u.store.Exists()
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, mapStoreErr(store.ErrConfigExists)
	}

	cfg, err := u.svc.BuildInitial(input)
	if err != nil {
		return nil, err
	}

	if err := u.store.Save(cfg, passphrase); err != nil {
		return nil, mapStoreErr(err)
	}

	u.logger.Debug("configuration created with %d game(s) at %s",
		cfg.Purchase.Count, cfg.Purchase.ScheduleTime)
	return cfg, nil
}

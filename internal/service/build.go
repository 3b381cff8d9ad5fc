package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lottokeeper/lottokeeper/internal/lotto"
	keepererr "github.com/lottokeeper/lottokeeper/pkg/errors"
)

// SetupInput carries the raw answers collected by the interactive setup.
// Zero-valued fields fall back to the defaults.
type SetupInput struct {
	UserID       string
	Password     string
	ScheduleTime string
	Count        int
	Games        []lotto.Game
	Recharge     *lotto.RechargeSettings
	Discord      *lotto.NotificationSettings
}

// BuildInitial constructs and validates the first configuration from raw
// setup input. Missing games are padded with automatic entries until the
// purchase count is reached.
func (s *Service) BuildInitial(input SetupInput) (*lotto.Config, error) {
	cfg := lotto.DefaultConfig()

	if input.ScheduleTime != "" {
		cfg.Purchase.ScheduleTime = strings.TrimSpace(input.ScheduleTime)
	}
	if input.Count > 0 {
		cfg.Purchase.Count = input.Count
	}

	games := make([]lotto.Game, len(input.Games))
	copy(games, input.Games)
	for len(games) < cfg.Purchase.Count {
		games = append(games, lotto.AutoGame())
	}
	cfg.Purchase.Games = games

	if input.Recharge != nil {
		cfg.Recharge = *input.Recharge
	}
	if input.Discord != nil {
		discord := *input.Discord
		discord.WebhookURL = s.CleanWebhookURL(discord.WebhookURL)
		cfg.Discord = discord
	}

	cfg.Credentials = lotto.Credentials{
		UserID:   strings.TrimSpace(input.UserID),
		Password: input.Password,
	}

	if err := s.ValidateCredentials(cfg.Credentials); err != nil {
		return nil, err
	}
	if err := s.ValidateConfig(cfg); err != nil {
		return nil, err
	}

	s.logger.Debug("built initial configuration: schedule=%s count=%d", cfg.Purchase.ScheduleTime, cfg.Purchase.Count)
	return cfg, nil
}

// ParseGameSpec parses a game flag of the form "mode" or "mode:n1,n2,...".
func ParseGameSpec(spec string) (lotto.Game, error) {
	modePart, numbersPart, hasNumbers := strings.Cut(spec, ":")

	mode, err := lotto.ParseSelectionMode(modePart)
	if err != nil {
		mapped := keepererr.WithDetails(keepererr.ErrInvalidMode, map[string]string{
			"mode": strings.TrimSpace(modePart),
		})
		if suggestion := lotto.SuggestMode(modePart); suggestion != "" {
			return lotto.Game{}, keepererr.WithSuggestion(mapped, fmt.Sprintf("did you mean '%s'?", suggestion))
		}
		return lotto.Game{}, keepererr.WithSuggestion(mapped, "valid modes: "+strings.Join(lotto.ModeNames(), ", "))
	}

	game := lotto.Game{Mode: mode, Numbers: []int{}}
	if !hasNumbers {
		return game, nil
	}

	for _, part := range strings.Split(numbersPart, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, convErr := strconv.Atoi(part)
		if convErr != nil {
			return lotto.Game{}, keepererr.WithDetails(keepererr.ErrInvalidNumbers, map[string]string{
				"value": part,
			})
		}
		game.Numbers = append(game.Numbers, n)
	}

	return game, nil
}

package cli

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lottokeeper/lottokeeper/internal/lotto"
	"github.com/lottokeeper/lottokeeper/internal/output"
	"github.com/lottokeeper/lottokeeper/internal/usecase"
	keepererr "github.com/lottokeeper/lottokeeper/pkg/errors"
)

func TestRunShow_MasksUserID(t *testing.T) {
	_, cleanup := setupTestEnv(t)
	defer cleanup()
	seedConfig(t)
	withMockPrompts(t, testPassphrase, true)

	cmd, buf := newTestCmd()
	require.NoError(t, runShow(cmd, nil))

	result := buf.String()
	assert.Contains(t, result, "lo*******")
	assert.NotContains(t, result, "lottouser")
	assert.NotContains(t, result, "site-secret")
	assert.Contains(t, result, "schedule_time: "+lotto.DefaultScheduleTime)
	assert.Contains(t, result, "auto_recharge")
}

func TestRunShow_Reveal(t *testing.T) {
	_, cleanup := setupTestEnv(t)
	defer cleanup()
	seedConfig(t)
	withMockPrompts(t, testPassphrase, true)

	showReveal = true
	defer func() { showReveal = false }()

	cmd, buf := newTestCmd()
	require.NoError(t, runShow(cmd, nil))

	result := buf.String()
	assert.Contains(t, result, "lottouser")
	assert.NotContains(t, result, "site-secret")
}

func TestRunShow_WrongMasterPassword(t *testing.T) {
	_, cleanup := setupTestEnv(t)
	defer cleanup()
	seedConfig(t)
	withMockPrompts(t, "wrong-passphrase", true)

	cmd, _ := newTestCmd()
	err := runShow(cmd, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, keepererr.ErrDecryptionFailed)
}

func TestRunShow_NoConfiguration(t *testing.T) {
	_, cleanup := setupTestEnv(t)
	defer cleanup()
	withMockPrompts(t, testPassphrase, true)

	cmd, _ := newTestCmd()
	err := runShow(cmd, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, keepererr.ErrConfigNotFound)
}

func TestRunShow_JSONFormat(t *testing.T) {
	_, cleanup := setupTestEnv(t)
	defer cleanup()
	seedConfig(t)
	withMockPrompts(t, testPassphrase, true)

	formatter = output.NewFormatter(output.FormatJSON, os.Stdout)

	cmd, buf := newTestCmd()
	require.NoError(t, runShow(cmd, nil))

	result := buf.String()
	assert.Contains(t, result, `"user_id": "lo*******"`)
	assert.Contains(t, result, `"purchase"`)
	assert.NotContains(t, result, "site-secret")
}

func TestDisplayDashboard(t *testing.T) {
	d := &usecase.Dashboard{
		UserID: "lo*******",
		Purchase: lotto.PurchaseSettings{
			ScheduleTime: "14:30",
			Count:        2,
			Games: []lotto.Game{
				{Mode: lotto.ModeManual, Numbers: []int{1, 9, 23, 28, 36, 41}},
				{Mode: lotto.ModeAuto, Numbers: []int{}},
			},
		},
		Recharge: lotto.RechargeSettings{
			AutoRecharge:   true,
			MinimumBalance: 5000,
			RechargeAmount: 50000,
		},
		Discord: lotto.NotificationSettings{},
		Metadata: lotto.Metadata{
			Version:   "1.0",
			CreatedAt: time.Date(2025, 1, 15, 14, 30, 0, 0, time.UTC),
		},
	}

	buf := new(bytes.Buffer)
	displayDashboard(buf, d)

	result := buf.String()
	assert.Contains(t, result, "User ID: lo*******")
	assert.Contains(t, result, "schedule_time: 14:30")
	assert.Contains(t, result, "count:         2")
	assert.Contains(t, result, "game 1:        manual (1, 9, 23, 28, 36, 41)")
	assert.Contains(t, result, "game 2:        auto")
	assert.Contains(t, result, "auto_recharge:   true")
	assert.Contains(t, result, "webhook_url:          (not configured)")
	assert.Contains(t, result, "created_at: 2025-01-15 14:30:00")
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("CHAT_ID", "-1001885071311")
}

func TestNewDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.TelegramBot.Token)
	assert.Equal(t, int64(-1001885071311), cfg.TelegramBot.ChatID)
	assert.Equal(t, "https://weekendsch.pages.dev/sch/schedule.json", cfg.Feed.URL)
	assert.Equal(t, "schedule.json", cfg.Feed.FallbackPath)
	assert.Equal(t, "Mozilla/5.0", cfg.Feed.UserAgent)
	assert.Equal(t, 10*time.Second, cfg.Feed.Timeout)
	assert.Equal(t, []string{
		"Premier League", "LaLiga", "Serie A", "Champions League",
		"ENGLAND: EFL Cup", "Bundesliga", "Europa League",
	}, cfg.Message.AllowedLeagues)
	assert.Equal(t, "https://gvt720.blogspot.com/?match=%s", cfg.Message.MatchURLTemplate)
	assert.Equal(t, HistoryBackendJSON, cfg.History.Backend)
	assert.Equal(t, "history.json", cfg.History.Path)
	assert.Equal(t, "0 7 * * *", cfg.Scheduler.Cron)
}

func TestNewMissingSecrets(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing token", env: map[string]string{"TELEGRAM_TOKEN": "", "CHAT_ID": "42"}},
		{name: "missing chat id", env: map[string]string{"TELEGRAM_TOKEN": "123:abc", "CHAT_ID": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := New()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfigMissing)
		})
	}
}

func TestNewOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("ALLOWED_LEAGUES", "Premier League,Serie A")
	t.Setenv("HISTORY_BACKEND", "bolt")
	t.Setenv("HISTORY_PATH", "/tmp/history.db")
	t.Setenv("SCHEDULE_TZ", "Asia/Jakarta")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, []string{"Premier League", "Serie A"}, cfg.Message.AllowedLeagues)
	assert.Equal(t, HistoryBackendBolt, cfg.History.Backend)

	loc, err := cfg.Scheduler.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Jakarta", loc.String())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		value  string
		expect bool
	}{
		{name: "unknown backend", key: "HISTORY_BACKEND", value: "redis", expect: true},
		{name: "bad cron", key: "SCHEDULE_CRON", value: "every morning", expect: true},
		{name: "bad timezone", key: "SCHEDULE_TZ", value: "Mars/Olympus", expect: true},
		{name: "six field cron rejected", key: "SCHEDULE_CRON", value: "0 0 7 * * *", expect: true},
		{name: "valid cron", key: "SCHEDULE_CRON", value: "30 6 * * *", expect: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.value)
			_, err := New()
			if tt.expect {
				assert.ErrorIs(t, err, ErrConfigMissing)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

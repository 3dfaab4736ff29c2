package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setEnv pins every variable the loaders read so values leaking in from the
// host environment cannot change test outcomes.
func setEnv(t *testing.T, vars map[string]string) {
	t.Helper()

	keys := []string{
		"REPO_OWNER", "REPO_NAME", "GITHUB_TOKEN", "GITHUB_PROJECT_NUMBER",
		"ENABLE_SLACK_NOTIFICATION", "SLACK_WEBHOOK_URL",
		"ENABLE_DISCORD_NOTIFICATION", "DISCORD_WEBHOOK_URL",
		"NOTIFY_ONCE", "TASKS_FILE", "LEDGER_PATH", "TODAY", "DEBUG",
	}
	for _, key := range keys {
		t.Setenv(key, vars[key])
	}
}

func validSyncEnv() map[string]string {
	return map[string]string{
		"REPO_OWNER":            "karaage0703",
		"GITHUB_TOKEN":          "ghp_testtoken",
		"GITHUB_PROJECT_NUMBER": "3",
		"TODAY":                 "2025-04-01",
	}
}

func TestLoadSync_Valid(t *testing.T) {
	setEnv(t, validSyncEnv())

	cfg, err := LoadSync()
	require.NoError(t, err)

	assert.Equal(t, "karaage0703", cfg.Owner)
	assert.Equal(t, "ghp_testtoken", cfg.Token)
	assert.Equal(t, 3, cfg.ProjectNumber)
	assert.Equal(t, DefaultDocumentPath, cfg.DocumentPath)
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), cfg.Today)
}

func TestLoadSync_DocumentPathFromEnv(t *testing.T) {
	vars := validSyncEnv()
	vars["TASKS_FILE"] = "out/tasks.md"
	setEnv(t, vars)

	cfg, err := LoadSync()
	require.NoError(t, err)
	assert.Equal(t, "out/tasks.md", cfg.DocumentPath)
}

func TestLoadSync_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"missing owner", "REPO_OWNER", "", "REPO_OWNER"},
		{"missing token", "GITHUB_TOKEN", "", "GITHUB_TOKEN"},
		{"missing project number", "GITHUB_PROJECT_NUMBER", "", "positive integer"},
		{"non-numeric project number", "GITHUB_PROJECT_NUMBER", "three", "positive integer"},
		{"zero project number", "GITHUB_PROJECT_NUMBER", "0", "positive integer"},
		{"negative project number", "GITHUB_PROJECT_NUMBER", "-2", "positive integer"},
		{"malformed today", "TODAY", "04-01-2025", "TODAY must be YYYY-MM-DD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vars := validSyncEnv()
			vars[tt.key] = tt.value
			setEnv(t, vars)

			_, err := LoadSync()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadNotify_Valid(t *testing.T) {
	setEnv(t, map[string]string{
		"ENABLE_SLACK_NOTIFICATION":   "true",
		"SLACK_WEBHOOK_URL":           "https://hooks.slack.com/services/T0/B0/x",
		"ENABLE_DISCORD_NOTIFICATION": "YES",
		"DISCORD_WEBHOOK_URL":         "https://discord.com/api/webhooks/1/x",
		"NOTIFY_ONCE":                 "1",
		"LEDGER_PATH":                 "pm-bot.db",
		"TODAY":                       "2025-04-01",
	})

	cfg, err := LoadNotify()
	require.NoError(t, err)

	assert.Equal(t, "https://hooks.slack.com/services/T0/B0/x", cfg.SlackWebhookURL)
	assert.Equal(t, "https://discord.com/api/webhooks/1/x", cfg.DiscordWebhookURL)
	assert.True(t, cfg.NotifyOnce)
	assert.Equal(t, "pm-bot.db", cfg.LedgerPath)
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), cfg.Today)
}

func TestLoadNotify_EnabledChannelWithoutURLIsUnconfigured(t *testing.T) {
	setEnv(t, map[string]string{
		"ENABLE_SLACK_NOTIFICATION":   "true",
		"ENABLE_DISCORD_NOTIFICATION": "true",
		"DISCORD_WEBHOOK_URL":         "https://discord.com/api/webhooks/1/x",
	})

	cfg, err := LoadNotify()
	require.NoError(t, err)
	assert.Empty(t, cfg.SlackWebhookURL)
	assert.NotEmpty(t, cfg.DiscordWebhookURL)
}

func TestLoadNotify_NoUsableChannel(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
	}{
		{"nothing configured", map[string]string{}},
		{"enabled without url", map[string]string{
			"ENABLE_SLACK_NOTIFICATION": "true",
		}},
		{"url without enable flag", map[string]string{
			"SLACK_WEBHOOK_URL":           "https://hooks.slack.com/services/T0/B0/x",
			"ENABLE_SLACK_NOTIFICATION":   "false",
			"DISCORD_WEBHOOK_URL":         "https://discord.com/api/webhooks/1/x",
			"ENABLE_DISCORD_NOTIFICATION": "0",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnv(t, tt.vars)

			_, err := LoadNotify()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "no notification channel")
		})
	}
}

func TestLoadNotify_NotifyOnceRequiresLedger(t *testing.T) {
	setEnv(t, map[string]string{
		"ENABLE_SLACK_NOTIFICATION": "true",
		"SLACK_WEBHOOK_URL":         "https://hooks.slack.com/services/T0/B0/x",
		"NOTIFY_ONCE":               "true",
	})

	_, err := LoadNotify()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOTIFY_ONCE requires LEDGER_PATH")
}

func TestEnvBool(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"Y", true},
		{" true ", true},
		{"false", false},
		{"0", false},
		{"no", false},
		{"maybe", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run("value "+tt.value, func(t *testing.T) {
			t.Setenv("DEBUG", tt.value)
			assert.Equal(t, tt.want, Debug())
		})
	}
}

func TestResolveToday_DefaultsToUTCDate(t *testing.T) {
	vars := validSyncEnv()
	vars["TODAY"] = ""
	setEnv(t, vars)

	cfg, err := LoadSync()
	require.NoError(t, err)

	assert.Equal(t, time.UTC, cfg.Today.Location())
	assert.Equal(t, 0, cfg.Today.Hour())
	assert.False(t, cfg.Today.IsZero())
}

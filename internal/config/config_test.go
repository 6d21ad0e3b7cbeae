package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalConfig = `
[database]
host = "localhost"
user = "barber"
password = "from-file"
dbname = "barberbot"

[admin]
token = "admin-secret"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_PASSWORD", "")

	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "Asia/Yerevan", cfg.Shop.Timezone)
	assert.Equal(t, 9, cfg.Shop.OpenHour)
	assert.Equal(t, 20, cfg.Shop.CloseHour)
	assert.Equal(t, 7, cfg.Shop.HorizonDays)
	assert.Equal(t, "12 3 * * *", cfg.Sweeper.Schedule)
	assert.Equal(t, 64, cfg.Notifier.QueueSize)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "host=localhost port=5432 user=barber password=from-file dbname=barberbot sslmode=disable", cfg.Database.DSN())
}

func TestLoad_EnvOverridesSecrets(t *testing.T) {
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("ADMIN_TOKEN", "env-admin")
	t.Setenv("ASSISTANT_API_KEY", "gsk_env")

	cfg, err := Load(writeConfig(t, minimalConfig+`
[assistant]
enabled = true
url = "https://api.groq.com/openai/v1/chat/completions"
`))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "env-admin", cfg.Admin.Token)
	assert.Equal(t, "gsk_env", cfg.Assistant.APIKey)
}

func TestLoad_NotifierChatFromEnv(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("NOTIFIER_CHAT_ID", "-1001234567")

	cfg, err := Load(writeConfig(t, minimalConfig+"[notifier]\nenabled = true\n"))
	require.NoError(t, err)

	assert.Equal(t, int64(-1001234567), cfg.Notifier.ChatID)
	assert.Equal(t, "123:abc", cfg.Notifier.BotToken)
}

func TestLoad_NotifierChatFromEnvMalformed(t *testing.T) {
	t.Setenv("NOTIFIER_CHAT_ID", "admins")

	_, err := Load(writeConfig(t, minimalConfig))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_ShippedExample(t *testing.T) {
	for _, key := range []string{"DB_PASSWORD", "ASSISTANT_API_KEY", "TELEGRAM_BOT_TOKEN", "ADMIN_TOKEN", "NOTIFIER_CHAT_ID"} {
		t.Setenv(key, "")
	}

	cfg, err := Load(filepath.Join("..", "..", "config.toml.example"))
	require.NoError(t, err)
	assert.False(t, cfg.Notifier.Enabled)
	assert.False(t, cfg.Assistant.Enabled)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		extra string
	}{
		{name: "unknown timezone", extra: "[shop]\ntimezone = \"Mars/Olympus\"\n"},
		{name: "inverted hours", extra: "[shop]\nopen_hour = 20\nclose_hour = 9\n"},
		{name: "bad schedule", extra: "[sweeper]\nschedule = \"every night\"\n"},
		{name: "assistant without key", extra: "[assistant]\nenabled = true\nurl = \"http://x\"\n"},
		{name: "notifier without chat", extra: "[notifier]\nenabled = true\nbot_token = \"1:a\"\n"},
	}

	t.Setenv("ASSISTANT_API_KEY", "")
	t.Setenv("NOTIFIER_CHAT_ID", "")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, minimalConfig+tt.extra))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

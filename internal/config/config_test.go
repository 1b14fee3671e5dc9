package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load looks at, so the tests do not depend on the shell.
func clearEnv(t *testing.T) {
	for _, key := range []string{"PORT", "TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "TELEGRAM_API_URL", "BRAND_NAME", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}
}

// writeConfig stores content in a temporary YAML file and returns its path.
func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `port: 9090
brand: "Acme"
logLevel: debug
telegram:
  botToken: "123:abc"
  chatId: "-100200300"
  apiUrl: "http://localhost:1234"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "Acme", cfg.Brand)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "123:abc", cfg.Telegram.BotToken)
	assert.Equal(t, "-100200300", cfg.Telegram.ChatID)
	assert.Equal(t, "http://localhost:1234", cfg.Telegram.APIURL)
	assert.Equal(t, ":9090", cfg.Addr())
}

func TestLoadFromEnvironmentOnly(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "456:def")
	t.Setenv("TELEGRAM_CHAT_ID", "42")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultBrand, cfg.Brand)
	assert.Equal(t, DefaultAPIURL, cfg.Telegram.APIURL)
	assert.Equal(t, "456:def", cfg.Telegram.BotToken)
	assert.Equal(t, "42", cfg.Telegram.ChatID)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `port: 9090
telegram:
  botToken: "from-file"
  chatId: "1"
`)
	t.Setenv("PORT", "7070")
	t.Setenv("TELEGRAM_BOT_TOKEN", "from-env")
	t.Setenv("BRAND_NAME", "Other")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "from-env", cfg.Telegram.BotToken)
	assert.Equal(t, "1", cfg.Telegram.ChatID)
	assert.Equal(t, "Other", cfg.Brand)
}

func TestLoadMissingCredentials(t *testing.T) {
	clearEnv(t)
	_, err := Load("")
	assert.ErrorIs(t, err, ErrMissingBotToken)

	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	_, err = Load("")
	assert.ErrorIs(t, err, ErrMissingChatID)
}

func TestLoadInvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "42")

	t.Setenv("PORT", "eighty")
	_, err := Load("")
	assert.Error(t, err)

	t.Setenv("PORT", "70000")
	_, err = Load("")
	assert.Error(t, err)
}

func TestLoadInvalidFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := writeConfig(t, "port: [not a number")
	_, err = Load(path)
	assert.Error(t, err)
}

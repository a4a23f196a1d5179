package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "GEMINI_API_KEY", "GEMINI_MODEL", "OPENAI_API_KEY", "OPENAI_MODEL",
		"DEFAULT_ENGINE", "REQUEST_TIMEOUT", "LOG_LEVEL", "DATABASE_URL",
		"TELEGRAM_BOT_TOKEN", "WEBHOOK_URL", "CHAT_RATE_LIMIT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "g-key", cfg.GeminiAPIKey)
	assert.Equal(t, "gemini-2.0-flash", cfg.GeminiModel)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, "gemini", cfg.DefaultEngine)
	assert.Equal(t, 70*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 6, cfg.ChatRateLimit)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestLoad_MissingGeminiKey(t *testing.T) {
	clearEnv(t)
	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingEnv)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "g")
	t.Setenv("PORT", "9090")
	t.Setenv("REQUEST_TIMEOUT", "15")
	t.Setenv("DEFAULT_ENGINE", "GPT")
	t.Setenv("CHAT_RATE_LIMIT", "20")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "gpt", cfg.DefaultEngine)
	assert.Equal(t, 20, cfg.ChatRateLimit)

	t.Setenv("REQUEST_TIMEOUT", "1m30s")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, cfg.RequestTimeout)
}

func TestLoad_BadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "g")
	t.Setenv("REQUEST_TIMEOUT", "soon")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("REQUEST_TIMEOUT", "")
	t.Setenv("CHAT_RATE_LIMIT", "many")
	_, err = Load()
	assert.Error(t, err)
}

func TestRequireTelegram(t *testing.T) {
	assert.ErrorIs(t, (&Config{}).RequireTelegram(), ErrMissingEnv)
	assert.NoError(t, (&Config{TelegramBotToken: "t"}).RequireTelegram())
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	p := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(p, []byte("GEMINI_API_KEY=from-file\nGEMINI_MODEL=gemini-x\n"), 0o644))
	t.Setenv("GEMINI_MODEL", "from-env")
	// godotenv не трогает уже заданные (даже пустые) переменные
	require.NoError(t, os.Unsetenv("GEMINI_API_KEY"))

	LoadDotEnv(p, filepath.Join(dir, "missing.env"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.GeminiAPIKey)
	assert.Equal(t, "from-env", cfg.GeminiModel, "real env wins over .env")
}

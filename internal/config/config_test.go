package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "test-key")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.LLM.APIEndpoint)
	assert.Equal(t, 0.7, cfg.LLM.Temperature)
	assert.Equal(t, int64(2000), cfg.LLM.MaxTokens)
	assert.Equal(t, []string{
		"deepseek/deepseek-r1-distill-qwen-7b",
		"microsoft/phi-3-medium-128k-instruct",
		"openai/chatgpt-4o-latest",
		"google/gemini-2.5-pro",
		"moonshot/moonshot-v1-8k",
		"deepseek/deepseek-r1",
	}, cfg.Assistant.Models)
	assert.Equal(t, "anthropic/claude-4.0", cfg.Assistant.CodeModel)
	assert.Equal(t, "code:", cfg.Assistant.CodePrefix)
	assert.Equal(t, 10, cfg.Assistant.MemoryCapacity)
	assert.Equal(t, 6, cfg.Assistant.ContextWindow)
	assert.Equal(t, 5, cfg.Assistant.MinReplyLength)
	assert.Equal(t, 10000, cfg.Assistant.MaxSessions)
	assert.Equal(t, "2011-07-01", cfg.Identity.BirthDate)
}

func TestLoadConfigRequiresAPIKey(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "")
	os.Unsetenv("OPENROUTER_API_KEY")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "test-key")
	t.Setenv("ASSISTANT_MODELS", "a/one,b/two")
	t.Setenv("ASSISTANT_MODEL_TIMEOUT", "3s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, []string{"a/one", "b/two"}, cfg.Assistant.Models)
	assert.Equal(t, 3*time.Second, cfg.Assistant.ModelTimeout)
}

func TestLoadFileOverlay(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "test-key")

	path := filepath.Join(t.TempDir(), "quanty.yaml")
	yaml := `
server:
  port: "9090"
assistant:
  models:
    - first/model
    - second/model
  code_model: code/model
history:
  path: ""
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"first/model", "second/model"}, cfg.Assistant.Models)
	assert.Equal(t, "code/model", cfg.Assistant.CodeModel)
	assert.Equal(t, "", cfg.History.Path)
	// untouched keys keep the env defaults
	assert.Equal(t, "code:", cfg.Assistant.CodePrefix)
}

func TestLoadFileMissing(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "test-key")

	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LogConfig{Level: "DEBUG"}.SlogLevel())
	assert.Equal(t, slog.LevelWarn, LogConfig{Level: "warning"}.SlogLevel())
	assert.Equal(t, slog.LevelInfo, LogConfig{Level: "nonsense"}.SlogLevel())
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	LogConfig{Level: "warn", Format: "json"}.NewLogger(&buf).Info("dropped")
	assert.Empty(t, buf.String())

	LogConfig{Level: "debug", Format: "json"}.NewLogger(&buf).Debug("kept", "k", "v")
	assert.Contains(t, buf.String(), `"msg":"kept"`)

	buf.Reset()
	LogConfig{Level: "info"}.NewLogger(&buf).Info("plain")
	assert.Contains(t, buf.String(), "msg=plain")
}

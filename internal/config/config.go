package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	LLM        LLMConfig
	Assistant  AssistantConfig
	Identity   IdentityConfig
	Search     SearchConfig
	Dictionary DictionaryConfig
	History    HistoryConfig
	Log        LogConfig
}

type ServerConfig struct {
	Port           string        `envconfig:"SERVER_PORT" default:"8000"`
	Host           string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	ReadTimeout    time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"30s"`
	WriteTimeout   time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"3m"`
	RequestTimeout time.Duration `envconfig:"SERVER_REQUEST_TIMEOUT" default:"150s"`
	AllowedOrigins []string      `envconfig:"SERVER_ALLOWED_ORIGINS" default:"*"`
}

// LLMConfig points at an OpenAI-compatible chat completion API. OpenRouter by default.
type LLMConfig struct {
	APIKey      string  `envconfig:"OPENROUTER_API_KEY" required:"true"`
	APIEndpoint string  `envconfig:"LLM_ENDPOINT" default:"https://openrouter.ai/api/v1"`
	Referer     string  `envconfig:"LLM_REFERER" default:"https://quanty.ai"`
	Title       string  `envconfig:"LLM_TITLE" default:"Quanty"`
	Temperature float64 `envconfig:"LLM_TEMPERATURE" default:"0.7"`
	MaxTokens   int64   `envconfig:"LLM_MAX_TOKENS" default:"2000"`
}

type AssistantConfig struct {
	Models            []string      `envconfig:"ASSISTANT_MODELS" default:"deepseek/deepseek-r1-distill-qwen-7b,microsoft/phi-3-medium-128k-instruct,openai/chatgpt-4o-latest,google/gemini-2.5-pro,moonshot/moonshot-v1-8k,deepseek/deepseek-r1"`
	CodeModel         string        `envconfig:"ASSISTANT_CODE_MODEL" default:"anthropic/claude-4.0"`
	CodePrefix        string        `envconfig:"ASSISTANT_CODE_PREFIX" default:"code:"`
	ModelTimeout      time.Duration `envconfig:"ASSISTANT_MODEL_TIMEOUT" default:"20s"`
	MinReplyLength    int           `envconfig:"ASSISTANT_MIN_REPLY_LENGTH" default:"5"`
	MemoryCapacity    int           `envconfig:"ASSISTANT_MEMORY_CAPACITY" default:"10"`
	ContextWindow     int           `envconfig:"ASSISTANT_CONTEXT_WINDOW" default:"6"`
	MaxSessions       int           `envconfig:"ASSISTANT_MAX_SESSIONS" default:"10000"`
	SessionTTL        time.Duration `envconfig:"SESSION_TTL" default:"1h"`
	SessionSweepEvery time.Duration `envconfig:"SESSION_SWEEP_INTERVAL" default:"5m"`
}

type IdentityConfig struct {
	CreatorName   string `envconfig:"CREATOR_NAME" default:"Rushil Sharma"`
	Hometown      string `envconfig:"CREATOR_HOMETOWN" default:"Chandigarh"`
	Country       string `envconfig:"CREATOR_COUNTRY" default:"India"`
	AgeAtCreation string `envconfig:"CREATOR_AGE_AT_CREATION" default:"12 and a half"`
	BirthDate     string `envconfig:"CREATOR_BIRTH_DATE" default:"2011-07-01"`
}

type SearchConfig struct {
	Endpoint string        `envconfig:"SEARCH_ENDPOINT" default:"https://api.duckduckgo.com/"`
	Timeout  time.Duration `envconfig:"SEARCH_TIMEOUT" default:"10s"`
}

type DictionaryConfig struct {
	Endpoint string        `envconfig:"DICTIONARY_ENDPOINT" default:"https://api.dictionaryapi.dev/api/v2/entries/en/"`
	Timeout  time.Duration `envconfig:"DICTIONARY_TIMEOUT" default:"10s"`
}

// HistoryConfig controls the persisted chat log. An empty path keeps it in memory.
type HistoryConfig struct {
	Path string `envconfig:"HISTORY_DB_PATH" default:"quanty.db"`
}

type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"text"`
}

func LoadConfig() (*Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}
	slog.Info("configuration loaded successfully")
	return &cfg, nil
}

// LoadFile reads the environment first and then overlays keys set in the
// YAML file at path. Keys missing from the file keep their env value.
func LoadFile(path string) (*Config, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	Overlay(cfg, v)
	slog.Info("configuration file applied", "path", v.ConfigFileUsed())
	return cfg, nil
}

// Overlay copies every key set in v onto cfg. It is also used by the CLI
// after binding flags into v.
func Overlay(cfg *Config, v *viper.Viper) {
	setString(v, "server.host", &cfg.Server.Host)
	setString(v, "server.port", &cfg.Server.Port)
	setStrings(v, "server.allowed_origins", &cfg.Server.AllowedOrigins)

	setString(v, "llm.endpoint", &cfg.LLM.APIEndpoint)
	setString(v, "llm.api_key", &cfg.LLM.APIKey)
	if v.IsSet("llm.temperature") {
		cfg.LLM.Temperature = v.GetFloat64("llm.temperature")
	}
	if v.IsSet("llm.max_tokens") {
		cfg.LLM.MaxTokens = v.GetInt64("llm.max_tokens")
	}

	setStrings(v, "assistant.models", &cfg.Assistant.Models)
	setString(v, "assistant.code_model", &cfg.Assistant.CodeModel)
	setString(v, "assistant.code_prefix", &cfg.Assistant.CodePrefix)
	if v.IsSet("assistant.model_timeout") {
		cfg.Assistant.ModelTimeout = v.GetDuration("assistant.model_timeout")
	}

	setString(v, "search.endpoint", &cfg.Search.Endpoint)
	setString(v, "dictionary.endpoint", &cfg.Dictionary.Endpoint)
	setString(v, "history.path", &cfg.History.Path)
	setString(v, "log.level", &cfg.Log.Level)
	setString(v, "log.format", &cfg.Log.Format)
}

func setString(v *viper.Viper, key string, dst *string) {
	if v.IsSet(key) {
		*dst = v.GetString(key)
	}
}

func setStrings(v *viper.Viper, key string, dst *[]string) {
	if !v.IsSet(key) {
		return
	}
	var out []string
	for _, s := range v.GetStringSlice(key) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) > 0 {
		*dst = out
	}
}

// SlogLevel maps the configured level name onto slog.
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds a text or JSON slog logger at the configured level.
func (c LogConfig) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if strings.EqualFold(c.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

package llm

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds provider selection and per-provider settings.
type Config struct {
	// Provider is one of "anthropic", "openai", "gemini", "openrouter", "mock".
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// DailyTokenLimit caps input+output tokens per calendar day.
	// Zero disables the limit.
	DailyTokenLimit int

	// Timeout bounds a single Generate call including retries. A deck
	// response is long, so the default is generous.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey  string
	Model   string // Default: "claude-haiku"
	BaseURL string
}

// OpenAIConfig also serves OpenAI-compatible endpoints through BaseURL.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string
}

type GeminiConfig struct {
	APIKey  string
	Model   string // Default: "gemini-flash"
	BaseURL string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.0-flash-001"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:   "anthropic",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-001"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 90 * time.Second,
	}
}

// ConfigFromEnv reads DARS_* variables over the defaults. When no
// provider is set explicitly it falls back to DiscoverConfig.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	provider := os.Getenv("DARS_LLM_PROVIDER")
	if provider == "" {
		if discovered, ok := DiscoverConfig(); ok {
			cfg = discovered
		}
	} else {
		cfg.Provider = provider
	}

	setFromEnv(&cfg.Anthropic.APIKey, "DARS_ANTHROPIC_API_KEY")
	setFromEnv(&cfg.Anthropic.Model, "DARS_ANTHROPIC_MODEL")
	setFromEnv(&cfg.Anthropic.BaseURL, "DARS_ANTHROPIC_BASE_URL")

	setFromEnv(&cfg.OpenAI.APIKey, "DARS_OPENAI_API_KEY")
	setFromEnv(&cfg.OpenAI.Model, "DARS_OPENAI_MODEL")
	setFromEnv(&cfg.OpenAI.BaseURL, "DARS_OPENAI_BASE_URL")

	setFromEnv(&cfg.Gemini.APIKey, "DARS_GEMINI_API_KEY")
	setFromEnv(&cfg.Gemini.Model, "DARS_GEMINI_MODEL")
	setFromEnv(&cfg.Gemini.BaseURL, "DARS_GEMINI_BASE_URL")

	setFromEnv(&cfg.OpenRouter.APIKey, "DARS_OPENROUTER_API_KEY")
	setFromEnv(&cfg.OpenRouter.Model, "DARS_OPENROUTER_MODEL")
	setFromEnv(&cfg.OpenRouter.BaseURL, "DARS_OPENROUTER_BASE_URL")

	if raw := os.Getenv("DARS_DAILY_TOKEN_LIMIT"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return cfg, fmt.Errorf("invalid DARS_DAILY_TOKEN_LIMIT %q", raw)
		}
		cfg.DailyTokenLimit = n
	}
	if raw := os.Getenv("DARS_LLM_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return cfg, fmt.Errorf("invalid DARS_LLM_TIMEOUT %q: %w", raw, err)
		}
		cfg.Timeout = d
	}

	return cfg, nil
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// DiscoverConfig looks for the providers' own API key variables in the
// order Gemini, OpenAI, Anthropic, OpenRouter.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	switch {
	case os.Getenv("GEMINI_API_KEY") != "":
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	case os.Getenv("OPENAI_API_KEY") != "":
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	case os.Getenv("ANTHROPIC_API_KEY") != "":
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	case os.Getenv("OPENROUTER_API_KEY") != "":
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = os.Getenv("OPENROUTER_API_KEY")
	default:
		return Config{}, false
	}
	return cfg, true
}

// Validate checks that the selected provider has an API key.
func (c Config) Validate() error {
	var key, env string
	switch c.Provider {
	case "anthropic":
		key, env = c.Anthropic.APIKey, "DARS_ANTHROPIC_API_KEY"
	case "openai":
		key, env = c.OpenAI.APIKey, "DARS_OPENAI_API_KEY"
	case "gemini":
		key, env = c.Gemini.APIKey, "DARS_GEMINI_API_KEY"
	case "openrouter":
		key, env = c.OpenRouter.APIKey, "DARS_OPENROUTER_API_KEY"
	case "mock":
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", env, c.Provider)
	}
	return nil
}

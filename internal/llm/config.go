package llm

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which backend to use.
	// Values: "gemini", "anthropic", "openai", "openrouter", "mock"
	Provider string

	Gemini     GeminiConfig
	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single Generate call including retries.
	Timeout time.Duration
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Override for compatible APIs.
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.5-flash"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
// MaxAttempts of 1 disables retries: quiz failures go straight to the
// user, who decides whether to try again.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "gemini",
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.5-flash",
		},
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 45 * time.Second,
	}
}

// ConfigFromEnv builds a Config from QUIZ_* environment variables,
// falling back to defaults for unset values. Malformed numbers and
// durations are ignored.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	for key, dst := range map[string]*string{
		"QUIZ_LLM_PROVIDER":       &cfg.Provider,
		"QUIZ_GEMINI_API_KEY":     &cfg.Gemini.APIKey,
		"QUIZ_GEMINI_MODEL":       &cfg.Gemini.Model,
		"QUIZ_ANTHROPIC_API_KEY":  &cfg.Anthropic.APIKey,
		"QUIZ_ANTHROPIC_MODEL":    &cfg.Anthropic.Model,
		"QUIZ_OPENAI_API_KEY":     &cfg.OpenAI.APIKey,
		"QUIZ_OPENAI_MODEL":       &cfg.OpenAI.Model,
		"QUIZ_OPENAI_BASE_URL":    &cfg.OpenAI.BaseURL,
		"QUIZ_OPENROUTER_API_KEY": &cfg.OpenRouter.APIKey,
		"QUIZ_OPENROUTER_MODEL":   &cfg.OpenRouter.Model,
	} {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	if n, err := strconv.Atoi(os.Getenv("QUIZ_LLM_RETRIES")); err == nil && n > 0 {
		cfg.Retry.MaxAttempts = n
	}
	if d, err := time.ParseDuration(os.Getenv("QUIZ_LLM_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}

	return cfg
}

// standardKeys lists the conventional API key variables in discovery
// order. A bare API_KEY is read as a Gemini key.
var standardKeys = []struct {
	env      string
	provider string
}{
	{"GEMINI_API_KEY", "gemini"},
	{"GOOGLE_API_KEY", "gemini"},
	{"API_KEY", "gemini"},
	{"OPENAI_API_KEY", "openai"},
	{"ANTHROPIC_API_KEY", "anthropic"},
	{"OPENROUTER_API_KEY", "openrouter"},
}

// DiscoverConfig returns a default Config for the first provider whose
// standard API key variable is set, or false if none is.
func DiscoverConfig() (Config, bool) {
	for _, k := range standardKeys {
		v := os.Getenv(k.env)
		if v == "" {
			continue
		}
		cfg := DefaultConfig()
		cfg.Provider = k.provider
		*cfg.apiKey(k.provider) = v
		return cfg, true
	}
	return Config{}, false
}

// apiKey points at the key field for provider, or nil for providers that
// take no key.
func (c *Config) apiKey(provider string) *string {
	switch provider {
	case "gemini":
		return &c.Gemini.APIKey
	case "anthropic":
		return &c.Anthropic.APIKey
	case "openai":
		return &c.OpenAI.APIKey
	case "openrouter":
		return &c.OpenRouter.APIKey
	}
	return nil
}

// Validate checks that the selected provider is known and has its API key
// set. A missing key is reported as ErrMissingCredentials.
func (c Config) Validate() error {
	if c.Provider == "mock" {
		return nil
	}
	key := c.apiKey(c.Provider)
	if key == nil {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if *key == "" {
		return fmt.Errorf("%w: no API key for the %s provider (set QUIZ_%s_API_KEY)",
			ErrMissingCredentials, c.Provider, strings.ToUpper(c.Provider))
	}
	return nil
}

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Backend names accepted in LLM_BACKEND.
const (
	BackendGemini = "gemini"
	BackendOpenAI = "openai"
)

// Config is the environment-sourced configuration. Secrets are read
// once here and injected into constructors, never ad hoc.
type Config struct {
	AppPort int `env:"APP_PORT" envDefault:"8080"`

	LLMBackend   string        `env:"LLM_BACKEND"  envDefault:"gemini"`
	GeminiAPIKey string        `env:"GEMINI_API_KEY"`
	GeminiModel  string        `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	OpenAIAPIKey string        `env:"OPENAI_API_KEY"`
	OpenAIModel  string        `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	LLMBaseURL   string        `env:"LLM_BASE_URL"`
	LLMTimeout   time.Duration `env:"LLM_TIMEOUT"  envDefault:"90s"`

	MaxUploadBytes    int64  `env:"MAX_UPLOAD_BYTES"    envDefault:"10485760"`
	ContextCharLimit  int    `env:"CONTEXT_CHAR_LIMIT"  envDefault:"30000"`
	EPUBScanBudget    int    `env:"EPUB_SCAN_BUDGET"    envDefault:"50000"`
	MIMEWhitelistPath string `env:"MIME_WHITELIST_PATH"`

	AuthToken   string `env:"AUTH_TOKEN"`
	APIUserName string `env:"API_USER_NAME" envDefault:"api"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	switch cfg.LLMBackend {
	case BackendGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required when LLM_BACKEND=%s", BackendGemini)
		}
	case BackendOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when LLM_BACKEND=%s", BackendOpenAI)
		}
	default:
		return nil, fmt.Errorf("unsupported LLM_BACKEND %q", cfg.LLMBackend)
	}

	return &cfg, nil
}

// InlineImages reports whether the selected backend accepts inline
// image payloads. The text-only backend never reads uploaded images.
func (c *Config) InlineImages() bool {
	return c.LLMBackend == BackendGemini
}

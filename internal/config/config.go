package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// insecureJWTSecret is the built-in fallback secret; it is accepted only when
// LP_ENV=development.
const insecureJWTSecret = "supersecretkey"

// Content providers understood by internal/content.
const (
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
	ProviderMock   = "mock"
)

var defaultModels = map[string]string{
	ProviderGemini: "gemini-1.5-flash-latest",
	ProviderOllama: "llama3.2",
	ProviderOpenAI: "gpt-4o-mini",
	ProviderMock:   "mock",
}

type Config struct {
	Addr          string        `yaml:"addr"`
	JWTSecret     string        `yaml:"jwt_secret"`
	APITimeout    time.Duration `yaml:"timeout"`
	DatabasePath  string        `yaml:"database_path"`
	TokenDuration time.Duration `yaml:"token_duration"`
	CORS          CORSConfig    `yaml:"cors"`
	Content       ContentConfig `yaml:"content"`
	Ollama        OllamaConfig  `yaml:"ollama"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// ContentConfig selects and configures the generative-text provider.
// Timeout zero means no per-request deadline beyond the caller's context.
type ContentConfig struct {
	Provider string        `yaml:"provider"`
	Model    string        `yaml:"model"`
	APIKey   string        `yaml:"api_key"`
	BaseURL  string        `yaml:"base_url"`
	Timeout  time.Duration `yaml:"timeout"`
}

type OllamaConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// LoadConfig builds the configuration from environment defaults, then applies
// the YAML file at path when one is given. A .env file in the working
// directory is loaded first if present.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Addr:          getEnv("LP_ADDR", ":8000"),
		JWTSecret:     getEnv("LP_JWT_SECRET", insecureJWTSecret),
		APITimeout:    15 * time.Second,
		DatabasePath:  getEnv("LP_DATABASE_PATH", "learnprofile.db"),
		TokenDuration: 24 * time.Hour,
		CORS: CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Content: ContentConfig{
			Provider: getEnv("LP_CONTENT_PROVIDER", ProviderGemini),
			Model:    os.Getenv("LP_CONTENT_MODEL"),
			APIKey:   getEnv("LP_CONTENT_API_KEY", os.Getenv("GEMINI_API_KEY")),
		},
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate checks required settings and fills in defaults for optional ones.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr is required")
	}
	if c.DatabasePath == "" {
		return errors.New("database_path is required")
	}
	if c.JWTSecret == "" {
		return errors.New("jwt_secret is required")
	}
	if c.JWTSecret == insecureJWTSecret && os.Getenv("LP_ENV") != "development" {
		return errors.New("jwt_secret uses the insecure default; set LP_JWT_SECRET or LP_ENV=development")
	}

	if c.APITimeout <= 0 {
		c.APITimeout = 15 * time.Second
	}
	if c.TokenDuration <= 0 {
		c.TokenDuration = 24 * time.Hour
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"http://localhost:3000"}
	}

	c.Content.Provider = strings.ToLower(strings.TrimSpace(c.Content.Provider))
	if c.Content.Provider == "" {
		c.Content.Provider = ProviderGemini
	}
	model, ok := defaultModels[c.Content.Provider]
	if !ok {
		return fmt.Errorf("unknown content provider %q", c.Content.Provider)
	}
	if c.Content.Model == "" {
		c.Content.Model = model
	}
	switch c.Content.Provider {
	case ProviderGemini, ProviderOpenAI:
		if c.Content.APIKey == "" {
			return fmt.Errorf("content.api_key is required for provider %q", c.Content.Provider)
		}
	}
	if c.Content.Timeout < 0 {
		return errors.New("content.timeout must not be negative")
	}

	if c.Ollama.BaseURL == "" {
		c.Ollama.BaseURL = "http://localhost:11434"
	}
	if c.Ollama.Timeout <= 0 {
		c.Ollama.Timeout = 60 * time.Second
	}

	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

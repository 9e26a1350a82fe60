package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración de los binarios de eShopLite.
type Config struct {
	HTTPPort       string `env:"HTTP_PORT" envDefault:"8080"`
	CatalogPort    string `env:"CATALOG_PORT" envDefault:"8081"`
	CatalogBaseURL string `env:"CATALOG_BASE_URL" envDefault:"http://localhost:8081"`

	CatalogDriver string `env:"CATALOG_DRIVER" envDefault:"sqlite"`
	DatabaseURL   string `env:"DATABASE_URL"`
	SQLitePath    string `env:"SQLITE_PATH" envDefault:"eshoplite.db"`

	// GitHubToken tiene prioridad sobre LLMAPIKey (GitHub Models).
	GitHubToken string        `env:"GITHUB_TOKEN"`
	LLMAPIKey   string        `env:"LLM_API_KEY"`
	LLMProvider string        `env:"LLM_PROVIDER" envDefault:"openai"`
	LLMBaseURL  string        `env:"LLM_BASE_URL" envDefault:"https://models.github.ai/inference"`
	// LLMModel vacio usa el modelo por defecto del proveedor.
	LLMModel    string        `env:"LLM_MODEL"`
	LLMTimeout  time.Duration `env:"LLM_TIMEOUT" envDefault:"30s"`

	MaxHistoryTurns int           `env:"MAX_HISTORY_TURNS" envDefault:"10"`
	SessionIdleTTL  time.Duration `env:"SESSION_IDLE_TTL" envDefault:"0s"`

	RedisAddr       string        `env:"REDIS_ADDR"`
	RedisPassword   string        `env:"REDIS_PASSWORD"`
	RedisDB         int           `env:"REDIS_DB" envDefault:"0"`
	CatalogCacheTTL time.Duration `env:"CATALOG_CACHE_TTL" envDefault:"5m"`

	// ChatRateLimit en 0 desactiva el limite por cliente (requiere Redis).
	ChatRateLimit  int           `env:"CHAT_RATE_LIMIT" envDefault:"0"`
	ChatRateWindow time.Duration `env:"CHAT_RATE_WINDOW" envDefault:"1m"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// CompletionAPIKey devuelve la credencial del backend de completions, o "" si no hay.
func (c *Config) CompletionAPIKey() string {
	if c == nil {
		return ""
	}
	if token := strings.TrimSpace(c.GitHubToken); token != "" {
		return token
	}
	return strings.TrimSpace(c.LLMAPIKey)
}

package llm

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	ProviderOpenAI    = "openai"
	ProviderLangChain = "langchain"
	ProviderAnthropic = "anthropic"
)

const (
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultAnthropicModel = "claude-3-5-haiku-latest"
)

var (
	ErrMissingAPIKey   = errors.New("llm api key not configured")
	ErrUnknownProvider = errors.New("llm provider not supported")
)

// ProviderConfig describe como construir un ChatClient.
type ProviderConfig struct {
	Provider string
	BaseURL  string
	APIKey   string
	Model    string
	Timeout  time.Duration
}

// NewChatClient construye el ChatClient del proveedor indicado.
// Sin credencial devuelve ErrMissingAPIKey: el llamador debe operar sin IA.
func NewChatClient(cfg ProviderConfig, logger *zap.Logger) (ChatClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	cfg.Model = ResolveModel(cfg.Provider, cfg.Model)

	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderOpenAI:
		return NewHTTPClient(cfg.BaseURL, cfg.APIKey, cfg.Model, cfg.Timeout, logger), nil
	case ProviderLangChain:
		c, err := NewLangChainClient(cfg.BaseURL, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		return c, nil
	case ProviderAnthropic:
		// LLM_BASE_URL apunta a GitHub Models; Anthropic usa su endpoint por defecto.
		return NewAnthropicClient(cfg.APIKey, cfg.Model, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}

// ResolveModel devuelve model si viene informado, o el modelo por defecto del proveedor.
func ResolveModel(provider, model string) string {
	if m := strings.TrimSpace(model); m != "" {
		return m
	}
	if strings.EqualFold(strings.TrimSpace(provider), ProviderAnthropic) {
		return DefaultAnthropicModel
	}
	return DefaultOpenAIModel
}

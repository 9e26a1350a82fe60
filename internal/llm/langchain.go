package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

// LangChainClient adapta un llms.Model de langchaingo a ChatClient.
type LangChainClient struct {
	model llms.Model
}

// NewLangChainClient construye un modelo OpenAI-compatible de langchaingo.
func NewLangChainClient(baseURL, apiKey, model string) (*LangChainClient, error) {
	m, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithBaseURL(baseURL),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("langchain openai: %w", err)
	}
	return &LangChainClient{model: m}, nil
}

// NewLangChainClientFromModel permite inyectar cualquier llms.Model.
func NewLangChainClientFromModel(model llms.Model) *LangChainClient {
	return &LangChainClient{model: model}
}

func (c *LangChainClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	content := make([]llms.MessageContent, 0, len(req.Messages))
	for _, m := range req.Messages {
		content = append(content, llms.TextParts(langChainRole(m.Role), m.Content))
	}

	opts := []llms.CallOption{
		llms.WithTemperature(req.Temperature),
	}
	if req.Model != "" {
		opts = append(opts, llms.WithModel(req.Model))
	}
	if req.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(req.MaxTokens))
	}

	resp, err := c.model.GenerateContent(ctx, content, opts...)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", ErrMalformedResponse)
	}
	if resp.Choices[0].Content == "" {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Content, nil
}

func langChainRole(role string) schema.ChatMessageType {
	switch role {
	case RoleSystem:
		return schema.ChatMessageTypeSystem
	case RoleAssistant:
		return schema.ChatMessageTypeAI
	default:
		return schema.ChatMessageTypeHuman
	}
}

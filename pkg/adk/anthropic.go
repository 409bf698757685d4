package adk

import (
	"context"
	"errors"
)

// errChatUnsupported is returned by providers that only support model selection.
var errChatUnsupported = errors.New("chat generation is not supported for this provider yet; use gemini")

type AnthropicProvider struct {
	APIKey string
	Model  string
}

func NewAnthropicProvider(apiKey, model string) *AnthropicProvider {
	if model == "" {
		model = "claude-sonnet-4-5"
	}
	return &AnthropicProvider{APIKey: apiKey, Model: model}
}

// ListModels returns the static model list; the API has no listing endpoint we use.
func (p *AnthropicProvider) ListModels(ctx context.Context) ([]string, error) {
	return []string{
		"claude-sonnet-4-5",
		"claude-opus-4-5",
		"claude-haiku-4-5",
	}, nil
}

func (p *AnthropicProvider) GenerateResponse(ctx context.Context, history []Message, tools []Tool) (string, *ToolCall, error) {
	return "", nil, errChatUnsupported
}

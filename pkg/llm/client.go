package llm

import (
	"context"
	"fmt"
	"strings"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// Completer sends a single user-role prompt to a model and returns the
// generated text. An empty string with a nil error means the call succeeded
// but the model produced no text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	ModelName() string
}

// NewCompleter builds the client for provider. An empty model selects the
// provider's default.
func NewCompleter(ctx context.Context, provider, apiKey, model string) (Completer, error) {
	switch strings.ToLower(provider) {
	case "", ProviderOpenAI:
		return NewOpenAIClient(apiKey, model), nil
	case ProviderAnthropic:
		return NewAnthropicClient(apiKey, model), nil
	case ProviderGemini:
		return NewGeminiClient(ctx, apiKey, model)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", provider)
	}
}

// cleanResponse drops surrounding whitespace and a code fence the model may
// echo back from the prompt.
func cleanResponse(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") && strings.HasSuffix(content, "```") && len(content) >= 6 {
		content = strings.TrimSuffix(strings.TrimPrefix(content, "```"), "```")
	}
	return strings.TrimSpace(content)
}

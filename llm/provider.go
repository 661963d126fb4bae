// Package llm provides LLM provider abstractions.
//
// LLM Provider interface - the abstract interface for LLM providers.
// Each provider implementation hides:
// - API client initialization and authentication
// - Request/response format conversion
// - Provider-specific error handling

package llm

import (
	"context"
	"fmt"
)

// Provider defines the abstract interface for LLM providers.
// Implementations hide provider-specific details while exposing
// a consistent interface for chat completions.
type Provider interface {
	// Name returns the provider name (for logging/debugging).
	Name() string

	// Model returns the current model being used.
	Model() string

	// Chat sends a chat completion request.
	Chat(ctx context.Context, messages []ChatMessage) (LLMResponse, error)
}

// New constructs a provider by name. The harness issues one generation at a
// time, so no retry or timeout policy lives here; those belong to callers.
func New(provider, apiKey, model string, maxTokens uint32, temperature float32) (Provider, error) {
	switch provider {
	case "openai":
		return NewOpenAIProvider(apiKey, model, maxTokens, temperature), nil
	case "anthropic":
		return NewAnthropicProvider(apiKey, model, maxTokens, temperature), nil
	case "gemini":
		return NewGeminiProvider(apiKey, model, maxTokens, temperature), nil
	case "openrouter":
		return NewOpenRouterProvider(apiKey, model, maxTokens, temperature), nil
	default:
		return nil, fmt.Errorf("unknown provider: %q", provider)
	}
}

// Package llm abstracts the chat-completion backends used to turn
// analyst questions into SQL, and owns the prompt templates and the
// parser for the model's structured response format.
package llm

import "context"

// Provider defines the interface for LLM providers.
type Provider interface {
	// Complete sends a completion request and returns the response.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	// Name returns the name of this provider.
	Name() string
}

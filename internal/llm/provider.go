// Package llm abstracts the chat-completion backends viajo can reply
// through. The orchestrator only depends on Provider; which backend
// answers is a config choice.
package llm

import "context"

// Provider is a chat-completion backend.
type Provider interface {
	// Complete sends one completion request and returns the reply.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	// Name returns the backend name ("anthropic", "openai", "ollama").
	Name() string
}

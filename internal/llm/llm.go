// Package llm abstracts the language model the content agents talk to.
package llm

import (
	"context"
	"errors"
	"strings"
)

// DefaultModel is used when no model identifier is configured.
const DefaultModel = "claude-sonnet-4-5"

// ErrEmptyResponse is returned when the model produced no text.
var ErrEmptyResponse = errors.New("model returned no text")

// Request is a single-turn completion request.
type Request struct {
	// System is the agent's standing instruction.
	System string

	// Prompt is the user turn.
	Prompt string

	// MaxTokens bounds the response length. Zero means the completer default.
	MaxTokens int
}

// Completer turns a Request into model text.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// CompleterFunc adapts a function to the Completer interface.
type CompleterFunc func(ctx context.Context, req Request) (string, error)

// Complete calls f.
func (f CompleterFunc) Complete(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// ParseModel splits an identifier such as "anthropic:claude-sonnet-4-5" into
// provider and model name. Identifiers without a provider prefix are treated
// as Anthropic models.
func ParseModel(id string) (provider, model string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "anthropic", DefaultModel
	}
	if p, m, ok := strings.Cut(id, ":"); ok {
		return strings.ToLower(p), m
	}
	return "anthropic", id
}

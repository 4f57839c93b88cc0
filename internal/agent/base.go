package agent

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/llm"
	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/mcptools"
)

// DecodeFunc turns the JSON extracted from model output into the agent's
// result type.
type DecodeFunc[T any] func(data []byte, now time.Time) (T, error)

// Config configures a BaseAgent.
type Config[T any] struct {
	Role Role

	// System is the standing instruction sent with every request.
	System string

	// Format describes the JSON the model must answer with.
	Format string

	// Completer is the model backend.
	Completer llm.Completer

	// Source grounds the agent in search results. It may be nil.
	Source mcptools.Source

	// Query is sent to Source. When empty the prompt itself is used.
	Query string

	// Decode parses the model's JSON answer.
	Decode DecodeFunc[T]

	// Timeout bounds a single Run, source lookup included. Zero disables it.
	Timeout time.Duration

	Logger *slog.Logger

	// Now is the clock used for defaulted dates. Defaults to time.Now.
	Now func() time.Time
}

// Compile-time interface check.
var _ Agent[string] = (*BaseAgent[string])(nil)

// BaseAgent is the shared implementation behind every content agent: look up
// grounding material, ask the model for JSON, decode it.
type BaseAgent[T any] struct {
	cfg Config[T]
}

// NewBaseAgent creates a BaseAgent from cfg.
func NewBaseAgent[T any](cfg Config[T]) *BaseAgent[T] {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	cfg.Logger = cfg.Logger.With("agent", string(cfg.Role))
	return &BaseAgent[T]{cfg: cfg}
}

// Role returns the agent's role.
func (b *BaseAgent[T]) Role() Role {
	return b.cfg.Role
}

// Run executes one request against the agent.
func (b *BaseAgent[T]) Run(ctx context.Context, prompt string) (T, error) {
	var zero T

	if b.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.cfg.Timeout)
		defer cancel()
	}

	var material string
	if b.cfg.Source != nil {
		query := b.cfg.Query
		if query == "" {
			query = prompt
		}
		found, err := b.cfg.Source.Search(ctx, query)
		if err != nil {
			return zero, fmt.Errorf("%s agent: search: %w", b.cfg.Role, err)
		}
		material = found
		b.cfg.Logger.Debug("search material retrieved", "bytes", len(material))
	}

	text, err := b.cfg.Completer.Complete(ctx, llm.Request{
		System: b.cfg.System,
		Prompt: buildPrompt(prompt, material, b.cfg.Format),
	})
	if err != nil {
		return zero, fmt.Errorf("%s agent: complete: %w", b.cfg.Role, err)
	}

	candidates := llm.JSONCandidates(text)
	if len(candidates) == 0 {
		return zero, fmt.Errorf("%s agent: %w", b.cfg.Role, llm.ErrNoJSON)
	}

	// The first candidate that decodes wins; the reported error is the one
	// from the most likely candidate.
	var firstErr error
	now := b.cfg.Now()
	for _, raw := range candidates {
		out, err := b.cfg.Decode(raw, now)
		if err == nil {
			return out, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return zero, fmt.Errorf("%s agent: %w", b.cfg.Role, firstErr)
}

// buildPrompt appends search material and the answer format to the prompt.
func buildPrompt(prompt, material, format string) string {
	var sb strings.Builder
	sb.WriteString(strings.TrimSpace(prompt))
	sb.WriteString("\n")

	if material != "" {
		sb.WriteString("\nSearch results:\n")
		sb.WriteString(material)
		sb.WriteString("\n")
	}

	if format != "" {
		sb.WriteString("\n")
		sb.WriteString(format)
		sb.WriteString("\n")
	}
	return sb.String()
}

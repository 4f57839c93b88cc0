package agent

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/content"
	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/llm"
	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/mcptools"
)

// Deps are the backends the agents share.
type Deps struct {
	Completer llm.Completer

	// Papers grounds the research agent. It may be nil.
	Papers mcptools.Source

	// News grounds the news agent. It may be nil, and may be the same
	// source as Papers.
	News mcptools.Source
}

// Set holds one agent of each role.
type Set struct {
	Research Agent[[]content.ResearchItem]
	News     Agent[[]content.ContentItem]
	Header   Agent[content.Header]
}

// Registry builds the agents for a run and owns the sources they use.
type Registry struct {
	mu      sync.Mutex
	deps    Deps
	timeout time.Duration
	logger  *slog.Logger
}

// NewRegistry creates a Registry. timeout bounds each agent call.
func NewRegistry(deps Deps, timeout time.Duration, logger *slog.Logger) (*Registry, error) {
	if deps.Completer == nil {
		return nil, errors.New("agent registry: completer is required")
	}
	return &Registry{deps: deps, timeout: timeout, logger: logger}, nil
}

// Agents builds one agent of every role.
func (r *Registry) Agents() Set {
	r.mu.Lock()
	defer r.mu.Unlock()

	opts := Options{Timeout: r.timeout, Logger: r.logger}
	return Set{
		Research: NewResearchAgent(r.deps, opts),
		News:     NewNewsAgent(r.deps, opts),
		Header:   NewHeaderAgent(r.deps, opts),
	}
}

// Close releases the sources in reverse order of creation and returns the
// first error encountered. A source shared by both agents is closed once.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sources := []mcptools.Source{r.deps.News}
	if r.deps.Papers != r.deps.News {
		sources = append(sources, r.deps.Papers)
	}

	var firstErr error
	for _, src := range sources {
		if src == nil {
			continue
		}
		if err := src.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

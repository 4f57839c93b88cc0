package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/agent"
	"golang.org/x/sync/errgroup"
)

// Probe prompts used by the connectivity check.
const (
	probeResearchPrompt = "Test connection - find 1 recent AI paper"
	probeNewsPrompt     = "Test connection - find latest AI news"
	probeHeaderPrompt   = "Generate a test header for AI newsletter"
)

// ProbeResult is the outcome of testing one agent.
type ProbeResult struct {
	Role     agent.Role
	Items    int
	Detail   string
	Duration time.Duration
	Err      error
}

// OK reports whether the agent answered.
func (r ProbeResult) OK() bool {
	return r.Err == nil
}

// String renders the result as a status line.
func (r ProbeResult) String() string {
	if r.Err != nil {
		return fmt.Sprintf("✗ %s agent: failed after %s - %v", r.Role, r.Duration.Round(time.Millisecond), r.Err)
	}
	return fmt.Sprintf("✓ %s agent: connected in %s (%s)", r.Role, r.Duration.Round(time.Millisecond), r.Detail)
}

// ProbeAgents sends a small request to every agent concurrently, each bounded
// by timeout, and returns one result per agent in role order. Failures are
// reported in the results, never returned as an error.
func ProbeAgents(ctx context.Context, agents agent.Set, timeout time.Duration) []ProbeResult {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}

	results := make([]ProbeResult, 3)
	var g errgroup.Group

	g.Go(func() error {
		start := time.Now()
		papers, err := runBounded(ctx, timeout, func(ctx context.Context) (int, error) {
			out, err := agents.Research.Run(ctx, probeResearchPrompt)
			return len(out), err
		})
		results[0] = ProbeResult{Role: agent.RoleResearch, Items: papers,
			Detail: itemCount(papers), Duration: time.Since(start), Err: err}
		return nil
	})

	g.Go(func() error {
		start := time.Now()
		news, err := runBounded(ctx, timeout, func(ctx context.Context) (int, error) {
			out, err := agents.News.Run(ctx, probeNewsPrompt)
			return len(out), err
		})
		results[1] = ProbeResult{Role: agent.RoleNews, Items: news,
			Detail: itemCount(news), Duration: time.Since(start), Err: err}
		return nil
	})

	g.Go(func() error {
		start := time.Now()
		title, err := runBounded(ctx, timeout, func(ctx context.Context) (string, error) {
			h, err := agents.Header.Run(ctx, probeHeaderPrompt)
			return h.Title, err
		})
		results[2] = ProbeResult{Role: agent.RoleHeader, Detail: fmt.Sprintf("header %q", title),
			Duration: time.Since(start), Err: err}
		return nil
	})

	_ = g.Wait()
	return results
}

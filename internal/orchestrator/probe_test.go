package orchestrator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/agent"
	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeAgents(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	set := agent.Set{
		Research: papersAgent(func(context.Context, string) ([]content.ResearchItem, error) { return makePapers(1), nil }),
		News: newsAgent(func(context.Context, string) ([]content.ContentItem, error) {
			return nil, errors.New("invalid api key")
		}),
		Header: headerAgent(blockForever[content.Header](release)),
	}

	results := ProbeAgents(context.Background(), set, 50*time.Millisecond)
	require.Len(t, results, 3)

	assert.Equal(t, agent.RoleResearch, results[0].Role)
	assert.True(t, results[0].OK())
	assert.Equal(t, 1, results[0].Items)
	assert.Contains(t, results[0].String(), "✓ research agent: connected")

	assert.Equal(t, agent.RoleNews, results[1].Role)
	assert.False(t, results[1].OK())
	assert.Contains(t, results[1].String(), "invalid api key")

	assert.Equal(t, agent.RoleHeader, results[2].Role)
	assert.ErrorIs(t, results[2].Err, context.DeadlineExceeded)
	assert.Contains(t, results[2].String(), "✗ header agent")
}

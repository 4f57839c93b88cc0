package mcptools

import (
	"context"
	"fmt"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type searchInput struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results,omitempty"`
	SortBy     string `json:"sort_by,omitempty"`
}

// newFakeSource starts an in-memory MCP server exposing a search_papers tool
// and returns a ToolSource connected to it. The handler records its input.
func newFakeSource(t *testing.T, handler func(in searchInput) (*mcp.CallToolResult, error)) *ToolSource {
	t.Helper()

	server := mcp.NewServer(&mcp.Implementation{Name: "fake-arxiv", Version: "1.0.0"}, nil)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_papers",
		Description: "Search arXiv papers.",
	}, func(_ context.Context, _ *mcp.CallToolRequest, in searchInput) (*mcp.CallToolResult, any, error) {
		res, err := handler(in)
		return res, nil, err
	})

	st, ct := mcp.NewInMemoryTransports()
	_, err := server.Connect(context.Background(), st, nil)
	require.NoError(t, err)

	src := NewToolSourceWithTransport(ArxivSpec(3), "test", func() mcp.Transport { return ct }, nil)
	t.Cleanup(func() { src.Close() })
	return src
}

func TestToolSource_Search(t *testing.T) {
	var got searchInput
	src := newFakeSource(t, func(in searchInput) (*mcp.CallToolResult, error) {
		got = in
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: "Paper A"},
				&mcp.TextContent{Text: "Paper B"},
			},
		}, nil
	})

	out, err := src.Search(context.Background(), "agentic systems")
	require.NoError(t, err)
	assert.Equal(t, "Paper A\nPaper B", out)

	assert.Equal(t, "agentic systems", got.Query)
	assert.Equal(t, 3, got.MaxResults)
	assert.Equal(t, "date", got.SortBy)
	assert.Equal(t, "arxiv", src.Name())
}

func TestToolSource_ReusesSession(t *testing.T) {
	calls := 0
	src := newFakeSource(t, func(in searchInput) (*mcp.CallToolResult, error) {
		calls++
		return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprint(calls)}}}, nil
	})

	for i := 1; i <= 2; i++ {
		out, err := src.Search(context.Background(), "q")
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprint(i), out)
	}
}

func TestToolSource_ToolError(t *testing.T) {
	src := newFakeSource(t, func(in searchInput) (*mcp.CallToolResult, error) {
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{&mcp.TextContent{Text: "rate limited"}},
		}, nil
	})

	_, err := src.Search(context.Background(), "q")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrToolFailed)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestToolSource_CloseWithoutConnect(t *testing.T) {
	src := NewToolSource(TavilySpec("key", 5), "test", nil)
	assert.NoError(t, src.Close())
}

func TestToolSource_AnnouncesVersion(t *testing.T) {
	server := mcp.NewServer(&mcp.Implementation{Name: "fake-arxiv", Version: "1.0.0"}, nil)
	mcp.AddTool(server, &mcp.Tool{Name: "search_papers"}, func(_ context.Context, _ *mcp.CallToolRequest, _ searchInput) (*mcp.CallToolResult, any, error) {
		return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: "ok"}}}, nil, nil
	})

	st, ct := mcp.NewInMemoryTransports()
	ss, err := server.Connect(context.Background(), st, nil)
	require.NoError(t, err)
	defer ss.Close()

	src := NewToolSourceWithTransport(ArxivSpec(3), "v1.4.2", func() mcp.Transport { return ct }, nil)
	defer src.Close()

	_, err = src.Search(context.Background(), "q")
	require.NoError(t, err)

	info := ss.InitializeParams().ClientInfo
	require.NotNil(t, info)
	assert.Equal(t, "newsletter-arxiv", info.Name)
	assert.Equal(t, "v1.4.2", info.Version)
}

func TestSpecs(t *testing.T) {
	tv := TavilySpec("tvly-123", 7)
	assert.Equal(t, "tavily-search", tv.Tool)
	assert.Contains(t, tv.Env, "TAVILY_API_KEY=tvly-123")
	assert.Equal(t, 7, tv.Arguments["max_results"])

	ax := ArxivSpec(3)
	assert.Equal(t, []string{"tool", "run", "arxiv-mcp-server"}, ax.Args)
}

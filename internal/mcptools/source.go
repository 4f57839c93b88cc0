// Package mcptools connects the content agents to MCP servers that expose
// search tools (arXiv paper search, Tavily web search).
package mcptools

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ErrToolFailed is returned when the MCP server reports a tool-level error.
var ErrToolFailed = errors.New("mcp tool reported an error")

// Source answers a free-text query with raw material for an agent.
type Source interface {
	Search(ctx context.Context, query string) (string, error)
	Close() error
}

// ToolSpec describes how to launch an MCP server and which tool to call.
type ToolSpec struct {
	// Name labels the source in logs and errors.
	Name string

	// Command and Args launch the server over stdio.
	Command string
	Args    []string

	// Env is appended to the current environment of the server process.
	Env []string

	// Tool is the name of the tool to call.
	Tool string

	// QueryArg is the argument name the query is passed under.
	QueryArg string

	// Arguments are fixed extra arguments sent on every call.
	Arguments map[string]any
}

// ArxivSpec launches arxiv-mcp-server through uv.
func ArxivSpec(maxResults int) ToolSpec {
	return ToolSpec{
		Name:     "arxiv",
		Command:  "uv",
		Args:     []string{"tool", "run", "arxiv-mcp-server"},
		Tool:     "search_papers",
		QueryArg: "query",
		Arguments: map[string]any{
			"max_results": maxResults,
			"sort_by":     "date",
		},
	}
}

// TavilySpec launches the Tavily MCP server through npx.
func TavilySpec(apiKey string, maxResults int) ToolSpec {
	return ToolSpec{
		Name:     "tavily",
		Command:  "npx",
		Args:     []string{"-y", "tavily-mcp"},
		Env:      []string{"TAVILY_API_KEY=" + apiKey},
		Tool:     "tavily-search",
		QueryArg: "query",
		Arguments: map[string]any{
			"max_results": maxResults,
			"topic":       "news",
			"time_range":  "week",
		},
	}
}

// Compile-time check.
var _ Source = (*ToolSource)(nil)

// ToolSource calls a single tool on an MCP server. The session is opened on
// first use and kept until Close. The client announces itself as
// "newsletter-<spec.Name>" with the given version.
type ToolSource struct {
	spec      ToolSpec
	client    *mcp.Client
	transport func() mcp.Transport
	logger    *slog.Logger

	mu      sync.Mutex
	session *mcp.ClientSession
}

// NewToolSource creates a source that launches spec.Command over stdio.
func NewToolSource(spec ToolSpec, version string, logger *slog.Logger) *ToolSource {
	return NewToolSourceWithTransport(spec, version, func() mcp.Transport {
		cmd := exec.Command(spec.Command, spec.Args...)
		cmd.Env = append(os.Environ(), spec.Env...)
		return &mcp.CommandTransport{Command: cmd}
	}, logger)
}

// NewToolSourceWithTransport creates a source that connects through the
// transport returned by newTransport.
func NewToolSourceWithTransport(spec ToolSpec, version string, newTransport func() mcp.Transport, logger *slog.Logger) *ToolSource {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if spec.QueryArg == "" {
		spec.QueryArg = "query"
	}
	return &ToolSource{
		spec: spec,
		client: mcp.NewClient(&mcp.Implementation{
			Name:    "newsletter-" + spec.Name,
			Version: version,
		}, nil),
		transport: newTransport,
		logger:    logger.With("source", spec.Name),
	}
}

// Name returns the source label.
func (s *ToolSource) Name() string {
	return s.spec.Name
}

func (s *ToolSource) connect(ctx context.Context) (*mcp.ClientSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session != nil {
		return s.session, nil
	}

	s.logger.Debug("connecting to MCP server", "command", s.spec.Command)
	session, err := s.client.Connect(ctx, s.transport(), nil)
	if err != nil {
		return nil, fmt.Errorf("connect %s MCP server: %w", s.spec.Name, err)
	}
	s.session = session
	return session, nil
}

// Search calls the configured tool with query and returns its text content.
func (s *ToolSource) Search(ctx context.Context, query string) (string, error) {
	session, err := s.connect(ctx)
	if err != nil {
		return "", err
	}

	args := make(map[string]any, len(s.spec.Arguments)+1)
	for k, v := range s.spec.Arguments {
		args[k] = v
	}
	args[s.spec.QueryArg] = query

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      s.spec.Tool,
		Arguments: args,
	})
	if err != nil {
		return "", fmt.Errorf("call %s/%s: %w", s.spec.Name, s.spec.Tool, err)
	}

	text := flattenText(result.Content)
	if result.IsError {
		return "", fmt.Errorf("%w: %s/%s: %s", ErrToolFailed, s.spec.Name, s.spec.Tool, text)
	}

	s.logger.Debug("tool call complete", "tool", s.spec.Tool, "bytes", len(text))
	return text, nil
}

// Close terminates the MCP session, if one was opened.
func (s *ToolSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil
	}
	err := s.session.Close()
	s.session = nil
	return err
}

// flattenText joins every text content block.
func flattenText(content []mcp.Content) string {
	var parts []string
	for _, c := range content {
		if tc, ok := c.(*mcp.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// Package mcpserver exposes the newsletter workflow as MCP tools.
package mcpserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer creates an MCP server with the newsletter tools registered. The
// server reports version in its implementation info.
func NewServer(svc *Service, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "newsletter",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_newsletter",
		Description: "Search recent AI research papers and AI news in parallel, write a header, and assemble a newsletter. Returns the summary and the saved snapshot path.",
	}, svc.Generate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_snapshots",
		Description: "List saved newsletter runs, newest first.",
	}, svc.ListSnapshots)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "render_snapshot",
		Description: "Render a saved newsletter run as plain text or HTML.",
	}, svc.RenderSnapshot)

	return server
}

// RunStdio serves on stdin/stdout until stdin closes or ctx is canceled.
func RunStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves the streamable HTTP transport on addr until ctx is canceled.
func RunHTTP(ctx context.Context, server *mcp.Server, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)
	httpServer := &http.Server{Addr: addr, Handler: handler}

	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

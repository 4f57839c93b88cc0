package mcpserver

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/content"
	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/export"
	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/orchestrator"
)

func finishedState() *orchestrator.State {
	h := content.Header{Title: "Agents Weekly", Headline: "News"}
	st := &orchestrator.State{
		Papers: []content.ResearchItem{{ContentItem: content.ContentItem{
			Title: "Tree of Agents", Summary: "s", Source: "https://arxiv.org/abs/1", Category: content.CategoryPaper,
		}}},
		Header:     &h,
		PapersDone: true,
		NewsDone:   true,
		NewsFailed: true,
	}
	return st
}

func fakeGenerate(got *orchestrator.Config) GenerateFunc {
	return func(_ context.Context, cfg orchestrator.Config) (orchestrator.Result, error) {
		*got = cfg
		st := finishedState()
		return orchestrator.Assemble(st)
	}
}

func newTestService(t *testing.T, gen GenerateFunc) *Service {
	t.Helper()
	svc := NewService(gen, t.TempDir(), "anthropic:claude-sonnet-4-5", nil)
	svc.now = func() time.Time { return time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestService_Generate(t *testing.T) {
	var cfg orchestrator.Config
	svc := newTestService(t, fakeGenerate(&cfg))

	_, out, err := svc.Generate(context.Background(), nil, GenerateInput{NewsPrompt: "only tutorials"})
	require.NoError(t, err)

	assert.Equal(t, "only tutorials", cfg.NewsPrompt)
	assert.Equal(t, "Agents Weekly", out.Title)
	assert.Equal(t, 1, out.TotalItems)
	assert.Equal(t, 1, out.Papers)
	assert.Equal(t, []string{"AI news search failed"}, out.Notes)
	assert.Equal(t, out.Snapshot, filepath.Base(out.Snapshot))
	assert.FileExists(t, filepath.Join(svc.dataDir, out.Snapshot))
}

func TestService_GenerateError(t *testing.T) {
	svc := newTestService(t, func(context.Context, orchestrator.Config) (orchestrator.Result, error) {
		return orchestrator.Result{}, errors.New("boom")
	})
	_, _, err := svc.Generate(context.Background(), nil, GenerateInput{})
	assert.ErrorContains(t, err, "boom")
}

func TestService_ListAndRenderSnapshots(t *testing.T) {
	var cfg orchestrator.Config
	svc := newTestService(t, fakeGenerate(&cfg))

	_, gen, err := svc.Generate(context.Background(), nil, GenerateInput{})
	require.NoError(t, err)

	_, list, err := svc.ListSnapshots(context.Background(), nil, ListSnapshotsInput{})
	require.NoError(t, err)
	require.Len(t, list.Snapshots, 1)
	assert.Equal(t, gen.Snapshot, list.Snapshots[0].Path)
	assert.Equal(t, "Agents Weekly", list.Snapshots[0].Title)
	assert.Equal(t, "2025-06-03T09:00:00Z", list.Snapshots[0].CreatedAt)

	_, text, err := svc.RenderSnapshot(context.Background(), nil, RenderSnapshotInput{Path: list.Snapshots[0].Path})
	require.NoError(t, err)
	assert.Equal(t, "text", text.Format)
	assert.Contains(t, text.Document, "AGENTS WEEKLY")

	_, html, err := svc.RenderSnapshot(context.Background(), nil, RenderSnapshotInput{Path: filepath.Join(svc.dataDir, gen.Snapshot), Format: "HTML"})
	require.NoError(t, err)
	assert.Contains(t, html.Document, "<h1>Agents Weekly</h1>")
}

func TestService_RelativeDataDir(t *testing.T) {
	t.Chdir(t.TempDir())

	var cfg orchestrator.Config
	svc := NewService(fakeGenerate(&cfg), "data", "anthropic:claude-sonnet-4-5", nil)

	_, gen, err := svc.Generate(context.Background(), nil, GenerateInput{})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join("data", gen.Snapshot))

	_, list, err := svc.ListSnapshots(context.Background(), nil, ListSnapshotsInput{})
	require.NoError(t, err)
	require.Len(t, list.Snapshots, 1)
	assert.Equal(t, gen.Snapshot, list.Snapshots[0].Path)

	for _, p := range []string{gen.Snapshot, list.Snapshots[0].Path, filepath.Join("data", gen.Snapshot)} {
		_, out, err := svc.RenderSnapshot(context.Background(), nil, RenderSnapshotInput{Path: p})
		require.NoError(t, err, p)
		assert.Contains(t, out.Document, "AGENTS WEEKLY", p)
	}

	_, _, err = svc.RenderSnapshot(context.Background(), nil, RenderSnapshotInput{Path: filepath.Join("..", gen.Snapshot)})
	assert.ErrorIs(t, err, errOutsideDataDir)
}

func TestService_RenderSnapshotRejects(t *testing.T) {
	svc := newTestService(t, nil)

	_, _, err := svc.RenderSnapshot(context.Background(), nil, RenderSnapshotInput{Path: "../../etc/passwd"})
	assert.ErrorIs(t, err, errOutsideDataDir)

	_, _, err = svc.RenderSnapshot(context.Background(), nil, RenderSnapshotInput{Path: "x.yaml", Format: "pdf"})
	assert.ErrorContains(t, err, "unknown format")

	_, _, err = svc.RenderSnapshot(context.Background(), nil, RenderSnapshotInput{})
	assert.Error(t, err)
}

func TestService_ListSkipsUnreadable(t *testing.T) {
	svc := newTestService(t, nil)
	snap := export.NewSnapshot(finishedState(), "m", time.Now())
	snap.Version = 99
	require.NoError(t, export.SaveSnapshot(filepath.Join(svc.dataDir, "state_bad.yaml"), snap))

	_, list, err := svc.ListSnapshots(context.Background(), nil, ListSnapshotsInput{})
	require.NoError(t, err)
	assert.Empty(t, list.Snapshots)
}

func TestServer_ToolsOverInMemoryTransport(t *testing.T) {
	ctx := context.Background()
	var cfg orchestrator.Config
	server := NewServer(newTestService(t, fakeGenerate(&cfg)), "v1.4.2")

	serverT, clientT := mcp.NewInMemoryTransports()
	ss, err := server.Connect(ctx, serverT, nil)
	require.NoError(t, err)
	defer ss.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0"}, nil)
	cs, err := client.Connect(ctx, clientT, nil)
	require.NoError(t, err)
	defer cs.Close()

	tools, err := cs.ListTools(ctx, nil)
	require.NoError(t, err)
	var names []string
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"generate_newsletter", "list_snapshots", "render_snapshot"}, names)
	assert.Equal(t, "v1.4.2", cs.InitializeResult().ServerInfo.Version)

	res, err := cs.CallTool(ctx, &mcp.CallToolParams{Name: "generate_newsletter", Arguments: map[string]any{"papersPrompt": "graph agents"}})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "graph agents", cfg.PapersPrompt)
}

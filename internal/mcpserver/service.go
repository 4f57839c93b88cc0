package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/export"
	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/orchestrator"
	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/render"
)

// GenerateFunc runs one workflow with the given coordination settings.
type GenerateFunc func(ctx context.Context, cfg orchestrator.Config) (orchestrator.Result, error)

// Service handles MCP tool calls. Generated states are saved as snapshots in
// the data directory so they can be listed and rendered later. Snapshot paths
// handed to clients are relative to the data directory.
type Service struct {
	generate GenerateFunc
	dataDir  string
	model    string
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a Service.
func NewService(generate GenerateFunc, dataDir, model string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{generate: generate, dataDir: dataDir, model: model, logger: logger, now: time.Now}
}

// Generate runs the workflow and saves its state.
func (s *Service) Generate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GenerateInput,
) (*mcp.CallToolResult, GenerateOutput, error) {
	res, err := s.generate(ctx, orchestrator.Config{
		PapersPrompt: input.PapersPrompt,
		NewsPrompt:   input.NewsPrompt,
	})
	if err != nil {
		return nil, GenerateOutput{}, fmt.Errorf("generate newsletter: %w", err)
	}
	st := res.State

	out := GenerateOutput{
		Summary:    res.Summary,
		TotalItems: res.TotalItems,
		Papers:     len(st.Papers),
		News:       len(st.News),
		Notes:      orchestrator.FailureNotes(st),
	}
	if st.Header != nil {
		out.Title = st.Header.Title
	}

	snap := export.NewSnapshot(st, s.model, s.now())
	path := export.SnapshotPath(s.dataDir, snap)
	if err := export.SaveSnapshot(path, snap); err != nil {
		s.logger.Warn("could not save snapshot", "error", err)
	} else {
		out.Snapshot = filepath.Base(path)
	}
	return nil, out, nil
}

// ListSnapshots returns the saved runs, newest first.
func (s *Service) ListSnapshots(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ListSnapshotsInput,
) (*mcp.CallToolResult, ListSnapshotsOutput, error) {
	paths, err := filepath.Glob(filepath.Join(s.dataDir, "state_*.yaml"))
	if err != nil {
		return nil, ListSnapshotsOutput{}, err
	}

	out := ListSnapshotsOutput{Snapshots: []SnapshotSummary{}}
	for _, p := range paths {
		snap, err := export.LoadSnapshot(p)
		if err != nil {
			s.logger.Debug("skipping unreadable snapshot", "path", p, "error", err)
			continue
		}
		sum := SnapshotSummary{
			Path:       filepath.Base(p),
			RunID:      snap.RunID,
			CreatedAt:  snap.CreatedAt.Format(time.RFC3339),
			TotalItems: snap.State.TotalItems(),
		}
		if snap.State.Header != nil {
			sum.Title = snap.State.Header.Title
		}
		out.Snapshots = append(out.Snapshots, sum)
	}
	sort.Slice(out.Snapshots, func(i, j int) bool {
		return out.Snapshots[i].CreatedAt > out.Snapshots[j].CreatedAt
	})
	return nil, out, nil
}

// RenderSnapshot renders a saved run. Relative paths are resolved against the
// data directory, falling back to the working directory. Only files inside the
// data directory may be read.
func (s *Service) RenderSnapshot(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input RenderSnapshotInput,
) (*mcp.CallToolResult, RenderSnapshotOutput, error) {
	format := strings.ToLower(input.Format)
	if format == "" {
		format = "text"
	}
	if format != "text" && format != "html" {
		return nil, RenderSnapshotOutput{}, fmt.Errorf("unknown format %q", input.Format)
	}

	path, err := s.insideDataDir(input.Path)
	if err != nil {
		return nil, RenderSnapshotOutput{}, err
	}
	snap, err := export.LoadSnapshot(path)
	if err != nil {
		return nil, RenderSnapshotOutput{}, err
	}
	docs, err := render.Render(snap.State, snap.CreatedAt)
	if err != nil {
		return nil, RenderSnapshotOutput{}, err
	}

	out := RenderSnapshotOutput{Format: format, Document: docs.Text}
	if format == "html" {
		out.Document = docs.HTML
	}
	return nil, out, nil
}

var errOutsideDataDir = errors.New("snapshot path is outside the data directory")

func (s *Service) insideDataDir(p string) (string, error) {
	if p == "" {
		return "", errors.New("path is required")
	}
	dir, err := filepath.Abs(s.dataDir)
	if err != nil {
		return "", err
	}

	abs := p
	if !filepath.IsAbs(p) {
		abs = filepath.Join(dir, p)
		if _, err := os.Stat(abs); err != nil {
			if cwdAbs, err := filepath.Abs(p); err == nil && within(dir, cwdAbs) {
				abs = cwdAbs
			}
		}
	}
	abs = filepath.Clean(abs)
	if !within(dir, abs) {
		return "", errOutsideDataDir
	}
	return abs, nil
}

// within reports whether path lies inside dir. Both must be absolute.
func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(os.PathSeparator))
}

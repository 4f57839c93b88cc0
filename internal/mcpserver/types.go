package mcpserver

// GenerateInput is the input for the generate_newsletter tool.
type GenerateInput struct {
	PapersPrompt string `json:"papersPrompt,omitempty" jsonschema:"prompt for the research paper search (default: recent agentic AI papers)"`
	NewsPrompt   string `json:"newsPrompt,omitempty" jsonschema:"prompt for the AI news search (default: tools, tutorials and news)"`
}

// GenerateOutput is the result of the generate_newsletter tool.
type GenerateOutput struct {
	Summary    string   `json:"summary"`
	Title      string   `json:"title"`
	TotalItems int      `json:"totalItems"`
	Papers     int      `json:"papers"`
	News       int      `json:"news"`
	Notes      []string `json:"notes,omitempty"`
	// Snapshot is relative to the data directory.
	Snapshot   string   `json:"snapshot,omitempty"`
}

// ListSnapshotsInput is the input for the list_snapshots tool.
type ListSnapshotsInput struct{}

// ListSnapshotsOutput is the result of the list_snapshots tool.
type ListSnapshotsOutput struct {
	Snapshots []SnapshotSummary `json:"snapshots"`
}

// SnapshotSummary is a brief overview of one saved run.
type SnapshotSummary struct {
	// Path is relative to the data directory.
	Path       string `json:"path"`
	RunID      string `json:"runId"`
	CreatedAt  string `json:"createdAt"`
	Title      string `json:"title,omitempty"`
	TotalItems int    `json:"totalItems"`
}

// RenderSnapshotInput is the input for the render_snapshot tool.
type RenderSnapshotInput struct {
	Path   string `json:"path" jsonschema:"snapshot path returned by list_snapshots or generate_newsletter, relative to the data directory"`
	Format string `json:"format,omitempty" jsonschema:"text (default) or html"`
}

// RenderSnapshotOutput is the result of the render_snapshot tool.
type RenderSnapshotOutput struct {
	Format   string `json:"format"`
	Document string `json:"document"`
}

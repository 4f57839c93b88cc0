package agent

import (
	"log/slog"
	"time"

	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/content"
)

const researchSystem = `You are an AI research specialist focused on agent development.
Analyze the latest research papers you are given.

Focus on:
- Research papers on agent architectures
- Multi-agent systems
- AI agent frameworks and tools

Provide structured summaries with key findings.`

const newsSystem = `You are an AI research specialist focused on agent development.
Analyze the tool-related developments in AI agents, multi-agent systems, and frameworks.

Focus on:
- New tools and frameworks for agent development
- Industry developments and announcements
- Tutorials and educational content`

const headerSystem = `You are an AI newsletter editor.
Create a catchy, funny and engaging newsletter header that summarizes the latest developments in AI agents.`

const itemFields = `"title", "summary", "source" (URL), "published_date" (YYYY-MM-DD)`

const researchFormat = `Answer with a JSON array only. Each element is an object with the keys ` +
	itemFields + ` and "findings" (key findings of the paper).`

const newsFormat = `Answer with a JSON array only. Each element is an object with the keys ` +
	itemFields + ` and "category" (one of "tool", "framework", "tutorial", "news").`

const headerFormat = `Answer with a JSON object only, with the keys "title" (the newsletter title) ` +
	`and "headlines" (a short summary of the issue).`

// Search queries sent to the grounding sources.
const (
	ResearchQuery = "artificial intelligence agentic systems multi-agent"
	NewsQuery     = "AI agents frameworks tools tutorials announcements"
)

// Options are shared by the specialist constructors.
type Options struct {
	Timeout time.Duration
	Query   string
	Logger  *slog.Logger
	Now     func() time.Time
}

// NewResearchAgent creates the research-paper agent.
func NewResearchAgent(deps Deps, opts Options) *BaseAgent[[]content.ResearchItem] {
	query := opts.Query
	if query == "" {
		query = ResearchQuery
	}
	return NewBaseAgent(Config[[]content.ResearchItem]{
		Role:      RoleResearch,
		System:    researchSystem,
		Format:    researchFormat,
		Completer: deps.Completer,
		Source:    deps.Papers,
		Query:     query,
		Decode:    content.DecodeResearchItems,
		Timeout:   opts.Timeout,
		Logger:    opts.Logger,
		Now:       opts.Now,
	})
}

// NewNewsAgent creates the AI-news agent.
func NewNewsAgent(deps Deps, opts Options) *BaseAgent[[]content.ContentItem] {
	query := opts.Query
	if query == "" {
		query = NewsQuery
	}
	return NewBaseAgent(Config[[]content.ContentItem]{
		Role:      RoleNews,
		System:    newsSystem,
		Format:    newsFormat,
		Completer: deps.Completer,
		Source:    deps.News,
		Query:     query,
		Decode:    content.DecodeItems,
		Timeout:   opts.Timeout,
		Logger:    opts.Logger,
		Now:       opts.Now,
	})
}

// NewHeaderAgent creates the header agent. It has no grounding source.
func NewHeaderAgent(deps Deps, opts Options) *BaseAgent[content.Header] {
	return NewBaseAgent(Config[content.Header]{
		Role:      RoleHeader,
		System:    headerSystem,
		Format:    headerFormat,
		Completer: deps.Completer,
		Decode: func(data []byte, _ time.Time) (content.Header, error) {
			return content.DecodeHeader(data)
		},
		Timeout: opts.Timeout,
		Logger:  opts.Logger,
		Now:     opts.Now,
	})
}

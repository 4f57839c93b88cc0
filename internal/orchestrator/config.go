package orchestrator

import "time"

// Default timeouts.
const (
	DefaultSearchTimeout = 120 * time.Second
	DefaultHeaderTimeout = 30 * time.Second
	DefaultProbeTimeout  = 30 * time.Second
)

// Default prompts for the search branches.
const (
	DefaultPapersPrompt = `Find the 3 most recent arXiv papers related to artificial intelligence and agentic systems.`

	DefaultNewsPrompt = `Find the latest updates on artificial intelligence and agentic systems, specifically:
* 2 recent news releases or announcements about tools or frameworks
* 1-2 tutorials
* Up to 4 relevant news articles
Please provide the title, source, publication date, and link for each.`
)

// Config holds the coordination settings of a workflow run.
type Config struct {
	// SearchTimeout bounds the joint wait for both search branches.
	SearchTimeout time.Duration

	// HeaderTimeout bounds the header agent call.
	HeaderTimeout time.Duration

	// PapersPrompt and NewsPrompt are sent to the search agents.
	PapersPrompt string
	NewsPrompt   string
}

// withDefaults fills unset fields.
func (c Config) withDefaults() Config {
	if c.SearchTimeout <= 0 {
		c.SearchTimeout = DefaultSearchTimeout
	}
	if c.HeaderTimeout <= 0 {
		c.HeaderTimeout = DefaultHeaderTimeout
	}
	if c.PapersPrompt == "" {
		c.PapersPrompt = DefaultPapersPrompt
	}
	if c.NewsPrompt == "" {
		c.NewsPrompt = DefaultNewsPrompt
	}
	return c
}

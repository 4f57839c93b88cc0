// Package content defines the structured items the search agents produce and
// the newsletter header, plus decoding of model output into those types.
package content

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Category tags a ContentItem. The set is fixed.
type Category string

const (
	CategoryTool      Category = "tool"
	CategoryFramework Category = "framework"
	CategoryTutorial  Category = "tutorial"
	CategoryNews      Category = "news"
	CategoryPaper     Category = "paper"
)

// Categories lists every valid category in display order.
var Categories = []Category{CategoryTool, CategoryFramework, CategoryTutorial, CategoryNews, CategoryPaper}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Title returns the category with its first letter upper-cased.
func (c Category) Title() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

// DefaultAge is subtracted from the current time when an agent omits the
// publication date of an item.
const DefaultAge = 30 * 24 * time.Hour

// ErrInvalidItem is returned when an item fails validation.
var ErrInvalidItem = errors.New("invalid content item")

// ContentItem is a single AI-related item. Items are immutable once an agent
// has produced them.
type ContentItem struct {
	Title       string    `json:"title" yaml:"title"`
	Summary     string    `json:"summary" yaml:"summary"`
	Source      string    `json:"source" yaml:"source"`
	Category    Category  `json:"category" yaml:"category"`
	PublishedAt time.Time `json:"published_date" yaml:"publishedAt"`
}

// Validate checks that the item carries a title and a known category.
func (i ContentItem) Validate() error {
	if strings.TrimSpace(i.Title) == "" {
		return fmt.Errorf("%w: empty title", ErrInvalidItem)
	}
	if !i.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q for %q", ErrInvalidItem, i.Category, i.Title)
	}
	return nil
}

// ResearchItem is a research paper: a ContentItem with key findings. Its
// category is always CategoryPaper.
type ResearchItem struct {
	ContentItem `yaml:",inline"`
	Findings    string `json:"findings" yaml:"findings"`
}

// Header is the newsletter title and headline produced by the header agent.
type Header struct {
	Title    string `json:"title" yaml:"title"`
	Headline string `json:"headlines" yaml:"headline"`
}

// Fixed headers used when the header agent cannot be relied on.
var (
	// FallbackHeader replaces a header call that timed out or failed.
	FallbackHeader = Header{
		Title:    "AI Agent Newsletter: Latest Updates",
		Headline: "Discover the latest developments in AI agents and technologies",
	}

	// NoContentHeader is used when neither search produced anything.
	NoContentHeader = Header{
		Title:    "AI Agent Newsletter: Content Search Issues",
		Headline: "We encountered some technical difficulties gathering content. Please check back later for the latest AI developments!",
	}
)

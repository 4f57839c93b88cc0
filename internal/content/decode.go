package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// rawItem mirrors the JSON the agents are asked to emit. Dates arrive in a
// handful of layouts, so they are parsed separately.
type rawItem struct {
	Title         string `json:"title"`
	Summary       string `json:"summary"`
	Source        string `json:"source"`
	Category      string `json:"category"`
	PublishedDate string `json:"published_date"`
	Findings      string `json:"findings"`
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
}

// parseDate returns the parsed date, or now minus DefaultAge when the value is
// empty or unparseable.
func parseDate(s string, now time.Time) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return now.Add(-DefaultAge)
}

// normalizeCategory maps free-form model output onto the fixed set. Anything
// unrecognised becomes CategoryNews.
func normalizeCategory(s string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	switch {
	case c.Valid():
		return c
	case strings.Contains(string(c), "paper"), strings.Contains(string(c), "arxiv"):
		return CategoryPaper
	case strings.HasSuffix(string(c), "s") && Category(strings.TrimSuffix(string(c), "s")).Valid():
		return Category(strings.TrimSuffix(string(c), "s"))
	default:
		return CategoryNews
	}
}

func decodeRaw(data []byte) ([]rawItem, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("decode items: empty input")
	}

	if data[0] == '{' {
		var wrapped struct {
			Items  []rawItem `json:"items"`
			Papers []rawItem `json:"papers"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, fmt.Errorf("decode items: %w", err)
		}
		return append(wrapped.Items, wrapped.Papers...), nil
	}

	var items []rawItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return items, nil
}

// DecodeItems decodes a JSON array (or an object with an "items" array) into
// content items. Items without a title are dropped.
func DecodeItems(data []byte, now time.Time) ([]ContentItem, error) {
	raw, err := decodeRaw(data)
	if err != nil {
		return nil, err
	}

	items := make([]ContentItem, 0, len(raw))
	for _, r := range raw {
		item := ContentItem{
			Title:       strings.TrimSpace(r.Title),
			Summary:     strings.TrimSpace(r.Summary),
			Source:      strings.TrimSpace(r.Source),
			Category:    normalizeCategory(r.Category),
			PublishedAt: parseDate(r.PublishedDate, now),
		}
		if item.Validate() != nil {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// DecodeResearchItems decodes research papers. The category of every item is
// forced to CategoryPaper.
func DecodeResearchItems(data []byte, now time.Time) ([]ResearchItem, error) {
	raw, err := decodeRaw(data)
	if err != nil {
		return nil, err
	}

	papers := make([]ResearchItem, 0, len(raw))
	for _, r := range raw {
		p := ResearchItem{
			ContentItem: ContentItem{
				Title:       strings.TrimSpace(r.Title),
				Summary:     strings.TrimSpace(r.Summary),
				Source:      strings.TrimSpace(r.Source),
				Category:    CategoryPaper,
				PublishedAt: parseDate(r.PublishedDate, now),
			},
			Findings: strings.TrimSpace(r.Findings),
		}
		if p.Validate() != nil {
			continue
		}
		papers = append(papers, p)
	}
	return papers, nil
}

// DecodeHeader decodes a header object. The "headline" key is accepted as an
// alias for "headlines".
func DecodeHeader(data []byte) (Header, error) {
	var raw struct {
		Title     string `json:"title"`
		Headlines string `json:"headlines"`
		Headline  string `json:"headline"`
	}
	if err := json.Unmarshal(bytes.TrimSpace(data), &raw); err != nil {
		return Header{}, fmt.Errorf("decode header: %w", err)
	}

	h := Header{
		Title:    strings.TrimSpace(raw.Title),
		Headline: strings.TrimSpace(raw.Headlines),
	}
	if h.Headline == "" {
		h.Headline = strings.TrimSpace(raw.Headline)
	}
	if h.Title == "" {
		return Header{}, fmt.Errorf("decode header: missing title")
	}
	return h, nil
}

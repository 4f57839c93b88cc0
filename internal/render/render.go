// Package render turns a finished workflow state into the HTML and plain-text
// newsletter documents.
package render

import (
	"time"

	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/content"
	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/orchestrator"
)

// NamePlaceholder is left in the documents and replaced per subscriber at
// send time.
const NamePlaceholder = "{{name}}"

// Default header text used when a state has no header.
const (
	defaultTitle    = "AI Agents Newsletter"
	defaultHeadline = "Latest AI developments and insights"
)

// Documents are the rendered newsletter.
type Documents struct {
	HTML string
	Text string
}

// Render produces both documents for st, dated now.
func Render(st *orchestrator.State, now time.Time) (Documents, error) {
	v := newView(st, now)

	html, err := renderHTML(v)
	if err != nil {
		return Documents{}, err
	}
	return Documents{HTML: html, Text: renderText(v)}, nil
}

// view is the flattened data both renderers consume.
type view struct {
	Title    string
	Headline string
	Date     string
	Papers   []itemView
	News     []itemView
	Total    int
	Notes    []string
}

type itemView struct {
	Title    string
	Summary  string
	Findings string
	Source   string
	Category string
	Emoji    string
	Date     string
}

var categoryEmoji = map[content.Category]string{
	content.CategoryTool:      "🛠️",
	content.CategoryFramework: "⚡",
	content.CategoryTutorial:  "📖",
	content.CategoryNews:      "📰",
	content.CategoryPaper:     "📚",
}

const dateLayout = "January 02, 2006"

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "Recent"
	}
	return t.Format(dateLayout)
}

func newView(st *orchestrator.State, now time.Time) view {
	v := view{
		Title:    defaultTitle,
		Headline: defaultHeadline,
		Date:     now.Format(dateLayout),
		Total:    st.TotalItems(),
		Notes:    orchestrator.FailureNotes(st),
	}
	if st.Header != nil {
		if st.Header.Title != "" {
			v.Title = st.Header.Title
		}
		if st.Header.Headline != "" {
			v.Headline = st.Header.Headline
		}
	}

	for _, p := range st.Papers {
		v.Papers = append(v.Papers, itemView{
			Title:    p.Title,
			Summary:  p.Summary,
			Findings: p.Findings,
			Source:   p.Source,
			Category: "Research Paper",
			Emoji:    categoryEmoji[content.CategoryPaper],
			Date:     formatDate(p.PublishedAt),
		})
	}

	for _, n := range st.News {
		emoji, ok := categoryEmoji[n.Category]
		if !ok {
			emoji = "🔹"
		}
		v.News = append(v.News, itemView{
			Title:    n.Title,
			Summary:  n.Summary,
			Source:   n.Source,
			Category: n.Category.Title(),
			Emoji:    emoji,
			Date:     formatDate(n.PublishedAt),
		})
	}
	return v
}

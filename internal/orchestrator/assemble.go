package orchestrator

import (
	"fmt"
	"strings"

	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/content"
)

// FailureNotes returns one human-readable note per failed branch.
func FailureNotes(st *State) []string {
	var notes []string
	if st.PapersFailed {
		notes = append(notes, "research paper search failed")
	}
	if st.NewsFailed {
		notes = append(notes, "AI news search failed")
	}
	return notes
}

// Assemble builds the final summary from st. It must only be called once both
// branches are complete; it returns an error otherwise. A missing header is
// replaced with the default header.
func Assemble(st *State) (Result, error) {
	if !st.BothDone() {
		return Result{}, fmt.Errorf("assemble: searches incomplete (papers done=%t, news done=%t)",
			st.PapersDone, st.NewsDone)
	}

	if st.Header == nil {
		h := content.FallbackHeader
		st.Header = &h
	}

	total := st.TotalItems()
	summary := fmt.Sprintf("Newsletter %q assembled with %d items (%d research papers, %d AI updates)",
		st.Header.Title, total, len(st.Papers), len(st.News))
	if notes := FailureNotes(st); len(notes) > 0 {
		summary += fmt.Sprintf(" (Note: %s)", strings.Join(notes, ", "))
	}
	st.Summary = summary

	return Result{
		Summary:    summary,
		TotalItems: total,
		State:      st,
	}, nil
}

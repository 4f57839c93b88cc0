package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/content"
)

// Header runs the header step: it asks the header agent for a title and
// headline built from whatever content was found, bounded by HeaderTimeout.
// On timeout or failure the fixed fallback header is used, and when no
// content exists the agent is not called at all. st.Header is never nil on
// return.
func (c *Coordinator) Header(ctx context.Context, st *State) {
	c.emit(ProgressEvent{Branch: BranchHeader, Status: ProgressWorking})

	if st.TotalItems() == 0 {
		c.logger.Error("no content found to generate header from")
		h := content.NoContentHeader
		st.Header = &h
		c.emit(ProgressEvent{Branch: BranchHeader, Status: ProgressFailed, Message: "no content"})
		return
	}

	prompt := HeaderPrompt(st)
	h, err := runBounded(ctx, c.cfg.HeaderTimeout, func(ctx context.Context) (content.Header, error) {
		return c.agents.Header.Run(ctx, prompt)
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			c.logger.Error("header generation timed out", "timeout", c.cfg.HeaderTimeout)
		} else {
			c.logger.Error("header generation failed", "err", err)
		}
		fallback := content.FallbackHeader
		st.Header = &fallback
		c.emit(ProgressEvent{Branch: BranchHeader, Status: ProgressFailed, Message: err.Error()})
		return
	}

	st.Header = &h
	c.logger.Info("generated header", "title", h.Title)
	c.emit(ProgressEvent{Branch: BranchHeader, Status: ProgressComplete, Message: h.Title})
}

// HeaderPrompt builds the header agent prompt from the content in st and
// notes which searches failed.
func HeaderPrompt(st *State) string {
	var sb strings.Builder
	sb.WriteString("Generate a catchy newsletter header that consists of a title for the newsletter " +
		"with about 5 to 15 words, then a summary of the following content:\n\n")

	if len(st.News) > 0 {
		sb.WriteString("AI-Related Items (category, title):\n")
		for _, item := range st.News {
			fmt.Fprintf(&sb, "- %s: %s\n", item.Category, item.Title)
		}
	}

	if len(st.Papers) > 0 {
		sb.WriteString("\nResearch Papers:\n")
		for _, p := range st.Papers {
			fmt.Fprintf(&sb, "- %s\n", p.Title)
		}
	}

	switch {
	case st.PapersFailed && st.NewsFailed:
		sb.WriteString("\nNote: Both content searches had technical issues, generating header for available content.")
	case st.PapersFailed:
		sb.WriteString("\nNote: The research paper search had technical issues, focusing on AI items.")
	case st.NewsFailed:
		sb.WriteString("\nNote: The AI items search had technical issues, focusing on research papers.")
	}
	return sb.String()
}

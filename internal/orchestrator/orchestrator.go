package orchestrator

import (
	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/content"
)

// Phase is the position of a workflow run.
type Phase int

const (
	// PhaseWaitingBoth: the search branches are running.
	PhaseWaitingBoth Phase = iota

	// PhaseReady: both branches are complete; header and assembly may run.
	PhaseReady

	// PhaseDone: the run has been assembled.
	PhaseDone
)

func (p Phase) String() string {
	names := [...]string{"waiting-both", "ready", "done"}
	if int(p) >= 0 && int(p) < len(names) {
		return names[p]
	}
	return "unknown"
}

// Branch identifies one of the concurrent search operations, or the header step.
type Branch string

const (
	// BranchPapers searches for research papers.
	BranchPapers Branch = "papers"
	// BranchNews searches for AI news and tools.
	BranchNews Branch = "news"
	// BranchHeader writes the title and headline once both searches finish.
	BranchHeader Branch = "header"
)

// State is the mutable record of one workflow run. It is owned by the
// Coordinator for the duration of the run.
type State struct {
	Papers []content.ResearchItem `yaml:"papers"`
	News   []content.ContentItem  `yaml:"news"`
	Header *content.Header        `yaml:"header,omitempty"`

	// Summary is the text produced by Assemble.
	Summary string `yaml:"summary,omitempty"`

	PapersDone   bool `yaml:"papersDone"`
	NewsDone     bool `yaml:"newsDone"`
	PapersFailed bool `yaml:"papersFailed"`
	NewsFailed   bool `yaml:"newsFailed"`
}

// BothDone reports whether both search branches have completed, successfully or not.
func (s *State) BothDone() bool {
	return s.PapersDone && s.NewsDone
}

// TotalItems is the number of papers plus news items.
func (s *State) TotalItems() int {
	return len(s.Papers) + len(s.News)
}

// Result is the outcome of a workflow run.
type Result struct {
	Summary    string
	TotalItems int
	State      *State
}

// ProgressEvent is emitted as branches and steps change status.
type ProgressEvent struct {
	Branch  Branch
	Status  ProgressStatus
	Message string
}

// ProgressStatus is the state of a branch or step.
type ProgressStatus string

const (
	ProgressPending  ProgressStatus = "pending"
	ProgressWorking  ProgressStatus = "working"
	ProgressComplete ProgressStatus = "complete"
	ProgressFailed   ProgressStatus = "failed"
)

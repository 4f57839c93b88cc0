package orchestrator

import (
	"fmt"
	"sync"
)

// ProgressReporter emits progress events through a buffered channel.
type ProgressReporter struct {
	mu     sync.Mutex
	ch     chan ProgressEvent
	closed bool
}

// NewProgressReporter creates a ProgressReporter with a buffered channel of size 64.
func NewProgressReporter() *ProgressReporter {
	return &ProgressReporter{
		ch: make(chan ProgressEvent, 64),
	}
}

// Emit sends a progress event in a non-blocking fashion.
// If the channel is full or closed, the event is silently dropped. Abandoned
// branches may still emit after the run has returned.
func (pr *ProgressReporter) Emit(event ProgressEvent) {
	pr.mu.Lock()
	defer pr.mu.Unlock()
	if pr.closed {
		return
	}
	select {
	case pr.ch <- event:
	default:
	}
}

// Subscribe returns a read-only channel for consuming progress events.
func (pr *ProgressReporter) Subscribe() <-chan ProgressEvent {
	return pr.ch
}

// Close closes the progress event channel. It is safe to call more than once.
func (pr *ProgressReporter) Close() {
	pr.mu.Lock()
	defer pr.mu.Unlock()
	if !pr.closed {
		pr.closed = true
		close(pr.ch)
	}
}

// FormatProgress formats a ProgressEvent as a human-readable status line.
func FormatProgress(event ProgressEvent) string {
	switch event.Status {
	case ProgressPending:
		return fmt.Sprintf("  ○ %s (pending)", event.Branch)
	case ProgressWorking:
		return fmt.Sprintf("  ● %s...", event.Branch)
	case ProgressComplete:
		if event.Message != "" {
			return fmt.Sprintf("  ✓ %s complete: %s", event.Branch, event.Message)
		}
		return fmt.Sprintf("  ✓ %s complete", event.Branch)
	case ProgressFailed:
		return fmt.Sprintf("  ✗ %s failed: %s", event.Branch, event.Message)
	default:
		return fmt.Sprintf("  ? %s (unknown status)", event.Branch)
	}
}

package orchestrator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProgressReporter_EmitAndSubscribe(t *testing.T) {
	pr := NewProgressReporter()
	defer pr.Close()

	want := ProgressEvent{Branch: BranchPapers, Status: ProgressWorking, Message: "searching"}
	pr.Emit(want)

	select {
	case got := <-pr.Subscribe():
		assert.Equal(t, want, got)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for progress event")
	}
}

func TestProgressReporter_EmitWhenFull_DoesNotBlock(t *testing.T) {
	pr := NewProgressReporter()
	defer pr.Close()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			pr.Emit(ProgressEvent{Branch: BranchNews, Status: ProgressWorking})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Emit blocked when the channel was full")
	}
}

func TestFormatProgress(t *testing.T) {
	tests := []struct {
		ev   ProgressEvent
		want string
	}{
		{ProgressEvent{Branch: BranchPapers, Status: ProgressPending}, "  ○ papers (pending)"},
		{ProgressEvent{Branch: BranchNews, Status: ProgressWorking}, "  ● news..."},
		{ProgressEvent{Branch: BranchNews, Status: ProgressComplete, Message: "4 items"}, "  ✓ news complete: 4 items"},
		{ProgressEvent{Branch: BranchHeader, Status: ProgressComplete}, "  ✓ header complete"},
		{ProgressEvent{Branch: BranchPapers, Status: ProgressFailed, Message: "timeout"}, "  ✗ papers failed: timeout"},
		{ProgressEvent{Branch: BranchPapers, Status: "odd"}, "  ? papers (unknown status)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatProgress(tt.ev))
	}
}

func TestProgressReporter_EmitAfterClose(t *testing.T) {
	pr := NewProgressReporter()
	pr.Close()

	assert.NotPanics(t, func() {
		pr.Emit(ProgressEvent{Branch: BranchNews, Status: ProgressWorking})
		pr.Close()
	})
	_, open := <-pr.Subscribe()
	assert.False(t, open)
}

package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/agent"
	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/content"
	"golang.org/x/sync/errgroup"
)

// branchResult carries one branch's outcome back to the coordinator.
type branchResult struct {
	branch Branch
	papers []content.ResearchItem
	news   []content.ContentItem
	err    error
}

// Coordinator runs the two search branches, then the header step.
type Coordinator struct {
	agents     agent.Set
	cfg        Config
	logger     *slog.Logger
	onProgress func(ProgressEvent)
}

// NewCoordinator creates a Coordinator over agents. onProgress is called
// from the coordinating goroutine and from branch goroutines; it may be nil.
func NewCoordinator(agents agent.Set, cfg Config, logger *slog.Logger, onProgress func(ProgressEvent)) *Coordinator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Coordinator{
		agents:     agents,
		cfg:        cfg.withDefaults(),
		logger:     logger,
		onProgress: onProgress,
	}
}

// Search runs the papers and news branches concurrently and records their
// results in st. A failing branch never cancels the other one. When the
// overall search timeout expires, both branches are marked complete and
// failed and Search returns without waiting for them.
//
// On return st.BothDone() is always true.
func (c *Coordinator) Search(ctx context.Context, st *State) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.SearchTimeout)
	defer cancel()

	results := make(chan branchResult, 2)

	// Branch goroutines always return nil so that errgroup never cancels
	// the sibling branch.
	var g errgroup.Group
	c.emit(ProgressEvent{Branch: BranchPapers, Status: ProgressPending})
	c.emit(ProgressEvent{Branch: BranchNews, Status: ProgressPending})

	g.Go(func() error {
		c.emit(ProgressEvent{Branch: BranchPapers, Status: ProgressWorking})
		c.logger.Info("searching for research papers")
		papers, err := c.agents.Research.Run(ctx, c.cfg.PapersPrompt)
		results <- branchResult{branch: BranchPapers, papers: papers, err: err}
		return nil
	})
	g.Go(func() error {
		c.emit(ProgressEvent{Branch: BranchNews, Status: ProgressWorking})
		c.logger.Info("searching for AI news items")
		news, err := c.agents.News.Run(ctx, c.cfg.NewsPrompt)
		results <- branchResult{branch: BranchNews, news: news, err: err}
		return nil
	})

	for received := 0; received < 2; received++ {
		select {
		case res := <-results:
			c.record(st, res)
		case <-ctx.Done():
			c.logger.Error("overall search timed out", "timeout", c.cfg.SearchTimeout)
			c.forceComplete(st)
			return
		}
	}

	_ = g.Wait()
}

// record writes one branch's outcome into st. Only the coordinating goroutine
// calls it, and each branch writes its own fields.
func (c *Coordinator) record(st *State, res branchResult) {
	switch res.branch {
	case BranchPapers:
		st.Papers = append(st.Papers, res.papers...)
		st.PapersFailed = res.err != nil
		st.PapersDone = true
	case BranchNews:
		st.News = append(st.News, res.news...)
		st.NewsFailed = res.err != nil
		st.NewsDone = true
	}

	if res.err != nil {
		msg := "search failed"
		if errors.Is(res.err, context.DeadlineExceeded) {
			msg = "search timed out"
		}
		c.logger.Error(msg, "branch", res.branch, "err", res.err)
		c.emit(ProgressEvent{Branch: res.branch, Status: ProgressFailed, Message: res.err.Error()})
		return
	}

	count := len(res.papers) + len(res.news)
	c.logger.Info("search completed", "branch", res.branch, "items", count)
	c.emit(ProgressEvent{Branch: res.branch, Status: ProgressComplete, Message: itemCount(count)})
}

// forceComplete marks both branches complete and failed after the overall
// timeout. Items recorded before the timeout are kept; late results are
// discarded.
func (c *Coordinator) forceComplete(st *State) {
	for _, b := range []Branch{BranchPapers, BranchNews} {
		done := st.PapersDone
		if b == BranchNews {
			done = st.NewsDone
		}
		if !done {
			c.emit(ProgressEvent{Branch: b, Status: ProgressFailed, Message: "overall search timeout"})
		}
	}
	st.PapersDone, st.NewsDone = true, true
	st.PapersFailed, st.NewsFailed = true, true
}

// runBounded calls fn with a context limited to timeout and returns as soon
// as the limit passes, even if fn ignores cancellation.
func runBounded[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		val T
		err error
	}
	ch := make(chan outcome, 1)
	go func() {
		v, err := fn(ctx)
		ch <- outcome{val: v, err: err}
	}()

	select {
	case out := <-ch:
		return out.val, out.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// emit sends a progress event if a callback is registered.
func (c *Coordinator) emit(ev ProgressEvent) {
	if c.onProgress != nil {
		c.onProgress(ev)
	}
}

func itemCount(n int) string {
	if n == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d items", n)
}

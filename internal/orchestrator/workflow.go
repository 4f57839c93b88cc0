package orchestrator

import (
	"context"
	"fmt"
)

// Run executes one newsletter workflow: both searches, then the header step,
// then assembly. Search and header failures never abort the run; the only
// error returned is an assembly invariant violation.
func (c *Coordinator) Run(ctx context.Context) (Result, error) {
	st := &State{}
	c.logger.Info("starting newsletter workflow")

	var result Result
	phase := PhaseWaitingBoth
	for phase != PhaseDone {
		c.logger.Debug("workflow phase", "phase", phase)

		switch phase {
		case PhaseWaitingBoth:
			c.Search(ctx, st)
			if !st.BothDone() {
				return Result{State: st}, fmt.Errorf("workflow: searches returned incomplete")
			}
			for _, note := range FailureNotes(st) {
				c.logger.Warn("proceeding with available content", "note", note)
			}
			phase = PhaseReady

		case PhaseReady:
			c.Header(ctx, st)
			res, err := Assemble(st)
			if err != nil {
				return Result{State: st}, err
			}
			result = res
			phase = PhaseDone
		}
	}

	c.logger.Info("workflow completed",
		"papers", len(st.Papers),
		"news", len(st.News),
		"summary", result.Summary,
	)
	return result, nil
}

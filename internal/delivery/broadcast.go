package delivery

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/render"
)

// Broadcast defaults.
const (
	DefaultBatchSize  = 10
	DefaultBatchPause = time.Second
)

// Failure records a recipient that could not be sent to.
type Failure struct {
	Email string
	Err   error
}

// Report summarises a broadcast.
type Report struct {
	Sent   int
	Failed []Failure
}

func (r Report) String() string {
	return fmt.Sprintf("sent %d, failed %d", r.Sent, len(r.Failed))
}

// Broadcaster sends a document to subscribers in batches.
type Broadcaster struct {
	Mailer    Mailer
	From      string
	Subject   string
	BatchSize int
	Pause     time.Duration
	Logger    *slog.Logger

	// Sleep waits between batches; tests replace it.
	Sleep func(ctx context.Context, d time.Duration) error
}

func (b *Broadcaster) batchSize() int {
	if b.BatchSize <= 0 {
		return DefaultBatchSize
	}
	return b.BatchSize
}

func (b *Broadcaster) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return b.Logger
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Send delivers html to every subscriber, replacing the name placeholder per
// recipient. A failed recipient never stops the rest of its batch; context
// cancellation stops before the next batch and marks the remainder failed.
func (b *Broadcaster) Send(ctx context.Context, html string, subs []Subscriber) Report {
	log := b.logger()
	size := b.batchSize()
	pause := b.Pause
	sleep := b.Sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	var (
		mu     sync.Mutex
		report Report
	)

	for start := 0; start < len(subs); start += size {
		end := min(start+size, len(subs))
		batch := subs[start:end]

		if err := ctx.Err(); err != nil {
			for _, s := range subs[start:] {
				report.Failed = append(report.Failed, Failure{Email: s.Email, Err: err})
			}
			break
		}

		g := new(errgroup.Group)
		g.SetLimit(size)
		for _, sub := range batch {
			g.Go(func() error {
				err := b.Mailer.Send(ctx, Message{
					From:    b.From,
					To:      sub.Email,
					Subject: b.Subject,
					HTML:    strings.ReplaceAll(html, render.NamePlaceholder, sub.Name),
				})

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					log.Warn("send failed", "email", sub.Email, "error", err)
					report.Failed = append(report.Failed, Failure{Email: sub.Email, Err: err})
					return nil
				}
				log.Debug("sent", "email", sub.Email)
				report.Sent++
				return nil
			})
		}
		_ = g.Wait()

		if end < len(subs) && pause > 0 {
			// Cancellation is picked up at the top of the next batch.
			_ = sleep(ctx, pause)
		}
	}

	log.Info("broadcast finished", "sent", report.Sent, "failed", len(report.Failed))
	return report
}

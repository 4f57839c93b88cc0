package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/agent"
	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/config"
	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/delivery"
	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/export"
	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/logging"
	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/orchestrator"
	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/render"
)

type runFlags struct {
	runs            string
	resume          string
	requestApproval bool
}

func newRunCmd(a *app) *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Generate, render and publish one newsletter issue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runNewsletter(cmd.Context(), f)
		},
	}
	cmd.Flags().StringVar(&f.runs, "runs", string(config.ModeLocal), "where documents go: local or on_aws")
	cmd.Flags().StringVar(&f.resume, "resume", "", "render a saved state snapshot instead of running the agents")
	cmd.Flags().BoolVar(&f.requestApproval, "request-approval", false, "email the administrator an approval link (on_aws only)")
	return cmd
}

func (a *app) runNewsletter(ctx context.Context, f runFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	mode, err := config.ParseMode(f.runs)
	if err != nil {
		return err
	}

	cfg, logger, err := a.setup()
	if err != nil {
		return err
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		st    *orchestrator.State
		model = cfg.Model
	)
	if f.resume != "" {
		// The agents do not run, so only the publishing settings matter.
		if err := cfg.ValidatePublish(mode); err != nil {
			return err
		}
		snap, err := export.LoadSnapshot(f.resume)
		if err != nil {
			return err
		}
		logger.Info("resuming from snapshot", "path", f.resume, "run_id", snap.RunID)
		st, model = snap.State, snap.Model
		if !st.BothDone() {
			return fmt.Errorf("snapshot %s: searches incomplete", f.resume)
		}
		if _, err := orchestrator.Assemble(st); err != nil {
			return err
		}
	} else {
		// Missing settings abort before any agent work.
		if err := cfg.Validate(mode); err != nil {
			return err
		}
		res, err := a.generate(ctx, cfg, logger)
		if err != nil {
			return err
		}
		st = res.State

		snap := export.NewSnapshot(st, model, a.now())
		path := export.SnapshotPath(cfg.DataDir, snap)
		if err := export.SaveSnapshot(path, snap); err != nil {
			logger.Warn("could not save snapshot", "error", err)
		} else {
			logger.Info("state saved", "path", path)
		}
	}

	fmt.Fprintln(a.stdout, st.Summary)

	docs, err := render.Render(st, a.now())
	if err != nil {
		return err
	}
	return a.publish(ctx, cfg, mode, f.requestApproval, docs, logger)
}

// generate runs the agents and returns the assembled result. Progress lines
// go to stderr while the searches run.
func (a *app) generate(ctx context.Context, cfg *config.Config, logger *logging.Logger) (orchestrator.Result, error) {
	return a.generateWith(ctx, cfg, orchestrator.Config{}, logger)
}

// generateWith is generate with caller-supplied prompts.
func (a *app) generateWith(ctx context.Context, cfg *config.Config, oc orchestrator.Config, logger *logging.Logger) (orchestrator.Result, error) {
	deps, err := a.deps(cfg, logger.Logger)
	if err != nil {
		return orchestrator.Result{}, err
	}
	reg, err := agent.NewRegistry(deps, cfg.AgentTimeout, logger.Logger)
	if err != nil {
		return orchestrator.Result{}, err
	}
	defer reg.Close()

	reporter := orchestrator.NewProgressReporter()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for ev := range reporter.Subscribe() {
			fmt.Fprintln(a.stderr, orchestrator.FormatProgress(ev))
		}
	}()

	oc.SearchTimeout = cfg.SearchTimeout
	oc.HeaderTimeout = cfg.HeaderTimeout
	coord := orchestrator.NewCoordinator(reg.Agents(), oc, logger.Logger, reporter.Emit)

	res, err := coord.Run(ctx)
	reporter.Close()
	wg.Wait()
	return res, err
}

// publish writes the documents locally or to S3, then optionally asks for
// approval.
func (a *app) publish(ctx context.Context, cfg *config.Config, mode config.Mode, requestApproval bool, docs render.Documents, logger *logging.Logger) error {
	if mode == config.ModeLocal {
		if requestApproval {
			logger.Warn("--request-approval is ignored in local mode")
		}
		p, err := delivery.Publish(ctx, delivery.NewLocalStore(cfg.OutputDir), docs, a.now())
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "HTML: %s/%s\nText: %s/%s\n", cfg.OutputDir, p.HTMLKey, cfg.OutputDir, p.TextKey)
		return nil
	}

	clients, err := a.aws(ctx, cfg)
	if err != nil {
		return err
	}
	p, err := delivery.Publish(ctx, delivery.NewS3Store(clients.S3, cfg.S3Bucket), docs, a.now())
	if err != nil {
		return err
	}
	logger.Info("newsletter uploaded", "bucket", cfg.S3Bucket, "html", p.HTMLKey, "text", p.TextKey)
	fmt.Fprintf(a.stdout, "HTML: s3://%s/%s\nText: s3://%s/%s\n", cfg.S3Bucket, p.HTMLKey, cfg.S3Bucket, p.TextKey)

	if !requestApproval {
		return nil
	}
	err = delivery.RequestApproval(ctx, delivery.NewSESMailer(clients.SES), delivery.ApprovalRequest{
		From:     cfg.FromEmail,
		Admin:    cfg.AdminEmail,
		BaseURL:  cfg.APIGatewayURL,
		Key:      p.HTMLKey,
		Document: docs.HTML,
	})
	if err != nil {
		return err
	}
	logger.Info("approval email sent", "admin", cfg.AdminEmail)
	return nil
}

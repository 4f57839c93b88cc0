package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/config"
	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/delivery"
	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/logging"
)

// approver builds the delivery side from configuration.
func (a *app) approver(ctx context.Context, cfg *config.Config, logger *logging.Logger) (*delivery.Approver, error) {
	if err := cfg.ValidateDelivery(); err != nil {
		return nil, err
	}
	clients, err := a.aws(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &delivery.Approver{
		Newsletters:    delivery.NewS3Store(clients.S3, cfg.S3Bucket),
		Subscribers:    delivery.NewS3Store(clients.S3, cfg.SubscribersBucket),
		SubscribersKey: cfg.SubscribersKey,
		Broadcaster:    broadcaster(cfg, delivery.NewSESMailer(clients.SES), logger.Logger),
		Logger:         logger.Logger,
		Now:            a.now,
	}, nil
}

func newApproveCmd(a *app) *cobra.Command {
	var key string
	cmd := &cobra.Command{
		Use:   "approve",
		Short: "Send a stored newsletter to every subscriber",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if key == "" {
				return errors.New("--newsletter is required")
			}
			cfg, logger, err := a.setup()
			if err != nil {
				return err
			}
			defer logger.Close()

			ap, err := a.approver(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			report, msg, err := ap.Approve(cmd.Context(), key)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, msg)
			for _, f := range report.Failed {
				fmt.Fprintf(a.stderr, "  ✗ %s: %v\n", f.Email, f.Err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&key, "newsletter", "", "storage key of the approved HTML document")
	return cmd
}

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the approval endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := a.setup()
			if err != nil {
				return err
			}
			defer logger.Close()

			ap, err := a.approver(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           delivery.NewRouter(ap),
				ReadHeaderTimeout: 10 * time.Second,
			}
			logger.Info("serving approval endpoint", "addr", addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

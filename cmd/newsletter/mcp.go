package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/config"
	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/logging"
	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/mcpserver"
	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/orchestrator"
)

func newServeMCPCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve-mcp",
		Short: "Expose the workflow as MCP tools (stdio, or HTTP with --addr)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := a.setup()
			if err != nil {
				return err
			}
			defer logger.Close()

			if err := cfg.Validate(config.ModeLocal); err != nil {
				return err
			}
			svc := mcpserver.NewService(a.generateFunc(cfg, logger), cfg.DataDir, cfg.Model, logger.Logger)
			server := mcpserver.NewServer(svc, version)

			if addr != "" {
				logger.Info("serving MCP over HTTP", "addr", addr)
				return mcpserver.RunHTTP(cmd.Context(), server, addr)
			}
			return mcpserver.RunStdio(cmd.Context(), server)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "serve streamable HTTP on this address instead of stdio")
	return cmd
}

// generateFunc adapts generate for the MCP service, keeping configured
// timeouts while letting the caller override the prompts.
func (a *app) generateFunc(cfg *config.Config, logger *logging.Logger) mcpserver.GenerateFunc {
	return func(ctx context.Context, oc orchestrator.Config) (orchestrator.Result, error) {
		return a.generateWith(ctx, cfg, oc, logger)
	}
}

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/agent"
	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/config"
	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/orchestrator"
)

// errProbeFailed is returned when at least one agent fails the connectivity test.
var errProbeFailed = errors.New("connectivity test failed")

func newTestCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Check that every agent answers",
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
			deps, err := a.deps(cfg, logger.Logger)
			if err != nil {
				return err
			}
			reg, err := agent.NewRegistry(deps, cfg.ProbeTimeout, logger.Logger)
			if err != nil {
				return err
			}
			defer reg.Close()

			fmt.Fprintln(a.stdout, "Testing agents...")
			results := orchestrator.ProbeAgents(cmd.Context(), reg.Agents(), cfg.ProbeTimeout)

			failed := 0
			for _, r := range results {
				fmt.Fprintln(a.stdout, r.String())
				if !r.OK() {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d agents", errProbeFailed, failed, len(results))
			}
			fmt.Fprintln(a.stdout, "All agents OK")
			return nil
		},
	}
}

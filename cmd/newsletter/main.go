package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/config"
	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/logging"
)

// version is set by goreleaser at build time.
var version = "dev"

func main() {
	if err := newRootCmd(defaultApp(os.Stdout, os.Stderr)).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// app carries the global flags and the process-level collaborators of one
// invocation.
type app struct {
	configFile string
	envFile    string
	logLevel   string
	model      string

	stdout io.Writer
	stderr io.Writer
	now    func() time.Time

	// deps builds the agent backends; tests swap it for fakes.
	deps depsFactory
	// aws builds the delivery clients; tests swap it for fakes.
	aws awsFactory
}

func defaultApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout: stdout,
		stderr: stderr,
		now:    time.Now,
		deps:   liveDeps,
		aws:    liveAWS,
	}
}

func newRootCmd(a *app) *cobra.Command {
	run := newRunCmd(a)

	root := &cobra.Command{
		Use:   "newsletter",
		Short: "Generate the AI agents newsletter",
		Long: `newsletter searches recent AI research papers and AI news in parallel,
writes a header, renders HTML and text editions, and optionally publishes them
for approval and delivery to subscribers.`,
		RunE:          run.RunE,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}
	root.Flags().AddFlagSet(run.Flags())

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default ./newsletter.yaml when present)")
	pf.StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&a.model, "model", "", "model identifier, e.g. anthropic:claude-sonnet-4-5")

	root.AddCommand(run, newTestCmd(a), newMermaidCmd(a), newApproveCmd(a), newServeCmd(a), newServeMCPCmd(a))
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	return root
}

// setup loads the configuration and opens the logger. Flags override
// configured values.
func (a *app) setup() (*config.Config, *logging.Logger, error) {
	cfg, err := config.Load(config.Options{File: a.configFile, EnvFile: a.envFile})
	if err != nil {
		return nil, nil, err
	}
	if a.model != "" {
		cfg.Model = a.model
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}

	logger, err := logging.New(cfg.LogLevel, a.stderr, cfg.LogDir)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

package main

import (
	"context"
	"fmt"
	"log/slog"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ses"

	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/agent"
	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/config"
	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/delivery"
	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/llm"
	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/mcptools"
)

type depsFactory func(cfg *config.Config, logger *slog.Logger) (agent.Deps, error)

// liveDeps wires the Anthropic completer and the arXiv and Tavily MCP
// servers.
func liveDeps(cfg *config.Config, logger *slog.Logger) (agent.Deps, error) {
	completer, err := llm.NewAnthropicCompleter(cfg.AnthropicAPIKey, cfg.Model)
	if err != nil {
		return agent.Deps{}, err
	}
	return agent.Deps{
		Completer: completer,
		Papers:    mcptools.NewToolSource(mcptools.ArxivSpec(cfg.MaxPapers), version, logger),
		News:      mcptools.NewToolSource(mcptools.TavilySpec(cfg.TavilyAPIKey, cfg.MaxResults), version, logger),
	}, nil
}

// awsClients are the delivery backends used in on_aws mode.
type awsClients struct {
	S3  delivery.S3API
	SES delivery.SESAPI
}

type awsFactory func(ctx context.Context, cfg *config.Config) (awsClients, error)

func liveAWS(ctx context.Context, cfg *config.Config) (awsClients, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return awsClients{}, fmt.Errorf("load aws config: %w", err)
	}
	return awsClients{
		S3:  s3.NewFromConfig(awsCfg),
		SES: ses.NewFromConfig(awsCfg),
	}, nil
}

// broadcaster returns the subscriber broadcaster configured by cfg.
func broadcaster(cfg *config.Config, mailer delivery.Mailer, logger *slog.Logger) *delivery.Broadcaster {
	return &delivery.Broadcaster{
		Mailer:    mailer,
		From:      cfg.FromEmail,
		BatchSize: cfg.BatchSize,
		Pause:     cfg.BatchPause,
		Logger:    logger,
	}
}

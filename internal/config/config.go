// Package config loads newsletter settings from defaults, an optional YAML
// file, a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingSetting is returned by Validate when required settings are unset.
var ErrMissingSetting = errors.New("missing required setting")

// Mode says where the run executes.
type Mode string

const (
	ModeLocal Mode = "local"
	ModeAWS   Mode = "on_aws"
)

// ParseMode validates a --runs value.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeLocal, ModeAWS:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown run mode %q (want %q or %q)", s, ModeLocal, ModeAWS)
}

// Config holds every setting the CLI needs.
type Config struct {
	AnthropicAPIKey string `mapstructure:"anthropic_api_key"`
	TavilyAPIKey    string `mapstructure:"tavily_api_key"`
	Model           string `mapstructure:"model"`

	S3Bucket          string `mapstructure:"s3_bucket"`
	SubscribersBucket string `mapstructure:"subscribers_bucket"`
	SubscribersKey    string `mapstructure:"subscribers_key"`
	AdminEmail        string `mapstructure:"admin_email"`
	FromEmail         string `mapstructure:"from_email"`
	APIGatewayURL     string `mapstructure:"api_gateway_url"`
	AWSRegion         string `mapstructure:"aws_region"`

	OutputDir string `mapstructure:"output_dir"`
	DataDir   string `mapstructure:"data_dir"`
	LogDir    string `mapstructure:"log_dir"`
	LogLevel  string `mapstructure:"log_level"`

	SearchTimeout time.Duration `mapstructure:"search_timeout"`
	AgentTimeout  time.Duration `mapstructure:"agent_timeout"`
	HeaderTimeout time.Duration `mapstructure:"header_timeout"`
	ProbeTimeout  time.Duration `mapstructure:"probe_timeout"`

	MaxPapers  int `mapstructure:"max_papers"`
	MaxResults int `mapstructure:"max_results"`

	BatchSize  int           `mapstructure:"batch_size"`
	BatchPause time.Duration `mapstructure:"batch_pause"`
}

var defaults = map[string]any{
	"model":           "anthropic:claude-sonnet-4-5",
	"subscribers_key": "subscribers.csv",
	"aws_region":      "us-east-1",
	"output_dir":      "output",
	"data_dir":        "data",
	"log_dir":         "logs",
	"log_level":       "info",
	"search_timeout":  120 * time.Second,
	"agent_timeout":   60 * time.Second,
	"header_timeout":  30 * time.Second,
	"probe_timeout":   30 * time.Second,
	"max_papers":      10,
	"max_results":     10,
	"batch_size":      10,
	"batch_pause":     time.Second,
}

// Options control where Load looks.
type Options struct {
	// File is an explicit config file. When empty, newsletter.yaml in the
	// working directory is used if present.
	File string
	// EnvFile is loaded before reading the environment. Missing files are
	// ignored. Defaults to ".env".
	EnvFile string
}

// Load resolves the configuration. Precedence, highest first: environment,
// config file, defaults. Variables in the env file never override variables
// already set in the process environment.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// AutomaticEnv only consults the environment for keys viper already
	// knows; bind the ones without defaults explicitly.
	for _, k := range []string{"anthropic_api_key", "tavily_api_key", "s3_bucket", "subscribers_bucket", "admin_email", "from_email", "api_gateway_url"} {
		if err := v.BindEnv(k); err != nil {
			return nil, err
		}
	}

	if opts.File != "" {
		v.SetConfigFile(opts.File)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", opts.File, err)
		}
	} else {
		v.SetConfigName("newsletter")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the settings mode needs are present. The returned
// error wraps ErrMissingSetting and names every missing variable.
func (c *Config) Validate(mode Mode) error {
	required := []struct {
		env, val string
	}{
		{"ANTHROPIC_API_KEY", c.AnthropicAPIKey},
		{"TAVILY_API_KEY", c.TavilyAPIKey},
	}
	return missing(append(required, c.publishSettings(mode)...))
}

// ValidatePublish checks only the settings needed to publish an already
// generated issue in mode, as when resuming from a snapshot.
func (c *Config) ValidatePublish(mode Mode) error {
	return missing(c.publishSettings(mode))
}

func (c *Config) publishSettings(mode Mode) []struct{ env, val string } {
	if mode != ModeAWS {
		return nil
	}
	return []struct{ env, val string }{
		{"S3_BUCKET", c.S3Bucket},
		{"ADMIN_EMAIL", c.AdminEmail},
		{"FROM_EMAIL", c.FromEmail},
		{"API_GATEWAY_URL", c.APIGatewayURL},
	}
}

// ValidateDelivery checks the settings needed to send an approved issue.
func (c *Config) ValidateDelivery() error {
	return missing([]struct{ env, val string }{
		{"S3_BUCKET", c.S3Bucket},
		{"SUBSCRIBERS_BUCKET", c.SubscribersBucket},
		{"FROM_EMAIL", c.FromEmail},
	})
}

func missing(required []struct{ env, val string }) error {
	var names []string
	for _, r := range required {
		if strings.TrimSpace(r.val) == "" {
			names = append(names, r.env)
		}
	}
	if len(names) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingSetting, strings.Join(names, ", "))
	}
	return nil
}

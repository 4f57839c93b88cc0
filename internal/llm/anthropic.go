package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Compile-time check.
var _ Completer = (*AnthropicCompleter)(nil)

const defaultMaxTokens = 4096

// AnthropicCompleter sends requests to the Anthropic Messages API.
type AnthropicCompleter struct {
	client anthropic.Client
	model  string
}

// NewAnthropicCompleter creates a completer for model. Extra request options
// (base URL, HTTP client) may be supplied for testing.
func NewAnthropicCompleter(apiKey, model string, opts ...option.RequestOption) (*AnthropicCompleter, error) {
	provider, name := ParseModel(model)
	if provider != "anthropic" {
		return nil, fmt.Errorf("unsupported model provider %q (model %q)", provider, model)
	}

	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &AnthropicCompleter{
		client: anthropic.NewClient(opts...),
		model:  name,
	}, nil
}

// Model returns the model name requests are sent to.
func (c *AnthropicCompleter) Model() string {
	return c.model
}

// Complete sends a single user turn and concatenates the text blocks of the reply.
func (c *AnthropicCompleter) Complete(ctx context.Context, req Request) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic messages (%s): %w", c.model, err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}

package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare array", `[{"a":1}]`, `[{"a":1}]`},
		{"fenced", "```json\n{\"title\": \"x\"}\n```", `{"title": "x"}`},
		{"chatty prefix", `Here you go: {"title": "a [b] {c}"} thanks`, `{"title": "a [b] {c}"}`},
		{"escaped quote", `{"t": "say \"hi\" }"}`, `{"t": "say \"hi\" }"}`},
		{"skips invalid bracket", `[citation] {"ok": true}`, `{"ok": true}`},
		{"fence beats citation", "Based on the search results [1], here are the items:\n```json\n[{\"title\": \"x\"}]\n```", `[{"title": "x"}]`},
		{"unlabelled fence", "See [2].\n```\n{\"title\": \"y\"}\n```", `{"title": "y"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestJSONCandidates_Order(t *testing.T) {
	text := "Sources [1] and [2].\n```json\n{\"items\": [{\"title\": \"a\"}]}\n```\nAlso {\"note\": true}"
	got := JSONCandidates(text)

	var strs []string
	for _, c := range got {
		strs = append(strs, string(c))
	}
	assert.Equal(t, []string{
		`{"items": [{"title": "a"}]}`,
		`[1]`,
		`[2]`,
		`{"note": true}`,
	}, strs, "fenced payload first, then top-level prose values without duplicates")
}

func TestExtractJSON_None(t *testing.T) {
	_, err := ExtractJSON("no structured output here {unterminated")
	require.ErrorIs(t, err, ErrNoJSON)
}

func TestParseModel(t *testing.T) {
	p, m := ParseModel("anthropic:claude-haiku-4-5")
	assert.Equal(t, "anthropic", p)
	assert.Equal(t, "claude-haiku-4-5", m)

	p, m = ParseModel("claude-opus-4-1")
	assert.Equal(t, "anthropic", p)
	assert.Equal(t, "claude-opus-4-1", m)

	p, m = ParseModel("")
	assert.Equal(t, "anthropic", p)
	assert.Equal(t, DefaultModel, m)

	p, _ = ParseModel("Groq:llama-3.3-70b-versatile")
	assert.Equal(t, "groq", p)
}

func TestNewAnthropicCompleter_RejectsOtherProviders(t *testing.T) {
	_, err := NewAnthropicCompleter("key", "mistral:mistral-small-latest")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mistral")
}

func TestAnthropicCompleter_Complete(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))

		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, &gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"id": "msg_01",
			"type": "message",
			"role": "assistant",
			"model": "claude-sonnet-4-5",
			"content": [{"type": "text", "text": "{\"title\": \"Hi\"}"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 3, "output_tokens": 5}
		}`)
	}))
	defer srv.Close()

	c, err := NewAnthropicCompleter("test-key", "anthropic:claude-sonnet-4-5",
		option.WithBaseURL(srv.URL+"/"),
		option.WithMaxRetries(0),
	)
	require.NoError(t, err)
	assert.Equal(t, "claude-sonnet-4-5", c.Model())

	out, err := c.Complete(context.Background(), Request{System: "be brief", Prompt: "say hi"})
	require.NoError(t, err)
	assert.Equal(t, `{"title": "Hi"}`, out)

	assert.Equal(t, "claude-sonnet-4-5", gotBody["model"])
	assert.EqualValues(t, defaultMaxTokens, gotBody["max_tokens"])
}

func TestCompleterFunc(t *testing.T) {
	var c Completer = CompleterFunc(func(_ context.Context, req Request) (string, error) {
		return "echo: " + req.Prompt, nil
	})
	out, err := c.Complete(context.Background(), Request{Prompt: "x"})
	require.NoError(t, err)
	assert.Equal(t, "echo: x", out)
}

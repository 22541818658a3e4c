package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/go-playground/assert/v2"
)

func newAnthropicTestServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/v1/messages") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAnthropicComplete(t *testing.T) {
	srv := newAnthropicTestServer(t, `{
		"id": "msg_1",
		"type": "message",
		"role": "assistant",
		"model": "claude-haiku-4-5",
		"content": [{"type": "text", "text": "Users debated "}, {"type": "text", "text": "channel moderation."}],
		"stop_reason": "end_turn",
		"usage": {"input_tokens": 10, "output_tokens": 5}
	}`)

	client := NewAnthropicClient("test-key", "", option.WithBaseURL(srv.URL), option.WithMaxRetries(0))

	got, err := client.Complete(context.Background(), "summarize this")

	assert.Equal(t, nil, err)
	assert.Equal(t, "Users debated channel moderation.", got)
	assert.Equal(t, defaultAnthropicModel, client.ModelName())
}

func TestAnthropicComplete_NoContent(t *testing.T) {
	srv := newAnthropicTestServer(t, `{
		"id": "msg_2",
		"type": "message",
		"role": "assistant",
		"model": "claude-haiku-4-5",
		"content": [],
		"stop_reason": "end_turn",
		"usage": {"input_tokens": 10, "output_tokens": 0}
	}`)

	client := NewAnthropicClient("test-key", "", option.WithBaseURL(srv.URL), option.WithMaxRetries(0))

	_, err := client.Complete(context.Background(), "summarize this")

	assert.NotEqual(t, nil, err)
}

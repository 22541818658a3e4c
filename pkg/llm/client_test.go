package llm

import (
	"context"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestCleanResponse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text unchanged",
			input: "The thread discusses frames.",
			want:  "The thread discusses frames.",
		},
		{
			name:  "trims surrounding whitespace",
			input: "  \nThe thread discusses frames.\n  ",
			want:  "The thread discusses frames.",
		},
		{
			name:  "strips echoed code fence",
			input: "```\nThe thread discusses frames.\n```",
			want:  "The thread discusses frames.",
		},
		{
			name:  "keeps inner fences",
			input: "Users shared ```code``` snippets.",
			want:  "Users shared ```code``` snippets.",
		},
		{
			name:  "empty stays empty",
			input: "   ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cleanResponse(tt.input)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewCompleter(t *testing.T) {
	c, err := NewCompleter(context.Background(), "", "key", "")
	assert.Equal(t, nil, err)
	assert.Equal(t, defaultOpenAIModel, c.ModelName())

	c, err = NewCompleter(context.Background(), "Anthropic", "key", "claude-sonnet-4-5")
	assert.Equal(t, nil, err)
	assert.Equal(t, "claude-sonnet-4-5", c.ModelName())

	_, err = NewCompleter(context.Background(), "mistral", "key", "")
	assert.NotEqual(t, nil, err)
}

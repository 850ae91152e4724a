package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripMarkdown(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "plain text unchanged",
			input:    "just a plain sentence",
			expected: "just a plain sentence",
		},
		{
			name:     "bold italic and inline code",
			input:    "**bold** and _em_ and `code`",
			expected: "bold and em and code",
		},
		{
			name:     "bold with underscores",
			input:    "__strong__ statement",
			expected: "strong statement",
		},
		{
			name:     "italic with asterisks",
			input:    "an *emphasized* word",
			expected: "an emphasized word",
		},
		{
			name:     "strikethrough",
			input:    "~~gone~~ now",
			expected: "gone now",
		},
		{
			name:     "fenced code block keeps inner text",
			input:    "before\n```\nline1\nline2\n```\nafter",
			expected: "before\nline1\nline2\nafter",
		},
		{
			name:     "heading markers removed",
			input:    "# Title\n## Subtitle\nbody",
			expected: "Title\nSubtitle\nbody",
		},
		{
			name:     "blank lines collapsed",
			input:    "first\n\n\n\nsecond",
			expected: "first\n\nsecond",
		},
		{
			name:     "surrounding whitespace trimmed",
			input:    "  padded  ",
			expected: "padded",
		},
		{
			name:     "lone asterisk left alone",
			input:    "2 * 3 equals 6",
			expected: "2 * 3 equals 6",
		},
		{
			name:     "nested bold inside sentence",
			input:    "The **quick** brown **fox**",
			expected: "The quick brown fox",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, StripMarkdown(tc.input))
		})
	}
}

func TestStripMarkdownIdempotent(t *testing.T) {
	inputs := []string{
		"**bold** and _em_ and `code`",
		"# Heading\n\n\nbody text",
		"plain text with no markup",
		"```\ncode block\n```",
	}

	for _, input := range inputs {
		once := StripMarkdown(input)
		assert.Equal(t, once, StripMarkdown(once), "input %q", input)
	}
}

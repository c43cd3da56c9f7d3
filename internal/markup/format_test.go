package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixURLEscapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"single escape after url",
			`see https://example.com/a\_b for details`,
			`see https://example.com/a_b for details`,
		},
		{
			"multiple escapes in one url",
			`https://example.com/a\_b\_c`,
			`https://example.com/a_b_c`,
		},
		{
			"relative image path",
			`![](./post/my\_image.png)`,
			`![](./post/my_image.png)`,
		},
		{
			"escape outside url untouched",
			`emphasis\_stays escaped`,
			`emphasis\_stays escaped`,
		},
		{"no urls", "plain text", "plain text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FixURLEscapes(tt.input))
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trailing newline added", "Hello", "Hello\n"},
		{"crlf normalized", "a\r\nb", "a\nb\n"},
		{"trailing spaces stripped", "a  \nb\t", "a\nb\n"},
		{"blank lines collapsed", "a\n\n\n\n\nb", "a\n\nb\n"},
		{"leading blank trimmed", "\n\n\na", "a\n"},
		{"empty stays empty", "", ""},
		{"whitespace only", "  \n\t\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.input))
		})
	}
}

func TestFormatIdempotent(t *testing.T) {
	in := "# Title\r\n\r\n\r\nbody  \n\n```go\ncode\n```\n\n\n"
	once := Format(in)
	assert.Equal(t, once, Format(once))
}

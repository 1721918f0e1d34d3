package markdown

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-labs/brief-cli/internal/core/domain"
)

func TestSupportedExtensions(t *testing.T) {
	exts := New().SupportedExtensions()
	assert.Contains(t, exts, "md")
	assert.Contains(t, exts, "markdown")
}

func TestMediaType(t *testing.T) {
	assert.Equal(t, "md", New().MediaType())
}

func TestExtract_StripsFormatting(t *testing.T) {
	input := `# Weekly Sync

Some **bold** and [linked](https://example.com) text.

- first item
- second item

> quoted decision
`
	text, err := New().Extract(context.Background(), []byte(input), "notes.md")
	require.NoError(t, err)

	assert.Contains(t, text, "Weekly Sync")
	assert.Contains(t, text, "Some bold and linked text.")
	assert.Contains(t, text, "first item")
	assert.Contains(t, text, "quoted decision")
	assert.NotContains(t, text, "#")
	assert.NotContains(t, text, "**")
	assert.NotContains(t, text, "https://example.com")
}

func TestExtract_KeepsCodeContent(t *testing.T) {
	input := "Run this:\n\n```sh\nmake deploy\n```\n"

	text, err := New().Extract(context.Background(), []byte(input), "runbook.md")
	require.NoError(t, err)

	assert.Contains(t, text, "make deploy")
	assert.NotContains(t, text, "```")
}

func TestExtract_PreservesParagraphBreaks(t *testing.T) {
	input := "First paragraph.\n\n\n\nSecond paragraph."

	text, err := New().Extract(context.Background(), []byte(input), "notes.md")
	require.NoError(t, err)

	assert.Equal(t, "First paragraph.\n\nSecond paragraph.", text)
}

func TestExtract_EmptyContentFails(t *testing.T) {
	_, err := New().Extract(context.Background(), []byte("---\n"), "empty.md")
	assert.ErrorIs(t, err, domain.ErrEmptyMaterial)
}

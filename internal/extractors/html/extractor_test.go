package html

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-labs/brief-cli/internal/core/domain"
)

func TestExtractor_SupportedExtensions(t *testing.T) {
	assert.ElementsMatch(t, []string{"html", "htm", "xhtml"}, New().SupportedExtensions())
}

func TestExtractor_MediaType(t *testing.T) {
	assert.Equal(t, "html", New().MediaType())
}

func TestExtract_StripsMarkup(t *testing.T) {
	input := `<html><head><title>Notes</title></head>
<body>
<h1>Agenda</h1>
<p>Discuss the rollout &amp; budget.</p>
<script>console.log("noise")</script>
<ul><li>Item one</li><li>Item two</li></ul>
</body></html>`

	text, err := New().Extract(context.Background(), []byte(input), "notes.html")

	require.NoError(t, err)
	assert.Contains(t, text, "Agenda")
	assert.Contains(t, text, "Discuss the rollout & budget.")
	assert.Contains(t, text, "Item one")
	assert.NotContains(t, text, "console.log")
	assert.NotContains(t, text, "<")
	assert.NotContains(t, text, "Notes", "head content is dropped")
}

func TestExtract_BlocksBecomeParagraphBreaks(t *testing.T) {
	input := `<p>First paragraph.</p><p>Second paragraph.</p>`

	text, err := New().Extract(context.Background(), []byte(input), "a.html")

	require.NoError(t, err)
	assert.Contains(t, text, "First paragraph.\n\nSecond paragraph.")
}

func TestExtract_DropsComments(t *testing.T) {
	text, err := New().Extract(context.Background(), []byte("<p>kept</p><!-- hidden -->"), "a.html")

	require.NoError(t, err)
	assert.Equal(t, "kept", text)
}

func TestExtract_EmptyDocument(t *testing.T) {
	_, err := New().Extract(context.Background(), []byte("<html><head><title>x</title></head><body></body></html>"), "empty.html")

	assert.ErrorIs(t, err, domain.ErrEmptyMaterial)
}

package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-labs/brief-cli/internal/core/domain"
)

func TestFormatContext_EmptyResults(t *testing.T) {
	assert.Equal(t, EmptyContextSentinel, FormatContext(nil))
	assert.Equal(t, EmptyContextSentinel, FormatContext([]domain.RetrievalResult{}))
}

func TestFormatContext_ChunkEntry(t *testing.T) {
	got := FormatContext([]domain.RetrievalResult{
		{MaterialID: "material_a", ChunkIndex: 2, Score: 0.8123, Text: "chunk text"},
	})

	want := strings.Join([]string{
		"=== Material: material_a ===",
		"[1] Source: material_a#c2",
		"Score: 0.812",
		"chunk text",
		"---",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestFormatContext_FullDocumentEntryHasNoScore(t *testing.T) {
	got := FormatContext([]domain.RetrievalResult{
		{MaterialID: "material_a", Score: 1.0, Text: "whole doc", IsFullDocument: true},
	})

	assert.Contains(t, got, "[1] Source: material_a (FULL DOCUMENT)")
	assert.NotContains(t, got, "Score:")
}

func TestFormatContext_SurroundingEntryIsMarked(t *testing.T) {
	got := FormatContext([]domain.RetrievalResult{
		{MaterialID: "material_a", ChunkIndex: 1, Score: 0.72, Text: "nearby", IsSurrounding: true},
	})

	assert.Contains(t, got, "[1] Source: material_a#c1 (CONTEXT)")
	assert.Contains(t, got, "Score: 0.720")
}

func TestFormatContext_GroupsConsecutiveMaterials(t *testing.T) {
	got := FormatContext([]domain.RetrievalResult{
		{MaterialID: "material_a", ChunkIndex: 0, Score: 0.9, Text: "a0"},
		{MaterialID: "material_a", ChunkIndex: 1, Score: 0.8, Text: "a1"},
		{MaterialID: "material_b", ChunkIndex: 0, Score: 0.7, Text: "b0"},
	})

	assert.Equal(t, 1, strings.Count(got, "=== Material: material_a ==="))
	assert.Equal(t, 1, strings.Count(got, "=== Material: material_b ==="))
	// Blank line separates the two material groups.
	assert.Contains(t, got, "---\n\n=== Material: material_b ===")
	// Entry numbering is global across groups.
	assert.Contains(t, got, "[2] Source: material_a#c1")
	assert.Contains(t, got, "[3] Source: material_b#c0")
}

func TestExtractSources_RoundTripsFormattedContext(t *testing.T) {
	results := []domain.RetrievalResult{
		{MaterialID: "material_a", ChunkIndex: 0, Score: 0.9, Text: "a0"},
		{MaterialID: "material_a", ChunkIndex: 1, Score: 0.81, Text: "a1", IsSurrounding: true},
		{MaterialID: "material_b", Score: 1.0, Text: "full", IsFullDocument: true},
	}

	sources := ExtractSources(FormatContext(results))

	require.Len(t, sources, len(results))
	assert.Equal(t, []string{"material_a#c0", "material_a#c1", "material_b"}, sources)
}

func TestExtractSources_IgnoresLookalikes(t *testing.T) {
	text := "prose mentioning [1] Source: inline_not_at_line_start\n" +
		"[2] Source: material_x#c1\n"

	assert.Equal(t, []string{"material_x#c1"}, ExtractSources(text))
}

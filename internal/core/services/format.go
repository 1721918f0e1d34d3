package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/meridian-labs/brief-cli/internal/core/domain"
)

// EmptyContextSentinel is returned by FormatContext for empty input so
// downstream prompts always receive a non-empty context block.
const EmptyContextSentinel = "No context retrieved."

// sourceToken matches the attribution line of one formatted entry.
var sourceToken = regexp.MustCompile(`(?m)^\[\d+\] Source: (\S+)`)

// FormatContext renders retrieval results into the context block substituted
// into prompts. Results arrive pre-sorted by score; consecutive entries from
// the same material share a group header. Each entry carries a recognisable
// "Source:" token so citations can be pattern-matched back out of the text.
func FormatContext(results []domain.RetrievalResult) string {
	if len(results) == 0 {
		return EmptyContextSentinel
	}

	blocks := make([]string, 0, 2*len(results))
	currentMaterial := ""

	for i, result := range results {
		if result.MaterialID != currentMaterial {
			if currentMaterial != "" {
				blocks = append(blocks, "") // spacing between materials
			}
			currentMaterial = result.MaterialID
			blocks = append(blocks, fmt.Sprintf("=== Material: %s ===", result.MaterialID))
		}

		switch {
		case result.IsFullDocument:
			blocks = append(blocks, fmt.Sprintf("[%d] Source: %s (FULL DOCUMENT)\n%s\n---",
				i+1, result.SourceLabel(), result.Text))
		case result.IsSurrounding:
			blocks = append(blocks, fmt.Sprintf("[%d] Source: %s (CONTEXT)\nScore: %.3f\n%s\n---",
				i+1, result.SourceLabel(), result.Score, result.Text))
		default:
			blocks = append(blocks, fmt.Sprintf("[%d] Source: %s\nScore: %.3f\n%s\n---",
				i+1, result.SourceLabel(), result.Score, result.Text))
		}
	}

	return strings.Join(blocks, "\n")
}

// ExtractSources returns the Source labels embedded in a formatted context
// block, in order of appearance. Used to check model citations against what
// was actually retrieved.
func ExtractSources(formatted string) []string {
	matches := sourceToken.FindAllStringSubmatch(formatted, -1)
	sources := make([]string, 0, len(matches))
	for _, m := range matches {
		sources = append(sources, m[1])
	}
	return sources
}

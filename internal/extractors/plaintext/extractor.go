// Package plaintext extracts text from plain text files.
package plaintext

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/meridian-labs/brief-cli/internal/core/domain"
	"github.com/meridian-labs/brief-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles plain text files.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedExtensions returns the extensions this extractor handles.
func (e *Extractor) SupportedExtensions() []string {
	return []string{"txt", "text", "log", "csv"}
}

// MediaType names the format for material records.
func (e *Extractor) MediaType() string {
	return "txt"
}

// Extract decodes the file as UTF-8, dropping invalid byte sequences.
func (e *Extractor) Extract(_ context.Context, content []byte, _ string) (string, error) {
	text := strings.TrimSpace(decodeUTF8(content))
	if text == "" {
		return "", domain.ErrEmptyMaterial
	}
	return text, nil
}

// decodeUTF8 converts bytes to a string, skipping invalid sequences.
func decodeUTF8(content []byte) string {
	if utf8.Valid(content) {
		return string(content)
	}

	var b strings.Builder
	b.Grow(len(content))
	for len(content) > 0 {
		r, size := utf8.DecodeRune(content)
		if r != utf8.RuneError || size > 1 {
			b.WriteRune(r)
		}
		content = content[size:]
	}
	return b.String()
}

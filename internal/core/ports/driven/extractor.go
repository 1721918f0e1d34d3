package driven

import "context"

// Extractor turns uploaded file bytes into plain text.
// Each extractor handles specific file extensions.
type Extractor interface {
	// SupportedExtensions returns lower-case extensions, without dot,
	// this extractor handles (e.g. "txt", "md").
	SupportedExtensions() []string

	// MediaType names the format for material records.
	MediaType() string

	// Extract converts raw file content into plain text.
	Extract(ctx context.Context, content []byte, filename string) (string, error)
}

// ExtractorRegistry selects an extractor for a filename.
type ExtractorRegistry interface {
	// ForFilename returns the extractor for the file's extension, or
	// domain.ErrUnsupportedType if none is registered.
	ForFilename(filename string) (Extractor, error)

	// Register adds an extractor for its supported extensions.
	Register(extractor Extractor)
}

package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates a file format no extractor handles.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrEmptyMaterial indicates extraction produced no text.
	// Empty materials are rejected at ingestion rather than stored.
	ErrEmptyMaterial = errors.New("material has no text content")

	// ErrIndexUnavailable indicates the vector index for a collection could
	// not be opened or parsed. This is a configuration failure and is fatal
	// for the operation: starting over an unreadable index would silently
	// lose previously persisted vectors.
	ErrIndexUnavailable = errors.New("vector index unavailable")

	// ErrRecallFailed indicates a runtime failure during embedding or
	// search after setup succeeded. Callers may degrade this to empty
	// context; downstream synthesis handles "no context" explicitly.
	ErrRecallFailed = errors.New("recall failed")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured or unreachable. Recall cannot run without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Brief synthesis is disabled without it; recall still works.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrBriefInvalid indicates the model response could not be parsed or
	// validated as a brief after the repair retry.
	ErrBriefInvalid = errors.New("brief response invalid")
)

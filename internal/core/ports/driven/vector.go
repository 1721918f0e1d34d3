package driven

import "context"

// VectorIndex is an append-only per-collection similarity index.
//
// Slot order corresponds 1:1 to insertion order. Callers that keep parallel
// chunk metadata MUST insert vectors in the same order the metadata was
// built; slot numbers are the only link back to chunk attribution.
type VectorIndex interface {
	// Insert appends vectors in input order and returns the number added.
	// Empty input is a no-op returning 0. Insert does not persist; callers
	// persist explicitly after a batch.
	Insert(ctx context.Context, vectors [][]float32) (int, error)

	// Search returns up to k best matches by similarity score, descending.
	// k is clamped to the current size. An empty index returns an empty
	// result, never an error.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)

	// Persist writes the index to durable storage, creating parent
	// directories as needed. The write replaces the whole file only after
	// it is complete, so a crash mid-batch leaves the prior state valid.
	Persist() error

	// Size returns the number of vectors currently in the index.
	Size() int

	// Close releases resources.
	Close() error
}

// VectorHit is a similarity search result.
type VectorHit struct {
	// Slot is the insertion-ordered position of the matched vector.
	Slot int

	// Score is the inner-product similarity (cosine, for normalised
	// vectors). Higher is more relevant.
	Score float64
}

// VectorIndexFactory opens per-collection indexes.
type VectorIndexFactory interface {
	// OpenOrCreate loads the persisted index for a collection, or creates
	// an empty one (persisting it immediately) if none exists. Repeated
	// calls before any insert return an equivalent empty index.
	//
	// Failure to load or parse an existing file is a fatal configuration
	// error (domain.ErrIndexUnavailable), not a reason to start empty.
	OpenOrCreate(ctx context.Context, collectionID string) (VectorIndex, error)
}

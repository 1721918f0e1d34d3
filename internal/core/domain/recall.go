package domain

import "fmt"

// RetrievalResult is one scored, attributed unit of context returned by the
// recall engine. Results are ranked by Score descending.
type RetrievalResult struct {
	// Text is the chunk (or full document) content.
	Text string

	// MaterialID is the owning material.
	MaterialID string

	// ChunkIndex is the zero-based chunk position within the material.
	// Zero for full-document results.
	ChunkIndex int

	// Score is the similarity score; higher is more relevant.
	Score float64

	// IsFullDocument marks a whole small document returned verbatim by the
	// passthrough policy.
	IsFullDocument bool

	// IsSurrounding marks a chunk included as neighbouring context rather
	// than matched directly. Surrounding chunks carry a score penalty.
	IsSurrounding bool
}

// SourceLabel returns the attribution label for this result, e.g.
// "material_x#c3". Full-document results are labelled by material alone.
func (r RetrievalResult) SourceLabel() string {
	if r.IsFullDocument {
		return r.MaterialID
	}
	return fmt.Sprintf("%s#c%d", r.MaterialID, r.ChunkIndex)
}

// RecallOptions configures one recall invocation.
type RecallOptions struct {
	// Query is the search query. Empty means "recall everything": the
	// engine builds a pseudo-query from the collection's leading chunks.
	Query string

	// K is the maximum number of results. Values <= 0 fall back to the
	// engine default.
	K int

	// IncludeSurrounding enables neighbour expansion around direct hits.
	IncludeSurrounding bool
}

package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/meridian-labs/brief-cli/internal/chunker"
	"github.com/meridian-labs/brief-cli/internal/core/domain"
	"github.com/meridian-labs/brief-cli/internal/core/ports/driven"
	"github.com/meridian-labs/brief-cli/internal/core/ports/driving"
	"github.com/meridian-labs/brief-cli/internal/logger"
)

// Ensure RecallService implements the interface.
var _ driving.RecallService = (*RecallService)(nil)

// RecallConfig holds the recall engine tunables. The defaults reproduce the
// established retrieval behaviour; expose them through configuration rather
// than editing call sites.
type RecallConfig struct {
	// ChunkMaxLen, ChunkOverlap and ChunkBoundaryThreshold select the wide
	// chunking profile used for retrieval.
	ChunkMaxLen            int
	ChunkOverlap           int
	ChunkBoundaryThreshold float64

	// PassthroughMaxChars is the total corpus size at or below which
	// materials are returned verbatim instead of chunked and searched.
	// Roughly 80k tokens at a 4-chars/token estimate.
	PassthroughMaxChars int

	// QueryScoreFloor discards weak candidates when an explicit query was
	// supplied. NoQueryScoreFloor applies to the noisier pseudo-query
	// fallback and is deliberately stricter.
	QueryScoreFloor   float64
	NoQueryScoreFloor float64

	// SurroundingScoreFactor is the ranking penalty applied to
	// neighbour-expanded chunks.
	SurroundingScoreFactor float64

	// PseudoQueryChunks is how many leading chunks form the pseudo-query
	// when no query string is given.
	PseudoQueryChunks int

	// DefaultK is the result count when the caller passes K <= 0.
	DefaultK int
}

// DefaultRecallConfig returns the standard engine tunables.
func DefaultRecallConfig() RecallConfig {
	return RecallConfig{
		ChunkMaxLen:            chunker.WideMaxLen,
		ChunkOverlap:           chunker.WideOverlap,
		ChunkBoundaryThreshold: chunker.WideBoundaryThreshold,
		PassthroughMaxChars:    320000,
		QueryScoreFloor:        0.05,
		NoQueryScoreFloor:      0.15,
		SurroundingScoreFactor: 0.9,
		PseudoQueryChunks:      5,
		DefaultK:               8,
	}
}

// chunkRecord pairs one chunk with its attribution. The records slice is
// built in a single pass and shares its order with the vector index slots;
// that correspondence is what makes slot numbers attributable.
type chunkRecord struct {
	materialID  string
	chunkIndex  int
	totalChunks int
	text        string
}

// RecallService retrieves scored, attributed context for a meeting.
type RecallService struct {
	materials driven.MaterialStore
	embedder  driven.EmbeddingService
	indexes   driven.VectorIndexFactory
	cfg       RecallConfig
}

// NewRecallService creates a recall service.
func NewRecallService(
	materials driven.MaterialStore,
	embedder driven.EmbeddingService,
	indexes driven.VectorIndexFactory,
	cfg RecallConfig,
) *RecallService {
	if cfg.DefaultK <= 0 {
		cfg = DefaultRecallConfig()
	}
	return &RecallService{
		materials: materials,
		embedder:  embedder,
		indexes:   indexes,
		cfg:       cfg,
	}
}

// Recall returns up to opts.K retrieval results for the meeting, ranked by
// score descending.
//
// Small corpora bypass retrieval entirely: when the meeting's total material
// size fits the passthrough budget, every material is returned verbatim as a
// full-document result. Larger corpora are chunked, embedded and searched;
// direct hits can pull in their immediate neighbours within the same
// material as surrounding context.
//
// Failures during embedding or search are reported as domain.ErrRecallFailed
// so callers can degrade to empty context. An unreadable index file is
// domain.ErrIndexUnavailable and should be treated as a configuration fault.
func (s *RecallService) Recall(
	ctx context.Context, meetingID string, opts domain.RecallOptions,
) ([]domain.RetrievalResult, error) {
	logger.Section("Context Recall")

	query := strings.TrimSpace(opts.Query)
	k := opts.K
	if k <= 0 {
		k = s.cfg.DefaultK
	}
	logger.Debug("Meeting: %s, query: %q, k: %d", meetingID, query, k)

	materials, err := s.materials.ListByMeeting(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("%w: listing materials: %v", domain.ErrRecallFailed, err)
	}
	if len(materials) == 0 {
		logger.Warn("No materials found for meeting %s", meetingID)
		return []domain.RetrievalResult{}, nil
	}

	totalChars := 0
	for i := range materials {
		totalChars += len(materials[i].Text)
	}

	// Passthrough: a corpus this small fits the downstream context window,
	// so retrieval would only add noise and latency.
	if totalChars <= s.cfg.PassthroughMaxChars {
		logger.Debug("Corpus small enough (%d chars), returning full documents", totalChars)
		results := make([]domain.RetrievalResult, 0, len(materials))
		for i := range materials {
			results = append(results, domain.RetrievalResult{
				Text:           materials[i].Text,
				MaterialID:     materials[i].ID,
				ChunkIndex:     0,
				Score:          1.0,
				IsFullDocument: true,
			})
		}
		if len(results) > k {
			results = results[:k]
		}
		return results, nil
	}

	records := s.chunkMaterials(materials)
	if len(records) == 0 {
		return []domain.RetrievalResult{}, nil
	}
	logger.Debug("Chunked %d materials into %d chunks", len(materials), len(records))

	queryVector, err := s.embedQuery(ctx, query, records)
	if err != nil {
		return nil, fmt.Errorf("%w: embedding query: %v", domain.ErrRecallFailed, err)
	}

	index, err := s.indexes.OpenOrCreate(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	defer index.Close()

	if index.Size() == 0 {
		if err := s.populateIndex(ctx, index, records); err != nil {
			return nil, err
		}
	}

	hits, err := index.Search(ctx, queryVector, 2*k)
	if err != nil {
		return nil, fmt.Errorf("%w: searching index: %v", domain.ErrRecallFailed, err)
	}

	floor := s.cfg.QueryScoreFloor
	if query == "" {
		floor = s.cfg.NoQueryScoreFloor
	}

	budget := 3 * k
	results := make([]domain.RetrievalResult, 0, budget)
	seen := make(map[int]bool, budget)

	for _, hit := range hits {
		if hit.Slot < 0 || hit.Slot >= len(records) {
			continue
		}
		if hit.Score < floor {
			continue
		}

		record := records[hit.Slot]
		if !seen[hit.Slot] {
			results = append(results, domain.RetrievalResult{
				Text:       record.text,
				MaterialID: record.materialID,
				ChunkIndex: record.chunkIndex,
				Score:      hit.Score,
			})
			seen[hit.Slot] = true
		}

		if opts.IncludeSurrounding {
			// Neighbouring slots are adjacent because records and index
			// slots share one insertion order.
			if record.chunkIndex > 0 {
				results = s.appendNeighbour(results, records, hit.Slot-1, record.materialID, hit.Score, seen)
			}
			if record.chunkIndex < record.totalChunks-1 {
				results = s.appendNeighbour(results, records, hit.Slot+1, record.materialID, hit.Score, seen)
			}
		}

		if len(results) >= budget {
			break
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > k {
		results = results[:k]
	}

	logger.Info("Recalled %d results for meeting %s", len(results), meetingID)
	return results, nil
}

// chunkMaterials splits every material with the wide profile, producing the
// ordered record list the index slots will mirror.
func (s *RecallService) chunkMaterials(materials []domain.Material) []chunkRecord {
	splitter := chunker.New(
		chunker.WithMaxLen(s.cfg.ChunkMaxLen),
		chunker.WithOverlap(s.cfg.ChunkOverlap),
		chunker.WithBoundaryThreshold(s.cfg.ChunkBoundaryThreshold),
	)

	var records []chunkRecord
	for i := range materials {
		chunks := splitter.Split(materials[i].Text)
		for idx, chunk := range chunks {
			records = append(records, chunkRecord{
				materialID:  materials[i].ID,
				chunkIndex:  idx,
				totalChunks: len(chunks),
				text:        chunk,
			})
		}
	}
	return records
}

// embedQuery embeds the query string, or a pseudo-query assembled from the
// collection's leading chunks when the caller wants "the gist" with no
// specific question.
func (s *RecallService) embedQuery(ctx context.Context, query string, records []chunkRecord) ([]float32, error) {
	if query == "" {
		n := s.cfg.PseudoQueryChunks
		if n > len(records) {
			n = len(records)
		}
		parts := make([]string, n)
		for i := 0; i < n; i++ {
			parts[i] = records[i].text
		}
		query = strings.Join(parts, " ")
		logger.Debug("No query supplied, using pseudo-query from first %d chunks", n)
	}
	return s.embedder.Embed(ctx, query)
}

// populateIndex embeds all chunks and inserts them in record order, then
// persists. Insert order equals record order: the single-pass build above is
// the only place the correspondence is established.
func (s *RecallService) populateIndex(ctx context.Context, index driven.VectorIndex, records []chunkRecord) error {
	texts := make([]string, len(records))
	for i := range records {
		texts[i] = records[i].text
	}

	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("%w: embedding chunks: %v", domain.ErrRecallFailed, err)
	}
	if _, err := index.Insert(ctx, vectors); err != nil {
		return fmt.Errorf("%w: inserting vectors: %v", domain.ErrRecallFailed, err)
	}
	if err := index.Persist(); err != nil {
		return fmt.Errorf("%w: persisting index: %v", domain.ErrRecallFailed, err)
	}
	logger.Debug("Indexed %d chunks", len(records))
	return nil
}

// appendNeighbour adds the chunk at the given slot as surrounding context if
// it belongs to the same material and has not been selected yet.
func (s *RecallService) appendNeighbour(
	results []domain.RetrievalResult,
	records []chunkRecord,
	slot int,
	materialID string,
	hitScore float64,
	seen map[int]bool,
) []domain.RetrievalResult {
	if slot < 0 || slot >= len(records) {
		return results
	}
	neighbour := records[slot]
	if neighbour.materialID != materialID || seen[slot] {
		return results
	}

	results = append(results, domain.RetrievalResult{
		Text:          neighbour.text,
		MaterialID:    neighbour.materialID,
		ChunkIndex:    neighbour.chunkIndex,
		Score:         hitScore * s.cfg.SurroundingScoreFactor,
		IsSurrounding: true,
	})
	seen[slot] = true
	return results
}

// Package flat provides a flat inner-product vector index with file
// persistence. On L2-normalised vectors, inner product equals cosine
// similarity, so search is exact nearest-neighbour by cosine score.
//
// One index file is kept per collection. The format is a small binary
// header (magic, dimension, count) followed by the vectors as
// little-endian float32 rows in insertion order. Slot numbers are the
// insertion positions; they are the only link back to chunk metadata, so
// the file is strictly append-ordered.
package flat

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/meridian-labs/brief-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// magic identifies brief flat index files, version 1.
var magic = [8]byte{'B', 'R', 'F', 'I', 'D', 'X', '0', '1'}

// headerSize is magic + uint32 dimension + uint32 count.
const headerSize = 16

// Index is a flat, append-only vector index.
type Index struct {
	mu      sync.RWMutex
	path    string
	dim     int
	vectors [][]float32
	closed  bool
}

// Open loads a persisted index from path, or creates an empty index of the
// given dimension and persists it immediately if no file exists. Opening
// repeatedly before any insert yields an equivalent empty index.
//
// A file that exists but cannot be parsed is an error: silently starting
// empty would orphan every vector previously persisted there.
func Open(path string, dim int) (*Index, error) {
	if path == "" {
		return nil, errors.New("flat: path cannot be empty")
	}
	if dim <= 0 {
		return nil, errors.New("flat: dimension must be positive")
	}

	idx := &Index{path: path, dim: dim}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := idx.Persist(); err != nil {
			return nil, err
		}
		return idx, nil
	case err != nil:
		return nil, fmt.Errorf("flat: read index %s: %w", path, err)
	}

	if err := idx.decode(data); err != nil {
		return nil, fmt.Errorf("flat: parse index %s: %w", path, err)
	}
	return idx, nil
}

// Insert appends vectors in input order and returns the number added.
// It does not persist; callers persist explicitly after a batch.
func (idx *Index) Insert(_ context.Context, vectors [][]float32) (int, error) {
	if len(vectors) == 0 {
		return 0, nil
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.closed {
		return 0, errors.New("flat: index is closed")
	}

	for i, v := range vectors {
		if len(v) != idx.dim {
			return 0, fmt.Errorf("flat: vector %d has dimension %d, index has %d", i, len(v), idx.dim)
		}
	}

	for _, v := range vectors {
		cp := make([]float32, idx.dim)
		copy(cp, v)
		idx.vectors = append(idx.vectors, cp)
	}
	return len(vectors), nil
}

// Search returns up to k best matches by inner-product score, descending.
// k is clamped to the current size; an empty index returns no hits.
func (idx *Index) Search(_ context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if idx.closed {
		return nil, errors.New("flat: index is closed")
	}
	if len(query) != idx.dim {
		return nil, fmt.Errorf("flat: query has dimension %d, index has %d", len(query), idx.dim)
	}
	if k <= 0 || len(idx.vectors) == 0 {
		return nil, nil
	}
	if k > len(idx.vectors) {
		k = len(idx.vectors)
	}

	hits := make([]driven.VectorHit, len(idx.vectors))
	for slot, v := range idx.vectors {
		var dot float32
		for i := range v {
			dot += v[i] * query[i]
		}
		hits[slot] = driven.VectorHit{Slot: slot, Score: float64(dot)}
	}

	// Ties break on slot order so results are deterministic.
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	return hits[:k], nil
}

// Size returns the number of vectors currently in the index.
func (idx *Index) Size() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.vectors)
}

// Persist writes the index to its path, creating parent directories as
// needed. The file is written to a temporary sibling and renamed, so a
// crash mid-write leaves the prior persisted state valid.
func (idx *Index) Persist() error {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if idx.closed {
		return errors.New("flat: index is closed")
	}

	if dir := filepath.Dir(idx.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("flat: create index directory: %w", err)
		}
	}

	data := idx.encode()
	tmp := idx.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("flat: write index: %w", err)
	}
	if err := os.Rename(tmp, idx.path); err != nil {
		return fmt.Errorf("flat: replace index: %w", err)
	}
	return nil
}

// Close releases resources. Close does not persist.
func (idx *Index) Close() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.closed = true
	idx.vectors = nil
	return nil
}

// encode serialises the index. Callers hold at least a read lock.
func (idx *Index) encode() []byte {
	buf := bytes.NewBuffer(make([]byte, 0, headerSize+len(idx.vectors)*idx.dim*4))
	buf.Write(magic[:])

	var u32 [4]byte
	binary.LittleEndian.PutUint32(u32[:], uint32(idx.dim))
	buf.Write(u32[:])
	binary.LittleEndian.PutUint32(u32[:], uint32(len(idx.vectors)))
	buf.Write(u32[:])

	for _, v := range idx.vectors {
		for _, f := range v {
			binary.LittleEndian.PutUint32(u32[:], math.Float32bits(f))
			buf.Write(u32[:])
		}
	}
	return buf.Bytes()
}

// decode parses a serialised index into idx.
func (idx *Index) decode(data []byte) error {
	if len(data) < headerSize {
		return errors.New("truncated header")
	}
	if !bytes.Equal(data[:8], magic[:]) {
		return errors.New("bad magic")
	}

	dim := int(binary.LittleEndian.Uint32(data[8:12]))
	count := int(binary.LittleEndian.Uint32(data[12:16]))
	if dim != idx.dim {
		return fmt.Errorf("file dimension %d does not match configured %d", dim, idx.dim)
	}
	if len(data) != headerSize+count*dim*4 {
		return fmt.Errorf("expected %d vectors of dimension %d, file is %d bytes", count, dim, len(data))
	}

	vectors := make([][]float32, count)
	off := headerSize
	for i := 0; i < count; i++ {
		v := make([]float32, dim)
		for j := 0; j < dim; j++ {
			v[j] = math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
			off += 4
		}
		vectors[i] = v
	}
	idx.vectors = vectors
	return nil
}

package flat

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/meridian-labs/brief-cli/internal/core/domain"
	"github.com/meridian-labs/brief-cli/internal/core/ports/driven"
)

// Ensure Factory implements the interface.
var _ driven.VectorIndexFactory = (*Factory)(nil)

// Factory opens per-collection flat indexes under a root directory.
// Index paths are deterministic: <dir>/<collectionID>.idx.
type Factory struct {
	dir string
	dim int
}

// NewFactory creates a factory rooted at dir for vectors of the given
// dimension.
func NewFactory(dir string, dim int) (*Factory, error) {
	if dir == "" {
		return nil, errors.New("flat: index directory cannot be empty")
	}
	if dim <= 0 {
		return nil, errors.New("flat: dimension must be positive")
	}
	return &Factory{dir: dir, dim: dim}, nil
}

// Path returns the index file path for a collection.
func (f *Factory) Path(collectionID string) string {
	return filepath.Join(f.dir, collectionID+".idx")
}

// OpenOrCreate loads the collection's persisted index or creates an empty
// one. Load or parse failures surface as domain.ErrIndexUnavailable: that
// is a configuration problem the caller must see, not a reason to start
// over an existing file.
func (f *Factory) OpenOrCreate(_ context.Context, collectionID string) (driven.VectorIndex, error) {
	if collectionID == "" {
		return nil, fmt.Errorf("%w: empty collection id", domain.ErrIndexUnavailable)
	}

	idx, err := Open(f.Path(collectionID), f.dim)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrIndexUnavailable, err)
	}
	return idx, nil
}

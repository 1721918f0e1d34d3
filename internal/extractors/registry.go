package extractors

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/meridian-labs/brief-cli/internal/core/domain"
	"github.com/meridian-labs/brief-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry maps file extensions to extractors.
type Registry struct {
	mu          sync.RWMutex
	byExtension map[string]driven.Extractor
}

// NewRegistry creates an empty extractor registry.
func NewRegistry() *Registry {
	return &Registry{
		byExtension: make(map[string]driven.Extractor),
	}
}

// Register adds an extractor for its supported extensions.
// Later registrations win for overlapping extensions.
func (r *Registry) Register(extractor driven.Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ext := range extractor.SupportedExtensions() {
		r.byExtension[strings.ToLower(ext)] = extractor
	}
}

// ForFilename returns the extractor for the file's extension.
func (r *Registry) ForFilename(filename string) (driven.Extractor, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))

	r.mu.RLock()
	defer r.mu.RUnlock()

	extractor, ok := r.byExtension[ext]
	if !ok {
		return nil, fmt.Errorf("%w: no extractor for %q", domain.ErrUnsupportedType, filename)
	}
	return extractor, nil
}

// Extensions returns all registered extensions, for help output.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.byExtension))
	for ext := range r.byExtension {
		exts = append(exts, ext)
	}
	return exts
}

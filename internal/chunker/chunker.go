// Package chunker splits document text into overlapping, boundary-aware
// segments suitable for embedding.
package chunker

import (
	"strings"
	"unicode/utf8"
)

// DefaultMaxLen is the default maximum number of characters per chunk.
const DefaultMaxLen = 1200

// DefaultOverlap is the default number of overlapping characters.
const DefaultOverlap = 120

// DefaultBoundaryThreshold is the fraction of maxLen a natural boundary
// must reach, measured from the chunk start, to be accepted over a hard cut.
const DefaultBoundaryThreshold = 0.6

// Wide-profile values. Larger chunks and more overlap preserve the
// relationships between neighbouring passages; this is the profile the
// recall engine uses.
const (
	WideMaxLen            = 4000
	WideOverlap           = 800
	WideBoundaryThreshold = 0.5
)

// Splitter splits text into overlapping chunks, preferring paragraph
// breaks, then sentence breaks, then a hard cut at maxLen.
type Splitter struct {
	maxLen    int
	overlap   int
	threshold float64
}

// Option configures the splitter.
type Option func(*Splitter)

// WithMaxLen sets the maximum chunk size in characters.
func WithMaxLen(maxLen int) Option {
	return func(s *Splitter) {
		if maxLen > 0 {
			s.maxLen = maxLen
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// WithBoundaryThreshold sets the minimum relative position of an accepted
// natural boundary. Values outside (0, 1] are ignored.
func WithBoundaryThreshold(threshold float64) Option {
	return func(s *Splitter) {
		if threshold > 0 && threshold <= 1 {
			s.threshold = threshold
		}
	}
}

// New creates a splitter with the tight profile defaults.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		maxLen:    DefaultMaxLen,
		overlap:   DefaultOverlap,
		threshold: DefaultBoundaryThreshold,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Overlap must stay below maxLen or the scan cannot make progress.
	if s.overlap >= s.maxLen {
		s.overlap = s.maxLen / 4
	}

	return s
}

// NewWide creates a splitter with the wide profile: large chunks and large
// overlap for relationship-preserving retrieval.
func NewWide(opts ...Option) *Splitter {
	base := []Option{
		WithMaxLen(WideMaxLen),
		WithOverlap(WideOverlap),
		WithBoundaryThreshold(WideBoundaryThreshold),
	}
	return New(append(base, opts...)...)
}

// MaxLen returns the configured maximum chunk size.
func (s *Splitter) MaxLen() int { return s.maxLen }

// Overlap returns the configured chunk overlap.
func (s *Splitter) Overlap() int { return s.overlap }

// Split splits text into ordered chunks. Empty text yields no chunks.
//
// At each position the candidate boundary is the last paragraph break
// (double newline) in the window, then the last sentence break (period
// followed by space), then the hard maxLen endpoint. A natural boundary is
// only accepted when it lies at least maxLen*threshold past the chunk
// start; closer boundaries would produce degenerate slivers.
//
// The scan advances by max(cut-overlap, i+1), so it always makes progress
// and terminates for any input.
func (s *Splitter) Split(text string) []string {
	if text == "" {
		return nil
	}

	n := len(text)
	estimated := n/max(1, s.maxLen-s.overlap) + 1
	chunks := make([]string, 0, estimated)

	i := 0
	for i < n {
		end := i + s.maxLen
		if end > n {
			end = n
		}
		window := text[i:end]

		cut := -1
		if p := strings.LastIndex(window, "\n\n"); p >= 0 {
			cut = i + p
		}
		if cut == -1 {
			if p := strings.LastIndex(window, ". "); p >= 0 {
				cut = i + p
			}
		}
		if cut == -1 || cut < i+int(float64(s.maxLen)*s.threshold) {
			cut = end
			// A hard cut is byte-indexed and can land inside a multi-byte
			// rune; back off to the rune start so chunks stay valid UTF-8.
			for cut < n && cut > i && !utf8.RuneStart(text[cut]) {
				cut--
			}
		}

		if chunk := strings.TrimSpace(text[i:cut]); chunk != "" {
			chunks = append(chunks, chunk)
		}

		next := cut - s.overlap
		if next < i+1 {
			next = i + 1
		}
		// The overlap step is byte-indexed too; move forward to the next
		// rune start so the following chunk begins on a whole rune.
		for next < n && !utf8.RuneStart(text[next]) {
			next++
		}
		i = next
	}

	return chunks
}

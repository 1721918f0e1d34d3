// Package domain defines the core business entities for Brief.
//
// This package is part of the hexagonal architecture's innermost layer
// and defines the fundamental types:
//
//   - Meeting: A meeting-like collection that owns materials
//   - Material: Extracted text for one uploaded or pasted document
//   - RetrievalResult: One scored, attributed unit of recalled context
//   - Brief: A structured meeting brief produced by synthesis
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. All other packages depend on
// domain, never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library, google/uuid (ID generation only)
//   - Cannot Import: Any other internal/ package
package domain

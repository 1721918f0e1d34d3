// Package extractors provides implementations of the Extractor interface
// for various document formats. Each extractor knows how to turn uploaded
// file bytes for a specific extension into plain text.
//
// Extractors are registered with the Registry at startup.
package extractors

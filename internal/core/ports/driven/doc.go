// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - MeetingStore, MaterialStore, BriefStore: SQLite-backed persistence
//   - EmbeddingService: Generates L2-normalised vector embeddings
//   - VectorIndexFactory / VectorIndex: Per-collection flat similarity index
//   - Extractor / ExtractorRegistry: Turns uploaded files into plain text
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
//   - LLMService: Brief synthesis. Without it, recall still works but
//     `brief generate` is disabled.
//   - PromptStore: Customisable prompt templates; embedded defaults apply
//     when absent.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or extractor package
package driven

package driven

import "context"

// LLMService provides text generation for brief synthesis.
// This is an optional service - when nil, `brief generate` is disabled
// while recall and formatting keep working.
//
// Implementations may include:
//   - Gemini (gemini-1.5-flash and later)
//   - Ollama (local models)
type LLMService interface {
	// Generate produces a completion from a system prompt and user prompt.
	Generate(ctx context.Context, systemPrompt, userPrompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}

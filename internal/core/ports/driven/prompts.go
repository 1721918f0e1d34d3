package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from user-editable files with
// embedded defaults as fallback.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names used throughout the application.
const (
	// PromptBriefSystem is the system prompt for brief synthesis. It
	// instructs the model to emit the brief JSON schema and to answer
	// "insufficient information" when the context block is empty.
	PromptBriefSystem = "brief_system"

	// PromptBriefUser is the user prompt template for brief synthesis.
	// It carries {{title}}, {{date}} and {{context_blocks}} placeholders.
	PromptBriefUser = "brief_user"
)

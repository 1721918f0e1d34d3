package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/meridian-labs/brief-cli/internal/core/domain"
	"github.com/meridian-labs/brief-cli/internal/core/ports/driven"
	"github.com/meridian-labs/brief-cli/internal/core/ports/driving"
	"github.com/meridian-labs/brief-cli/internal/logger"
)

// Ensure BriefService implements the interface.
var _ driving.BriefService = (*BriefService)(nil)

// Generation parameters for brief synthesis. Low temperature keeps the
// model close to the retrieved material.
const (
	briefMaxTokens   = 2000
	briefTemperature = 0.3
)

// BriefService synthesises meeting briefs from recalled context.
type BriefService struct {
	meetings driven.MeetingStore
	briefs   driven.BriefStore
	recall   driving.RecallService
	llm      driven.LLMService
	prompts  driven.PromptStore
	recallK  int
}

// NewBriefService creates a brief service. llm may be nil, in which case
// Generate reports domain.ErrLLMUnavailable while Latest/History keep
// working.
func NewBriefService(
	meetings driven.MeetingStore,
	briefs driven.BriefStore,
	recall driving.RecallService,
	llm driven.LLMService,
	prompts driven.PromptStore,
	recallK int,
) *BriefService {
	if recallK <= 0 {
		recallK = DefaultRecallConfig().DefaultK
	}
	return &BriefService{
		meetings: meetings,
		briefs:   briefs,
		recall:   recall,
		llm:      llm,
		prompts:  prompts,
		recallK:  recallK,
	}
}

// Generate recalls context for the meeting, prompts the language model,
// validates the response and persists the resulting brief.
//
// A failed recall degrades to empty context rather than aborting: the system
// prompt defines "insufficient information" behaviour for that case. An
// unreadable index is configuration trouble and is surfaced instead.
func (s *BriefService) Generate(ctx context.Context, meetingID, query string) (*domain.BriefRecord, error) {
	logger.Section("Brief Generation")

	if s.llm == nil {
		return nil, fmt.Errorf("%w: no LLM provider configured", domain.ErrLLMUnavailable)
	}

	meeting, err := s.meetings.Get(ctx, meetingID)
	if err != nil {
		return nil, err
	}

	results, err := s.recall.Recall(ctx, meetingID, domain.RecallOptions{
		Query:              query,
		K:                  s.recallK,
		IncludeSurrounding: true,
	})
	if err != nil {
		if !errors.Is(err, domain.ErrRecallFailed) {
			return nil, err
		}
		logger.Warn("Recall failed, generating with empty context: %v", err)
		results = nil
	}

	contextBlocks := FormatContext(results)
	logger.Debug("Context: %d results, %d chars", len(results), len(contextBlocks))

	systemPrompt, err := s.prompts.Load(driven.PromptBriefSystem)
	if err != nil {
		return nil, fmt.Errorf("loading system prompt: %w", err)
	}
	userTemplate, err := s.prompts.Load(driven.PromptBriefUser)
	if err != nil {
		return nil, fmt.Errorf("loading user prompt: %w", err)
	}
	userPrompt := buildUserPrompt(userTemplate, meeting.Title, meeting.Date, contextBlocks)

	opts := driven.GenerateOptions{
		MaxTokens:   briefMaxTokens,
		Temperature: briefTemperature,
	}

	response, err := s.llm.Generate(ctx, systemPrompt, userPrompt, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLLMUnavailable, err)
	}

	brief, parseErr := parseBrief(response)
	if parseErr != nil {
		// One repair attempt: show the model its own output and the
		// problem, ask for corrected JSON.
		logger.Warn("Brief parse failed, retrying once: %v", parseErr)

		repairPrompt := fmt.Sprintf(
			"%s\n\nYour previous response could not be used: %v\n\nPrevious response:\n%s\n\nRespond again with only the corrected JSON object.",
			userPrompt, parseErr, response)

		response, err = s.llm.Generate(ctx, systemPrompt, repairPrompt, opts)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrLLMUnavailable, err)
		}
		brief, parseErr = parseBrief(response)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrBriefInvalid, parseErr)
		}
	}

	record := &domain.BriefRecord{
		ID:        domain.NewID("brief"),
		MeetingID: meetingID,
		Model:     s.llm.ModelName(),
		Brief:     *brief,
	}
	if err := s.briefs.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("saving brief: %w", err)
	}

	logger.Info("Generated brief %s for meeting %s", record.ID, meetingID)
	return record, nil
}

// Latest returns the most recent brief for a meeting.
func (s *BriefService) Latest(ctx context.Context, meetingID string) (*domain.BriefRecord, error) {
	return s.briefs.Latest(ctx, meetingID)
}

// History returns all briefs for a meeting, newest first.
func (s *BriefService) History(ctx context.Context, meetingID string) ([]domain.BriefRecord, error) {
	return s.briefs.History(ctx, meetingID)
}

// buildUserPrompt substitutes the template placeholders.
func buildUserPrompt(template, title, date, contextBlocks string) string {
	prompt := strings.ReplaceAll(template, "{{title}}", title)
	prompt = strings.ReplaceAll(prompt, "{{date}}", date)
	prompt = strings.ReplaceAll(prompt, "{{context_blocks}}", contextBlocks)
	return prompt
}

// parseBrief extracts the JSON object from a model response and validates it.
func parseBrief(response string) (*domain.Brief, error) {
	text := extractJSON(response)

	var brief domain.Brief
	if err := json.Unmarshal([]byte(text), &brief); err != nil {
		return nil, fmt.Errorf("decoding brief JSON: %w", err)
	}
	if err := brief.Validate(); err != nil {
		return nil, err
	}
	return &brief, nil
}

// extractJSON strips a markdown code fence when the model wrapped its
// answer in one.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)

	if start := strings.Index(text, "```json"); start >= 0 {
		start += len("```json")
		if end := strings.Index(text[start:], "```"); end >= 0 {
			return strings.TrimSpace(text[start : start+end])
		}
	}
	if strings.HasPrefix(text, "```") {
		if start := strings.Index(text, "\n"); start >= 0 {
			if end := strings.LastIndex(text, "```"); end > start {
				return strings.TrimSpace(text[start+1 : end])
			}
		}
	}
	return text
}

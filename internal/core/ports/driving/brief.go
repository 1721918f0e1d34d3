package driving

import (
	"context"

	"github.com/meridian-labs/brief-cli/internal/core/domain"
)

// BriefService synthesises and retrieves meeting briefs.
type BriefService interface {
	// Generate recalls context for the meeting, prompts the language
	// model, validates the response and persists the resulting brief.
	// An empty recall degrades to an "insufficient information" brief
	// rather than failing.
	Generate(ctx context.Context, meetingID, query string) (*domain.BriefRecord, error)

	// Latest returns the most recent brief for a meeting.
	Latest(ctx context.Context, meetingID string) (*domain.BriefRecord, error)

	// History returns all briefs for a meeting, newest first.
	History(ctx context.Context, meetingID string) ([]domain.BriefRecord, error)
}

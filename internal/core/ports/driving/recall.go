package driving

import (
	"context"

	"github.com/meridian-labs/brief-cli/internal/core/domain"
)

// RecallService retrieves relevant context for a meeting.
type RecallService interface {
	// Recall returns up to opts.K retrieval results for the meeting,
	// ranked by score descending. A meeting with no materials returns an
	// empty result. Runtime embedding/search failures are reported as
	// domain.ErrRecallFailed; unreadable indexes as domain.ErrIndexUnavailable.
	Recall(ctx context.Context, meetingID string, opts domain.RecallOptions) ([]domain.RetrievalResult, error)
}

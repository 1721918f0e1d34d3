package driven

import (
	"context"

	"github.com/meridian-labs/brief-cli/internal/core/domain"
)

// MeetingStore persists meetings.
type MeetingStore interface {
	// Save stores a meeting.
	Save(ctx context.Context, meeting *domain.Meeting) error

	// Get retrieves a meeting by ID.
	Get(ctx context.Context, id string) (*domain.Meeting, error)

	// List returns all meetings, newest first.
	List(ctx context.Context) ([]domain.Meeting, error)
}

// MaterialStore persists materials. Materials are immutable once stored.
type MaterialStore interface {
	// Save stores a material.
	Save(ctx context.Context, material *domain.Material) error

	// Get retrieves a material by ID.
	Get(ctx context.Context, id string) (*domain.Material, error)

	// ListByMeeting returns all materials for a meeting, including text,
	// in insertion order.
	ListByMeeting(ctx context.Context, meetingID string) ([]domain.Material, error)
}

// BriefStore persists generated briefs.
type BriefStore interface {
	// Save stores a brief record.
	Save(ctx context.Context, record *domain.BriefRecord) error

	// Get retrieves a brief record by ID.
	Get(ctx context.Context, id string) (*domain.BriefRecord, error)

	// Latest returns the most recent brief for a meeting.
	Latest(ctx context.Context, meetingID string) (*domain.BriefRecord, error)

	// History returns all briefs for a meeting, newest first.
	History(ctx context.Context, meetingID string) ([]domain.BriefRecord, error)
}

package driving

import (
	"context"

	"github.com/meridian-labs/brief-cli/internal/core/domain"
)

// MeetingService manages meetings and their materials.
type MeetingService interface {
	// CreateMeeting creates a meeting and returns it.
	CreateMeeting(ctx context.Context, title, date, attendees, tags string) (*domain.Meeting, error)

	// GetMeeting retrieves a meeting by ID.
	GetMeeting(ctx context.Context, id string) (*domain.Meeting, error)

	// ListMeetings returns all meetings, newest first.
	ListMeetings(ctx context.Context) ([]domain.Meeting, error)

	// AddMaterialFile extracts text from an uploaded file and stores it as
	// a material of the meeting.
	AddMaterialFile(ctx context.Context, meetingID, filename string, content []byte) (*domain.Material, error)

	// AddPastedText stores pasted text as a material of the meeting.
	AddPastedText(ctx context.Context, meetingID, text string) (*domain.Material, error)

	// ListMaterials returns all materials for a meeting.
	ListMaterials(ctx context.Context, meetingID string) ([]domain.Material, error)
}

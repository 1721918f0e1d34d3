package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/meridian-labs/brief-cli/internal/core/domain"
	"github.com/meridian-labs/brief-cli/internal/core/ports/driven"
	"github.com/meridian-labs/brief-cli/internal/core/ports/driving"
	"github.com/meridian-labs/brief-cli/internal/logger"
)

// Ensure MeetingService implements the interface.
var _ driving.MeetingService = (*MeetingService)(nil)

// MeetingService manages meetings and ingests their materials.
type MeetingService struct {
	meetings   driven.MeetingStore
	materials  driven.MaterialStore
	extractors driven.ExtractorRegistry
}

// NewMeetingService creates a meeting service.
func NewMeetingService(
	meetings driven.MeetingStore,
	materials driven.MaterialStore,
	extractors driven.ExtractorRegistry,
) *MeetingService {
	return &MeetingService{
		meetings:   meetings,
		materials:  materials,
		extractors: extractors,
	}
}

// CreateMeeting creates a meeting and returns it.
func (s *MeetingService) CreateMeeting(
	ctx context.Context, title, date, attendees, tags string,
) (*domain.Meeting, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: meeting title is required", domain.ErrInvalidInput)
	}

	meeting := &domain.Meeting{
		ID:        domain.NewID("meeting"),
		Title:     title,
		Date:      strings.TrimSpace(date),
		Attendees: strings.TrimSpace(attendees),
		Tags:      strings.TrimSpace(tags),
	}

	if err := s.meetings.Save(ctx, meeting); err != nil {
		return nil, fmt.Errorf("saving meeting: %w", err)
	}

	logger.Info("Created meeting %s (%q)", meeting.ID, meeting.Title)
	return meeting, nil
}

// GetMeeting retrieves a meeting by ID.
func (s *MeetingService) GetMeeting(ctx context.Context, id string) (*domain.Meeting, error) {
	return s.meetings.Get(ctx, id)
}

// ListMeetings returns all meetings, newest first.
func (s *MeetingService) ListMeetings(ctx context.Context) ([]domain.Meeting, error) {
	return s.meetings.List(ctx)
}

// AddMaterialFile extracts text from an uploaded file and stores it as a
// material of the meeting.
func (s *MeetingService) AddMaterialFile(
	ctx context.Context, meetingID, filename string, content []byte,
) (*domain.Material, error) {
	if _, err := s.meetings.Get(ctx, meetingID); err != nil {
		return nil, err
	}

	extractor, err := s.extractors.ForFilename(filename)
	if err != nil {
		return nil, err
	}

	text, err := extractor.Extract(ctx, content, filename)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", filename, err)
	}

	material := &domain.Material{
		ID:        domain.NewID("material"),
		MeetingID: meetingID,
		Filename:  filepath.Base(filename),
		MediaType: extractor.MediaType(),
		Text:      text,
	}

	if err := s.materials.Save(ctx, material); err != nil {
		return nil, fmt.Errorf("saving material: %w", err)
	}

	logger.Info("Added material %s (%s, %d chars) to meeting %s",
		material.ID, material.MediaType, len(text), meetingID)
	return material, nil
}

// AddPastedText stores pasted text as a material of the meeting.
func (s *MeetingService) AddPastedText(
	ctx context.Context, meetingID, text string,
) (*domain.Material, error) {
	if _, err := s.meetings.Get(ctx, meetingID); err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: pasted text is empty", domain.ErrEmptyMaterial)
	}

	material := &domain.Material{
		ID:        domain.NewID("material"),
		MeetingID: meetingID,
		MediaType: "pasted",
		Text:      text,
	}

	if err := s.materials.Save(ctx, material); err != nil {
		return nil, fmt.Errorf("saving material: %w", err)
	}

	logger.Info("Added pasted material %s (%d chars) to meeting %s",
		material.ID, len(text), meetingID)
	return material, nil
}

// ListMaterials returns all materials for a meeting.
func (s *MeetingService) ListMaterials(ctx context.Context, meetingID string) ([]domain.Material, error) {
	if _, err := s.meetings.Get(ctx, meetingID); err != nil {
		return nil, err
	}
	return s.materials.ListByMeeting(ctx, meetingID)
}

package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-labs/brief-cli/internal/core/domain"
)

type meetingFixture struct {
	meetings  *mockMeetingStore
	materials *mockMaterialStore
	extractor *mockExtractor
	svc       *MeetingService
}

func newMeetingFixture() *meetingFixture {
	f := &meetingFixture{
		meetings:  newMockMeetingStore(),
		materials: &mockMaterialStore{},
		extractor: &mockExtractor{},
	}
	f.svc = NewMeetingService(f.meetings, f.materials, &mockExtractorRegistry{extractor: f.extractor})
	return f
}

func (f *meetingFixture) seedMeeting(t *testing.T) *domain.Meeting {
	t.Helper()
	meeting, err := f.svc.CreateMeeting(context.Background(), "Weekly sync", "2026-03-02", "ana,bo", "eng")
	require.NoError(t, err)
	return meeting
}

func TestCreateMeeting(t *testing.T) {
	f := newMeetingFixture()

	meeting, err := f.svc.CreateMeeting(context.Background(), "  Q3 planning  ", " 2026-07-01 ", " ana, bo ", " planning ")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(meeting.ID, "meeting_"))
	assert.Equal(t, "Q3 planning", meeting.Title)
	assert.Equal(t, "2026-07-01", meeting.Date)
	assert.Equal(t, "ana, bo", meeting.Attendees)
	assert.Equal(t, "planning", meeting.Tags)

	stored, err := f.svc.GetMeeting(context.Background(), meeting.ID)
	require.NoError(t, err)
	assert.Equal(t, meeting.Title, stored.Title)
}

func TestCreateMeeting_TitleRequired(t *testing.T) {
	f := newMeetingFixture()

	_, err := f.svc.CreateMeeting(context.Background(), "   ", "2026-07-01", "", "")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateMeeting_SaveFailure(t *testing.T) {
	f := newMeetingFixture()
	f.meetings.saveErr = errors.New("db locked")

	_, err := f.svc.CreateMeeting(context.Background(), "Sync", "", "", "")

	assert.Error(t, err)
}

func TestGetMeeting_NotFound(t *testing.T) {
	f := newMeetingFixture()

	_, err := f.svc.GetMeeting(context.Background(), "meeting_missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddMaterialFile(t *testing.T) {
	f := newMeetingFixture()
	meeting := f.seedMeeting(t)

	material, err := f.svc.AddMaterialFile(context.Background(), meeting.ID, "/tmp/notes/agenda.txt", []byte("  agenda body  "))

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(material.ID, "material_"))
	assert.Equal(t, meeting.ID, material.MeetingID)
	assert.Equal(t, "agenda.txt", material.Filename, "stored filename is the base name")
	assert.Equal(t, "txt", material.MediaType)
	assert.Equal(t, "agenda body", material.Text)

	listed, err := f.svc.ListMaterials(context.Background(), meeting.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, material.ID, listed[0].ID)
}

func TestAddMaterialFile_UnknownMeeting(t *testing.T) {
	f := newMeetingFixture()

	_, err := f.svc.AddMaterialFile(context.Background(), "meeting_missing", "agenda.txt", []byte("body"))

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddMaterialFile_UnsupportedExtension(t *testing.T) {
	f := newMeetingFixture()
	meeting := f.seedMeeting(t)

	_, err := f.svc.AddMaterialFile(context.Background(), meeting.ID, "slides.pptx", []byte("binary"))

	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestAddMaterialFile_ExtractionFailure(t *testing.T) {
	f := newMeetingFixture()
	meeting := f.seedMeeting(t)
	f.extractor.extractErr = domain.ErrEmptyMaterial

	_, err := f.svc.AddMaterialFile(context.Background(), meeting.ID, "empty.txt", nil)

	assert.ErrorIs(t, err, domain.ErrEmptyMaterial)
}

func TestAddPastedText(t *testing.T) {
	f := newMeetingFixture()
	meeting := f.seedMeeting(t)

	material, err := f.svc.AddPastedText(context.Background(), meeting.ID, "\n  pasted minutes  \n")

	require.NoError(t, err)
	assert.Equal(t, "pasted", material.MediaType)
	assert.Empty(t, material.Filename)
	assert.Equal(t, "pasted minutes", material.Text)
}

func TestAddPastedText_Empty(t *testing.T) {
	f := newMeetingFixture()
	meeting := f.seedMeeting(t)

	_, err := f.svc.AddPastedText(context.Background(), meeting.ID, "   \n\t ")

	assert.ErrorIs(t, err, domain.ErrEmptyMaterial)
}

func TestAddPastedText_UnknownMeeting(t *testing.T) {
	f := newMeetingFixture()

	_, err := f.svc.AddPastedText(context.Background(), "meeting_missing", "text")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListMaterials_UnknownMeeting(t *testing.T) {
	f := newMeetingFixture()

	_, err := f.svc.ListMaterials(context.Background(), "meeting_missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

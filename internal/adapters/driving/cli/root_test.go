package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/meridian-labs/brief-cli/internal/core/domain"
	"github.com/meridian-labs/brief-cli/internal/core/services"
)

// --- Stub services ---

type stubMeetingService struct {
	meetings  []domain.Meeting
	materials []domain.Material
	err       error
}

func (s *stubMeetingService) CreateMeeting(_ context.Context, title, date, attendees, tags string) (*domain.Meeting, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Meeting{ID: "meeting_stub", Title: title, Date: date, Attendees: attendees, Tags: tags}, nil
}

func (s *stubMeetingService) GetMeeting(_ context.Context, id string) (*domain.Meeting, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.meetings {
		if s.meetings[i].ID == id {
			return &s.meetings[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubMeetingService) ListMeetings(_ context.Context) ([]domain.Meeting, error) {
	return s.meetings, s.err
}

func (s *stubMeetingService) AddMaterialFile(_ context.Context, meetingID, filename string, content []byte) (*domain.Material, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Material{ID: "material_stub", MeetingID: meetingID, Filename: filename, MediaType: "txt", Text: string(content)}, nil
}

func (s *stubMeetingService) AddPastedText(_ context.Context, meetingID, text string) (*domain.Material, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Material{ID: "material_stub", MeetingID: meetingID, MediaType: "pasted", Text: text}, nil
}

func (s *stubMeetingService) ListMaterials(_ context.Context, _ string) ([]domain.Material, error) {
	return s.materials, s.err
}

type stubRecallService struct {
	results  []domain.RetrievalResult
	lastOpts domain.RecallOptions
	err      error
}

func (s *stubRecallService) Recall(_ context.Context, _ string, opts domain.RecallOptions) ([]domain.RetrievalResult, error) {
	s.lastOpts = opts
	return s.results, s.err
}

type stubBriefService struct {
	record    *domain.BriefRecord
	history   []domain.BriefRecord
	lastQuery string
	err       error
}

func (s *stubBriefService) Generate(_ context.Context, _, query string) (*domain.BriefRecord, error) {
	s.lastQuery = query
	return s.record, s.err
}

func (s *stubBriefService) Latest(_ context.Context, _ string) (*domain.BriefRecord, error) {
	if s.record == nil && s.err == nil {
		return nil, domain.ErrNotFound
	}
	return s.record, s.err
}

func (s *stubBriefService) History(_ context.Context, _ string) ([]domain.BriefRecord, error) {
	return s.history, s.err
}

func testBriefRecord() *domain.BriefRecord {
	return &domain.BriefRecord{
		ID:        "brief_stub",
		MeetingID: "meeting_stub",
		Model:     "stub-model",
		Brief: domain.Brief{
			MeetingTitle:     "Weekly sync",
			LastMeetingRecap: "Shipped the importer.",
			OpenActionItems:  []domain.ActionItem{{Owner: "ana", Item: "Fix flaky test", Status: domain.ActionOpen}},
			KeyTopicsToday:   []string{"Release readiness"},
			ProposedAgenda:   []domain.AgendaItem{{Topic: "Release readiness", Minutes: 15, Owner: "bo"}},
			Evidence:         []domain.Evidence{{Source: "material_a#c0", Snippet: "importer shipped"}},
		},
		CreatedAt: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
	}
}

// setupTestServices installs stub services and returns a cleanup restoring
// the previous ones.
func setupTestServices() func() {
	oldMeeting := meetingService
	oldRecall := recallService
	oldBrief := briefService

	meetingService = &stubMeetingService{
		meetings: []domain.Meeting{{ID: "meeting_stub", Title: "Weekly sync", Date: "2026-03-02"}},
		materials: []domain.Material{
			{ID: "material_stub", MeetingID: "meeting_stub", Filename: "notes.txt", MediaType: "txt", Text: "notes"},
		},
	}
	recallService = &stubRecallService{results: []domain.RetrievalResult{
		{MaterialID: "material_stub", ChunkIndex: 0, Score: 0.9, Text: "notes"},
	}}
	briefService = &stubBriefService{record: testBriefRecord(), history: []domain.BriefRecord{*testBriefRecord()}}

	return func() {
		meetingService = oldMeeting
		recallService = oldRecall
		briefService = oldBrief
	}
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "brief", rootCmd.Use)
}

func TestRootCmd_HasVerboseFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("verbose")
	assert.NotNil(t, flag)
	assert.Equal(t, "v", flag.Shorthand)
}

func TestRootCmd_HasExpectedCommands(t *testing.T) {
	names := make([]string, 0)
	for _, cmd := range rootCmd.Commands() {
		names = append(names, cmd.Name())
	}

	assert.Contains(t, names, "meeting")
	assert.Contains(t, names, "material")
	assert.Contains(t, names, "recall")
	assert.Contains(t, names, "brief")
	assert.Contains(t, names, "version")
}

// stubConfigStore serves a fixed key/value map.
type stubConfigStore struct {
	values map[string]any
}

func (s *stubConfigStore) Get(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s *stubConfigStore) GetString(key string) string {
	if v, ok := s.values[key].(string); ok {
		return v
	}
	return ""
}

func (s *stubConfigStore) GetInt(key string) int {
	if v, ok := s.values[key].(int); ok {
		return v
	}
	return 0
}

func (s *stubConfigStore) GetFloat(key string) float64 {
	if v, ok := s.values[key].(float64); ok {
		return v
	}
	return 0
}

func (s *stubConfigStore) GetBool(key string) bool {
	if v, ok := s.values[key].(bool); ok {
		return v
	}
	return false
}

func (s *stubConfigStore) Set(string, any) error { return nil }
func (s *stubConfigStore) Save() error           { return nil }
func (s *stubConfigStore) Load() error           { return nil }
func (s *stubConfigStore) Path() string          { return "" }

func TestRecallConfig_Defaults(t *testing.T) {
	rc := recallConfig(&stubConfigStore{values: map[string]any{}})

	assert.Equal(t, services.DefaultRecallConfig(), rc)
}

func TestRecallConfig_Overrides(t *testing.T) {
	rc := recallConfig(&stubConfigStore{values: map[string]any{
		"recall.k":                        12,
		"recall.passthrough_max_chars":    1000,
		"recall.query_score_floor":        0.1,
		"recall.no_query_score_floor":     0.2,
		"recall.surrounding_score_factor": 0.8,
		"recall.chunk_max_len":            2000,
		"recall.chunk_overlap":            400,
		"recall.chunk_boundary_threshold": 0.7,
		"recall.pseudo_query_chunks":      3,
	}})

	assert.Equal(t, 12, rc.DefaultK)
	assert.Equal(t, 1000, rc.PassthroughMaxChars)
	assert.Equal(t, 0.1, rc.QueryScoreFloor)
	assert.Equal(t, 0.2, rc.NoQueryScoreFloor)
	assert.Equal(t, 0.8, rc.SurroundingScoreFactor)
	assert.Equal(t, 2000, rc.ChunkMaxLen)
	assert.Equal(t, 400, rc.ChunkOverlap)
	assert.Equal(t, 0.7, rc.ChunkBoundaryThreshold)
	assert.Equal(t, 3, rc.PseudoQueryChunks)
}

func TestRecallConfig_RejectsOutOfRangeThreshold(t *testing.T) {
	rc := recallConfig(&stubConfigStore{values: map[string]any{
		"recall.chunk_boundary_threshold": 1.5,
	}})

	assert.Equal(t, services.DefaultRecallConfig().ChunkBoundaryThreshold, rc.ChunkBoundaryThreshold)
}

func TestDataDir_EnvOverride(t *testing.T) {
	t.Setenv("BRIEF_DATA_DIR", "/tmp/brief-test-data")

	dir, err := dataDir()

	assert.NoError(t, err)
	assert.Equal(t, "/tmp/brief-test-data", dir)
}

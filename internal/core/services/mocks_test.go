package services

import (
	"context"
	"strings"
	"sync"

	"github.com/meridian-labs/brief-cli/internal/core/domain"
	"github.com/meridian-labs/brief-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockMeetingStore implements driven.MeetingStore for testing.
type mockMeetingStore struct {
	mu       sync.Mutex
	meetings map[string]domain.Meeting
	saveErr  error
}

func newMockMeetingStore() *mockMeetingStore {
	return &mockMeetingStore{meetings: make(map[string]domain.Meeting)}
}

func (m *mockMeetingStore) Save(_ context.Context, meeting *domain.Meeting) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.meetings[meeting.ID] = *meeting
	return nil
}

func (m *mockMeetingStore) Get(_ context.Context, id string) (*domain.Meeting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	meeting, ok := m.meetings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &meeting, nil
}

func (m *mockMeetingStore) List(_ context.Context) ([]domain.Meeting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Meeting, 0, len(m.meetings))
	for _, meeting := range m.meetings {
		out = append(out, meeting)
	}
	return out, nil
}

// mockMaterialStore implements driven.MaterialStore for testing.
type mockMaterialStore struct {
	mu        sync.Mutex
	materials []domain.Material
	listErr   error
	saveErr   error
}

func (m *mockMaterialStore) Save(_ context.Context, material *domain.Material) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.materials = append(m.materials, *material)
	return nil
}

func (m *mockMaterialStore) Get(_ context.Context, id string) (*domain.Material, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.materials {
		if m.materials[i].ID == id {
			material := m.materials[i]
			return &material, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockMaterialStore) ListByMeeting(_ context.Context, meetingID string) ([]domain.Material, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Material
	for _, material := range m.materials {
		if material.MeetingID == meetingID {
			out = append(out, material)
		}
	}
	return out, nil
}

// mockBriefStore implements driven.BriefStore for testing.
type mockBriefStore struct {
	mu      sync.Mutex
	records []domain.BriefRecord
	saveErr error
}

func (m *mockBriefStore) Save(_ context.Context, record *domain.BriefRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, *record)
	return nil
}

func (m *mockBriefStore) Get(_ context.Context, id string) (*domain.BriefRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.records {
		if m.records[i].ID == id {
			record := m.records[i]
			return &record, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockBriefStore) Latest(_ context.Context, meetingID string) (*domain.BriefRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.records) - 1; i >= 0; i-- {
		if m.records[i].MeetingID == meetingID {
			record := m.records[i]
			return &record, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockBriefStore) History(_ context.Context, meetingID string) ([]domain.BriefRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.BriefRecord
	for i := len(m.records) - 1; i >= 0; i-- {
		if m.records[i].MeetingID == meetingID {
			out = append(out, m.records[i])
		}
	}
	return out, nil
}

// mockEmbeddingService implements driven.EmbeddingService for testing.
// It records inputs and returns a fixed vector per text.
type mockEmbeddingService struct {
	dims       int
	embedErr   error
	batchErr   error
	lastQuery  string
	batchCalls int
	lastBatch  []string
}

func (m *mockEmbeddingService) vector() []float32 {
	dims := m.dims
	if dims == 0 {
		dims = 4
	}
	v := make([]float32, dims)
	v[0] = 1
	return v
}

func (m *mockEmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	m.lastQuery = text
	return m.vector(), nil
}

func (m *mockEmbeddingService) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	m.batchCalls++
	m.lastBatch = append([]string(nil), texts...)
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = m.vector()
	}
	return out, nil
}

func (m *mockEmbeddingService) Dimensions() int {
	if m.dims == 0 {
		return 4
	}
	return m.dims
}

func (m *mockEmbeddingService) ModelName() string { return "mock-embed" }

func (m *mockEmbeddingService) Ping(_ context.Context) error { return nil }

func (m *mockEmbeddingService) Close() error { return nil }

// mockVectorIndex implements driven.VectorIndex for testing.
type mockVectorIndex struct {
	size       int
	hits       []driven.VectorHit
	searchErr  error
	insertErr  error
	persistErr error
	persisted  bool
	inserted   [][]float32
}

func (m *mockVectorIndex) Insert(_ context.Context, vectors [][]float32) (int, error) {
	if m.insertErr != nil {
		return 0, m.insertErr
	}
	m.inserted = append(m.inserted, vectors...)
	m.size += len(vectors)
	return len(vectors), nil
}

func (m *mockVectorIndex) Search(_ context.Context, _ []float32, k int) ([]driven.VectorHit, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if k > len(m.hits) {
		return m.hits, nil
	}
	return m.hits[:k], nil
}

func (m *mockVectorIndex) Persist() error {
	if m.persistErr != nil {
		return m.persistErr
	}
	m.persisted = true
	return nil
}

func (m *mockVectorIndex) Size() int { return m.size }

func (m *mockVectorIndex) Close() error { return nil }

// mockIndexFactory implements driven.VectorIndexFactory for testing.
type mockIndexFactory struct {
	index   *mockVectorIndex
	openErr error
}

func (m *mockIndexFactory) OpenOrCreate(_ context.Context, _ string) (driven.VectorIndex, error) {
	if m.openErr != nil {
		return nil, m.openErr
	}
	return m.index, nil
}

// mockLLMService implements driven.LLMService for testing. Responses are
// consumed in order; the last one repeats.
type mockLLMService struct {
	responses   []string
	generateErr error
	calls       int
	systemSeen  []string
	userSeen    []string
}

func (m *mockLLMService) Generate(_ context.Context, systemPrompt, userPrompt string, _ driven.GenerateOptions) (string, error) {
	if m.generateErr != nil {
		return "", m.generateErr
	}
	m.systemSeen = append(m.systemSeen, systemPrompt)
	m.userSeen = append(m.userSeen, userPrompt)
	i := m.calls
	m.calls++
	if i >= len(m.responses) {
		i = len(m.responses) - 1
	}
	if i < 0 {
		return "", nil
	}
	return m.responses[i], nil
}

func (m *mockLLMService) ModelName() string { return "mock-llm" }

func (m *mockLLMService) Ping(_ context.Context) error { return nil }

func (m *mockLLMService) Close() error { return nil }

// mockPromptStore implements driven.PromptStore for testing.
type mockPromptStore struct {
	prompts map[string]string
}

func newMockPromptStore() *mockPromptStore {
	return &mockPromptStore{prompts: map[string]string{
		driven.PromptBriefSystem: "Respond with brief JSON.",
		driven.PromptBriefUser:   "Title: {{title}}\nDate: {{date}}\nContext:\n{{context_blocks}}",
	}}
}

func (m *mockPromptStore) Load(name string) (string, error) {
	prompt, ok := m.prompts[name]
	if !ok {
		return "", domain.ErrNotFound
	}
	return prompt, nil
}

func (m *mockPromptStore) Reload() {}

// mockRecallService implements driving.RecallService for testing.
type mockRecallService struct {
	results   []domain.RetrievalResult
	recallErr error
	lastOpts  domain.RecallOptions
}

func (m *mockRecallService) Recall(_ context.Context, _ string, opts domain.RecallOptions) ([]domain.RetrievalResult, error) {
	m.lastOpts = opts
	if m.recallErr != nil {
		return nil, m.recallErr
	}
	return m.results, nil
}

// mockExtractorRegistry implements driven.ExtractorRegistry for testing.
type mockExtractorRegistry struct {
	extractor driven.Extractor
}

func (m *mockExtractorRegistry) ForFilename(filename string) (driven.Extractor, error) {
	if m.extractor == nil || !strings.HasSuffix(filename, ".txt") {
		return nil, domain.ErrUnsupportedType
	}
	return m.extractor, nil
}

func (m *mockExtractorRegistry) Register(_ driven.Extractor) {}

// mockExtractor implements driven.Extractor for testing.
type mockExtractor struct {
	extractErr error
}

func (m *mockExtractor) SupportedExtensions() []string { return []string{"txt"} }

func (m *mockExtractor) MediaType() string { return "txt" }

func (m *mockExtractor) Extract(_ context.Context, content []byte, _ string) (string, error) {
	if m.extractErr != nil {
		return "", m.extractErr
	}
	return strings.TrimSpace(string(content)), nil
}

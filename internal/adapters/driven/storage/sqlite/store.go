package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/meridian-labs/brief-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/meridian-labs/brief-cli/internal/core/domain"
	"github.com/meridian-labs/brief-cli/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to
// all metadata store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.brief/data/brief.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".brief", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "brief.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// MeetingStore returns a MeetingStore interface backed by this store.
func (s *Store) MeetingStore() driven.MeetingStore {
	return &meetingStore{store: s}
}

// MaterialStore returns a MaterialStore interface backed by this store.
func (s *Store) MaterialStore() driven.MaterialStore {
	return &materialStore{store: s}
}

// BriefStore returns a BriefStore interface backed by this store.
func (s *Store) BriefStore() driven.BriefStore {
	return &briefStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Meeting Store ====================

// meetingStore implements driven.MeetingStore.
type meetingStore struct {
	store *Store
}

var _ driven.MeetingStore = (*meetingStore)(nil)

// Save stores or updates a meeting.
func (s *meetingStore) Save(ctx context.Context, meeting *domain.Meeting) error {
	if meeting.CreatedAt.IsZero() {
		meeting.CreatedAt = time.Now().UTC()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO meetings (id, title, date, attendees, tags, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			date = excluded.date,
			attendees = excluded.attendees,
			tags = excluded.tags
	`, meeting.ID, meeting.Title, meeting.Date, meeting.Attendees, meeting.Tags, meeting.CreatedAt)

	if err != nil {
		return fmt.Errorf("saving meeting: %w", err)
	}
	return nil
}

// Get retrieves a meeting by ID.
func (s *meetingStore) Get(ctx context.Context, id string) (*domain.Meeting, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, title, date, attendees, tags, created_at
		FROM meetings WHERE id = ?
	`, id)

	meeting, err := scanMeeting(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning meeting: %w", err)
	}
	return meeting, nil
}

// List returns all meetings, newest first.
func (s *meetingStore) List(ctx context.Context) ([]domain.Meeting, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, title, date, attendees, tags, created_at
		FROM meetings ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("listing meetings: %w", err)
	}
	defer rows.Close()

	var meetings []domain.Meeting
	for rows.Next() {
		meeting, err := scanMeeting(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning meeting: %w", err)
		}
		meetings = append(meetings, *meeting)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating meetings: %w", err)
	}
	return meetings, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanMeeting(row scanner) (*domain.Meeting, error) {
	var meeting domain.Meeting
	var createdAt sql.NullTime
	if err := row.Scan(&meeting.ID, &meeting.Title, &meeting.Date,
		&meeting.Attendees, &meeting.Tags, &createdAt); err != nil {
		return nil, err
	}
	if createdAt.Valid {
		meeting.CreatedAt = createdAt.Time
	}
	return &meeting, nil
}

// ==================== Material Store ====================

// materialStore implements driven.MaterialStore.
type materialStore struct {
	store *Store
}

var _ driven.MaterialStore = (*materialStore)(nil)

// Save stores a material. Materials are immutable, so conflicts are rejected.
func (s *materialStore) Save(ctx context.Context, material *domain.Material) error {
	if material.CreatedAt.IsZero() {
		material.CreatedAt = time.Now().UTC()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO materials (id, meeting_id, filename, media_type, text, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, material.ID, material.MeetingID, material.Filename, material.MediaType,
		material.Text, material.CreatedAt)

	if err != nil {
		return fmt.Errorf("saving material: %w", err)
	}
	return nil
}

// Get retrieves a material by ID.
func (s *materialStore) Get(ctx context.Context, id string) (*domain.Material, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, meeting_id, filename, media_type, text, created_at
		FROM materials WHERE id = ?
	`, id)

	material, err := scanMaterial(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning material: %w", err)
	}
	return material, nil
}

// ListByMeeting returns all materials for a meeting in insertion order.
func (s *materialStore) ListByMeeting(ctx context.Context, meetingID string) ([]domain.Material, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, meeting_id, filename, media_type, text, created_at
		FROM materials WHERE meeting_id = ?
		ORDER BY created_at ASC, id ASC
	`, meetingID)
	if err != nil {
		return nil, fmt.Errorf("listing materials: %w", err)
	}
	defer rows.Close()

	var materials []domain.Material
	for rows.Next() {
		material, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning material: %w", err)
		}
		materials = append(materials, *material)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating materials: %w", err)
	}
	return materials, nil
}

func scanMaterial(row scanner) (*domain.Material, error) {
	var material domain.Material
	var createdAt sql.NullTime
	if err := row.Scan(&material.ID, &material.MeetingID, &material.Filename,
		&material.MediaType, &material.Text, &createdAt); err != nil {
		return nil, err
	}
	if createdAt.Valid {
		material.CreatedAt = createdAt.Time
	}
	return &material, nil
}

// ==================== Brief Store ====================

// briefStore implements driven.BriefStore.
type briefStore struct {
	store *Store
}

var _ driven.BriefStore = (*briefStore)(nil)

// Save stores a brief record. The brief content is serialised as JSON.
func (s *briefStore) Save(ctx context.Context, record *domain.BriefRecord) error {
	briefJSON, err := json.Marshal(record.Brief)
	if err != nil {
		return fmt.Errorf("marshalling brief: %w", err)
	}

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO briefs (id, meeting_id, model, brief, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, record.ID, record.MeetingID, record.Model, string(briefJSON), record.CreatedAt)

	if err != nil {
		return fmt.Errorf("saving brief: %w", err)
	}
	return nil
}

// Get retrieves a brief record by ID.
func (s *briefStore) Get(ctx context.Context, id string) (*domain.BriefRecord, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, meeting_id, model, brief, created_at
		FROM briefs WHERE id = ?
	`, id)

	record, err := scanBrief(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning brief: %w", err)
	}
	return record, nil
}

// Latest returns the most recent brief for a meeting.
func (s *briefStore) Latest(ctx context.Context, meetingID string) (*domain.BriefRecord, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, meeting_id, model, brief, created_at
		FROM briefs WHERE meeting_id = ?
		ORDER BY created_at DESC, id DESC LIMIT 1
	`, meetingID)

	record, err := scanBrief(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning brief: %w", err)
	}
	return record, nil
}

// History returns all briefs for a meeting, newest first.
func (s *briefStore) History(ctx context.Context, meetingID string) ([]domain.BriefRecord, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, meeting_id, model, brief, created_at
		FROM briefs WHERE meeting_id = ?
		ORDER BY created_at DESC, id DESC
	`, meetingID)
	if err != nil {
		return nil, fmt.Errorf("listing briefs: %w", err)
	}
	defer rows.Close()

	var records []domain.BriefRecord
	for rows.Next() {
		record, err := scanBrief(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning brief: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating briefs: %w", err)
	}
	return records, nil
}

func scanBrief(row scanner) (*domain.BriefRecord, error) {
	var record domain.BriefRecord
	var briefJSON string
	var createdAt sql.NullTime
	if err := row.Scan(&record.ID, &record.MeetingID, &record.Model,
		&briefJSON, &createdAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(briefJSON), &record.Brief); err != nil {
		return nil, fmt.Errorf("unmarshalling brief: %w", err)
	}
	if createdAt.Valid {
		record.CreatedAt = createdAt.Time
	}
	return &record, nil
}

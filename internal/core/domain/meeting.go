package domain

import "time"

// Meeting is the collection scope for retrieval. Materials are grouped by
// meeting, and one vector index is maintained per meeting.
type Meeting struct {
	// ID is the unique identifier for the meeting.
	ID string

	// Title is the human-readable meeting title.
	Title string

	// Date is the meeting date in YYYY-MM-DD form. May be empty.
	Date string

	// Attendees is a free-form comma-separated list. May be empty.
	Attendees string

	// Tags is a free-form comma-separated list. May be empty.
	Tags string

	// CreatedAt is when the meeting was created.
	CreatedAt time.Time
}

// Material is the raw extracted text for one uploaded or pasted document.
// Materials are immutable once stored and owned by exactly one meeting.
type Material struct {
	// ID is the unique identifier for the material.
	ID string

	// MeetingID links to the owning Meeting.
	MeetingID string

	// Filename is the original file name, or empty for pasted text.
	Filename string

	// MediaType records the source format (txt, md, pasted, ...).
	MediaType string

	// Text is the full extracted plain text.
	Text string

	// CreatedAt is when the material was ingested.
	CreatedAt time.Time
}

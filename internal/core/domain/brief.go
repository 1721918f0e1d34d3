package domain

import (
	"fmt"
	"time"
)

// Action item statuses.
const (
	ActionOpen    = "open"
	ActionBlocked = "blocked"
	ActionDone    = "done"
)

// ActionItem is a single action item carried into the brief.
type ActionItem struct {
	Owner string `json:"owner"`
	Item  string `json:"item"`
	// Due is an optional YYYY-MM-DD date.
	Due    string `json:"due,omitempty"`
	Status string `json:"status"`
}

// AgendaItem is a single proposed agenda entry.
type AgendaItem struct {
	Topic   string `json:"topic"`
	Minutes int    `json:"minutes"`
	Owner   string `json:"owner,omitempty"`
}

// Evidence links a point in the brief back to retrieved source material.
// Source uses the retrieval attribution format, e.g. "material_x#c3".
type Evidence struct {
	Source  string `json:"source"`
	Snippet string `json:"snippet"`
}

// Brief is the structured meeting brief produced by synthesis.
type Brief struct {
	MeetingTitle string `json:"meeting_title"`
	// TimeWindow covers the period the brief spans, e.g. "2025-11-01..2025-11-07".
	TimeWindow       string       `json:"time_window,omitempty"`
	LastMeetingRecap string       `json:"last_meeting_recap"`
	OpenActionItems  []ActionItem `json:"open_action_items"`
	KeyTopicsToday   []string     `json:"key_topics_today"`
	ProposedAgenda   []AgendaItem `json:"proposed_agenda"`
	Evidence         []Evidence   `json:"evidence"`
}

// Validate checks the brief for structural problems the model is known to
// produce: missing title, action items without status, negative durations.
func (b *Brief) Validate() error {
	if b.MeetingTitle == "" {
		return fmt.Errorf("%w: brief missing meeting_title", ErrInvalidInput)
	}
	for i := range b.OpenActionItems {
		item := &b.OpenActionItems[i]
		switch item.Status {
		case ActionOpen, ActionBlocked, ActionDone:
		case "":
			item.Status = ActionOpen
		default:
			return fmt.Errorf("%w: action item %d has unknown status %q", ErrInvalidInput, i, item.Status)
		}
	}
	for i, a := range b.ProposedAgenda {
		if a.Minutes < 0 {
			return fmt.Errorf("%w: agenda item %d has negative minutes", ErrInvalidInput, i)
		}
	}
	return nil
}

// BriefRecord is a persisted brief with generation metadata.
type BriefRecord struct {
	// ID is the unique identifier for the record.
	ID string

	// MeetingID links to the meeting the brief was generated for.
	MeetingID string

	// Model names the language model that produced the brief.
	Model string

	// Brief is the validated brief content.
	Brief Brief

	// CreatedAt is when the brief was generated.
	CreatedAt time.Time
}

package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is one typed domain occurrence published by a mutating handler and
// consumed by the notification dispatcher. RecipientIDs may be empty, in
// which case every organization member except the actor is addressed.
type Event struct {
	ID           string     `json:"id"`
	Type         string     `json:"type"`
	OrgID        uint       `json:"org_id"`
	ActorID      *uint      `json:"actor_id,omitempty"`
	RecipientIDs []uint     `json:"recipient_ids,omitempty"`
	Priority     string     `json:"priority"`
	Title        string     `json:"title"`
	Message      string     `json:"message"`
	EntityType   string     `json:"entity_type,omitempty"`
	EntityID     *uint      `json:"entity_id,omitempty"`
	OccurredAt   time.Time  `json:"occurred_at"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
}

// NewEvent stamps an Event with a fresh id and the current time.
func NewEvent(eventType string, orgID uint, title, message string) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OrgID:      orgID,
		Priority:   "normal",
		Title:      title,
		Message:    message,
		OccurredAt: time.Now(),
	}
}

package domain

import "time"

// InteractionEvent is one user interaction appended to the bounded
// per-user preference log.
type InteractionEvent struct {
	CategorySlug string    `json:"category_slug"`
	EventType    string    `json:"event_type"`
	CreatedAt    time.Time `json:"created_at"`
}

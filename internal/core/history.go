package core

import "time"

// Conversation is one persisted chat, stored as a single JSON file
// named by its ID. The durable file is the source of truth; in-memory
// copies live only for the duration of one operation.
type Conversation struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	LastInteractionAt time.Time `json:"lastInteractionAt"`
	Messages          []Message `json:"messages"`
}

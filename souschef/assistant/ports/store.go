package assistantports

import (
	"time"
)

// ConversationEntry is one completed exchange. Immutable once created.
type ConversationEntry struct {
	Timestamp   time.Time `json:"timestamp"`
	UserMessage string    `json:"user_message"`
	AIResponse  string    `json:"ai_response"`
}

// ConversationStore keeps a bounded per-user conversation window.
//
// Implementations must isolate users from each other: appends for one user
// id must never contend with reads for another. Unknown user ids yield
// empty results, never an error.
type ConversationStore interface {
	// Append inserts at the tail, evicting the oldest entry once the
	// per-user window is full.
	Append(userID string, entry ConversationEntry)
	// Recent returns up to limit entries, most-recent-last.
	Recent(userID string, limit int) []ConversationEntry
	// Clear drops all entries for the user. Idempotent.
	Clear(userID string)
}

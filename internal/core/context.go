package core

// ContextSource identifies where an attached snippet came from.
type ContextSource string

const (
	SourceFile         ContextSource = "file"
	SourceSelection    ContextSource = "selection"
	SourceManual       ContextSource = "manual"
	SourceConversation ContextSource = "conversation"
)

// Default relevance per source. Relevance orders presentation only; it
// never participates in eviction.
const (
	RelevanceFile         = 80
	RelevanceSelection    = 90
	RelevanceConversation = 85
	RelevanceManual       = 75
)

// Sentinel path values for items without a file origin.
const (
	PathManualInput = "manual-input"
	PathChatHistory = "chat-history"
)

// MaxContextItems is the store's hard capacity ceiling. It is a fixed
// constant, deliberately independent of the configured context window
// size (which callers use for turn budgeting, not item counts).
const MaxContextItems = 20

// ContextItem is one attached piece of information. Items are immutable
// once stored; callers replace rather than edit.
type ContextItem struct {
	ID        string        `json:"id"`
	Source    ContextSource `json:"source"`
	Content   string        `json:"content"`
	Relevance int           `json:"relevance"`
	Timestamp int64         `json:"timestamp"` // milliseconds since epoch
	Path      string        `json:"path,omitempty"`
}

// Label returns the human-readable source name used in serializer
// block headers.
func (s ContextSource) Label() string {
	switch s {
	case SourceFile:
		return "File"
	case SourceSelection:
		return "Selection"
	case SourceManual:
		return "Manual"
	case SourceConversation:
		return "Conversation"
	default:
		return string(s)
	}
}

// DefaultRelevance returns the per-source default score.
func (s ContextSource) DefaultRelevance() int {
	switch s {
	case SourceFile:
		return RelevanceFile
	case SourceSelection:
		return RelevanceSelection
	case SourceConversation:
		return RelevanceConversation
	default:
		return RelevanceManual
	}
}

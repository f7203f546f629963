package core

const (
	QuillName      = "Quill"
	QuillUserAgent = "Quill-Assistant/0.1"
	QuillVersion   = "0.1.0"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single chat turn in wire order.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Model struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

package models

// Chat message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn of a conversation as received from or sent to
// the generation service.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

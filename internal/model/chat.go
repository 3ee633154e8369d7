package model

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatTurn is one message of a chat session. Sessions keep their history on
// the client side; turns are never persisted.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

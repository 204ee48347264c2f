// Package chat models the assistant conversation transcript.
package chat

// Role identifies the author of a transcript turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of the conversation. A transcript is an ordered,
// append-only sequence of messages for the lifetime of one session.
type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

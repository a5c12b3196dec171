package models

import "time"

// Origin identifies who produced a message.
type Origin int

const (
	OriginUser Origin = iota
	OriginAssistant
)

func (o Origin) String() string {
	switch o {
	case OriginUser:
		return "user"
	case OriginAssistant:
		return "assistant"
	default:
		return "unknown"
	}
}

// Message represents a single entry in the conversation.
// Values are never modified after creation.
type Message struct {
	Origin    Origin
	Text      string
	CreatedAt time.Time
}

// NewUserMessage creates a message typed by the user
func NewUserMessage(text string) Message {
	return Message{Origin: OriginUser, Text: text, CreatedAt: time.Now()}
}

// NewAssistantMessage creates a message produced by the assistant
func NewAssistantMessage(text string) Message {
	return Message{Origin: OriginAssistant, Text: text, CreatedAt: time.Now()}
}

// IsUser reports whether the message was typed by the user
func (m Message) IsUser() bool {
	return m.Origin == OriginUser
}

package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Message roles. Only user and assistant turns are persisted; the system
// prompt is composed per request and never stored.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single conversational turn. Immutable once created, except
// that an assistant message's Content grows during the progressive reveal
// until it equals the final reply text.
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMessage creates a message with a fresh id and a UTC timestamp.
func NewMessage(role, content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}

// ValidRole reports whether role is one of the persisted message roles.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAssistant
}

// EncodeMessages serializes an ordered message list to the JSON blob stored
// in the chats table. Insertion order is preserved verbatim.
func EncodeMessages(msgs []Message) (string, error) {
	if msgs == nil {
		msgs = []Message{}
	}
	data, err := json.Marshal(msgs)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeMessages deserializes a stored message blob back into an ordered
// message list.
func DecodeMessages(blob string) ([]Message, error) {
	if blob == "" {
		return []Message{}, nil
	}
	var msgs []Message
	if err := json.Unmarshal([]byte(blob), &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

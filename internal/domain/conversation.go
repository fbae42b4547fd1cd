package domain

import "time"

// Conversation is a titled, ordered sequence of user/assistant turns
// persisted as one record. ConversationID is assigned by the store on the
// first save and is stable afterwards.
type Conversation struct {
	ConversationID string    `json:"conversationId"`
	UserID         string    `json:"userId"`
	Title          string    `json:"title"`
	Messages       []Message `json:"messages"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ConversationSummary is the sidebar view of a conversation.
type ConversationSummary struct {
	ConversationID string    `json:"conversationId"`
	Title          string    `json:"title"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// HasUserMessage reports whether the conversation contains at least one user
// turn. A conversation holding only the welcome message is never persisted.
func (c *Conversation) HasUserMessage() bool {
	for _, m := range c.Messages {
		if m.Role == RoleUser {
			return true
		}
	}
	return false
}

// FirstUserMessage returns the earliest user turn, if any.
func (c *Conversation) FirstUserMessage() (Message, bool) {
	for _, m := range c.Messages {
		if m.Role == RoleUser {
			return m, true
		}
	}
	return Message{}, false
}

package repository

import (
	"context"

	"github.com/ideacrafter/ideacrafter/internal/domain"
)

// ConversationRepo is the storage boundary for conversations. Message list
// replacement is whole-document; a conversation is never partially written.
type ConversationRepo interface {
	List(ctx context.Context, userID string) ([]domain.ConversationSummary, error)
	Load(ctx context.Context, userID, conversationID string) (*domain.Conversation, error)
	Save(ctx context.Context, c *domain.Conversation) error
	Delete(ctx context.Context, userID, conversationID string) error
}

// ProfileRepo is the storage boundary for account profiles.
type ProfileRepo interface {
	Get(ctx context.Context, id string) (*domain.Profile, error)
	Upsert(ctx context.Context, p *domain.Profile) error
}

// Package events publishes conversation lifecycle notifications so other
// sessions (the sidebar list in particular) can refresh without polling.
// Publishing is best-effort: failures are logged and never fail a turn.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ideacrafter/ideacrafter/internal/logger"
	"github.com/nats-io/nats.go"
)

// Subjects for conversation lifecycle events.
const (
	SubjectConversationSaved   = "ideacrafter.conversations.saved"
	SubjectConversationDeleted = "ideacrafter.conversations.deleted"
)

// Publisher emits conversation lifecycle events.
type Publisher interface {
	ConversationSaved(ctx context.Context, userID, conversationID string)
	ConversationDeleted(ctx context.Context, userID, conversationID string)
	Close()
}

// Noop discards all events; used when no broker is configured.
type Noop struct{}

func (Noop) ConversationSaved(context.Context, string, string)   {}
func (Noop) ConversationDeleted(context.Context, string, string) {}
func (Noop) Close()                                              {}

// conversationEvent is the wire payload.
type conversationEvent struct {
	UserID         string    `json:"userId"`
	ConversationID string    `json:"conversationId"`
	At             time.Time `json:"at"`
}

// NatsPublisher publishes events to a NATS server.
type NatsPublisher struct {
	nc *nats.Conn
}

// Connect establishes the NATS connection.
func Connect(url string) (*NatsPublisher, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}
	return &NatsPublisher{nc: nc}, nil
}

func (p *NatsPublisher) ConversationSaved(ctx context.Context, userID, conversationID string) {
	p.publish(SubjectConversationSaved, userID, conversationID)
}

func (p *NatsPublisher) ConversationDeleted(ctx context.Context, userID, conversationID string) {
	p.publish(SubjectConversationDeleted, userID, conversationID)
}

func (p *NatsPublisher) publish(subject, userID, conversationID string) {
	data, err := json.Marshal(conversationEvent{
		UserID:         userID,
		ConversationID: conversationID,
		At:             time.Now().UTC(),
	})
	if err != nil {
		logger.L.Error("encoding event failed", "subject", subject, "error", err)
		return
	}
	if err := p.nc.Publish(subject, data); err != nil {
		logger.L.Warn("publishing event failed", "subject", subject, "error", err)
	}
}

// Close drains and closes the connection.
func (p *NatsPublisher) Close() {
	if p.nc != nil {
		p.nc.Close()
	}
}

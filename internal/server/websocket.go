package server

import (
	"context"
	"errors"

	"github.com/gofiber/contrib/websocket"
	"github.com/ideacrafter/ideacrafter/internal/chat"
	"github.com/ideacrafter/ideacrafter/internal/domain"
	"github.com/ideacrafter/ideacrafter/internal/logger"
	"github.com/ideacrafter/ideacrafter/internal/repository"
)

// wsInbound is a client frame on the chat socket.
type wsInbound struct {
	Type           string   `json:"type"`
	UserID         string   `json:"userId,omitempty"`
	Text           string   `json:"text,omitempty"`
	ConversationID string   `json:"conversationId,omitempty"`
	MessageID      string   `json:"messageId,omitempty"`
	Persona        string   `json:"persona,omitempty"`
	Tone           string   `json:"tone,omitempty"`
	Temperature    *float64 `json:"temperature,omitempty"`
}

// wsOutbound is a server frame on the chat socket.
type wsOutbound struct {
	Type           string           `json:"type"`
	ConversationID string           `json:"conversationId,omitempty"`
	MessageID      string           `json:"messageId,omitempty"`
	Content        string           `json:"content,omitempty"`
	Done           bool             `json:"done,omitempty"`
	Messages       []domain.Message `json:"messages,omitempty"`
	Error          string           `json:"error,omitempty"`
}

// handleChatSocket runs one chat session over a websocket. The client opens
// with a hello frame, then sends turns; reveal progress streams back as
// chunk frames. Frames are handled serially, so a turn occupies the
// connection until its reveal finishes, mirroring the disabled input field.
func (s *Server) handleChatSocket(c *websocket.Conn) {
	defer c.Close()

	var hello wsInbound
	if err := c.ReadJSON(&hello); err != nil || hello.Type != "hello" || hello.UserID == "" {
		c.WriteJSON(wsOutbound{Type: "error", Error: "hello frame with userId required"})
		return
	}

	ctx := context.Background()
	session := chat.NewSession(chat.Deps{
		Completer:     s.deps.Completer,
		Conversations: s.deps.Conversations,
		Profiles:      s.deps.Profiles,
		Handoff:       s.deps.Handoff,
		Events:        s.deps.Events,
	}, s.deps.ChatOptions)
	defer session.Close()

	if err := session.Start(ctx, hello.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.WriteJSON(wsOutbound{Type: "error", Error: "Profile not found"})
		} else {
			logger.L.Error("starting chat session failed", "user_id", hello.UserID, "error", err)
			c.WriteJSON(wsOutbound{Type: "error", Error: "Failed to start session"})
		}
		return
	}

	if hello.ConversationID != "" {
		if err := session.LoadConversation(ctx, hello.ConversationID); err != nil {
			logger.L.Warn("loading conversation on connect failed", "conversation_id", hello.ConversationID, "error", err)
		}
	}

	sink := func(messageID, content string, done bool) {
		c.WriteJSON(wsOutbound{Type: "chunk", MessageID: messageID, Content: content, Done: done})
	}

	c.WriteJSON(wsOutbound{Type: "ready", ConversationID: session.ConversationID(), Messages: session.Messages()})

	for {
		var in wsInbound
		if err := c.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.L.Warn("websocket read error", "user_id", hello.UserID, "error", err)
			}
			return
		}

		switch in.Type {
		case "message":
			if err := session.Submit(ctx, in.Text, sink); err != nil {
				c.WriteJSON(wsOutbound{Type: "error", Error: err.Error()})
				continue
			}
			c.WriteJSON(wsOutbound{Type: "state", ConversationID: session.ConversationID(), Messages: session.Messages()})
		case "new_chat":
			if err := session.NewChat(ctx); err != nil {
				c.WriteJSON(wsOutbound{Type: "error", Error: err.Error()})
			}
			c.WriteJSON(wsOutbound{Type: "state", ConversationID: session.ConversationID(), Messages: session.Messages()})
		case "load":
			if err := session.LoadConversation(ctx, in.ConversationID); err != nil {
				c.WriteJSON(wsOutbound{Type: "error", Error: err.Error()})
				continue
			}
			c.WriteJSON(wsOutbound{Type: "state", ConversationID: session.ConversationID(), Messages: session.Messages()})
		case "delete_message":
			if err := session.DeleteMessage(ctx, in.MessageID); err != nil {
				c.WriteJSON(wsOutbound{Type: "error", Error: err.Error()})
				continue
			}
			c.WriteJSON(wsOutbound{Type: "state", ConversationID: session.ConversationID(), Messages: session.Messages()})
		case "options":
			opts := chat.Options{Persona: in.Persona, Tone: in.Tone}
			if in.Temperature != nil {
				opts.Temperature = float32(*in.Temperature)
			}
			session.SetOptions(opts)
		default:
			c.WriteJSON(wsOutbound{Type: "error", Error: "unknown frame type"})
		}
	}
}

package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/ideacrafter/ideacrafter/internal/domain"
	"github.com/ideacrafter/ideacrafter/internal/logger"
	"github.com/ideacrafter/ideacrafter/internal/prompt"
	"github.com/ideacrafter/ideacrafter/internal/repository"
)

// requireUserID reads the userId query parameter. Auth itself is delegated
// to the upstream provider; an absent id is treated as unauthenticated.
func requireUserID(c *fiber.Ctx) (string, error) {
	userID := c.Query("userId")
	if userID == "" {
		return "", c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "User not logged in"})
	}
	return userID, nil
}

func (s *Server) handleListConversations(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if userID == "" {
		return err
	}

	summaries, err := s.deps.Conversations.List(c.UserContext(), userID)
	if err != nil {
		detail := repository.DescribeStoreError(err)
		logger.L.Error("listing conversations failed", "user_id", userID, "detail", detail)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": detail})
	}
	if summaries == nil {
		summaries = []domain.ConversationSummary{}
	}
	return c.JSON(fiber.Map{"conversations": summaries})
}

func (s *Server) handleGetConversation(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if userID == "" {
		return err
	}

	conv, err := s.deps.Conversations.Load(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Conversation not found"})
		}
		detail := repository.DescribeStoreError(err)
		logger.L.Error("loading conversation failed", "user_id", userID, "detail", detail)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": detail})
	}
	return c.JSON(conv)
}

type saveConversationRequest struct {
	UserID         string           `json:"userId"`
	ConversationID string           `json:"conversationId"`
	Title          string           `json:"title"`
	Messages       []domain.Message `json:"messages"`
}

// handleSaveConversation persists a whole conversation snapshot: an insert
// when no conversationId is given (the generated id is returned), a
// wholesale overwrite otherwise.
func (s *Server) handleSaveConversation(c *fiber.Ctx) error {
	var req saveConversationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.UserID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "User not logged in"})
	}
	if len(req.Messages) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Messages must not be empty"})
	}

	conv := &domain.Conversation{
		ConversationID: req.ConversationID,
		UserID:         req.UserID,
		Title:          req.Title,
		Messages:       req.Messages,
	}
	if conv.Title == "" {
		conv.Title = prompt.FallbackTitle(req.Messages)
	}

	if err := s.deps.Conversations.Save(c.UserContext(), conv); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Conversation not found"})
		}
		detail := repository.DescribeStoreError(err)
		logger.L.Error("saving conversation failed", "user_id", req.UserID, "detail", detail)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": detail})
	}

	s.deps.Events.ConversationSaved(c.UserContext(), req.UserID, conv.ConversationID)
	return c.JSON(fiber.Map{"conversationId": conv.ConversationID, "title": conv.Title})
}

// handleDeleteConversation removes a conversation. A repeat delete reports
// not-found and is otherwise harmless.
func (s *Server) handleDeleteConversation(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if userID == "" {
		return err
	}

	conversationID := c.Params("id")
	if err := s.deps.Conversations.Delete(c.UserContext(), userID, conversationID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Conversation not found"})
		}
		detail := repository.DescribeStoreError(err)
		logger.L.Error("deleting conversation failed", "user_id", userID, "detail", detail)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": detail})
	}

	s.deps.Events.ConversationDeleted(c.UserContext(), userID, conversationID)
	return c.SendStatus(fiber.StatusNoContent)
}

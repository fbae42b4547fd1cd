package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ideacrafter/ideacrafter/internal/domain"
	"github.com/ideacrafter/ideacrafter/internal/handoff"
	"github.com/ideacrafter/ideacrafter/internal/logger"
)

type handoffPutRequest struct {
	UserID         string           `json:"userId"`
	ConversationID string           `json:"conversationId"`
	Messages       []domain.Message `json:"messages"`
}

// handleHandoffPut parks a conversation snapshot to be picked up once after
// the next navigation.
func (s *Server) handleHandoffPut(c *fiber.Ctx) error {
	if s.deps.Handoff == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Handoff store not configured"})
	}
	var req handoffPutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.UserID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "User not logged in"})
	}

	err := s.deps.Handoff.Put(req.UserID, handoff.Snapshot{
		ConversationID: req.ConversationID,
		Messages:       req.Messages,
	})
	if err != nil {
		logger.L.Error("parking handoff snapshot failed", "user_id", req.UserID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store snapshot"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type handoffTakeRequest struct {
	UserID string `json:"userId"`
}

// handleHandoffTake consumes the parked snapshot, clearing it in the same
// transaction.
func (s *Server) handleHandoffTake(c *fiber.Ctx) error {
	if s.deps.Handoff == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Handoff store not configured"})
	}
	var req handoffTakeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.UserID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "User not logged in"})
	}

	snap, found, err := s.deps.Handoff.Take(req.UserID)
	if err != nil {
		logger.L.Error("taking handoff snapshot failed", "user_id", req.UserID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to read snapshot"})
	}
	if !found {
		return c.JSON(fiber.Map{"found": false})
	}
	return c.JSON(fiber.Map{
		"found":          true,
		"conversationId": snap.ConversationID,
		"messages":       snap.Messages,
	})
}

package server

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/ideacrafter/ideacrafter/internal/domain"
	"github.com/ideacrafter/ideacrafter/internal/llm"
	"github.com/ideacrafter/ideacrafter/internal/logger"
	"github.com/ideacrafter/ideacrafter/internal/prompt"
)

const defaultTemperature = 0.7

type chatOptions struct {
	Persona     string   `json:"persona"`
	Tone        string   `json:"tone"`
	Temperature *float64 `json:"temperature"`
}

type chatRequest struct {
	ConversationID string          `json:"conversationId"`
	History        json.RawMessage `json:"history"`
	UserID         string          `json:"userId"`
	UserType       string          `json:"userType"`
	Options        chatOptions     `json:"options"`
}

type historyEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	ConversationID string `json:"conversationId"`
	Text           string `json:"text"`
	Title          string `json:"title"`
}

// handleChat is the completion endpoint. Input validation rejects the
// request before any provider call; provider failures map to the
// categorized status codes.
func (s *Server) handleChat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.UserID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "User not logged in"})
	}

	history, errMsg := parseHistory(req.History)
	if errMsg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": errMsg})
	}

	userType := req.UserType
	if userType == "" {
		userType = domain.UserTypeEntrepreneur
	} else if !domain.ValidUserType(userType) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid userType"})
	}

	temperature := defaultTemperature
	if req.Options.Temperature != nil {
		temperature = *req.Options.Temperature
	}
	if temperature < 0 || temperature > 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Temperature must be a number between 0 and 1"})
	}

	systemPrompt := prompt.Compose(prompt.Options{
		Persona:  req.Options.Persona,
		Tone:     req.Options.Tone,
		UserType: userType,
	})

	ctx := c.UserContext()
	text, err := s.deps.Completer.GenerateReply(ctx, systemPrompt, history, float32(temperature))
	if err != nil {
		return providerError(c, err)
	}

	conversationID := req.ConversationID
	title := "Untitled Chat"
	if conversationID == "" {
		first := ""
		if len(history) > 0 {
			first = history[0].Content
		}
		title, err = s.deps.Completer.GenerateTitle(ctx, prompt.TitlePrompt(first, text))
		if err != nil {
			return providerError(c, err)
		}
		conversationID = uuid.NewString()
	}

	return c.JSON(chatResponse{
		ConversationID: conversationID,
		Text:           text,
		Title:          title,
	})
}

// parseHistory validates the raw history payload: it must be an array of
// {role, content} entries with both fields set and roles restricted to
// user/assistant. Returns the reason string on failure.
func parseHistory(raw json.RawMessage) ([]domain.Message, string) {
	if len(raw) == 0 {
		return nil, ""
	}
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "null" {
		return nil, ""
	}
	if !strings.HasPrefix(trimmed, "[") {
		return nil, "History must be an array"
	}

	var entries []historyEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, "Invalid message structure in history"
	}

	history := make([]domain.Message, 0, len(entries))
	for _, e := range entries {
		if e.Role == "" || e.Content == "" {
			return nil, "Invalid message structure in history"
		}
		if !domain.ValidRole(e.Role) {
			return nil, "Invalid role in history messages"
		}
		history = append(history, domain.Message{Role: e.Role, Content: e.Content})
	}
	return history, ""
}

// providerError maps a categorized completion failure to its status and
// user-facing message.
func providerError(c *fiber.Ctx, err error) error {
	logger.L.Error("completion failed", "error", err)
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, llm.ErrRateLimited):
		status = fiber.StatusTooManyRequests
	case errors.Is(err, llm.ErrModelUnavailable):
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{"error": llm.UserFacingMessage(err)})
}

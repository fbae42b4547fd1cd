// Package server is the HTTP boundary: the completion endpoint, conversation
// and profile CRUD, the web search endpoint, the handoff channel, and the
// websocket chat session.
package server

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/ideacrafter/ideacrafter/internal/chat"
	"github.com/ideacrafter/ideacrafter/internal/events"
	"github.com/ideacrafter/ideacrafter/internal/handoff"
	"github.com/ideacrafter/ideacrafter/internal/repository"
	"github.com/ideacrafter/ideacrafter/internal/search"
)

// Deps are the collaborators the server routes requests to. Everything is
// injected; nothing here constructs a network client.
type Deps struct {
	Completer     chat.Completer
	Conversations repository.ConversationRepo
	Profiles      repository.ProfileRepo
	Search        search.Provider
	Handoff       *handoff.Store
	Events        events.Publisher
	ChatOptions   chat.Options
}

// Server holds the route handlers.
type Server struct {
	deps Deps
}

// New builds the fiber application with all routes registered.
func New(deps Deps) *fiber.App {
	if deps.Events == nil {
		deps.Events = events.Noop{}
	}
	s := &Server{deps: deps}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	app.Use(fiberlogger.New())

	api := app.Group("/api")
	api.Post("/chat", s.handleChat)
	api.Post("/search-web", s.handleSearch)
	api.Get("/conversations", s.handleListConversations)
	api.Post("/conversations", s.handleSaveConversation)
	api.Get("/conversations/:id", s.handleGetConversation)
	api.Delete("/conversations/:id", s.handleDeleteConversation)
	api.Get("/profile/:id", s.handleGetProfile)
	api.Put("/profile/:id", s.handlePutProfile)
	api.Post("/handoff", s.handleHandoffPut)
	api.Post("/handoff/take", s.handleHandoffTake)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/chat", websocket.New(s.handleChatSocket))

	return app
}

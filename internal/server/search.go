package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ideacrafter/ideacrafter/internal/logger"
	"github.com/ideacrafter/ideacrafter/internal/search"
)

type searchRequest struct {
	Query    string `json:"query"`
	Type     string `json:"type"`
	Industry string `json:"industry"`
	Location string `json:"location"`
}

// handleSearch resolves a discovery query through the configured results
// provider. The provider itself handles falling back when the real
// integration fails at request time.
func (s *Server) handleSearch(c *fiber.Ctx) error {
	var req searchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Search failed"})
	}

	query := search.BuildQuery(req.Query, req.Type, req.Industry, req.Location)
	logger.L.Info("searching web", "query", query)

	results, err := s.deps.Search.Search(c.UserContext(), search.Query{
		Text:     query,
		Type:     req.Type,
		Industry: req.Industry,
		Location: req.Location,
	})
	if err != nil {
		logger.L.Error("search failed", "query", query, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Search failed"})
	}

	source := "web_search"
	if len(results) > 0 {
		source = results[0].Source
	}
	return c.JSON(fiber.Map{
		"success": true,
		"results": results,
		"query":   query,
		"source":  source,
	})
}

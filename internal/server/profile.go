package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/ideacrafter/ideacrafter/internal/domain"
	"github.com/ideacrafter/ideacrafter/internal/logger"
	"github.com/ideacrafter/ideacrafter/internal/repository"
)

func (s *Server) handleGetProfile(c *fiber.Ctx) error {
	profile, err := s.deps.Profiles.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		detail := repository.DescribeStoreError(err)
		logger.L.Error("loading profile failed", "detail", detail)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": detail})
	}
	return c.JSON(profile)
}

type putProfileRequest struct {
	UserType string `json:"userType"`
	FullName string `json:"fullName"`
	Company  string `json:"company"`
	Industry string `json:"industry"`
	Bio      string `json:"bio"`
}

func (s *Server) handlePutProfile(c *fiber.Ctx) error {
	var req putProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if !domain.ValidUserType(req.UserType) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid userType"})
	}

	profile := &domain.Profile{
		ID:       c.Params("id"),
		UserType: req.UserType,
		FullName: req.FullName,
		Company:  req.Company,
		Industry: req.Industry,
		Bio:      req.Bio,
	}
	if err := s.deps.Profiles.Upsert(c.UserContext(), profile); err != nil {
		detail := repository.DescribeStoreError(err)
		logger.L.Error("saving profile failed", "detail", detail)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": detail})
	}
	return c.JSON(profile)
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/services"
)

type JobDescriptionHandler struct {
	screener services.Screener
}

func NewJobDescriptionHandler(screener services.Screener) *JobDescriptionHandler {
	return &JobDescriptionHandler{
		screener: screener,
	}
}

// HandleSetJobDescription handles PUT /api/job-description
func (h *JobDescriptionHandler) HandleSetJobDescription(c *fiber.Ctx) error {
	var req models.JobDescriptionRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	return c.JSON(h.screener.SetJobDescription(req.JobDescription))
}

package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-screener/internal/services"
)

const Version = "1.0.0"

var endpoints = []string{
	"GET /",
	"GET /api/queue",
	"POST /api/queue",
	"DELETE /api/queue/:index",
	"PUT /api/job-description",
	"GET /api/results",
	"GET /api/results/view",
	"POST /api/results/:rank/select",
	"GET /api/health",
	"GET /api/info",
}

type SystemHandler struct {
	screener      services.Screener
	client        services.AnalysisClient
	name          string
	healthTimeout time.Duration
}

func NewSystemHandler(screener services.Screener, client services.AnalysisClient, name string) *SystemHandler {
	return &SystemHandler{
		screener:      screener,
		client:        client,
		name:          name,
		healthTimeout: 3 * time.Second,
	}
}

// HandleHealth handles GET /api/health. This server is healthy whenever it
// answers; the analysis API is reported alongside.
func (h *SystemHandler) HandleHealth(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.healthTimeout)
	defer cancel()

	analysis := "reachable"
	if err := h.client.Health(ctx); err != nil {
		analysis = "unreachable"
	}

	return c.JSON(fiber.Map{
		"status":       "healthy",
		"analysis_api": analysis,
		"time":         time.Now(),
	})
}

// HandleInfo handles GET /api/info
func (h *SystemHandler) HandleInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message":   h.name,
		"version":   Version,
		"endpoints": endpoints,
		"session":   h.screener.Stats(),
		"supported_types": []string{
			"application/pdf",
			"application/msword",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		},
	})
}

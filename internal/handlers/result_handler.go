package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-screener/internal/services"
	"alfredoptarigan/resume-screener/internal/views"
)

type ResultHandler struct {
	screener          services.Screener
	title             string
	minJobDescription int
	maxFileSize       int64
}

func NewResultHandler(screener services.Screener, title string, minJobDescription int, maxFileSize int64) *ResultHandler {
	return &ResultHandler{
		screener:          screener,
		title:             title,
		minJobDescription: minJobDescription,
		maxFileSize:       maxFileSize,
	}
}

// HandleIndex handles GET / with the current state pre-rendered.
func (h *ResultHandler) HandleIndex(c *fiber.Ctx) error {
	return c.Render("index", views.PageData{
		Title:             h.title,
		View:              h.screener.View(),
		Queue:             h.screener.Queue(),
		MinJobDescription: h.minJobDescription,
		MaxFileSizeLabel:  services.FormatFileSize(h.maxFileSize),
	})
}

// HandleGetResults handles GET /api/results
func (h *ResultHandler) HandleGetResults(c *fiber.Ctx) error {
	return c.JSON(h.screener.View())
}

// HandleGetResultsView handles GET /api/results/view
func (h *ResultHandler) HandleGetResultsView(c *fiber.Ctx) error {
	return c.Render("results", h.screener.View())
}

// HandleSelect handles POST /api/results/:rank/select
func (h *ResultHandler) HandleSelect(c *fiber.Ctx) error {
	rank, err := c.ParamsInt("rank")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid rank",
		})
	}

	view, err := h.screener.SelectRank(rank)
	if errors.Is(err, services.ErrRankOutOfRange) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No result at that rank",
		})
	}
	if err != nil {
		return err
	}

	return c.JSON(view)
}

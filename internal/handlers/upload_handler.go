package handlers

import (
	"errors"
	"log"
	"mime/multipart"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/services"
)

type UploadHandler struct {
	screener services.Screener
}

func NewUploadHandler(screener services.Screener) *UploadHandler {
	return &UploadHandler{
		screener: screener,
	}
}

// HandleUpload handles POST /api/queue. Every "file" part is validated on
// its own; an optional "last_modified" value (ms epoch) pairs with the file
// at the same position.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	parts := form.File["file"]
	if len(parts) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No files uploaded. Please attach one or more 'file' parts.",
		})
	}
	lastModified := form.Value["last_modified"]

	incoming := make([]services.IncomingFile, 0, len(parts))
	for i, part := range parts {
		src, err := part.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "failed to read uploaded file " + part.Filename,
			})
		}
		defer src.Close()

		incoming = append(incoming, services.IncomingFile{
			Name:         part.Filename,
			ContentType:  contentType(part),
			Size:         part.Size,
			LastModified: parseLastModified(lastModified, i),
			Content:      src,
		})
	}

	resp := h.screener.AddFiles(incoming)
	log.Printf("📥 Queued %d files, rejected %d\n", len(resp.Accepted), len(resp.Rejected))

	status := fiber.StatusOK
	if len(resp.Accepted) == 0 {
		status = fiber.StatusUnprocessableEntity
	}
	return c.Status(status).JSON(resp)
}

// HandleListQueue handles GET /api/queue
func (h *UploadHandler) HandleListQueue(c *fiber.Ctx) error {
	return c.JSON(models.QueueResponse{Queue: h.screener.Queue()})
}

// HandleRemove handles DELETE /api/queue/:index
func (h *UploadHandler) HandleRemove(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid queue index",
		})
	}

	resp, err := h.screener.RemoveFile(index)
	if errors.Is(err, services.ErrIndexOutOfRange) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Queue index out of range",
		})
	}
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

func contentType(part *multipart.FileHeader) string {
	return part.Header.Get(fiber.HeaderContentType)
}

func parseLastModified(values []string, i int) time.Time {
	if i >= len(values) {
		return time.Time{}
	}
	ms, err := strconv.ParseInt(values[i], 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"alfredoptarigan/resume-screener/internal/models"
)

// AnalysisClient talks to the externally hosted analysis API.
type AnalysisClient interface {
	Analyze(ctx context.Context, jobDescription string, files []models.UploadCandidateFile) (*models.AnalysisResponse, error)
	Health(ctx context.Context) error
}

type AnalysisClientConfig struct {
	BaseURL    string
	UploadPath string
	HealthPath string
	Timeout    time.Duration
}

type analysisClient struct {
	client     *resty.Client
	normalizer *Normalizer
	storage    StorageService
	uploadPath string
	healthPath string
}

// NewAnalysisClient reads staged uploads through storage.
func NewAnalysisClient(cfg AnalysisClientConfig, normalizer *Normalizer, storage StorageService) AnalysisClient {
	if normalizer == nil {
		normalizer = NewNormalizer(nil)
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json")
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	return &analysisClient{
		client:     client,
		normalizer: normalizer,
		storage:    storage,
		uploadPath: cfg.UploadPath,
		healthPath: cfg.HealthPath,
	}
}

// Analyze posts the job description and every staged file as one
// multipart request. Only a status:"success" body is returned without error.
func (c *analysisClient) Analyze(ctx context.Context, jobDescription string, files []models.UploadCandidateFile) (*models.AnalysisResponse, error) {
	req := c.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{"job_description": jobDescription})

	for _, file := range files {
		f, err := c.storage.OpenFile(file.Path)
		if err != nil {
			return nil, &RequestError{Message: fmt.Sprintf("failed to open staged file %s", file.Name), Err: err}
		}
		defer f.Close()
		req.SetMultipartField("file", file.Name, file.ContentType, f)
	}

	resp, err := req.Post(c.uploadPath)
	if err != nil {
		return nil, &RequestError{Message: "failed to reach analysis API", Err: err}
	}
	if resp.IsError() {
		return nil, &RequestError{
			StatusCode: resp.StatusCode(),
			Message:    http.StatusText(resp.StatusCode()),
		}
	}

	parsed, err := c.normalizer.Response(resp.Body())
	if err != nil {
		return nil, err
	}

	switch parsed.Status {
	case models.AnalysisSuccess:
		return parsed, nil
	case models.AnalysisError:
		return parsed, &RequestError{Message: parsed.Message}
	default:
		return parsed, &RequestError{
			Message: fmt.Sprintf("unexpected analysis status %q", parsed.Status),
			Err:     ErrPendingStatus,
		}
	}
}

func (c *analysisClient) Health(ctx context.Context) error {
	resp, err := c.client.R().SetContext(ctx).Get(c.healthPath)
	if err != nil {
		return &RequestError{Message: "failed to reach analysis API", Err: err}
	}
	if resp.IsError() {
		return &RequestError{
			StatusCode: resp.StatusCode(),
			Message:    http.StatusText(resp.StatusCode()),
		}
	}
	return nil
}

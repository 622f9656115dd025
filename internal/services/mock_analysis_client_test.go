package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"alfredoptarigan/resume-screener/internal/models"
)

type mockAnalysisClient struct {
	mock.Mock
}

func (m *mockAnalysisClient) Analyze(ctx context.Context, jobDescription string, files []models.UploadCandidateFile) (*models.AnalysisResponse, error) {
	args := m.Called(ctx, jobDescription, files)
	resp, _ := args.Get(0).(*models.AnalysisResponse)
	return resp, args.Error(1)
}

func (m *mockAnalysisClient) Health(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

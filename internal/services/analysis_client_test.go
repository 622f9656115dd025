package services

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-screener/internal/models"
)

type clientFixture struct {
	client  AnalysisClient
	storage StorageService
}

func newTestClient(t *testing.T, url string) *clientFixture {
	t.Helper()
	storage := NewStorageService(t.TempDir())
	require.NoError(t, storage.EnsureUploadDir())
	return &clientFixture{
		client: NewAnalysisClient(AnalysisClientConfig{
			BaseURL:    url,
			UploadPath: "/api/upload-resume",
			HealthPath: "/api/health",
			Timeout:    5 * time.Second,
		}, newTestNormalizer(), storage),
		storage: storage,
	}
}

func (f *clientFixture) staged(t *testing.T, name, content string) models.UploadCandidateFile {
	t.Helper()
	_, path, err := f.storage.SaveFile(name, strings.NewReader(content))
	require.NoError(t, err)
	return models.UploadCandidateFile{
		Name:        name,
		ContentType: pdfType,
		Size:        int64(len(content)),
		Path:        path,
	}
}

func TestAnalyzeSendsMultipartPayload(t *testing.T) {
	var gotJD string
	var gotFiles []string
	var gotBodies []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/upload-resume", r.URL.Path)
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}

		gotJD = r.FormValue("job_description")
		for _, fh := range r.MultipartForm.File["file"] {
			gotFiles = append(gotFiles, fh.Filename)
			assert.Equal(t, pdfType, fh.Header.Get("Content-Type"))
			f, err := fh.Open()
			if !assert.NoError(t, err) {
				return
			}
			b, _ := io.ReadAll(f)
			f.Close()
			gotBodies = append(gotBodies, string(b))
		}

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"status":"success","results":[{"candidate_name":"Ann Lee","match_score":85},{"candidate_name":"Bo Zhu","match_score":85}],"total_files":2,"successful_files":2,"failed_files":0}`)
	}))
	defer srv.Close()

	f := newTestClient(t, srv.URL)
	files := []models.UploadCandidateFile{
		f.staged(t, "ann.pdf", "ann-bytes"),
		f.staged(t, "bo.pdf", "bo-bytes"),
	}

	resp, err := f.client.Analyze(context.Background(), "Senior backend engineer, Go", files)

	require.NoError(t, err)
	assert.Equal(t, "Senior backend engineer, Go", gotJD)
	assert.Equal(t, []string{"ann.pdf", "bo.pdf"}, gotFiles)
	assert.Equal(t, []string{"ann-bytes", "bo-bytes"}, gotBodies)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "Ann Lee", resp.Results[0].CandidateName)
}

func TestAnalyzeNon2xxIsRequestError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	f := newTestClient(t, srv.URL)
	_, err := f.client.Analyze(context.Background(), "job description", []models.UploadCandidateFile{f.staged(t, "a.pdf", "x")})

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusBadGateway, reqErr.StatusCode)
	assert.Equal(t, GenericFailureMessage, FailureMessage(err))
}

func TestAnalyzeErrorBodyCarriesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status":"error","message":"No text could be extracted"}`)
	}))
	defer srv.Close()

	f := newTestClient(t, srv.URL)
	resp, err := f.client.Analyze(context.Background(), "job description", []models.UploadCandidateFile{f.staged(t, "a.pdf", "x")})

	require.Error(t, err)
	assert.Equal(t, models.AnalysisError, resp.Status)
	assert.Equal(t, "No text could be extracted", FailureMessage(err))
}

func TestAnalyzeLoadingStatusIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status":"loading"}`)
	}))
	defer srv.Close()

	f := newTestClient(t, srv.URL)
	_, err := f.client.Analyze(context.Background(), "job description", []models.UploadCandidateFile{f.staged(t, "a.pdf", "x")})

	assert.ErrorIs(t, err, ErrPendingStatus)
	assert.Equal(t, GenericFailureMessage, FailureMessage(err))
}

func TestAnalyzeTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	f := newTestClient(t, url)
	_, err := f.client.Analyze(context.Background(), "job description", []models.UploadCandidateFile{f.staged(t, "a.pdf", "x")})

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Zero(t, reqErr.StatusCode)
	assert.Equal(t, GenericFailureMessage, FailureMessage(err))
}

func TestAnalyzeMissingStagedFile(t *testing.T) {
	f := newTestClient(t, "http://127.0.0.1:1")
	file := f.staged(t, "gone.pdf", "x")
	require.NoError(t, f.storage.DeleteFile(file.Path))

	_, err := f.client.Analyze(context.Background(), "job description", []models.UploadCandidateFile{file})

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestHealth(t *testing.T) {
	healthy := true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		if !healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		io.WriteString(w, `{"status":"healthy"}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL).client
	assert.NoError(t, client.Health(context.Background()))

	healthy = false
	assert.Error(t, client.Health(context.Background()))
}

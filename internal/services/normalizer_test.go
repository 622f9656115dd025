package services

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"alfredoptarigan/resume-screener/internal/models"
)

var fixedNow = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func newTestNormalizer() *Normalizer {
	return NewNormalizer(func() time.Time { return fixedNow })
}

func normalizeJSON(raw []byte) models.ResultRecord {
	return newTestNormalizer().Record(gjson.ParseBytes(raw))
}

func TestExtractScore(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want models.Score
	}{
		{"percent string", "73%", 73},
		{"int", 73, 73},
		{"float", 73.5, 73.5},
		{"padded percent", " 64.25 % ", 64.25},
		{"garbage", "not-a-number", 0},
		{"empty", "", 0},
		{"nil", nil, 0},
		{"bool", true, 0},
		{"json number", json.Number("88"), 88},
		{"above range", 140, 100},
		{"below range", "-5%", 0},
		{"infinity", "Infinity", 0},
		{"inf percent", "inf%", 0},
		{"negative infinity", "-Inf", 0},
		{"nan", "NaN", 0},
		{"infinite float", math.Inf(1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractScore(tt.in))
		})
	}
}

func TestNormalizeAPIShape(t *testing.T) {
	raw := []byte(`{
		"candidate_name": "Jane Doe",
		"filename": "jane.pdf",
		"match_score": "92%",
		"recommendation": "Strong Match",
		"summary": "Seasoned backend engineer.",
		"reasoning": "Deep Go experience.",
		"strengths": ["Go", " ", "Kubernetes"],
		"improvement_areas": ["Frontend"],
		"timestamp": "2026-03-01T09:30:00.123456"
	}`)

	r := normalizeJSON(raw)

	assert.Equal(t, "Jane Doe", r.CandidateName)
	assert.Equal(t, "jane.pdf", r.FileName)
	assert.Equal(t, models.Score(92), r.Score)
	assert.Equal(t, "Strong Match", r.Recommendation)
	assert.Equal(t, "Seasoned backend engineer.", r.Summary)
	assert.Equal(t, "Deep Go experience.", r.Reasoning)
	assert.Equal(t, []string{"Go", "Kubernetes"}, r.Strengths)
	assert.Equal(t, []string{"Frontend"}, r.ImprovementAreas)
	assert.Equal(t, time.Date(2026, 3, 1, 9, 30, 0, 123456000, time.UTC), r.Timestamp)
}

func TestNormalizePreviousResultShape(t *testing.T) {
	raw := []byte(`{
		"candidateName": "John Smith",
		"fileName": "john.docx",
		"score": 78,
		"improvements": ["Testing", "Docs"],
		"timestamp": "2026-03-01T09:30:00Z"
	}`)

	r := normalizeJSON(raw)

	assert.Equal(t, "John Smith", r.CandidateName)
	assert.Equal(t, "john.docx", r.FileName)
	assert.Equal(t, models.Score(78), r.Score)
	assert.Equal(t, []string{"Testing", "Docs"}, r.ImprovementAreas)
	assert.True(t, r.Timestamp.Equal(baseTime))
}

func TestNormalizeSubstitutesDefaults(t *testing.T) {
	r := normalizeJSON([]byte(`{"candidate_name": null, "summary": ""}`))

	assert.Equal(t, models.ResultRecord{
		CandidateName:    models.DefaultCandidateName,
		FileName:         models.DefaultFileName,
		Score:            0,
		Recommendation:   models.DefaultRecommendation,
		Summary:          models.DefaultSummary,
		Reasoning:        models.DefaultReasoning,
		Strengths:        []string{},
		ImprovementAreas: []string{},
		Timestamp:        fixedNow,
	}, r)
}

func TestNormalizeUnparseableTimestampIsNow(t *testing.T) {
	r := normalizeJSON([]byte(`{"timestamp": "yesterday"}`))

	assert.Equal(t, fixedNow, r.Timestamp)
}

func TestResponseSingleCandidate(t *testing.T) {
	body := []byte(`{"status": "success", "candidate_name": "Jane Doe", "match_score": 92}`)

	resp, err := newTestNormalizer().Response(body)

	require.NoError(t, err)
	assert.True(t, resp.IsSuccess())
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Jane Doe", resp.Results[0].CandidateName)
	assert.Equal(t, 1, resp.TotalFiles)
	assert.Equal(t, 1, resp.SuccessfulFiles)
}

func TestResponseMultiCandidateKeepsProducerOrder(t *testing.T) {
	body := []byte(`{
		"status": "success",
		"results": [
			{"candidate_name": "Ann Lee", "match_score": 85},
			{"candidate_name": "Bo Zhu", "match_score": "85%"},
			{"candidate_name": "Cy", "match_score": 40}
		],
		"total_files": 4,
		"successful_files": 3,
		"failed_files": 1,
		"failed_results": [{"filename": "broken.pdf", "error": "Could not extract text"}]
	}`)

	resp, err := newTestNormalizer().Response(body)

	require.NoError(t, err)
	require.Len(t, resp.Results, 3)
	assert.Equal(t, "Ann Lee", resp.Results[0].CandidateName)
	assert.Equal(t, models.Score(85), resp.Results[1].Score)
	assert.Equal(t, 4, resp.TotalFiles)
	assert.Equal(t, 3, resp.SuccessfulFiles)
	assert.Equal(t, 1, resp.FailedFiles)
	assert.Equal(t, []models.FailedResult{{FileName: "broken.pdf", Message: "Could not extract text"}}, resp.FailedResults)
}

func TestResponseCountersDefaultFromContent(t *testing.T) {
	body := []byte(`{"status": "success", "results": [{"candidate_name": "A"}], "failed_results": [{"message": "bad"}]}`)

	resp, err := newTestNormalizer().Response(body)

	require.NoError(t, err)
	assert.Equal(t, 1, resp.SuccessfulFiles)
	assert.Equal(t, 1, resp.FailedFiles)
	assert.Equal(t, 2, resp.TotalFiles)
	assert.Equal(t, models.DefaultFileName, resp.FailedResults[0].FileName)
}

func TestResponseErrorStatus(t *testing.T) {
	resp, err := newTestNormalizer().Response([]byte(`{"status": "ERROR", "message": "Job description too short"}`))

	require.NoError(t, err)
	assert.False(t, resp.IsSuccess())
	assert.Equal(t, models.AnalysisError, resp.Status)
	assert.Equal(t, "Job description too short", resp.Message)
	assert.Empty(t, resp.Results)
}

func TestResponseInvalidJSON(t *testing.T) {
	_, err := newTestNormalizer().Response([]byte(`<html>Bad Gateway</html>`))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidBody)
	assert.Equal(t, GenericFailureMessage, FailureMessage(err))
}

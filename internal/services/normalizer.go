package services

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"alfredoptarigan/resume-screener/internal/models"
)

// Zone-less ISO-8601 variants are what the analysis backend emits.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Normalizer turns analysis payloads into ResultRecords. It accepts both the
// API's snake_case shape and the camelCase previous-result shape, and
// substitutes defaults for anything missing.
type Normalizer struct {
	now func() time.Time
}

func NewNormalizer(now func() time.Time) *Normalizer {
	if now == nil {
		now = time.Now
	}
	return &Normalizer{now: now}
}

func (n *Normalizer) Record(raw gjson.Result) models.ResultRecord {
	return models.ResultRecord{
		CandidateName:    stringOr(raw, models.DefaultCandidateName, "candidate_name", "candidateName"),
		FileName:         stringOr(raw, models.DefaultFileName, "filename", "file_name", "fileName"),
		Score:            scoreFromResult(first(raw, "match_score", "score")),
		Recommendation:   stringOr(raw, models.DefaultRecommendation, "recommendation"),
		Summary:          stringOr(raw, models.DefaultSummary, "summary"),
		Reasoning:        stringOr(raw, models.DefaultReasoning, "reasoning"),
		Strengths:        stringList(first(raw, "strengths")),
		ImprovementAreas: stringList(first(raw, "improvement_areas", "improvements", "improvementAreas")),
		Timestamp:        n.timestamp(first(raw, "timestamp")),
	}
}

// Response decodes a full API body. Only a body that is not JSON at all is
// an error; missing fields fall back to defaults.
func (n *Normalizer) Response(body []byte) (*models.AnalysisResponse, error) {
	if !gjson.ValidBytes(body) {
		return nil, &RequestError{Message: "analysis response is not valid JSON", Err: ErrInvalidBody}
	}

	root := gjson.ParseBytes(body)
	resp := &models.AnalysisResponse{
		Status:  models.AnalysisStatus(strings.ToLower(root.Get("status").String())),
		Message: root.Get("message").String(),
	}
	if resp.Status != models.AnalysisSuccess {
		return resp, nil
	}

	results := root.Get("results")
	if !results.IsArray() {
		resp.Results = []models.ResultRecord{n.Record(root)}
		resp.TotalFiles = 1
		resp.SuccessfulFiles = 1
		return resp, nil
	}

	results.ForEach(func(_, value gjson.Result) bool {
		resp.Results = append(resp.Results, n.Record(value))
		return true
	})
	root.Get("failed_results").ForEach(func(_, value gjson.Result) bool {
		resp.FailedResults = append(resp.FailedResults, models.FailedResult{
			FileName: stringOr(value, models.DefaultFileName, "filename", "file_name", "fileName"),
			Message:  stringOr(value, "Analysis failed", "error", "message"),
		})
		return true
	})

	resp.SuccessfulFiles = intOr(root.Get("successful_files"), len(resp.Results))
	resp.FailedFiles = intOr(root.Get("failed_files"), len(resp.FailedResults))
	resp.TotalFiles = intOr(root.Get("total_files"), resp.SuccessfulFiles+resp.FailedFiles)
	return resp, nil
}

func (n *Normalizer) timestamp(v gjson.Result) time.Time {
	switch v.Type {
	case gjson.Number:
		return time.UnixMilli(v.Int())
	case gjson.String:
		s := strings.TrimSpace(v.String())
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t
			}
		}
	}
	return n.now()
}

// ExtractScore resolves a score given as a number or a percent string.
// Anything unparseable is 0; results are clamped to [0,100].
func ExtractScore(v any) models.Score {
	var f float64
	switch s := v.(type) {
	case models.Score:
		f = float64(s)
	case float64:
		f = s
	case float32:
		f = float64(s)
	case int:
		f = float64(s)
	case int64:
		f = float64(s)
	case json.Number:
		f, _ = s.Float64()
	case string:
		f = parsePercent(s)
	default:
		return 0
	}
	return clampScore(f)
}

func scoreFromResult(v gjson.Result) models.Score {
	switch v.Type {
	case gjson.Number:
		return clampScore(v.Float())
	case gjson.String:
		return clampScore(parsePercent(v.String()))
	default:
		return 0
	}
}

func parsePercent(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// clampScore treats non-finite values as unparseable.
func clampScore(f float64) models.Score {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	if f > 100 {
		return 100
	}
	return models.Score(f)
}

// first returns the first key that is present and not null.
func first(raw gjson.Result, keys ...string) gjson.Result {
	for _, key := range keys {
		if v := raw.Get(key); v.Exists() && v.Type != gjson.Null {
			return v
		}
	}
	return gjson.Result{}
}

func stringOr(raw gjson.Result, fallback string, keys ...string) string {
	if s := strings.TrimSpace(first(raw, keys...).String()); s != "" {
		return s
	}
	return fallback
}

func stringList(v gjson.Result) []string {
	out := []string{}
	if !v.IsArray() {
		return out
	}
	v.ForEach(func(_, item gjson.Result) bool {
		if s := strings.TrimSpace(item.String()); s != "" {
			out = append(out, s)
		}
		return true
	})
	return out
}

func intOr(v gjson.Result, fallback int) int {
	if v.Type == gjson.Number {
		return int(v.Int())
	}
	return fallback
}

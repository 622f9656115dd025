package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"alfredoptarigan/resume-screener/internal/models"
)

type RecommendationClass string

const (
	RecommendationPositive RecommendationClass = "positive"
	RecommendationNegative RecommendationClass = "negative"
	RecommendationNeutral  RecommendationClass = "neutral"
)

// ClassifyRecommendation maps a free-text label onto a display class.
// Positive words win over negative ones.
func ClassifyRecommendation(recommendation string) RecommendationClass {
	lower := strings.ToLower(recommendation)
	switch {
	case containsAny(lower, "strong", "excellent", "good"):
		return RecommendationPositive
	case containsAny(lower, "weak", "poor", "not"):
		return RecommendationNegative
	default:
		return RecommendationNeutral
	}
}

// ScoreTier buckets a score for colouring: high, medium or low.
func ScoreTier(score models.Score) string {
	switch {
	case score >= 80:
		return "high"
	case score >= 60:
		return "medium"
	default:
		return "low"
	}
}

// FormatScore renders a score without trailing zeros, e.g. "85" or "72.5".
func FormatScore(score models.Score) string {
	return strconv.FormatFloat(math.Round(float64(score)*100)/100, 'f', -1, 64)
}

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatFileSize renders bytes with up to two decimals, e.g. "1.5 MB".
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i >= len(sizeUnits) {
		i = len(sizeUnits) - 1
	}
	value := float64(bytes) / math.Pow(1024, float64(i))
	rounded := strconv.FormatFloat(math.Round(value*100)/100, 'f', -1, 64)
	return fmt.Sprintf("%s %s", rounded, sizeUnits[i])
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

package models

import "time"

// Defaults substituted for fields missing from an analysis payload.
const (
	DefaultCandidateName  = "Candidate"
	DefaultFileName       = "Uploaded Resume"
	DefaultRecommendation = "Analysis Complete"
	DefaultSummary        = "No summary available."
	DefaultReasoning      = "No reasoning provided."
)

// Score is a match percentage in [0,100].
type Score float64

// ResultRecord is one candidate's analysis outcome, normalized from either
// the API shape or the previous-result shape.
type ResultRecord struct {
	CandidateName    string    `json:"candidate_name"`
	FileName         string    `json:"filename"`
	Score            Score     `json:"match_score"`
	Recommendation   string    `json:"recommendation"`
	Summary          string    `json:"summary"`
	Reasoning        string    `json:"reasoning"`
	Strengths        []string  `json:"strengths"`
	ImprovementAreas []string  `json:"improvement_areas"`
	Timestamp        time.Time `json:"timestamp"`
}

// RecordIdentity is what history removal matches on.
type RecordIdentity struct {
	CandidateName string
	Score         Score
	Timestamp     time.Time
}

func (r ResultRecord) Identity() RecordIdentity {
	return RecordIdentity{
		CandidateName: r.CandidateName,
		Score:         r.Score,
		Timestamp:     r.Timestamp,
	}
}

func (id RecordIdentity) Matches(r ResultRecord) bool {
	return id.CandidateName == r.CandidateName &&
		id.Score == r.Score &&
		id.Timestamp.Equal(r.Timestamp)
}

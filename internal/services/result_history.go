package services

import (
	"iter"
	"slices"
	"strings"

	"alfredoptarigan/resume-screener/internal/models"
)

// ResultHistory is the unordered bag of records that are not currently
// displayed. Ordering is derived on demand by Rank.
type ResultHistory struct {
	records []models.ResultRecord
}

func NewResultHistory() *ResultHistory {
	return &ResultHistory{}
}

func (h *ResultHistory) Insert(records ...models.ResultRecord) {
	h.records = append(h.records, records...)
}

// RemoveByIdentity drops the first record matching id. Removing a record
// that is not present is a no-op.
func (h *ResultHistory) RemoveByIdentity(id models.RecordIdentity) bool {
	for i, r := range h.records {
		if id.Matches(r) {
			h.records = slices.Delete(h.records, i, i+1)
			return true
		}
	}
	return false
}

// Records returns a copy in insertion order.
func (h *ResultHistory) Records() []models.ResultRecord {
	return slices.Clone(h.records)
}

func (h *ResultHistory) Len() int {
	return len(h.records)
}

// Rank yields records by score descending, ties broken by the lowercased
// first token of the candidate name. The sequence is computed fresh on each
// iteration, so it can be restarted.
func Rank(records []models.ResultRecord) iter.Seq2[int, models.ResultRecord] {
	return func(yield func(int, models.ResultRecord) bool) {
		for i, r := range rankSorted(records) {
			if !yield(i, r) {
				return
			}
		}
	}
}

func rankSorted(records []models.ResultRecord) []models.ResultRecord {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, compareRank)
	return sorted
}

func compareRank(a, b models.ResultRecord) int {
	if a.Score != b.Score {
		if a.Score > b.Score {
			return -1
		}
		return 1
	}
	return strings.Compare(firstNameToken(a.CandidateName), firstNameToken(b.CandidateName))
}

func firstNameToken(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

package models

type AnalysisStatus string

const (
	AnalysisSuccess AnalysisStatus = "success"
	AnalysisError   AnalysisStatus = "error"
	AnalysisLoading AnalysisStatus = "loading"
)

// AnalysisResponse is the decoded body of the analysis API. Results holds
// one record for a single-candidate body, or the producer's ordering of a
// multi-candidate body.
type AnalysisResponse struct {
	Status          AnalysisStatus `json:"status"`
	Message         string         `json:"message,omitempty"`
	Results         []ResultRecord `json:"results"`
	TotalFiles      int            `json:"total_files"`
	SuccessfulFiles int            `json:"successful_files"`
	FailedFiles     int            `json:"failed_files"`
	FailedResults   []FailedResult `json:"failed_results,omitempty"`
}

type FailedResult struct {
	FileName string `json:"filename"`
	Message  string `json:"message"`
}

func (r *AnalysisResponse) IsSuccess() bool {
	return r != nil && r.Status == AnalysisSuccess
}

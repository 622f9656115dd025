package models

type QueuedFile struct {
	Index       int    `json:"index"`
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	SizeLabel   string `json:"size_label"`
	ContentType string `json:"content_type"`
}

type RejectedFile struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type QueueResponse struct {
	Accepted []QueuedFile   `json:"accepted,omitempty"`
	Rejected []RejectedFile `json:"rejected,omitempty"`
	Queue    []QueuedFile   `json:"queue"`
}

type JobDescriptionRequest struct {
	JobDescription string `json:"job_description" form:"job_description"`
}

// SessionStats summarizes the screening session for /api/info.
type SessionStats struct {
	Queued    int  `json:"queued"`
	Submitted int  `json:"submitted"`
	Pending   bool `json:"pending"`
}

type JobDescriptionResponse struct {
	Length int  `json:"length"`
	Ready  bool `json:"ready"`
}

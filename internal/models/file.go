package models

import (
	"time"

	"github.com/google/uuid"
)

// FileIdentity is the dedup key of an upload: two files are the same file
// iff name, size and last-modified time (ms) all match.
type FileIdentity struct {
	Name         string
	Size         int64
	LastModified int64
}

// UploadCandidateFile is a file selected for upload. Its content is staged
// on disk at Path and never inspected.
type UploadCandidateFile struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	ContentType  string    `json:"content_type"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
	Path         string    `json:"-"`
}

func (f UploadCandidateFile) Identity() FileIdentity {
	return FileIdentity{
		Name:         f.Name,
		Size:         f.Size,
		LastModified: f.LastModified.UnixMilli(),
	}
}

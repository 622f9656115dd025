package services

import (
	"strings"

	"alfredoptarigan/resume-screener/internal/models"
)

const DefaultMaxFileSize int64 = 10 * 1024 * 1024

var acceptedContentTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// IsAcceptedContentType reports whether a declared media type is PDF or Word.
func IsAcceptedContentType(contentType string) bool {
	mediaType, _, _ := strings.Cut(contentType, ";")
	return acceptedContentTypes[strings.ToLower(strings.TrimSpace(mediaType))]
}

// SubmittedFileSet remembers every file identity that was part of a
// successful submission. It only grows.
type SubmittedFileSet struct {
	ids map[models.FileIdentity]struct{}
}

func NewSubmittedFileSet() *SubmittedFileSet {
	return &SubmittedFileSet{ids: make(map[models.FileIdentity]struct{})}
}

func (s *SubmittedFileSet) Add(ids ...models.FileIdentity) {
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
}

func (s *SubmittedFileSet) Contains(id models.FileIdentity) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *SubmittedFileSet) Len() int {
	return len(s.ids)
}

// FileQueue holds files pending upload. It is not safe for concurrent use;
// the screener serializes access.
type FileQueue struct {
	pending     []models.UploadCandidateFile
	submitted   *SubmittedFileSet
	maxFileSize int64
}

func NewFileQueue(submitted *SubmittedFileSet, maxFileSize int64) *FileQueue {
	if submitted == nil {
		submitted = NewSubmittedFileSet()
	}
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	return &FileQueue{
		submitted:   submitted,
		maxFileSize: maxFileSize,
	}
}

// Validate runs the add checks without mutating the queue.
func (q *FileQueue) Validate(file models.UploadCandidateFile) error {
	if !IsAcceptedContentType(file.ContentType) {
		return &ValidationError{FileName: file.Name, Err: ErrUnsupportedType}
	}
	if file.Size > q.maxFileSize {
		return &ValidationError{FileName: file.Name, Err: ErrTooLarge}
	}

	id := file.Identity()
	if q.submitted.Contains(id) {
		return &ValidationError{FileName: file.Name, Err: ErrAlreadySubmitted}
	}
	if q.indexOf(id) >= 0 {
		return &ValidationError{FileName: file.Name, Err: ErrAlreadyQueued}
	}
	return nil
}

func (q *FileQueue) Add(file models.UploadCandidateFile) error {
	if err := q.Validate(file); err != nil {
		return err
	}
	q.pending = append(q.pending, file)
	return nil
}

// AddBatch adds each file independently; a rejected file does not block
// the rest of the batch.
func (q *FileQueue) AddBatch(files []models.UploadCandidateFile) ([]models.UploadCandidateFile, []*ValidationError) {
	var accepted []models.UploadCandidateFile
	var rejected []*ValidationError

	for _, file := range files {
		if err := q.Add(file); err != nil {
			rejected = append(rejected, err.(*ValidationError))
			continue
		}
		accepted = append(accepted, file)
	}
	return accepted, rejected
}

func (q *FileQueue) Remove(index int) (models.UploadCandidateFile, error) {
	if index < 0 || index >= len(q.pending) {
		return models.UploadCandidateFile{}, ErrIndexOutOfRange
	}
	removed := q.pending[index]
	q.pending = append(q.pending[:index], q.pending[index+1:]...)
	return removed, nil
}

// Clear empties the queue and returns what was pending.
func (q *FileQueue) Clear() []models.UploadCandidateFile {
	drained := q.pending
	q.pending = nil
	return drained
}

// Files returns a copy of the pending queue.
func (q *FileQueue) Files() []models.UploadCandidateFile {
	out := make([]models.UploadCandidateFile, len(q.pending))
	copy(out, q.pending)
	return out
}

func (q *FileQueue) Len() int {
	return len(q.pending)
}

func (q *FileQueue) Submitted() *SubmittedFileSet {
	return q.submitted
}

func (q *FileQueue) indexOf(id models.FileIdentity) int {
	for i, f := range q.pending {
		if f.Identity() == id {
			return i
		}
	}
	return -1
}

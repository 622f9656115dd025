package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"alfredoptarigan/resume-screener/internal/models"
)

const (
	DefaultDebounceDelay     = 500 * time.Millisecond
	DefaultMinJobDescription = 10
)

// IncomingFile is one file part received from the page.
type IncomingFile struct {
	Name         string
	ContentType  string
	Size         int64
	LastModified time.Time
	Content      io.Reader
}

// Screener owns the single screening session: job description, pending
// queue, submitted identities and the presenter. Every mutation of the
// description or the queue re-evaluates the submission trigger.
type Screener interface {
	SetJobDescription(text string) models.JobDescriptionResponse
	AddFiles(files []IncomingFile) models.QueueResponse
	RemoveFile(index int) (models.QueueResponse, error)
	Queue() []models.QueuedFile
	View() models.DisplayState
	SelectRank(rank int) (models.DisplayState, error)
	Stats() models.SessionStats
	Start(ctx context.Context)
	Stop()
}

type ScreenerConfig struct {
	DebounceDelay     time.Duration
	MinJobDescription int
	MaxFileSize       int64
}

type screener struct {
	mu             sync.Mutex
	cfg            ScreenerConfig
	jobDescription string
	queue          *FileQueue
	submitted      *SubmittedFileSet
	presenter      AnalysisPresenter
	storage        StorageService
	worker         Worker
	timer          *time.Timer

	wg       sync.WaitGroup
	done     chan struct{}
	stopOnce sync.Once
}

func NewScreener(cfg ScreenerConfig, storage StorageService, worker Worker, presenter AnalysisPresenter) Screener {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = DefaultDebounceDelay
	}
	if cfg.MinJobDescription <= 0 {
		cfg.MinJobDescription = DefaultMinJobDescription
	}
	if presenter == nil {
		presenter = NewAnalysisPresenter()
	}

	submitted := NewSubmittedFileSet()
	return &screener{
		cfg:       cfg,
		queue:     NewFileQueue(submitted, cfg.MaxFileSize),
		submitted: submitted,
		presenter: presenter,
		storage:   storage,
		worker:    worker,
		done:      make(chan struct{}),
	}
}

// SetJobDescription implements Screener.
func (s *screener) SetJobDescription(text string) models.JobDescriptionResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobDescription = text
	s.scheduleLocked()

	return models.JobDescriptionResponse{
		Length: utf8.RuneCountInString(strings.TrimSpace(text)),
		Ready:  s.readyLocked(),
	}
}

// AddFiles implements Screener. Each file is validated and staged on its
// own; rejected files never touch disk.
func (s *screener) AddFiles(files []IncomingFile) models.QueueResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	var resp models.QueueResponse
	for _, in := range files {
		candidate := models.UploadCandidateFile{
			ID:           uuid.New(),
			Name:         in.Name,
			ContentType:  in.ContentType,
			Size:         in.Size,
			LastModified: in.LastModified,
		}

		if err := s.queue.Validate(candidate); err != nil {
			resp.Rejected = append(resp.Rejected, rejectedFile(err))
			continue
		}

		_, path, err := s.storage.SaveFile(in.Name, in.Content)
		if err != nil {
			log.Printf("❌ Failed to stage %s: %v\n", in.Name, err)
			resp.Rejected = append(resp.Rejected, rejectedFile(&ValidationError{FileName: in.Name, Err: err}))
			continue
		}
		candidate.Path = path

		if err := s.queue.Add(candidate); err != nil {
			s.discard(candidate)
			resp.Rejected = append(resp.Rejected, rejectedFile(err))
			continue
		}
		resp.Accepted = append(resp.Accepted, queuedFile(s.queue.Len()-1, candidate))
	}

	s.scheduleLocked()
	resp.Queue = s.queueLocked()
	return resp
}

// RemoveFile implements Screener.
func (s *screener) RemoveFile(index int) (models.QueueResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.queue.Remove(index)
	if err != nil {
		return models.QueueResponse{}, err
	}
	s.discard(removed)
	s.scheduleLocked()

	return models.QueueResponse{Queue: s.queueLocked()}, nil
}

// Queue implements Screener.
func (s *screener) Queue() []models.QueuedFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queueLocked()
}

// View implements Screener.
func (s *screener) View() models.DisplayState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.presenter.View()
}

// SelectRank implements Screener.
func (s *screener) SelectRank(rank int) (models.DisplayState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.presenter.SelectRank(rank); err != nil {
		return models.DisplayState{}, err
	}
	return s.presenter.View(), nil
}

// Stats implements Screener.
func (s *screener) Stats() models.SessionStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.SessionStats{
		Queued:    s.queue.Len(),
		Submitted: s.queue.Submitted().Len(),
		Pending:   s.presenter.View().Pending,
	}
}

// Start implements Screener. It starts the worker and applies completions
// as they arrive.
func (s *screener) Start(ctx context.Context) {
	s.worker.Start(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			select {
			case <-s.done:
				return
			case <-ctx.Done():
				return
			case c := <-s.worker.Results():
				s.complete(c)
			}
		}
	}()
}

// Stop implements Screener.
func (s *screener) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		if s.timer != nil {
			s.timer.Stop()
		}
		s.mu.Unlock()

		close(s.done)
		s.worker.Stop()
		s.wg.Wait()
	})
}

func (s *screener) readyLocked() bool {
	trimmed := strings.TrimSpace(s.jobDescription)
	return utf8.RuneCountInString(trimmed) > s.cfg.MinJobDescription && s.queue.Len() > 0
}

// scheduleLocked restarts the debounce window when the trigger holds.
func (s *screener) scheduleLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if !s.readyLocked() {
		return
	}
	s.timer = time.AfterFunc(s.cfg.DebounceDelay, s.submit)
}

// submit drains the queue and captures the description before dispatch,
// so nothing that happens afterwards can change the outgoing payload.
func (s *screener) submit() {
	s.mu.Lock()
	select {
	case <-s.done:
		s.mu.Unlock()
		return
	default:
	}
	if !s.readyLocked() {
		s.mu.Unlock()
		return
	}

	sub := Submission{
		ID:             uuid.New(),
		JobDescription: strings.TrimSpace(s.jobDescription),
		Files:          s.queue.Clear(),
	}
	s.timer = nil
	s.presenter.BeginSubmission()
	s.mu.Unlock()

	log.Printf("📤 Submitting %s with %d files\n", sub.ID, len(sub.Files))
	if err := s.worker.EnqueueSubmission(sub); err != nil {
		s.complete(Completion{Submission: sub, Err: fmt.Errorf("failed to enqueue submission: %w", err)})
	}
}

// complete applies a finished submission to whatever state is current.
func (s *screener) complete(c Completion) {
	s.mu.Lock()
	if c.Err != nil {
		log.Printf("❌ Submission %s failed: %v\n", c.Submission.ID, c.Err)
		s.presenter.ApplyFailure(FailureMessage(c.Err))
	} else {
		s.presenter.ApplyResponse(c.Response)
		if c.Response.IsSuccess() {
			for _, f := range c.Submission.Files {
				s.submitted.Add(f.Identity())
			}
		}
		log.Printf("✅ Submission %s applied\n", c.Submission.ID)
	}
	s.mu.Unlock()

	for _, f := range c.Submission.Files {
		s.discard(f)
	}
}

func (s *screener) discard(f models.UploadCandidateFile) {
	if f.Path == "" {
		return
	}
	if err := s.storage.DeleteFile(f.Path); err != nil {
		log.Printf("⚠️  Failed to remove staged file %s: %v\n", f.Name, err)
	}
}

func (s *screener) queueLocked() []models.QueuedFile {
	files := s.queue.Files()
	out := make([]models.QueuedFile, 0, len(files))
	for i, f := range files {
		out = append(out, queuedFile(i, f))
	}
	return out
}

func queuedFile(index int, f models.UploadCandidateFile) models.QueuedFile {
	return models.QueuedFile{
		Index:       index,
		Name:        f.Name,
		Size:        f.Size,
		SizeLabel:   FormatFileSize(f.Size),
		ContentType: f.ContentType,
	}
}

func rejectedFile(err error) models.RejectedFile {
	verr, ok := err.(*ValidationError)
	if !ok {
		return models.RejectedFile{Kind: "invalid", Message: err.Error()}
	}
	return models.RejectedFile{
		Name:    verr.FileName,
		Kind:    verr.Kind(),
		Message: verr.UserMessage(),
	}
}

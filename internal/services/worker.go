package services

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"

	"alfredoptarigan/resume-screener/internal/models"
)

// Submission is the snapshot captured when the trigger fires. Later edits
// to the job description or queue never reach it.
type Submission struct {
	ID             uuid.UUID
	JobDescription string
	Files          []models.UploadCandidateFile
}

type Completion struct {
	Submission Submission
	Response   *models.AnalysisResponse
	Err        error
}

type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueSubmission(sub Submission) error
	Results() <-chan Completion
}

type worker struct {
	client      AnalysisClient
	jobQueue    chan Submission
	results     chan Completion
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
	stopOnce    sync.Once
}

func NewWorker(client AnalysisClient, concurrency, queueSize int) Worker {
	if concurrency <= 0 {
		concurrency = 1
	}
	if queueSize <= 0 {
		queueSize = 100
	}
	return &worker{
		client:      client,
		jobQueue:    make(chan Submission, queueSize),
		results:     make(chan Completion, queueSize),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processSubmissions(ctx, i+1)
	}

	log.Println("✅ Worker started successfully")
}

// Stop implements Worker. Submissions still queued are dropped.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		log.Println("🛑 Stopping worker...")
		close(w.stopChan)
		w.wg.Wait()
		log.Println("✅ Worker stopped")
	})
}

// EnqueueSubmission implements Worker.
func (w *worker) EnqueueSubmission(sub Submission) error {
	select {
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue submission %s\n", sub.ID)
		return ErrWorkerStopped
	default:
	}

	select {
	case w.jobQueue <- sub:
		log.Printf("📥 Submission %s enqueued (%d files)\n", sub.ID, len(sub.Files))
		return nil
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue submission %s\n", sub.ID)
		return ErrWorkerStopped
	}
}

// Results implements Worker.
func (w *worker) Results() <-chan Completion {
	return w.results
}

func (w *worker) processSubmissions(ctx context.Context, workerID int) {
	defer w.wg.Done()
	log.Printf("🚀 Worker %d started processing submissions\n", workerID)

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case <-ctx.Done():
			log.Printf("👷 Worker #%d context done\n", workerID)
			return
		case sub := <-w.jobQueue:
			log.Printf("👷 Worker #%d processing submission %s\n", workerID, sub.ID)
			resp, err := w.client.Analyze(ctx, sub.JobDescription, sub.Files)
			if err != nil {
				log.Printf("❌ Worker #%d failed submission %s: %v\n", workerID, sub.ID, err)
			} else {
				log.Printf("✅ Worker #%d completed submission %s (%d results)\n", workerID, sub.ID, len(resp.Results))
			}

			select {
			case w.results <- Completion{Submission: sub, Response: resp, Err: err}:
			case <-w.stopChan:
				return
			}
		}
	}
}

package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/rameshbanala/resume-analyzer/internal/models"
)

// IngestJob is one document waiting to go through the pipeline.
type IngestJob struct {
	Source   string
	Document *models.UploadedDocument
}

type IngestOutcome struct {
	Job    IngestJob
	Resume *models.Resume
	Err    error
}

// JobHandler processes a single job.
type JobHandler func(ctx context.Context, job IngestJob) (*models.Resume, error)

// Worker runs jobs on a fixed number of goroutines. Every enqueued job produces
// exactly one outcome on Results, which is closed once Stop has drained the queue.
type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(job IngestJob) bool
	Results() <-chan IngestOutcome
}

type worker struct {
	handler     JobHandler
	jobQueue    chan IngestJob
	results     chan IngestOutcome
	concurrency int
	wg          sync.WaitGroup

	mu      sync.RWMutex
	stopped bool
}

func NewWorker(handler JobHandler, concurrency int) Worker {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &worker{
		handler:     handler,
		jobQueue:    make(chan IngestJob, 100),
		results:     make(chan IngestOutcome, 100),
		concurrency: concurrency,
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting worker with %d concurrent workers", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}
}

// Stop implements Worker. Queued jobs still run before it returns.
func (w *worker) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	close(w.jobQueue)
	w.mu.Unlock()

	log.Println("🛑 Stopping worker...")
	w.wg.Wait()
	close(w.results)
	log.Println("✅ Worker stopped")
}

// EnqueueJob implements Worker. It reports false once the worker is stopping.
func (w *worker) EnqueueJob(job IngestJob) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.stopped {
		log.Printf("⚠️  Worker stopped, cannot enqueue %s", job.Source)
		return false
	}

	w.jobQueue <- job
	return true
}

// Results implements Worker.
func (w *worker) Results() <-chan IngestOutcome {
	return w.results
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for job := range w.jobQueue {
		log.Printf("👷 Worker #%d processing %s", workerID, job.Source)

		resume, err := w.run(ctx, job)
		if err != nil {
			log.Printf("❌ Worker #%d failed to process %s: %v", workerID, job.Source, err)
		} else {
			log.Printf("✅ Worker #%d completed %s", workerID, job.Source)
		}

		w.results <- IngestOutcome{Job: job, Resume: resume, Err: err}
	}

	log.Printf("👷 Worker #%d stopped", workerID)
}

func (w *worker) run(ctx context.Context, job IngestJob) (resume *models.Resume, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			resume = nil
			err = fmt.Errorf("job panicked: %v", r)
		}
	}()

	return w.handler(ctx, job)
}

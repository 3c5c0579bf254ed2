package services

import (
	"context"
	"errors"
	"sort"
	"sync/atomic"
	"testing"

	"github.com/rameshbanala/resume-analyzer/internal/models"
)

func collect(w Worker) <-chan []IngestOutcome {
	done := make(chan []IngestOutcome, 1)
	go func() {
		var outcomes []IngestOutcome
		for o := range w.Results() {
			outcomes = append(outcomes, o)
		}
		done <- outcomes
	}()
	return done
}

func TestWorkerProcessesEveryJob(t *testing.T) {
	var calls int32
	w := NewWorker(func(ctx context.Context, job IngestJob) (*models.Resume, error) {
		atomic.AddInt32(&calls, 1)
		switch job.Source {
		case "bad.pdf":
			return nil, errors.New("extraction failed")
		case "panic.pdf":
			panic("decoder exploded")
		}
		return &models.Resume{FileName: job.Source}, nil
	}, 3)

	w.Start(context.Background())
	done := collect(w)

	sources := []string{"a.pdf", "b.docx", "bad.pdf", "panic.pdf", "c.pdf"}
	for _, s := range sources {
		if !w.EnqueueJob(IngestJob{Source: s}) {
			t.Fatalf("enqueue %s rejected", s)
		}
	}
	w.Stop()

	outcomes := <-done
	if len(outcomes) != len(sources) {
		t.Fatalf("expected %d outcomes, got %d", len(sources), len(outcomes))
	}

	var failed []string
	for _, o := range outcomes {
		if o.Err != nil {
			failed = append(failed, o.Job.Source)
		} else if o.Resume.FileName != o.Job.Source {
			t.Fatalf("outcome mismatched job: %+v", o)
		}
	}
	sort.Strings(failed)
	if len(failed) != 2 || failed[0] != "bad.pdf" || failed[1] != "panic.pdf" {
		t.Fatalf("unexpected failures: %v", failed)
	}
	if atomic.LoadInt32(&calls) != int32(len(sources)) {
		t.Fatalf("expected %d handler calls, got %d", len(sources), calls)
	}
}

func TestWorkerRejectsJobsAfterStop(t *testing.T) {
	w := NewWorker(func(ctx context.Context, job IngestJob) (*models.Resume, error) {
		return nil, nil
	}, 1)
	w.Start(context.Background())
	done := collect(w)

	w.Stop()
	w.Stop()

	if w.EnqueueJob(IngestJob{Source: "late.pdf"}) {
		t.Fatal("expected enqueue after stop to be rejected")
	}
	if outcomes := <-done; len(outcomes) != 0 {
		t.Fatalf("expected no outcomes, got %d", len(outcomes))
	}
}

func TestWorkerSkipsJobsOnceCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls int32
	w := NewWorker(func(ctx context.Context, job IngestJob) (*models.Resume, error) {
		atomic.AddInt32(&calls, 1)
		return nil, nil
	}, 2)
	w.Start(ctx)
	done := collect(w)

	w.EnqueueJob(IngestJob{Source: "a.pdf"})
	w.EnqueueJob(IngestJob{Source: "b.pdf"})
	w.Stop()

	for _, o := range <-done {
		if !errors.Is(o.Err, context.Canceled) {
			t.Fatalf("expected cancellation, got %v", o.Err)
		}
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Fatalf("expected handler not to run, got %d calls", calls)
	}
}

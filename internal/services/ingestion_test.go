package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rameshbanala/resume-analyzer/internal/models"
)

func newTestIngestion(pdfText string, gen TextGenerator) IngestionService {
	return NewIngestionService(
		NewFileValidator(10*mb, 5*mb),
		fakeExtractor(pdfText, pdfText),
		NewStructuredAnalyzer(gen, AnalyzerOptions{
			MaxAttempts: 3,
			BaseDelay:   time.Second,
			Sleep:       (&recordingSleep{}).Sleep,
		}),
	)
}

func TestIngestReturnsRecordForReadableResume(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{validModelResponse}}

	record, err := newTestIngestion(richResumeText, gen).Ingest(context.Background(), pdfDocument())
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if record.Email == nil || *record.Email != "jane.doe@example.com" {
		t.Fatalf("unexpected email: %v", record.Email)
	}
	if record.ResumeRating < MinResumeRating || record.ResumeRating > MaxResumeRating {
		t.Fatalf("rating out of range: %d", record.ResumeRating)
	}
}

func TestIngestRejectsUnsupportedMediaType(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{validModelResponse}}
	doc := &models.UploadedDocument{
		Data:      []byte("plain text resume"),
		MediaType: "text/plain",
		FileName:  "resume.txt",
		Size:      17,
	}

	_, err := newTestIngestion(richResumeText, gen).Ingest(context.Background(), doc)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if gen.callCount() != 0 {
		t.Fatalf("expected model to be untouched, got %d calls", gen.callCount())
	}
}

func TestIngestRejectsOversizedPDF(t *testing.T) {
	doc := pdfDocument()
	doc.Size = 11 * mb

	_, err := newTestIngestion(richResumeText, &scriptedGenerator{responses: []string{"{}"}}).Ingest(context.Background(), doc)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "10MB") {
		t.Fatalf("expected reason to name the limit, got %q", err.Error())
	}
}

func TestIngestFailsExtractionForScannedPDF(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{validModelResponse}}

	_, err := newTestIngestion("Page 1", gen).Ingest(context.Background(), pdfDocument())
	if !errors.Is(err, ErrExtraction) {
		t.Fatalf("expected extraction error, got %v", err)
	}
	if gen.callCount() != 0 {
		t.Fatalf("expected model to be untouched, got %d calls", gen.callCount())
	}
}

func TestIngestReportsAnalysisUnavailable(t *testing.T) {
	fail := errors.New("quota exceeded")
	gen := &scriptedGenerator{errs: []error{fail, fail, fail}, responses: []string{""}}

	_, err := newTestIngestion(richResumeText, gen).Ingest(context.Background(), pdfDocument())
	if !errors.Is(err, ErrAnalysisUnavailable) {
		t.Fatalf("expected analysis unavailable, got %v", err)
	}
	if kind, _ := KindOf(err); kind != KindAnalysisUnavailable {
		t.Fatalf("unexpected kind %q", kind)
	}
	if gen.callCount() != 3 {
		t.Fatalf("expected 3 attempts, got %d", gen.callCount())
	}
}

func TestIngestRequiresNameOrEmail(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{`{"name": null, "email": null, "technical_skills": ["Go"], "resume_rating": 6}`}}

	_, err := newTestIngestion(richResumeText, gen).Ingest(context.Background(), pdfDocument())
	if !errors.Is(err, ErrInsufficientInformation) {
		t.Fatalf("expected insufficient information, got %v", err)
	}
	if errors.Is(err, ErrAnalysisUnavailable) {
		t.Fatal("error kinds must not overlap")
	}
}

func TestIngestCarriesCancellationCause(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	gen := &scriptedGenerator{responses: []string{"no json here"}}
	ingestion := NewIngestionService(
		NewFileValidator(10*mb, 5*mb),
		fakeExtractor(richResumeText, richResumeText),
		NewStructuredAnalyzer(gen, AnalyzerOptions{
			Sleep: func(ctx context.Context, d time.Duration) error {
				cancel()
				return ctx.Err()
			},
		}),
	)

	_, err := ingestion.Ingest(ctx, pdfDocument())
	if !errors.Is(err, ErrAnalysisUnavailable) {
		t.Fatalf("expected analysis unavailable, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation cause, got %v", err)
	}
}

package services

import (
	"context"
	"log"

	"github.com/rameshbanala/resume-analyzer/internal/models"
)

const (
	msgAnalysisUnavailable     = "AI analysis failed. Please try again later"
	msgInsufficientInformation = "Unable to extract basic information from resume. Please ensure the resume contains clear name and contact details."
)

// IngestionService turns an uploaded document into a canonical resume record.
// Persisting the record is left to the caller.
type IngestionService interface {
	Ingest(ctx context.Context, doc *models.UploadedDocument) (*models.ResumeRecord, error)
}

type ingestionService struct {
	validator FileValidator
	extractor TextExtractor
	analyzer  StructuredAnalyzer
}

func NewIngestionService(validator FileValidator, extractor TextExtractor, analyzer StructuredAnalyzer) IngestionService {
	return &ingestionService{
		validator: validator,
		extractor: extractor,
		analyzer:  analyzer,
	}
}

// Ingest runs validation, extraction and analysis. Every failure is a *PipelineError.
func (s *ingestionService) Ingest(ctx context.Context, doc *models.UploadedDocument) (*models.ResumeRecord, error) {
	if result := s.validator.Validate(doc); !result.Valid {
		log.Printf("⚠️  Rejected upload: %s", result.Reason)
		return nil, NewValidationError(result.Reason)
	}

	log.Printf("📄 Processing resume: %s", doc.FileName)

	extracted, err := s.extractor.Extract(ctx, doc)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Extracted %d characters from %s", len(extracted.Text), doc.FileName)

	record := s.analyzer.Analyze(ctx, extracted.Text)
	if record == nil {
		return nil, &PipelineError{
			Kind:    KindAnalysisUnavailable,
			Message: msgAnalysisUnavailable,
			Cause:   ctx.Err(),
		}
	}

	if !record.HasIdentity() {
		return nil, &PipelineError{
			Kind:    KindInsufficientInformation,
			Message: msgInsufficientInformation,
		}
	}

	return record, nil
}

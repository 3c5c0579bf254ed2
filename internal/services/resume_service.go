package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"

	"github.com/rameshbanala/resume-analyzer/internal/models"
	"github.com/rameshbanala/resume-analyzer/internal/repositories"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

var ErrSearchDisabled = errors.New("resume search is not configured")

// ResumeService stores analysed resumes and serves them back.
type ResumeService interface {
	Upload(ctx context.Context, doc *models.UploadedDocument) (*models.Resume, error)
	Get(ctx context.Context, id uint) (*models.Resume, error)
	List(ctx context.Context, page, limit int) ([]models.ResumeSummary, models.Pagination, error)
	Search(ctx context.Context, query string, limit int) ([]models.SearchHit, error)
}

type resumeService struct {
	ingestion IngestionService
	repo      repositories.ResumeRepository
	indexer   ResumeIndexer
}

// NewResumeService wires the pipeline to storage. indexer may be nil.
func NewResumeService(ingestion IngestionService, repo repositories.ResumeRepository, indexer ResumeIndexer) ResumeService {
	return &resumeService{
		ingestion: ingestion,
		repo:      repo,
		indexer:   indexer,
	}
}

// Upload implements ResumeService. Indexing failures are logged only.
func (s *resumeService) Upload(ctx context.Context, doc *models.UploadedDocument) (*models.Resume, error) {
	record, err := s.ingestion.Ingest(ctx, doc)
	if err != nil {
		return nil, err
	}

	resume := models.NewResume(doc.FileName, ContentHash(doc.Data), record)
	if err := s.repo.Create(ctx, resume); err != nil {
		return nil, err
	}

	log.Printf("✅ Resume %d stored (%s)", resume.ID, resume.FileName)

	if s.indexer != nil {
		if err := s.indexer.IndexResume(ctx, resume); err != nil {
			log.Printf("⚠️  Failed to index resume %d: %v", resume.ID, err)
		}
	}

	return resume, nil
}

// Get implements ResumeService.
func (s *resumeService) Get(ctx context.Context, id uint) (*models.Resume, error) {
	return s.repo.FindByID(ctx, id)
}

// List implements ResumeService. page is 1-based.
func (s *resumeService) List(ctx context.Context, page, limit int) ([]models.ResumeSummary, models.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	summaries, total, err := s.repo.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	return summaries, models.Pagination{
		CurrentPage: page,
		TotalPages:  int((total + int64(limit) - 1) / int64(limit)),
		TotalCount:  total,
		Limit:       limit,
	}, nil
}

// Search implements ResumeService.
func (s *resumeService) Search(ctx context.Context, query string, limit int) ([]models.SearchHit, error) {
	if s.indexer == nil {
		return nil, ErrSearchDisabled
	}
	return s.indexer.Search(ctx, query, limit)
}

// ContentHash identifies a document by its bytes.
func ContentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

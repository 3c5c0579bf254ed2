package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/rameshbanala/resume-analyzer/internal/models"
)

// uniqueViolation is the PostgreSQL SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

var (
	ErrDuplicateResume = errors.New("resume already exists")
	ErrResumeNotFound  = errors.New("resume not found")
)

type ResumeRepository interface {
	Create(ctx context.Context, resume *models.Resume) error
	FindByID(ctx context.Context, id uint) (*models.Resume, error)
	List(ctx context.Context, limit, offset int) ([]models.ResumeSummary, int64, error)
}

type resumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &resumeRepository{db: db}
}

// Create implements ResumeRepository. ID and UploadedAt are filled in on success.
func (r *resumeRepository) Create(ctx context.Context, resume *models.Resume) error {
	if err := r.db.WithContext(ctx).Create(resume).Error; err != nil {
		if isDuplicate(err) {
			return ErrDuplicateResume
		}
		return fmt.Errorf("failed to create resume: %w", err)
	}

	return nil
}

// FindByID implements ResumeRepository.
func (r *resumeRepository) FindByID(ctx context.Context, id uint) (*models.Resume, error) {
	var resume models.Resume
	if err := r.db.WithContext(ctx).First(&resume, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResumeNotFound
		}

		return nil, fmt.Errorf("failed to find resume: %w", err)
	}

	return &resume, nil
}

// List implements ResumeRepository. Rows are newest first.
func (r *resumeRepository) List(ctx context.Context, limit, offset int) ([]models.ResumeSummary, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Resume{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count resumes: %w", err)
	}

	summaries := []models.ResumeSummary{}
	err := r.db.WithContext(ctx).
		Model(&models.Resume{}).
		Select("id", "file_name", "uploaded_at", "name", "email", "resume_rating").
		Order("uploaded_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&summaries).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list resumes: %w", err)
	}

	return summaries, total, nil
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

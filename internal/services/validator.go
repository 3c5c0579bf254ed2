package services

import (
	"fmt"

	"github.com/rameshbanala/resume-analyzer/internal/models"
)

type ValidationResult struct {
	Valid  bool
	Reason string
}

func valid() ValidationResult {
	return ValidationResult{Valid: true}
}

func invalid(reason string) ValidationResult {
	return ValidationResult{Reason: reason}
}

type FileValidator interface {
	Validate(doc *models.UploadedDocument) ValidationResult
}

type fileValidator struct {
	maxSize map[models.DocumentFormat]int64
}

// NewFileValidator builds a validator with per-format byte ceilings.
func NewFileValidator(maxPDFSize, maxDOCXSize int64) FileValidator {
	return &fileValidator{
		maxSize: map[models.DocumentFormat]int64{
			models.FormatPDF:  maxPDFSize,
			models.FormatDOCX: maxDOCXSize,
		},
	}
}

// Validate checks presence, media type, extension and size, in that order.
func (v *fileValidator) Validate(doc *models.UploadedDocument) ValidationResult {
	if doc == nil || (len(doc.Data) == 0 && doc.FileName == "") {
		return invalid("No file uploaded")
	}

	format, ok := models.FormatForMediaType(doc.MediaType)
	if !ok {
		return invalid("Only PDF and DOCX files are allowed")
	}

	if doc.Extension() != format.Extension() {
		return invalid(fmt.Sprintf("File must have %s extension for %s files", format.Extension(), format.Label()))
	}

	limit := v.maxSize[format]
	if doc.ByteSize() > limit {
		return invalid(fmt.Sprintf("File size must not exceed %s for %s files", formatMegabytes(limit), format.Label()))
	}

	return valid()
}

func formatMegabytes(n int64) string {
	const mb = 1024 * 1024
	if n%mb == 0 {
		return fmt.Sprintf("%dMB", n/mb)
	}
	return fmt.Sprintf("%.1fMB", float64(n)/mb)
}

package services

import (
	"strings"
	"testing"

	"github.com/rameshbanala/resume-analyzer/internal/models"
)

const mb = 1024 * 1024

func newTestValidator() FileValidator {
	return NewFileValidator(10*mb, 5*mb)
}

func TestValidateMissingDocument(t *testing.T) {
	v := newTestValidator()

	if res := v.Validate(nil); res.Valid || res.Reason != "No file uploaded" {
		t.Fatalf("expected missing document to be rejected, got %+v", res)
	}
	if res := v.Validate(&models.UploadedDocument{}); res.Valid {
		t.Fatalf("expected empty document to be rejected")
	}
}

func TestValidateRejectsUnsupportedMediaTypes(t *testing.T) {
	v := newTestValidator()

	for _, mediaType := range []string{"text/plain", "image/png", "application/msword", "application/zip", ""} {
		res := v.Validate(&models.UploadedDocument{
			Data:      []byte("data"),
			MediaType: mediaType,
			FileName:  "resume.pdf",
			Size:      4,
		})
		if res.Valid {
			t.Fatalf("expected %q to be rejected", mediaType)
		}
		if !strings.Contains(res.Reason, "Only PDF and DOCX") {
			t.Fatalf("expected type mismatch reason for %q, got %q", mediaType, res.Reason)
		}
	}
}

func TestValidateExtensionMustMatchMediaType(t *testing.T) {
	v := newTestValidator()

	res := v.Validate(&models.UploadedDocument{
		Data:      []byte("data"),
		MediaType: models.MediaTypePDF,
		FileName:  "resume.docx",
		Size:      4,
	})
	if res.Valid || !strings.Contains(res.Reason, ".pdf") {
		t.Fatalf("expected extension mismatch, got %+v", res)
	}

	res = v.Validate(&models.UploadedDocument{
		Data:      []byte("data"),
		MediaType: models.MediaTypeDOCX,
		FileName:  "resume.txt",
		Size:      4,
	})
	if res.Valid || !strings.Contains(res.Reason, ".docx") {
		t.Fatalf("expected extension mismatch, got %+v", res)
	}
}

func TestValidateSizeLimits(t *testing.T) {
	v := newTestValidator()

	pdf := v.Validate(&models.UploadedDocument{
		Data:      []byte("data"),
		MediaType: models.MediaTypePDF,
		FileName:  "resume.pdf",
		Size:      10*mb + 1,
	})
	if pdf.Valid || !strings.Contains(pdf.Reason, "10MB") || !strings.Contains(pdf.Reason, "PDF") {
		t.Fatalf("expected pdf size violation naming 10MB, got %+v", pdf)
	}

	docx := v.Validate(&models.UploadedDocument{
		Data:      []byte("data"),
		MediaType: models.MediaTypeDOCX,
		FileName:  "resume.docx",
		Size:      6 * mb,
	})
	if docx.Valid || !strings.Contains(docx.Reason, "5MB") || !strings.Contains(docx.Reason, "DOCX") {
		t.Fatalf("expected docx size violation naming 5MB, got %+v", docx)
	}
}

func TestValidateAcceptsSupportedDocuments(t *testing.T) {
	v := newTestValidator()

	docs := []models.UploadedDocument{
		{Data: []byte("data"), MediaType: "application/pdf", FileName: "Resume.PDF", Size: 2 * mb},
		{Data: []byte("data"), MediaType: "Application/PDF; charset=binary", FileName: "cv.pdf", Size: 10 * mb},
		{Data: []byte("data"), MediaType: models.MediaTypeDOCX, FileName: "cv.docx", Size: 5 * mb},
	}
	for _, doc := range docs {
		if res := v.Validate(&doc); !res.Valid {
			t.Fatalf("expected %s to be valid, got %q", doc.FileName, res.Reason)
		}
	}
}

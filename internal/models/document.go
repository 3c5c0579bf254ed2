package models

import (
	"path/filepath"
	"strings"
)

const (
	MediaTypePDF  = "application/pdf"
	MediaTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// DocumentFormat is the closed set of formats the pipeline understands.
type DocumentFormat string

const (
	FormatPDF  DocumentFormat = "pdf"
	FormatDOCX DocumentFormat = "docx"
)

// Extension returns the expected filename extension, including the dot.
func (f DocumentFormat) Extension() string {
	return "." + string(f)
}

// Label is the upper-case name used in user-facing messages.
func (f DocumentFormat) Label() string {
	return strings.ToUpper(string(f))
}

// UploadedDocument is the transient input of one ingestion call.
type UploadedDocument struct {
	Data      []byte
	MediaType string
	FileName  string
	Size      int64
}

// Extension is the lower-cased extension of the declared filename.
func (d *UploadedDocument) Extension() string {
	return strings.ToLower(filepath.Ext(d.FileName))
}

// ByteSize is the declared size, or the buffer length when none was declared.
func (d *UploadedDocument) ByteSize() int64 {
	if d.Size > 0 {
		return d.Size
	}
	return int64(len(d.Data))
}

// NormalizeMediaType drops parameters and case from a MIME string.
func NormalizeMediaType(mediaType string) string {
	return strings.ToLower(strings.TrimSpace(strings.Split(mediaType, ";")[0]))
}

// FormatForMediaType maps a declared media type to a format.
func FormatForMediaType(mediaType string) (DocumentFormat, bool) {
	switch NormalizeMediaType(mediaType) {
	case MediaTypePDF:
		return FormatPDF, true
	case MediaTypeDOCX:
		return FormatDOCX, true
	default:
		return "", false
	}
}

// FormatForExtension maps a filename extension to a format.
func FormatForExtension(ext string) (DocumentFormat, bool) {
	switch strings.ToLower(ext) {
	case ".pdf":
		return FormatPDF, true
	case ".docx":
		return FormatDOCX, true
	default:
		return "", false
	}
}

// MediaTypeForExtension is used by callers that only know a file path.
func MediaTypeForExtension(ext string) string {
	format, ok := FormatForExtension(ext)
	if !ok {
		return ""
	}
	if format == FormatPDF {
		return MediaTypePDF
	}
	return MediaTypeDOCX
}

package services

import (
	"errors"
	"fmt"
)

// ErrorKind classifies pipeline failures. Each kind maps to one outward status.
type ErrorKind string

const (
	KindValidation              ErrorKind = "VALIDATION_ERROR"
	KindExtraction              ErrorKind = "EXTRACTION_ERROR"
	KindAnalysisUnavailable     ErrorKind = "ANALYSIS_UNAVAILABLE"
	KindInsufficientInformation ErrorKind = "INSUFFICIENT_INFORMATION"
)

// PipelineError is returned by every stage of the ingestion pipeline.
type PipelineError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *PipelineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *PipelineError) Unwrap() error {
	return e.Cause
}

// Is matches any PipelineError of the same kind when the target carries no message,
// so the sentinels below work with errors.Is.
func (e *PipelineError) Is(target error) bool {
	t, ok := target.(*PipelineError)
	if !ok {
		return false
	}
	return t.Message == "" && t.Kind == e.Kind
}

var (
	ErrValidation              = &PipelineError{Kind: KindValidation}
	ErrExtraction              = &PipelineError{Kind: KindExtraction}
	ErrAnalysisUnavailable     = &PipelineError{Kind: KindAnalysisUnavailable}
	ErrInsufficientInformation = &PipelineError{Kind: KindInsufficientInformation}
)

func NewValidationError(reason string) error {
	return &PipelineError{Kind: KindValidation, Message: reason}
}

func NewExtractionError(message string, cause error) error {
	return &PipelineError{Kind: KindExtraction, Message: message, Cause: cause}
}

// KindOf returns the kind of the first PipelineError in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Kind, true
	}
	return "", false
}

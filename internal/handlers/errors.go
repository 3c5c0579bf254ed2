package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/rameshbanala/resume-analyzer/internal/models"
	"github.com/rameshbanala/resume-analyzer/internal/repositories"
	"github.com/rameshbanala/resume-analyzer/internal/services"
)

const (
	CodeDuplicateResume = "DUPLICATE_RESUME"
	CodeNotFound        = "NOT_FOUND"
	CodeSearchDisabled  = "SEARCH_DISABLED"
	CodeInternal        = "INTERNAL_ERROR"
)

var pipelineStatus = map[services.ErrorKind]int{
	services.KindValidation:              fiber.StatusBadRequest,
	services.KindExtraction:              fiber.StatusUnsupportedMediaType,
	services.KindInsufficientInformation: fiber.StatusUnprocessableEntity,
	services.KindAnalysisUnavailable:     fiber.StatusServiceUnavailable,
}

// ErrorStatus maps an error to its HTTP status and response body.
func ErrorStatus(err error) (int, models.ErrorResponse) {
	var pe *services.PipelineError
	if errors.As(err, &pe) {
		if status, ok := pipelineStatus[pe.Kind]; ok {
			return status, models.ErrorResponse{Error: pe.Message, Code: string(pe.Kind)}
		}
	}

	switch {
	case errors.Is(err, repositories.ErrDuplicateResume):
		return fiber.StatusConflict, models.ErrorResponse{Error: "Resume already exists", Code: CodeDuplicateResume}
	case errors.Is(err, repositories.ErrResumeNotFound):
		return fiber.StatusNotFound, models.ErrorResponse{Error: "Resume not found", Code: CodeNotFound}
	case errors.Is(err, services.ErrSearchDisabled):
		return fiber.StatusServiceUnavailable, models.ErrorResponse{Error: "Resume search is not configured", Code: CodeSearchDisabled}
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := CodeInternal
		if fe.Code < fiber.StatusInternalServerError {
			code = string(services.KindValidation)
		}
		if fe.Code == fiber.StatusNotFound {
			code = CodeNotFound
		}
		return fe.Code, models.ErrorResponse{Error: fe.Message, Code: code}
	}

	return fiber.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error", Code: CodeInternal}
}

func writeError(c *fiber.Ctx, err error) error {
	status, body := ErrorStatus(err)
	return c.Status(status).JSON(body)
}

package handlers

import (
	"context"
	"io"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rameshbanala/resume-analyzer/internal/models"
	"github.com/rameshbanala/resume-analyzer/internal/services"
)

// UploadField is the multipart field carrying the resume.
const UploadField = "resume"

type ResumeHandler struct {
	resumeService  services.ResumeService
	requestTimeout time.Duration
}

func NewResumeHandler(resumeService services.ResumeService, requestTimeout time.Duration) *ResumeHandler {
	return &ResumeHandler{
		resumeService:  resumeService,
		requestTimeout: requestTimeout,
	}
}

// HandleUpload handles POST /api/resumes/upload
func (h *ResumeHandler) HandleUpload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile(UploadField)
	if err != nil {
		return writeError(c, services.NewValidationError("No file uploaded"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("❌ Failed to open uploaded file: %v", err)
		return writeError(c, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("❌ Failed to read uploaded file: %v", err)
		return writeError(c, err)
	}

	doc := &models.UploadedDocument{
		Data:      data,
		MediaType: fileHeader.Header.Get(fiber.HeaderContentType),
		FileName:  fileHeader.Filename,
		Size:      fileHeader.Size,
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	resume, err := h.resumeService.Upload(ctx, doc)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.UploadResponse{
		Success: true,
		Message: "Resume uploaded and analyzed successfully",
		Resume:  resume,
	})
}

// HandleList handles GET /api/resumes
func (h *ResumeHandler) HandleList(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", services.DefaultPageSize)

	resumes, pagination, err := h.resumeService.List(c.UserContext(), page, limit)
	if err != nil {
		log.Printf("❌ Failed to list resumes: %v", err)
		return writeError(c, err)
	}

	return c.JSON(models.ListResponse{
		Success:    true,
		Pagination: pagination,
		Resumes:    resumes,
	})
}

// HandleGetByID handles GET /api/resumes/:id
func (h *ResumeHandler) HandleGetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return writeError(c, services.NewValidationError("Invalid resume ID"))
	}

	resume, err := h.resumeService.Get(c.UserContext(), uint(id))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(models.DetailResponse{
		Success: true,
		Resume:  resume,
	})
}

// HandleSearch handles GET /api/resumes/search
func (h *ResumeHandler) HandleSearch(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return writeError(c, services.NewValidationError("Query parameter q is required"))
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	hits, err := h.resumeService.Search(ctx, query, c.QueryInt("limit", services.DefaultSearchLimit))
	if err != nil {
		log.Printf("❌ Resume search failed: %v", err)
		return writeError(c, err)
	}

	return c.JSON(models.SearchResponse{
		Success: true,
		Query:   query,
		Results: hits,
	})
}

func (h *ResumeHandler) requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	if h.requestTimeout <= 0 {
		return context.WithCancel(c.UserContext())
	}
	return context.WithTimeout(c.UserContext(), h.requestTimeout)
}

// RegisterRoutes mounts the resume endpoints on router.
func (h *ResumeHandler) RegisterRoutes(router fiber.Router) {
	resumes := router.Group("/resumes")
	resumes.Post("/upload", h.HandleUpload)
	resumes.Get("/", h.HandleList)
	resumes.Get("/search", h.HandleSearch)
	resumes.Get("/:id", h.HandleGetByID)
}

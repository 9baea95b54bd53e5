package jobapi

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/matchhire/matchhire/pkg/kernel"
	"github.com/matchhire/matchhire/recruitment/job"
	"github.com/matchhire/matchhire/recruitment/job/jobsrv"
)

// Handlers provides HTTP handlers for job posting operations
type Handlers struct {
	service *jobsrv.JobService
}

// NewHandlers creates a new job handlers instance
func NewHandlers(service *jobsrv.JobService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// UploadJob ingests a job description file and activates the posting
// POST /api/jobs/upload
func (h *Handlers) UploadJob(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return job.ErrInvalidFile().WithDetail("reason", "multipart field 'file' is required")
	}

	if fileHeader.Size > jobsrv.MaxFileSize {
		return job.ErrFileTooLarge().
			WithDetail("file_name", fileHeader.Filename).
			WithDetail("size_bytes", fileHeader.Size)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return job.ErrInvalidFile().WithDetail("reason", err.Error())
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return job.ErrInvalidFile().WithDetail("reason", err.Error())
	}

	resp, err := h.service.UploadJob(c.Context(), job.UploadJobRequest{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetActiveJob retrieves the currently active posting
// GET /api/jobs/active
func (h *Handlers) GetActiveJob(c *fiber.Ctx) error {
	resp, err := h.service.GetActiveJob(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// GetJobByID retrieves a posting by ID
// GET /api/jobs/:id
func (h *Handlers) GetJobByID(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("id"))
	if jobID.IsEmpty() {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	resp, err := h.service.GetJobByID(c.Context(), jobID)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// ListJobs retrieves postings with pagination, newest first
// GET /api/jobs
func (h *Handlers) ListJobs(c *fiber.Ctx) error {
	pagination := parsePaginationOptions(c)

	jobs, err := h.service.ListJobs(c.Context(), pagination)
	if err != nil {
		return err
	}

	return c.JSON(jobs)
}

// ActivateJob makes the given posting the only active one
// POST /api/jobs/:id/activate
func (h *Handlers) ActivateJob(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("id"))
	if jobID.IsEmpty() {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	resp, err := h.service.ActivateJob(c.Context(), jobID)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// ============================================================================
// Helper Functions
// ============================================================================

// parsePaginationOptions extracts pagination options from query parameters
func parsePaginationOptions(c *fiber.Ctx) kernel.PaginationOptions {
	return kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 10),
	}.Normalize()
}

// RegisterRoutes registers all job routes
func RegisterRoutes(app *fiber.App, handlers *Handlers) {
	api := app.Group("/api/jobs")

	api.Post("/upload", handlers.UploadJob)
	api.Get("/", handlers.ListJobs)
	api.Get("/active", handlers.GetActiveJob)
	api.Get("/:id", handlers.GetJobByID)
	api.Post("/:id/activate", handlers.ActivateJob)
}

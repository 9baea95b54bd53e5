package candidateapi

import (
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/matchhire/matchhire/pkg/errx"
	"github.com/matchhire/matchhire/pkg/kernel"
	"github.com/matchhire/matchhire/recruitment/candidate"
	"github.com/matchhire/matchhire/recruitment/candidate/candidatesrv"
)

// Handlers provides HTTP handlers for candidate operations
type Handlers struct {
	service *candidatesrv.CandidateService
}

// NewHandlers creates a new candidate handlers instance
func NewHandlers(service *candidatesrv.CandidateService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// BulkUpload ingests up to candidatesrv.MaxBatchSize resume files
// POST /api/candidates/upload
func (h *Handlers) BulkUpload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return candidate.ErrInvalidFile().WithDetail("reason", "multipart form is required")
	}

	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		return candidate.ErrInvalidFile().WithDetail("reason", "multipart field 'files' is required")
	}
	if len(fileHeaders) > candidatesrv.MaxBatchSize {
		return candidate.ErrTooManyFiles().
			WithDetail("count", len(fileHeaders)).
			WithDetail("max", candidatesrv.MaxBatchSize)
	}

	// Size is checked per file by the service, so one oversized resume is
	// reported in the batch result instead of failing the whole request.
	files := make([]candidate.UploadFile, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		file, err := fh.Open()
		if err != nil {
			return candidate.ErrInvalidFile().WithDetail("file_name", fh.Filename)
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return candidate.ErrInvalidFile().WithDetail("file_name", fh.Filename)
		}

		files = append(files, candidate.UploadFile{
			FileName:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	resp, err := h.service.BulkUpload(c.Context(), candidate.BulkUploadRequest{
		JobID: kernel.JobID(c.FormValue("job_id")),
		Files: files,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListCandidates retrieves one dashboard page of candidates
// GET /api/candidates
func (h *Handlers) ListCandidates(c *fiber.Ctx) error {
	req := candidate.ListCandidatesRequest{
		JobID:  kernel.JobID(c.Query("job_id")),
		Search: c.Query("search"),
		Status: c.Query("status"),
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 10),
	}

	if raw := c.Query("min_score"); raw != "" {
		score, err := strconv.Atoi(raw)
		if err != nil {
			return candidate.ErrInvalidFilter().WithDetail("min_score", raw)
		}
		req.MinScore = &score
	}
	if raw := c.Query("max_score"); raw != "" {
		score, err := strconv.Atoi(raw)
		if err != nil {
			return candidate.ErrInvalidFilter().WithDetail("max_score", raw)
		}
		req.MaxScore = &score
	}

	resp, err := h.service.ListCandidates(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// GetCandidateByID retrieves a candidate with its analysis
// GET /api/candidates/:id
func (h *Handlers) GetCandidateByID(c *fiber.Ctx) error {
	candidateID := kernel.CandidateID(c.Params("id"))
	if candidateID.IsEmpty() {
		return candidate.ErrCandidateNotFound().WithDetail("id", "missing or empty")
	}

	resp, err := h.service.GetCandidateByID(c.Context(), candidateID)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// UpdateStatus sets the review status of a candidate
// PATCH /api/candidates/:id/status
func (h *Handlers) UpdateStatus(c *fiber.Ctx) error {
	candidateID := kernel.CandidateID(c.Params("id"))
	if candidateID.IsEmpty() {
		return candidate.ErrCandidateNotFound().WithDetail("id", "missing or empty")
	}

	var req candidate.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return candidate.ErrInvalidStatus().WithDetail("parse_error", err.Error())
	}

	resp, err := h.service.UpdateStatus(c.Context(), candidateID, req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// UpdateNotes replaces the recruiter notes of a candidate
// PATCH /api/candidates/:id/notes
func (h *Handlers) UpdateNotes(c *fiber.Ctx) error {
	candidateID := kernel.CandidateID(c.Params("id"))
	if candidateID.IsEmpty() {
		return candidate.ErrCandidateNotFound().WithDetail("id", "missing or empty")
	}

	var req candidate.UpdateNotesRequest
	if err := c.BodyParser(&req); err != nil {
		return errx.Wrap(err, "invalid notes payload", errx.TypeValidation)
	}

	resp, err := h.service.UpdateNotes(c.Context(), candidateID, req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// RegisterRoutes registers all candidate routes
func RegisterRoutes(app *fiber.App, handlers *Handlers) {
	api := app.Group("/api/candidates")

	api.Post("/upload", handlers.BulkUpload)
	api.Get("/", handlers.ListCandidates)
	api.Get("/:id", handlers.GetCandidateByID)
	api.Patch("/:id/status", handlers.UpdateStatus)
	api.Patch("/:id/notes", handlers.UpdateNotes)
}

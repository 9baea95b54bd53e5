package reportapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/matchhire/matchhire/pkg/kernel"
	"github.com/matchhire/matchhire/recruitment/candidate"
	"github.com/matchhire/matchhire/recruitment/report"
	"github.com/matchhire/matchhire/recruitment/report/reportsrv"
)

// Handlers provides HTTP handlers for candidate reports
type Handlers struct {
	service *reportsrv.ReportService
}

// NewHandlers creates a new report handlers instance
func NewHandlers(service *reportsrv.ReportService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// GetCandidateReport assembles the report document for one candidate
// GET /api/candidates/:id/report
func (h *Handlers) GetCandidateReport(c *fiber.Ctx) error {
	candidateID := kernel.CandidateID(c.Params("id"))
	if candidateID.IsEmpty() {
		return candidate.ErrCandidateNotFound().WithDetail("id", "missing or empty")
	}

	opts := report.Options{
		IncludeAnalysis: c.QueryBool("analysis", true),
		IncludeContact:  c.QueryBool("contact", true),
		IncludeNotes:    c.QueryBool("notes", false),
	}

	doc, err := h.service.BuildReport(c.Context(), candidateID, opts)
	if err != nil {
		return err
	}

	return c.JSON(doc)
}

// RegisterRoutes registers all report routes
func RegisterRoutes(app *fiber.App, handlers *Handlers) {
	app.Get("/api/candidates/:id/report", handlers.GetCandidateReport)
}

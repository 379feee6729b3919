package report

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/visitdocs/visitdocs/internal/domain/patient"
	"github.com/visitdocs/visitdocs/internal/domain/visit"
	"github.com/visitdocs/visitdocs/internal/platform/auth"
)

// VisitSource and PatientSource are the read slices of the two domains the
// report handler needs.
type VisitSource interface {
	Get(ctx context.Context, id, nurseID uuid.UUID) (*visit.Visit, error)
}

type PatientSource interface {
	Get(ctx context.Context, id, nurseID uuid.UUID) (*patient.Patient, error)
}

type Handler struct {
	visits   VisitSource
	patients PatientSource
}

func NewHandler(visits VisitSource, patients PatientSource) *Handler {
	return &Handler{visits: visits, patients: patients}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/visits/:id/report", h.VisitReport)
}

// VisitReport renders one visit as a downloadable PDF.
func (h *Handler) VisitReport(c echo.Context) error {
	visitID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	ctx := c.Request().Context()
	nurseID := auth.NurseIDFromContext(ctx)

	v, err := h.visits.Get(ctx, visitID, nurseID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "visit not found")
	}
	p, err := h.patients.Get(ctx, v.PatientID, nurseID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}

	doc := BuildVisitDocument(p, v)
	pdfBytes, err := RenderPDF(doc, time.Now().UTC())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "report rendering failed")
	}

	filename := ReportFilename(p.FullName, v.VisitDate)
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Blob(http.StatusOK, "application/pdf", pdfBytes)
}

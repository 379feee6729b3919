package report

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	"github.com/visitdocs/visitdocs/internal/platform/auth"
)

// MonthlyFilter selects the reporting period. PatientID narrows the report
// to one patient; left nil it covers the whole roster.
type MonthlyFilter struct {
	Year      int        `json:"year"`
	Month     int        `json:"month"`
	PatientID *uuid.UUID `json:"patient_id,omitempty"`
}

// MonthlyRow is one patient's activity counts for the period.
type MonthlyRow struct {
	PatientID      uuid.UUID `json:"patient_id"`
	PatientName    string    `json:"patient_name"`
	Visits         int       `json:"visits"`
	Interventions  int       `json:"interventions"`
	FailedAttempts int       `json:"failed_contact_attempts"`
}

// MonthlyReport is the assembled report for one nurse and period.
type MonthlyReport struct {
	Year  int          `json:"year"`
	Month int          `json:"month"`
	Rows  []MonthlyRow `json:"rows"`
}

// MonthlyHandler builds per-patient activity summaries straight from the
// store. Encounter dates are stored as text, so period matching compares
// the YYYY-MM prefix.
type MonthlyHandler struct {
	pool *pgxpool.Pool
}

func NewMonthlyHandler(pool *pgxpool.Pool) *MonthlyHandler {
	return &MonthlyHandler{pool: pool}
}

func (h *MonthlyHandler) RegisterRoutes(api *echo.Group) {
	api.POST("/reports/monthly", h.Monthly)
	api.POST("/reports/monthly/export", h.MonthlyExport)
}

func (h *MonthlyHandler) build(ctx context.Context, nurseID uuid.UUID, f MonthlyFilter) (*MonthlyReport, error) {
	if f.Month < 1 || f.Month > 12 {
		return nil, fmt.Errorf("month must be 1-12")
	}
	if f.Year < 2000 || f.Year > 2100 {
		return nil, fmt.Errorf("year out of range")
	}
	prefix := fmt.Sprintf("%04d-%02d", f.Year, f.Month)

	query := `
		SELECT p.id, p.full_name,
		       (SELECT COUNT(*) FROM visits v
		        WHERE v.patient_id = p.id AND left(v.visit_date, 7) = $2),
		       (SELECT COUNT(*) FROM interventions i
		        WHERE i.patient_id = p.id AND left(i.intervention_date, 7) = $2),
		       (SELECT COUNT(*) FROM unable_to_contact u
		        WHERE u.patient_id = p.id AND left(u.attempt_date, 7) = $2)
		FROM patients p
		WHERE p.nurse_id = $1`
	args := []interface{}{nurseID, prefix}
	if f.PatientID != nil {
		query += ` AND p.id = $3`
		args = append(args, *f.PatientID)
	}
	query += ` ORDER BY p.full_name ASC`

	rows, err := h.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	report := &MonthlyReport{Year: f.Year, Month: f.Month, Rows: make([]MonthlyRow, 0)}
	for rows.Next() {
		var r MonthlyRow
		if err := rows.Scan(&r.PatientID, &r.PatientName, &r.Visits, &r.Interventions, &r.FailedAttempts); err != nil {
			return nil, err
		}
		report.Rows = append(report.Rows, r)
	}
	return report, rows.Err()
}

func (h *MonthlyHandler) Monthly(c echo.Context) error {
	var f MonthlyFilter
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	nurseID := auth.NurseIDFromContext(c.Request().Context())
	report, err := h.build(c.Request().Context(), nurseID, f)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, report)
}

// MonthlyExport returns the same report as an XLSX workbook.
func (h *MonthlyHandler) MonthlyExport(c echo.Context) error {
	var f MonthlyFilter
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	nurseID := auth.NurseIDFromContext(c.Request().Context())
	report, err := h.build(c.Request().Context(), nurseID, f)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	data, err := BuildMonthlyXLSX(report)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "export failed")
	}

	filename := fmt.Sprintf("monthly_report_%04d_%02d.xlsx", f.Year, f.Month)
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

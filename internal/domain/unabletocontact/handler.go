package unabletocontact

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/visitdocs/visitdocs/internal/platform/auth"
	"github.com/visitdocs/visitdocs/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/patients/:id/unable-to-contact", h.Create)
	api.GET("/patients/:id/unable-to-contact", h.ListByPatient)
	api.GET("/unable-to-contact/:id", h.Get)
	api.DELETE("/unable-to-contact/:id", h.Delete)
}

func (h *Handler) Create(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	var rec Record
	if err := c.Bind(&rec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	nurseID := auth.NurseIDFromContext(c.Request().Context())
	if err := h.svc.Create(c.Request().Context(), nurseID, patientID, &rec); err != nil {
		if err == ErrPatientNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "patient not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, rec)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	nurseID := auth.NurseIDFromContext(c.Request().Context())
	rec, err := h.svc.Get(c.Request().Context(), id, nurseID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "record not found")
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) ListByPatient(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	pg := pagination.FromContext(c)
	nurseID := auth.NurseIDFromContext(c.Request().Context())
	items, total, err := h.svc.ListByPatient(c.Request().Context(), patientID, nurseID, pg.Limit, pg.Offset)
	if err != nil {
		if err == ErrPatientNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "patient not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	nurseID := auth.NurseIDFromContext(c.Request().Context())
	if err := h.svc.Delete(c.Request().Context(), id, nurseID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "record not found")
	}
	return c.NoContent(http.StatusNoContent)
}

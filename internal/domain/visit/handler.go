package visit

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
	api.POST("/patients/:id/visits", h.Create)
	api.GET("/patients/:id/visits", h.ListByPatient)
	api.GET("/visits/:id", h.Get)
	api.DELETE("/visits/:id", h.Delete)
}

func (h *Handler) Create(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	var v Visit
	if err := c.Bind(&v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	nurseID := auth.NurseIDFromContext(c.Request().Context())
	if err := h.svc.Create(c.Request().Context(), nurseID, patientID, &v); err != nil {
		if err == ErrPatientNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "patient not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, v)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	nurseID := auth.NurseIDFromContext(c.Request().Context())
	v, err := h.svc.Get(c.Request().Context(), id, nurseID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "visit not found")
	}
	return c.JSON(http.StatusOK, v)
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
		return echo.NewHTTPError(http.StatusNotFound, "visit not found")
	}
	return c.NoContent(http.StatusNoContent)
}

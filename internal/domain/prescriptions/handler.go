package prescriptions

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ambulatorio/api/internal/platform/auth"
)

// Handler provides HTTP handlers for therapy prescriptions.
type Handler struct {
	svc *Service
}

// NewHandler creates a new prescriptions handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers all prescription routes on the authenticated group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/prescriptions", h.List)
	api.POST("/prescriptions", h.Save)
	api.DELETE("/prescriptions/:patientId", h.Delete)
}

func mapError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "prescription not found")
	case errors.Is(err, auth.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "clinic access denied")
	default:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
}

func (h *Handler) List(c echo.Context) error {
	pr, ok := auth.PrincipalFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	clinicID := c.QueryParam("clinic")
	if clinicID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "clinic is required")
	}
	items, err := h.svc.List(c.Request().Context(), pr, clinicID)
	if err != nil {
		return mapError(err)
	}
	if items == nil {
		items = []*Prescription{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) Save(c echo.Context) error {
	pr, ok := auth.PrincipalFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	var p Prescription
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	saved, err := h.svc.Save(c.Request().Context(), pr, &p)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, saved)
}

func (h *Handler) Delete(c echo.Context) error {
	pr, ok := auth.PrincipalFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patientId")
	}
	clinicID := c.QueryParam("clinic")
	if clinicID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "clinic is required")
	}
	if err := h.svc.Delete(c.Request().Context(), pr, patientID, clinicID); err != nil {
		return mapError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

package export

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ambulatorio/api/internal/domain/forms"
	"github.com/ambulatorio/api/internal/domain/registry"
	"github.com/ambulatorio/api/internal/platform/auth"
)

// Handler provides HTTP handlers for the patient folder downloads.
type Handler struct {
	svc *Service
}

// NewHandler creates a new export handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers all download routes on the authenticated group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/patients/:id/download/pdf", h.PatientPDF)
	api.GET("/patients/:id/download/zip", h.PatientZIP)
	api.GET("/implant-records/:id/pdf", h.ImplantForm)
}

func mapError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, registry.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	case errors.Is(err, forms.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "record not found")
	case errors.Is(err, auth.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "clinic access denied")
	default:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
}

func attachment(c echo.Context, data []byte, name, contentType string) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", name))
	return c.Blob(http.StatusOK, contentType, data)
}

func (h *Handler) PatientPDF(c echo.Context) error {
	pr, ok := auth.PrincipalFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	data, name, err := h.svc.PatientPDF(c.Request().Context(), pr, id)
	if err != nil {
		return mapError(err)
	}
	return attachment(c, data, name, "application/pdf")
}

func (h *Handler) PatientZIP(c echo.Context) error {
	pr, ok := auth.PrincipalFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	data, name, err := h.svc.PatientArchive(c.Request().Context(), pr, id)
	if err != nil {
		return mapError(err)
	}
	return attachment(c, data, name, "application/zip")
}

func (h *Handler) ImplantForm(c echo.Context) error {
	pr, ok := auth.PrincipalFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid record id")
	}
	data, name, err := h.svc.ImplantForm(c.Request().Context(), pr, id)
	if err != nil {
		return mapError(err)
	}
	return attachment(c, data, name, "application/pdf")
}

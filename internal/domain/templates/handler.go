package templates

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ambulatorio/api/internal/domain/clinic"
	"github.com/ambulatorio/api/internal/platform/auth"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// RegisterRoutes registers the document catalog route on the authenticated group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/documents", h.List)
}

func (h *Handler) List(c echo.Context) error {
	pr, ok := auth.PrincipalFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	clinicID := c.QueryParam("clinic")
	if !clinic.Valid(clinicID) {
		return echo.NewHTTPError(http.StatusBadRequest, "clinic is required")
	}
	if err := pr.Authorize(clinicID); err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "clinic access denied")
	}
	return c.JSON(http.StatusOK, List(clinicID, c.QueryParam("category")))
}

package stats

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ambulatorio/api/internal/platform/auth"
)

// Handler provides HTTP handlers for the statistics reports.
type Handler struct {
	svc *Service
}

// NewHandler creates a new statistics handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers all statistics routes on the authenticated group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/statistics", h.Period)
	api.GET("/statistics/compare", h.Compare)
	api.GET("/statistics/implants", h.Implants)
}

func mapError(err error) *echo.HTTPError {
	if errors.Is(err, auth.ErrForbidden) {
		return echo.NewHTTPError(http.StatusForbidden, "clinic access denied")
	}
	return echo.NewHTTPError(http.StatusBadRequest, err.Error())
}

// intParam parses an integer query parameter, returning 0 when absent.
func intParam(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a number")
	}
	return n, nil
}

func (h *Handler) Period(c echo.Context) error {
	pr, ok := auth.PrincipalFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	clinicID := c.QueryParam("clinic")
	if clinicID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "clinic is required")
	}
	year, err := intParam(c, "year")
	if err != nil {
		return err
	}
	if year == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "year is required")
	}
	month, err := intParam(c, "month")
	if err != nil {
		return err
	}

	p, err := h.svc.Compute(c.Request().Context(), pr, clinicID, year, month, c.QueryParam("careType"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) Compare(c echo.Context) error {
	pr, ok := auth.PrincipalFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	clinicID := c.QueryParam("clinic")
	if clinicID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "clinic is required")
	}
	year1, err := intParam(c, "year1")
	if err != nil {
		return err
	}
	if year1 == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "year1 is required")
	}
	month1, err := intParam(c, "month1")
	if err != nil {
		return err
	}
	year2, err := intParam(c, "year2")
	if err != nil {
		return err
	}
	month2, err := intParam(c, "month2")
	if err != nil {
		return err
	}

	cmp, err := h.svc.Compare(c.Request().Context(), pr, clinicID, year1, month1, year2, month2, c.QueryParam("careType"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, cmp)
}

func (h *Handler) Implants(c echo.Context) error {
	pr, ok := auth.PrincipalFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	clinicID := c.QueryParam("clinic")
	if clinicID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "clinic is required")
	}
	year, err := intParam(c, "year")
	if err != nil {
		return err
	}
	if year == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "year is required")
	}
	month, err := intParam(c, "month")
	if err != nil {
		return err
	}

	rep, err := h.svc.Implants(c.Request().Context(), pr, clinicID, year, month)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, rep)
}

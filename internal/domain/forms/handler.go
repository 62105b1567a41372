package forms

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ambulatorio/api/internal/platform/auth"
)

// Handler provides HTTP handlers for the clinical record forms.
type Handler struct {
	svc *Service
}

// NewHandler creates a new forms handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers all form routes on the authenticated group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/dressing-records", h.CreateDressingRecord)
	api.GET("/dressing-records", h.ListDressingRecords)
	api.GET("/dressing-records/:id", h.GetDressingRecord)
	api.PUT("/dressing-records/:id", h.UpdateDressingRecord)
	api.DELETE("/dressing-records/:id", h.DeleteDressingRecord)

	api.POST("/implant-records", h.CreateImplantRecord)
	api.GET("/implant-records", h.ListImplantRecords)
	api.GET("/implant-records/:id", h.GetImplantRecord)
	api.PUT("/implant-records/:id", h.UpdateImplantRecord)
	api.DELETE("/implant-records/:id", h.DeleteImplantRecord)

	api.POST("/monthly-logs", h.CreateMonthlyLog)
	api.GET("/monthly-logs", h.ListMonthlyLogs)
	api.GET("/monthly-logs/:id", h.GetMonthlyLog)
	api.PUT("/monthly-logs/:id", h.UpdateMonthlyLog)
	api.DELETE("/monthly-logs/:id", h.DeleteMonthlyLog)
}

func mapError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "record not found")
	case errors.Is(err, auth.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "clinic access denied")
	default:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
}

func principal(c echo.Context) (*auth.Principal, *echo.HTTPError) {
	pr, ok := auth.PrincipalFromContext(c.Request().Context())
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	return pr, nil
}

func pathID(c echo.Context) (uuid.UUID, *echo.HTTPError) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func listParams(c echo.Context) (uuid.UUID, string, *echo.HTTPError) {
	clinicID := c.QueryParam("clinic")
	if clinicID == "" {
		return uuid.Nil, "", echo.NewHTTPError(http.StatusBadRequest, "clinic is required")
	}
	patientID, err := uuid.Parse(c.QueryParam("patientId"))
	if err != nil {
		return uuid.Nil, "", echo.NewHTTPError(http.StatusBadRequest, "invalid patientId")
	}
	return patientID, clinicID, nil
}

// -- Dressing records --

func (h *Handler) CreateDressingRecord(c echo.Context) error {
	pr, herr := principal(c)
	if herr != nil {
		return herr
	}
	var d DressingRecord
	if err := c.Bind(&d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateDressingRecord(c.Request().Context(), pr, &d); err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, d)
}

func (h *Handler) GetDressingRecord(c echo.Context) error {
	pr, herr := principal(c)
	if herr != nil {
		return herr
	}
	id, herr := pathID(c)
	if herr != nil {
		return herr
	}
	d, err := h.svc.GetDressingRecord(c.Request().Context(), pr, id)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) ListDressingRecords(c echo.Context) error {
	pr, herr := principal(c)
	if herr != nil {
		return herr
	}
	patientID, clinicID, herr := listParams(c)
	if herr != nil {
		return herr
	}
	items, err := h.svc.ListDressingRecords(c.Request().Context(), pr, patientID, clinicID)
	if err != nil {
		return mapError(err)
	}
	if items == nil {
		items = []*DressingRecord{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) UpdateDressingRecord(c echo.Context) error {
	pr, herr := principal(c)
	if herr != nil {
		return herr
	}
	id, herr := pathID(c)
	if herr != nil {
		return herr
	}
	var d DressingRecord
	if err := c.Bind(&d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	updated, err := h.svc.UpdateDressingRecord(c.Request().Context(), pr, id, &d)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteDressingRecord(c echo.Context) error {
	pr, herr := principal(c)
	if herr != nil {
		return herr
	}
	id, herr := pathID(c)
	if herr != nil {
		return herr
	}
	if err := h.svc.DeleteDressingRecord(c.Request().Context(), pr, id); err != nil {
		return mapError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Implant records --

func (h *Handler) CreateImplantRecord(c echo.Context) error {
	pr, herr := principal(c)
	if herr != nil {
		return herr
	}
	var r ImplantRecord
	if err := c.Bind(&r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateImplantRecord(c.Request().Context(), pr, &r); err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, r)
}

func (h *Handler) GetImplantRecord(c echo.Context) error {
	pr, herr := principal(c)
	if herr != nil {
		return herr
	}
	id, herr := pathID(c)
	if herr != nil {
		return herr
	}
	r, err := h.svc.GetImplantRecord(c.Request().Context(), pr, id)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) ListImplantRecords(c echo.Context) error {
	pr, herr := principal(c)
	if herr != nil {
		return herr
	}
	patientID, clinicID, herr := listParams(c)
	if herr != nil {
		return herr
	}
	items, err := h.svc.ListImplantRecords(c.Request().Context(), pr, patientID, clinicID)
	if err != nil {
		return mapError(err)
	}
	if items == nil {
		items = []*ImplantRecord{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) UpdateImplantRecord(c echo.Context) error {
	pr, herr := principal(c)
	if herr != nil {
		return herr
	}
	id, herr := pathID(c)
	if herr != nil {
		return herr
	}
	var r ImplantRecord
	if err := c.Bind(&r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	updated, err := h.svc.UpdateImplantRecord(c.Request().Context(), pr, id, &r)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteImplantRecord(c echo.Context) error {
	pr, herr := principal(c)
	if herr != nil {
		return herr
	}
	id, herr := pathID(c)
	if herr != nil {
		return herr
	}
	if err := h.svc.DeleteImplantRecord(c.Request().Context(), pr, id); err != nil {
		return mapError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Monthly logs --

func (h *Handler) CreateMonthlyLog(c echo.Context) error {
	pr, herr := principal(c)
	if herr != nil {
		return herr
	}
	var l MonthlyLog
	if err := c.Bind(&l); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateMonthlyLog(c.Request().Context(), pr, &l); err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, l)
}

func (h *Handler) GetMonthlyLog(c echo.Context) error {
	pr, herr := principal(c)
	if herr != nil {
		return herr
	}
	id, herr := pathID(c)
	if herr != nil {
		return herr
	}
	l, err := h.svc.GetMonthlyLog(c.Request().Context(), pr, id)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, l)
}

func (h *Handler) ListMonthlyLogs(c echo.Context) error {
	pr, herr := principal(c)
	if herr != nil {
		return herr
	}
	patientID, clinicID, herr := listParams(c)
	if herr != nil {
		return herr
	}
	items, err := h.svc.ListMonthlyLogs(c.Request().Context(), pr, patientID, clinicID, c.QueryParam("month"))
	if err != nil {
		return mapError(err)
	}
	if items == nil {
		items = []*MonthlyLog{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) UpdateMonthlyLog(c echo.Context) error {
	pr, herr := principal(c)
	if herr != nil {
		return herr
	}
	id, herr := pathID(c)
	if herr != nil {
		return herr
	}
	var l MonthlyLog
	if err := c.Bind(&l); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	updated, err := h.svc.UpdateMonthlyLog(c.Request().Context(), pr, id, &l)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteMonthlyLog(c echo.Context) error {
	pr, herr := principal(c)
	if herr != nil {
		return herr
	}
	id, herr := pathID(c)
	if herr != nil {
		return herr
	}
	if err := h.svc.DeleteMonthlyLog(c.Request().Context(), pr, id); err != nil {
		return mapError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

package attachments

import (
	"encoding/base64"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ambulatorio/api/internal/platform/auth"
)

// Handler provides HTTP handlers for patient attachments.
type Handler struct {
	svc *Service
}

// NewHandler creates a new attachments handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers all attachment routes on the authenticated group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/photos", h.Upload)
	api.GET("/photos", h.List)
	api.GET("/photos/:id", h.Get)
	api.DELETE("/photos/:id", h.Delete)
}

func mapError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "attachment not found")
	case errors.Is(err, auth.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "clinic access denied")
	default:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
}

// Upload accepts a multipart form with the file plus its metadata fields.
func (h *Handler) Upload(c echo.Context) error {
	pr, ok := auth.PrincipalFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	patientID, err := uuid.Parse(c.FormValue("patientId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patientId")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	src, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read file")
	}
	defer src.Close()
	raw, err := io.ReadAll(src)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read file")
	}

	a := &Attachment{
		PatientID: patientID,
		Clinic:    c.FormValue("clinic"),
		Category:  c.FormValue("category"),
		Date:      c.FormValue("date"),
		Content:   base64.StdEncoding.EncodeToString(raw),
		FileKind:  c.FormValue("fileKind"),
	}
	if v := c.FormValue("description"); v != "" {
		a.Description = &v
	}
	name := c.FormValue("originalName")
	if name == "" {
		name = fh.Filename
	}
	if name != "" {
		a.OriginalName = &name
	}
	if mt := fh.Header.Get("Content-Type"); mt != "" {
		a.MimeType = &mt
	}
	// The frontend sends "pending" while the dressing record is still
	// unsaved, the link is added later.
	if v := c.FormValue("dressingRecordId"); v != "" && v != "pending" {
		recID, err := uuid.Parse(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid dressingRecordId")
		}
		a.DressingRecordID = &recID
	}

	if err := h.svc.Upload(c.Request().Context(), pr, a); err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{"id": a.ID, "fileKind": a.FileKind})
}

func (h *Handler) Get(c echo.Context) error {
	pr, ok := auth.PrincipalFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	a, err := h.svc.Get(c.Request().Context(), pr, id)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, a)
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
	patientID, err := uuid.Parse(c.QueryParam("patientId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patientId")
	}
	items, err := h.svc.List(c.Request().Context(), pr, patientID, clinicID, c.QueryParam("category"))
	if err != nil {
		return mapError(err)
	}
	if items == nil {
		items = []*Attachment{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) Delete(c echo.Context) error {
	pr, ok := auth.PrincipalFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), pr, id); err != nil {
		return mapError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

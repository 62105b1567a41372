package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler serves the login and whoami endpoints.
type Handler struct {
	verifier CredentialVerifier
	tokens   *TokenService
}

func NewHandler(verifier CredentialVerifier, tokens *TokenService) *Handler {
	return &Handler{verifier: verifier, tokens: tokens}
}

// RegisterRoutes wires auth endpoints. The login route goes on the public
// group; whoami goes on the authenticated group.
func (h *Handler) RegisterRoutes(public, authed *echo.Group) {
	public.POST("/auth/login", h.Login)
	authed.GET("/auth/me", h.Me)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Clinics  []string `json:"clinics"`
}

type loginResponse struct {
	AccessToken string       `json:"accessToken"`
	TokenType   string       `json:"tokenType"`
	User        userResponse `json:"user"`
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	principal, err := h.verifier.Verify(req.Username, req.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	token, err := h.tokens.Issue(principal)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to issue token")
	}

	return c.JSON(http.StatusOK, loginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User: userResponse{
			ID:       principal.ID(),
			Username: principal.Username,
			Clinics:  principal.Clinics,
		},
	})
}

func (h *Handler) Me(c echo.Context) error {
	principal, ok := PrincipalFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	return c.JSON(http.StatusOK, userResponse{
		ID:       principal.ID(),
		Username: principal.Username,
		Clinics:  principal.Clinics,
	})
}

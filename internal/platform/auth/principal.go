package auth

import (
	"context"
	"strings"
)

type contextKey string

const principalKey contextKey = "principal"

// Principal is the authenticated nurse acting on a request.
type Principal struct {
	Username string   `json:"username"`
	Clinics  []string `json:"clinics"`
}

// ID derives a stable identifier from the username ("G.Domenico" ->
// "g_domenico").
func (p *Principal) ID() string {
	return strings.ReplaceAll(strings.ToLower(p.Username), ".", "_")
}

// CanAccess reports whether the principal is assigned to the given clinic.
func (p *Principal) CanAccess(clinic string) bool {
	for _, c := range p.Clinics {
		if c == clinic {
			return true
		}
	}
	return false
}

// Authorize returns ErrForbidden unless the principal is assigned to clinic.
// Services call this with the clinic stored on the record being acted on,
// not the one the client claims.
func (p *Principal) Authorize(clinic string) error {
	if !p.CanAccess(clinic) {
		return ErrForbidden
	}
	return nil
}

// WithPrincipal stores the principal on the request context.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext retrieves the principal set by the JWT middleware.
// The second return is false on unauthenticated contexts.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey).(*Principal)
	return p, ok
}

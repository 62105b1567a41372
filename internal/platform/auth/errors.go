package auth

import "errors"

var (
	// ErrInvalidCredentials is returned when a login attempt carries an
	// unknown username or a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned when a bearer token fails signature or
	// claim validation.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a bearer token is past its expiry.
	ErrExpiredToken = errors.New("token expired")

	// ErrForbidden is returned when a principal acts on a clinic outside
	// its assignment.
	ErrForbidden = errors.New("clinic access denied")
)

// Package domain defines domain-level errors and input validation for the auth feature.
package domain

import "errors"

// Domain errors for authentication and user management.
// Upper layers match them with errors.Is and map them to transport responses.
var (
	// ErrValidationFailed indicates malformed input. Concrete failures are
	// reported as *ValidationError, which unwraps to this sentinel.
	ErrValidationFailed = errors.New("validation failed")

	// ErrDuplicateEmail is returned when an email is already registered to another user.
	ErrDuplicateEmail = errors.New("email is already registered")

	// ErrUserNotFound indicates that no user matches the given id or email.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials is returned on login for both an unknown email and a
	// wrong password, so callers cannot tell which one occurred.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is the single externally visible failure of token refresh.
	// It is always joined with one of the token tags below.
	ErrInvalidToken = errors.New("token expired or invalid")

	// ErrUnauthenticated is returned by the authorization guard.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrRefreshTokenNotFound indicates that no refresh token hash is stored for a user.
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
)

// Token verification tags. They distinguish why a token was rejected for
// logging, while the client only ever sees ErrInvalidToken or ErrUnauthenticated.
var (
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenSignature = errors.New("token signature invalid")
	ErrTokenType      = errors.New("token type mismatch")
	ErrTokenMismatch  = errors.New("token does not match stored hash")
)

package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"user_backend/internal/feature/auth/domain"
)

// Fixed client-facing messages.
const (
	MsgInvalidRequest = "invalid request"
	MsgInternalError  = "internal server error"
)

// StatusFor returns the HTTP status for err.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidationFailed),
		errors.Is(err, domain.ErrDuplicateEmail),
		errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes the JSON error response for err.
// Known domain errors are reported with their sentinel message only, so
// wrapped causes such as token verification tags never reach the client.
func WriteError(c *gin.Context, err error) {
	status := StatusFor(err)

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(status, ErrorResponse{Error: domain.ErrValidationFailed.Error(), Details: verr.Fields})
	case status == http.StatusInternalServerError:
		slog.Error("request failed", "error", err, "method", c.Request.Method, "path", c.FullPath())
		c.JSON(status, ErrorResponse{Error: MsgInternalError})
	default:
		c.JSON(status, ErrorResponse{Error: sentinelMessage(err)})
	}
}

// WriteBadRequest reports a body that could not be decoded.
func WriteBadRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: MsgInvalidRequest})
}

func sentinelMessage(err error) string {
	for _, s := range []error{
		domain.ErrValidationFailed,
		domain.ErrDuplicateEmail,
		domain.ErrInvalidCredentials,
		domain.ErrInvalidToken,
		domain.ErrUnauthenticated,
		domain.ErrUserNotFound,
	} {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return err.Error()
}

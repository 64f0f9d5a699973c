// Package handler provides the HTTP handlers of the auth feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"user_backend/internal/api"
	"user_backend/internal/feature/auth/domain/entity"
	jwtmw "user_backend/internal/platform/jwt"
)

// AuthUsecase defines the authentication operations.
// Following Go convention, the interface is defined by the consumer (handler), not the provider (usecase).
type AuthUsecase interface {
	// Signup registers a new user and returns its public projection.
	Signup(ctx context.Context, email, password, firstName, lastName string) (*entity.PublicUser, error)
	// Login authenticates a user and returns the issued tokens.
	Login(ctx context.Context, email, password string) (*entity.TokenPair, error)
	// Refresh exchanges a refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Signup handles POST /auth/signup.
//   - 400 on malformed JSON, invalid fields or a registered email
//   - 201 with the created user on success
func (h *AuthHandler) Signup(c *gin.Context) {
	var req api.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup request rejected", "error", err, "remote_addr", c.ClientIP())
		api.WriteBadRequest(c)
		return
	}

	user, err := h.auth.Signup(c.Request.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		slog.Warn("signup failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		api.WriteError(c, err)
		return
	}

	slog.Info("user signup successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, api.NewUser(*user))
}

// Login handles POST /auth/login.
//   - 400 on malformed JSON, invalid fields or bad credentials
//   - 200 with the access token, plus a refresh token when enabled
func (h *AuthHandler) Login(c *gin.Context) {
	var req api.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login request rejected", "error", err, "remote_addr", c.ClientIP())
		api.WriteBadRequest(c)
		return
	}

	pair, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// The response does not reveal whether the email exists.
		slog.Warn("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		api.WriteError(c, err)
		return
	}

	slog.Info("user login successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Refresh handles POST /auth/refresh. Every token failure is a 401.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req api.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("refresh request rejected", "error", err, "remote_addr", c.ClientIP())
		api.WriteBadRequest(c)
		return
	}

	access, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.AccessTokenResponse{AccessToken: access})
}

// Profile handles GET /auth/profile and echoes the identity set by the auth middleware.
func (h *AuthHandler) Profile(c *gin.Context) {
	c.JSON(http.StatusOK, api.ProfileResponse{
		UserID: c.GetString(jwtmw.ContextUserID),
		Email:  c.GetString(jwtmw.ContextEmail),
	})
}

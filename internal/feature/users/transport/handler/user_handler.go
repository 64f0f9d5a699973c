// Package handler provides the HTTP handlers of the users feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"user_backend/internal/api"
	"user_backend/internal/feature/auth/domain/entity"
	jwtmw "user_backend/internal/platform/jwt"
)

// UserUsecase defines the user management operations.
type UserUsecase interface {
	List(ctx context.Context) ([]entity.PublicUser, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.PublicUser, error)
	Update(ctx context.Context, id uuid.UUID, upd entity.UserUpdate) (*entity.PublicUser, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserHandler handles HTTP requests for user management.
// All routes sit behind the auth middleware; any authenticated caller may
// act on any user.
type UserHandler struct {
	users UserUsecase
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users UserUsecase) *UserHandler {
	return &UserHandler{users: users}
}

// List handles GET /users.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.NewUsers(users))
}

// Get handles GET /users/:id.
func (h *UserHandler) Get(c *gin.Context) {
	id, err := api.BindPathUUID(c, "id")
	if err != nil {
		api.WriteError(c, err)
		return
	}

	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.NewUser(*user))
}

// Update handles PUT /users/:id with a partial body.
func (h *UserHandler) Update(c *gin.Context) {
	id, err := api.BindPathUUID(c, "id")
	if err != nil {
		api.WriteError(c, err)
		return
	}

	var req api.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("update request rejected", "error", err, "remote_addr", c.ClientIP())
		api.WriteBadRequest(c)
		return
	}

	user, err := h.users.Update(c.Request.Context(), id, req.ToEntity())
	if err != nil {
		slog.Warn("user update failed", "error", err, "user_id", id, "caller", c.GetString(jwtmw.ContextUserID))
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.NewUser(*user))
}

// Delete handles DELETE /users/:id.
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := api.BindPathUUID(c, "id")
	if err != nil {
		api.WriteError(c, err)
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		api.WriteError(c, err)
		return
	}

	slog.Info("user deleted", "user_id", id, "caller", c.GetString(jwtmw.ContextUserID))
	c.JSON(http.StatusOK, api.MessageResponse{Message: "User deleted successfully"})
}

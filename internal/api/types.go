// Package api defines the JSON request and response bodies of the HTTP API
// and the mapping from domain errors to HTTP responses.
package api

import (
	"time"

	"github.com/google/uuid"

	"user_backend/internal/feature/auth/domain"
	"user_backend/internal/feature/auth/domain/entity"
)

// SignupRequest is the body of POST /auth/signup.
type SignupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest is the body of POST /auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// UpdateUserRequest is the body of PUT /users/:id. Absent fields stay unchanged.
type UpdateUserRequest struct {
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
}

// ToEntity converts the request into a domain update.
func (r UpdateUserRequest) ToEntity() entity.UserUpdate {
	return entity.UserUpdate{
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
	}
}

// User is the public representation of a user.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewUser converts a domain projection into its wire form.
func NewUser(u entity.PublicUser) User {
	return User{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// NewUsers converts a list of domain projections. The result is never nil.
func NewUsers(users []entity.PublicUser) []User {
	out := make([]User, 0, len(users))
	for _, u := range users {
		out = append(out, NewUser(u))
	}
	return out
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// AccessTokenResponse is returned by a successful refresh.
type AccessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// ProfileResponse echoes the identity of the authenticated caller.
type ProfileResponse struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// MessageResponse is a generic acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error   string              `json:"error"`
	Details []domain.FieldError `json:"details,omitempty"`
}

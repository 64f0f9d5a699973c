// Package entity defines the domain entities for the auth feature.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the full user record as held by the credential store.
// It carries the password and refresh-token hashes and must never be
// serialized directly; use Public for anything leaving the service.
type User struct {
	// ID is generated by the store on creation and never changes.
	ID uuid.UUID

	// Email is unique across all users.
	Email string

	// PasswordHash is a bcrypt hash. Plaintext passwords are never stored.
	PasswordHash string

	FirstName string
	LastName  string

	// RefreshTokenHash is the hash of the most recently issued refresh
	// token, or empty if none has been issued.
	RefreshTokenHash string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PublicUser is the projection of User that is safe to return to clients.
type PublicUser struct {
	ID        uuid.UUID
	Email     string
	FirstName string
	LastName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Public strips the sensitive fields from u.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UserUpdate is a partial update of the mutable profile fields.
// A nil field is left untouched.
type UserUpdate struct {
	Email     *string
	FirstName *string
	LastName  *string
}

// IsEmpty reports whether the update changes nothing.
func (u UserUpdate) IsEmpty() bool {
	return u.Email == nil && u.FirstName == nil && u.LastName == nil
}

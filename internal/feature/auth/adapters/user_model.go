package adapters

import (
	"time"

	"github.com/google/uuid"

	"user_backend/internal/feature/auth/domain/entity"
)

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID               string  `gorm:"primaryKey;size:36"`
	Email            string  `gorm:"uniqueIndex:idx_users_email;size:255;not null"`
	PasswordHash     string  `gorm:"size:255;not null"`
	FirstName        string  `gorm:"size:255;not null"`
	LastName         string  `gorm:"size:255;not null"`
	RefreshTokenHash *string `gorm:"size:255"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName returns the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// ToEntity converts the GORM model to a domain entity.
func (m *UserModel) ToEntity() (*entity.User, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		ID:           id,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.RefreshTokenHash != nil {
		u.RefreshTokenHash = *m.RefreshTokenHash
	}
	return u, nil
}

// UserModelFromEntity converts a domain entity to a GORM model.
func UserModelFromEntity(u *entity.User) *UserModel {
	m := &UserModel{
		ID:           u.ID.String(),
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
	if u.RefreshTokenHash != "" {
		h := u.RefreshTokenHash
		m.RefreshTokenHash = &h
	}
	return m
}

package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"user_backend/internal/feature/auth/domain"
	"user_backend/internal/feature/auth/usecase"
)

// refreshTokenGorm stores the refresh token hash in the users.refresh_token_hash column.
type refreshTokenGorm struct {
	db *gorm.DB
}

var _ usecase.RefreshTokenStore = (*refreshTokenGorm)(nil)

// NewRefreshTokenGorm creates a refresh token store backed by the users table.
func NewRefreshTokenGorm(db *gorm.DB) *refreshTokenGorm {
	return &refreshTokenGorm{db: db}
}

// Save overwrites the user's stored hash. The row has no expiry column, so ttl
// is not persisted; the token's own exp claim bounds its lifetime.
func (r *refreshTokenGorm) Save(ctx context.Context, userID uuid.UUID, hash string, _ time.Duration) error {
	result := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Where("id = ?", userID.String()).
		Update("refresh_token_hash", hash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Find returns the stored hash, or domain.ErrRefreshTokenNotFound when the
// user has none or no longer exists.
func (r *refreshTokenGorm) Find(ctx context.Context, userID uuid.UUID) (string, error) {
	var m UserModel
	err := r.db.WithContext(ctx).
		Select("id", "refresh_token_hash").
		Where("id = ?", userID.String()).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrRefreshTokenNotFound
		}
		return "", err
	}
	if m.RefreshTokenHash == nil || *m.RefreshTokenHash == "" {
		return "", domain.ErrRefreshTokenNotFound
	}
	return *m.RefreshTokenHash, nil
}

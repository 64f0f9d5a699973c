// Package adapters provides the gorm-backed credential store for the auth and users features.
package adapters

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"user_backend/internal/feature/auth/domain"
	"user_backend/internal/feature/auth/domain/entity"
	authusecase "user_backend/internal/feature/auth/usecase"
	usersusecase "user_backend/internal/feature/users/usecase"
)

// pgUniqueViolation is the SQLSTATE for unique constraint violations.
const pgUniqueViolation = "23505"

// userRepository implements the user repositories of both features with gorm.
type userRepository struct {
	db *gorm.DB
}

// Compile-time checks for the consumer-defined interfaces.
var (
	_ authusecase.UserRepository  = (*userRepository)(nil)
	_ usersusecase.UserRepository = (*userRepository)(nil)
)

// NewUserRepository creates a userRepository bound to db.
func NewUserRepository(db *gorm.DB) *userRepository {
	return &userRepository{db: db}
}

// Create inserts a new user, assigning an ID if none is set.
// A duplicate email returns domain.ErrDuplicateEmail.
func (r *userRepository) Create(ctx context.Context, u *entity.User) error {
	if u == nil {
		return errors.New("user is nil")
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}

	m := UserModelFromEntity(u)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translateWriteError(err)
	}
	u.CreatedAt = m.CreatedAt
	u.UpdatedAt = m.UpdatedAt
	return nil
}

// FindByEmail returns domain.ErrUserNotFound if no user has the email.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.first(ctx, "email = ?", email)
}

// FindByID returns domain.ErrUserNotFound if no user has the id.
func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.first(ctx, "id = ?", id.String())
}

// List returns every user ordered by creation time.
func (r *userRepository) List(ctx context.Context) ([]*entity.User, error) {
	var models []UserModel
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	users := make([]*entity.User, 0, len(models))
	for i := range models {
		u, err := models[i].ToEntity()
		if err != nil {
			return nil, fmt.Errorf("corrupt user row %q: %w", models[i].ID, err)
		}
		users = append(users, u)
	}
	return users, nil
}

// Update applies the non-nil fields of upd and returns the updated user.
func (r *userRepository) Update(ctx context.Context, id uuid.UUID, upd entity.UserUpdate) (*entity.User, error) {
	updates := map[string]interface{}{}
	if upd.Email != nil {
		updates["email"] = *upd.Email
	}
	if upd.FirstName != nil {
		updates["first_name"] = *upd.FirstName
	}
	if upd.LastName != nil {
		updates["last_name"] = *upd.LastName
	}

	if len(updates) > 0 {
		result := r.db.WithContext(ctx).
			Model(&UserModel{}).
			Where("id = ?", id.String()).
			Updates(updates)
		if result.Error != nil {
			return nil, translateWriteError(result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, domain.ErrUserNotFound
		}
	}

	return r.FindByID(ctx, id)
}

// Delete removes a user. It returns domain.ErrUserNotFound if nothing was deleted.
func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&UserModel{}, "id = ?", id.String())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) first(ctx context.Context, query string, arg interface{}) (*entity.User, error) {
	var m UserModel
	if err := r.db.WithContext(ctx).Where(query, arg).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return m.ToEntity()
}

// translateWriteError maps unique violations to domain.ErrDuplicateEmail.
// The email index is the only unique constraint besides the generated primary key.
func translateWriteError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateEmail
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return domain.ErrDuplicateEmail
	}
	return err
}

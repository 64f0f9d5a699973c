// Package usecase implements the authenticated user management operations.
package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"user_backend/internal/feature/auth/domain"
	"user_backend/internal/feature/auth/domain/entity"
)

// UserRepository is the subset of the credential store used for user management.
type UserRepository interface {
	List(ctx context.Context) ([]*entity.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Update applies the non-nil fields and returns the stored result.
	Update(ctx context.Context, id uuid.UUID, upd entity.UserUpdate) (*entity.User, error)

	// Delete returns domain.ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// userUsecase serves list, get, update and delete on users.
// Every result is a PublicUser; hashes never leave this layer.
type userUsecase struct {
	repo UserRepository
}

// NewUserUsecase creates a new userUsecase.
func NewUserUsecase(repo UserRepository) *userUsecase {
	return &userUsecase{repo: repo}
}

// List returns all users.
func (u *userUsecase) List(ctx context.Context) ([]entity.PublicUser, error) {
	users, err := u.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	out := make([]entity.PublicUser, 0, len(users))
	for _, user := range users {
		out = append(out, user.Public())
	}
	return out, nil
}

// Get returns the user with the given id.
func (u *userUsecase) Get(ctx context.Context, id uuid.UUID) (*entity.PublicUser, error) {
	user, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	public := user.Public()
	return &public, nil
}

// Update applies a partial update. An empty update returns the current user unchanged.
// Changing the email to one held by another user yields domain.ErrDuplicateEmail.
func (u *userUsecase) Update(ctx context.Context, id uuid.UUID, upd entity.UserUpdate) (*entity.PublicUser, error) {
	if err := domain.ValidateUserUpdate(upd.Email, upd.FirstName, upd.LastName); err != nil {
		return nil, err
	}

	current, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.IsEmpty() {
		public := current.Public()
		return &public, nil
	}

	if upd.Email != nil && *upd.Email != current.Email {
		other, err := u.repo.FindByEmail(ctx, *upd.Email)
		switch {
		case err == nil && other.ID != id:
			return nil, domain.ErrDuplicateEmail
		case err != nil && !errors.Is(err, domain.ErrUserNotFound):
			return nil, fmt.Errorf("failed to look up email: %w", err)
		}
	}

	updated, err := u.repo.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	public := updated.Public()
	return &public, nil
}

// Delete removes the user with the given id.
func (u *userUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	return u.repo.Delete(ctx, id)
}

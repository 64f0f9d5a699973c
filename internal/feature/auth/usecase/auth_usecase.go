// Package usecase implements the authentication workflow: signup, login and token refresh.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"user_backend/internal/feature/auth/domain"
	"user_backend/internal/feature/auth/domain/entity"
)

// dummyHash is compared against when the email is unknown, so that login takes
// the same time whether or not the account exists.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user and assigns its ID.
	// It returns domain.ErrDuplicateEmail if the email is taken.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail returns domain.ErrUserNotFound if no user has the email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

// RefreshTokenStore keeps the hash of the single active refresh token per user.
type RefreshTokenStore interface {
	// Save overwrites any previously stored hash for the user.
	Save(ctx context.Context, userID uuid.UUID, hash string, ttl time.Duration) error

	// Find returns domain.ErrRefreshTokenNotFound if nothing is stored.
	Find(ctx context.Context, userID uuid.UUID) (string, error)
}

// Hasher hashes passwords and refresh tokens.
type Hasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
	HashToken(token string) (string, error)
	CompareToken(hash, token string) error
}

// TokenIssuer signs and verifies access and refresh tokens.
type TokenIssuer interface {
	IssueAccessToken(userID uuid.UUID, email string) (string, error)
	IssueRefreshToken(userID uuid.UUID, email string) (string, error)
	VerifyRefreshToken(token string) (*entity.TokenClaims, error)
}

// Options selects the login variant.
type Options struct {
	// IssueRefreshToken enables the stateful variant: login also returns a
	// refresh token whose hash is stored for later verification.
	IssueRefreshToken bool

	// RefreshTokenTTL is passed to the store so expiring backends can drop stale hashes.
	RefreshTokenTTL time.Duration
}

// authUsecase implements the authentication business logic.
type authUsecase struct {
	users  UserRepository
	tokens RefreshTokenStore
	hasher Hasher
	issuer TokenIssuer
	opts   Options
}

// NewAuthUsecase creates a new authUsecase.
func NewAuthUsecase(users UserRepository, tokens RefreshTokenStore, hasher Hasher, issuer TokenIssuer, opts Options) *authUsecase {
	return &authUsecase{
		users:  users,
		tokens: tokens,
		hasher: hasher,
		issuer: issuer,
		opts:   opts,
	}
}

// Signup registers a new user with a hashed password and returns its public projection.
func (u *authUsecase) Signup(ctx context.Context, email, password, firstName, lastName string) (*entity.PublicUser, error) {
	if err := domain.ValidateSignup(email, password, firstName, lastName); err != nil {
		return nil, err
	}

	_, err := u.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, domain.ErrDuplicateEmail
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}

	hashed, err := u.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Email:        email,
		PasswordHash: hashed,
		FirstName:    firstName,
		LastName:     lastName,
	}
	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	public := user.Public()
	return &public, nil
}

// Login verifies the credentials and issues tokens.
// An unknown email and a wrong password both yield domain.ErrInvalidCredentials.
func (u *authUsecase) Login(ctx context.Context, email, password string) (*entity.TokenPair, error) {
	if err := domain.ValidateLogin(email, password); err != nil {
		return nil, err
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	// Always run one bcrypt comparison to mitigate timing attacks.
	passwordHash := dummyHash
	if user != nil {
		passwordHash = user.PasswordHash
	}
	compareErr := u.hasher.Compare(passwordHash, password)

	if user == nil || compareErr != nil {
		return nil, domain.ErrInvalidCredentials
	}

	access, err := u.issuer.IssueAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	pair := &entity.TokenPair{AccessToken: access}

	if !u.opts.IssueRefreshToken {
		return pair, nil
	}

	refresh, err := u.issuer.IssueRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	hashed, err := u.hasher.HashToken(refresh)
	if err != nil {
		return nil, fmt.Errorf("failed to hash refresh token: %w", err)
	}
	if err := u.tokens.Save(ctx, user.ID, hashed, u.opts.RefreshTokenTTL); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}
	pair.RefreshToken = refresh

	return pair, nil
}

// Refresh exchanges a valid refresh token for a new access token.
// The refresh token itself is not rotated. Every failure is reported as
// domain.ErrInvalidToken joined with the underlying cause.
func (u *authUsecase) Refresh(ctx context.Context, refreshToken string) (string, error) {
	access, err := u.refresh(ctx, refreshToken)
	if err != nil {
		slog.WarnContext(ctx, "refresh token rejected", "error", err)
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidToken, err)
	}
	return access, nil
}

func (u *authUsecase) refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := u.issuer.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}

	user, err := u.users.FindByEmail(ctx, claims.Email)
	if err != nil {
		return "", err
	}
	if user.ID != claims.UserID {
		return "", fmt.Errorf("%w: subject does not own email", domain.ErrTokenMismatch)
	}

	stored, err := u.tokens.Find(ctx, user.ID)
	if err != nil {
		return "", err
	}
	if err := u.hasher.CompareToken(stored, refreshToken); err != nil {
		return "", domain.ErrTokenMismatch
	}

	access, err := u.issuer.IssueAccessToken(user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return access, nil
}

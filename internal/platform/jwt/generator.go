package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"user_backend/internal/feature/auth/domain"
	"user_backend/internal/feature/auth/domain/entity"
)

// Token types carried in the "typ" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims is the JWT payload issued by this service.
type Claims struct {
	Email     string `json:"email"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 access and refresh tokens with a shared secret.
type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewIssuer creates an Issuer with the provided secret and token lifetimes.
func NewIssuer(secret string, accessTTL, refreshTTL time.Duration) *Issuer {
	return &Issuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// NewIssuerFromConfig creates an Issuer from the loaded configuration.
func NewIssuerFromConfig(cfg Config) *Issuer {
	return NewIssuer(cfg.Secret, cfg.AccessTTL.Std(), cfg.RefreshTTL.Std())
}

// RefreshTTL returns the lifetime of refresh tokens.
func (g *Issuer) RefreshTTL() time.Duration {
	return g.refreshTTL
}

// IssueAccessToken creates a signed short-lived token for the given user.
func (g *Issuer) IssueAccessToken(userID uuid.UUID, email string) (string, error) {
	return g.issue(userID, email, TokenTypeAccess, g.accessTTL)
}

// IssueRefreshToken creates a signed long-lived token for the given user.
func (g *Issuer) IssueRefreshToken(userID uuid.UUID, email string) (string, error) {
	return g.issue(userID, email, TokenTypeRefresh, g.refreshTTL)
}

// VerifyAccessToken checks signature, expiry and type of an access token.
func (g *Issuer) VerifyAccessToken(token string) (*entity.TokenClaims, error) {
	return g.verify(token, TokenTypeAccess)
}

// VerifyRefreshToken checks signature, expiry and type of a refresh token.
func (g *Issuer) VerifyRefreshToken(token string) (*entity.TokenClaims, error) {
	return g.verify(token, TokenTypeRefresh)
}

func (g *Issuer) issue(userID uuid.UUID, email, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email:     email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// verify returns the token identity, or an error wrapping exactly one of the
// domain token tags so callers can log the cause.
func (g *Issuer) verify(tokenStr, tokenType string) (*entity.TokenClaims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenStr, &claims,
		func(*jwt.Token) (interface{}, error) { return g.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, classify(err)
	}

	if claims.TokenType != tokenType {
		return nil, fmt.Errorf("%w: got %q, want %q", domain.ErrTokenType, claims.TokenType, tokenType)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: subject: %v", domain.ErrTokenMalformed, err)
	}
	if claims.Email == "" {
		return nil, fmt.Errorf("%w: missing email claim", domain.ErrTokenMalformed)
	}

	return &entity.TokenClaims{UserID: userID, Email: claims.Email}, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", domain.ErrTokenExpired, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", domain.ErrTokenSignature, err)
	default:
		return fmt.Errorf("%w: %v", domain.ErrTokenMalformed, err)
	}
}

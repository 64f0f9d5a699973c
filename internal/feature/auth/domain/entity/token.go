package entity

import "github.com/google/uuid"

// TokenPair is the result of a successful login.
// RefreshToken is empty when refresh tokens are disabled.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenClaims is the identity carried by a verified token.
type TokenClaims struct {
	UserID uuid.UUID
	Email  string
}

// Package password provides salted one-way hashing for passwords and refresh tokens.
package password

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used for stored hashes.
const DefaultCost = 10

// Hasher hashes and verifies secrets with bcrypt.
type Hasher struct {
	cost int
}

// NewHasher creates a Hasher with the given bcrypt cost.
// Costs outside bcrypt's accepted range fall back to DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the bcrypt hash of plain.
func (h *Hasher) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Compare returns nil if plain matches hash.
func (h *Hasher) Compare(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}

// HashToken hashes a bearer token. Signed tokens are longer than bcrypt's
// 72-byte input limit, so the token is reduced to its SHA-256 hex digest first.
func (h *Hasher) HashToken(token string) (string, error) {
	return h.Hash(digest(token))
}

// CompareToken returns nil if token matches a hash produced by HashToken.
func (h *Hasher) CompareToken(hash, token string) error {
	return h.Compare(hash, digest(token))
}

func digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

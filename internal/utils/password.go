package utils

import (
	"errors" // Sentinel errors

	"golang.org/x/crypto/bcrypt" // Password hashing
)

// PasswordCost is the bcrypt cost used by the server binary
const PasswordCost = bcrypt.DefaultCost

// ErrEmptyPassword is returned when hashing an empty password
var ErrEmptyPassword = errors.New("password cannot be empty")

// Hasher hashes and verifies passwords with bcrypt
type Hasher struct {
	cost int // bcrypt work factor
}

// NewHasher creates a hasher with the given bcrypt cost
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = PasswordCost // Out of range costs fall back to the default
	}
	return &Hasher{cost: cost}
}

// Hash returns a salted bcrypt digest of the password
func (h *Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether password matches the digest
func (h *Hasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

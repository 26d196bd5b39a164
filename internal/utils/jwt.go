package utils

import (
	"errors"                             // Error matching
	"reservation_system/internal/apperr" // Application error kinds
	"time"                               // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// signingMethod is the only algorithm tokens are signed and accepted with
var signingMethod = jwt.SigningMethodHS256

// JWT Claims
type Claims struct {
	UserID               string `json:"id"` // Custom claim for user ID
	jwt.RegisteredClaims        // Standard JWT claims
}

// TokenManager issues and verifies bearer tokens
type TokenManager struct {
	secret []byte        // HMAC secret
	expiry time.Duration // Token lifetime
	now    func() time.Time
}

// NewTokenManager creates a token manager for the given secret and lifetime
func NewTokenManager(secret string, expiry time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), expiry: expiry, now: time.Now}
}

// Issue creates a signed token bound to userID
func (m *TokenManager) Issue(userID string) (string, error) {
	now := m.now()
	// Set token claims
	claims := Claims{
		UserID: userID, // Custom claim for user ID
		// Standard claims
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)), // Token expiry
			IssuedAt:  jwt.NewNumericDate(now),               // Issued at current time
		},
	}
	token := jwt.NewWithClaims(signingMethod, claims) // Create token with claims
	return token.SignedString(m.secret)               // Sign the token with the secret
}

// Verify validates the token and returns the user ID it is bound to
func (m *TokenManager) Verify(tokenStr string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (any, error) {
		return m.secret, nil // Return the secret key for validation
	}, jwt.WithValidMethods([]string{signingMethod.Alg()}), jwt.WithTimeFunc(m.now), jwt.WithExpirationRequired())
	// Map library errors onto token error kinds
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "", apperr.Wrap(apperr.MalformedToken, "malformed token", err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", apperr.Wrap(apperr.ExpiredToken, "token has expired", err)
	case err != nil:
		return "", apperr.Wrap(apperr.InvalidToken, "invalid token", err)
	}
	// Validate token and extract claims
	if !token.Valid || claims.UserID == "" {
		return "", apperr.New(apperr.InvalidToken, "invalid token")
	}
	return claims.UserID, nil
}

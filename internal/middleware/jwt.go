package middleware

import (
	"context"                             // Request scoped identity
	"errors"                              // Error matching
	"net/http"                            // HTTP status codes
	"reservation_system/internal/apperr"  // Application error kinds
	"reservation_system/internal/domain"  // Importing domain models
	"reservation_system/internal/service" // Caller identity
	"strings"                             // Header parsing

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// IdentityKey is the gin context key holding the caller's service.Identity
const IdentityKey = "identity"

type identityCtxKey struct{}

// TokenVerifier verifies a bearer token and returns its user id
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// UserLookup loads the user a token was issued for
type UserLookup interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// WithIdentity returns a copy of ctx carrying who
func WithIdentity(ctx context.Context, who service.Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, who)
}

// IdentityFrom returns the identity attached by Authenticate
func IdentityFrom(ctx context.Context) (service.Identity, bool) {
	who, ok := ctx.Value(identityCtxKey{}).(service.Identity)
	return who, ok
}

// Authenticate resolves the bearer token into an identity and aborts the request with 401 on any failure
func Authenticate(tokens TokenVerifier, users UserLookup, audit logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		who, err := resolve(c.Request.Context(), c.GetHeader("Authorization"), tokens, users)
		if err != nil {
			audit.WithFields(logrus.Fields{
				"action": "authenticate",             // Request authorization
				"reason": string(apperr.KindOf(err)), // Failure kind
				"path":   c.Request.URL.Path,
				"ip":     c.ClientIP(),
			}).Warn(err.Error())
			status := http.StatusUnauthorized
			if apperr.KindOf(err) == apperr.Internal {
				status = http.StatusInternalServerError // Store outage, the token may still be valid
			}
			AbortWithGraphQLError(c, status, err)
			return
		}
		c.Set(IdentityKey, who)                                                   // Store identity in gin context
		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), who)) // And in the request context
		c.Next()
	}
}

// resolve runs header parsing, token verification and user lookup in order, stopping at the first failure
func resolve(ctx context.Context, header string, tokens TokenVerifier, users UserLookup) (service.Identity, error) {
	token, err := bearerToken(header)
	if err != nil {
		return service.Identity{}, err
	}
	userID, err := tokens.Verify(token)
	if err != nil {
		return service.Identity{}, err
	}
	user, err := users.FindByID(ctx, userID)
	if err != nil {
		if apperr.IsKind(err, apperr.NotFound) {
			return service.Identity{}, apperr.New(apperr.UnknownUser, "The user belonging to this token no longer exists")
		}
		return service.Identity{}, apperr.Wrap(apperr.Internal, "failed to load user", err)
	}
	return service.Identity{UserID: user.ID, Role: user.Role}, nil
}

// bearerToken accepts exactly "Bearer <token>"
func bearerToken(header string) (string, error) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", apperr.New(apperr.MissingOrMalformedAuthHeader, "Missing or malformed Authorization header")
	}
	return parts[1], nil
}

// AbortWithGraphQLError stops the chain with a GraphQL shaped error body
func AbortWithGraphQLError(c *gin.Context, status int, err error) {
	message := err.Error()
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	c.AbortWithStatusJSON(status, gin.H{
		"data": nil,
		"errors": []gin.H{{
			"message":    message,
			"extensions": gin.H{"code": string(apperr.KindOf(err))},
		}},
	})
}

package api

import (
	"context"                                // Request scoped calls
	"net/http"                               // HTTP status codes
	"reservation_system/internal/apperr"     // Application error kinds
	"reservation_system/internal/domain"     // Importing domain models
	"reservation_system/internal/middleware" // Caller identity
	"reservation_system/internal/service"    // Auth flows

	"github.com/gin-gonic/gin" // Gin web framework
)

// Authenticator is the auth service used by the REST handlers
type Authenticator interface {
	Register(ctx context.Context, in service.RegisterInput) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (string, error)
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email"`    // Account email
	Password string `json:"password"` // Plaintext password, never logged
}

// RegisterData is the data block of a registration response
type RegisterData struct {
	ID   string       `json:"id"`   // New user id
	User *domain.User `json:"user"` // New user, password excluded
}

// RegisterResponse is returned on successful registration
type RegisterResponse struct {
	Status string       `json:"status"` // Always "success"
	Token  string       `json:"token"`  // JWT token
	Data   RegisterData `json:"data"`   // Created user
}

// LoginResponse is returned on successful login
type LoginResponse struct {
	Status string `json:"status"` // Always "success"
	Token  string `json:"token"`  // JWT token
}

// RegisterHandler creates a user and returns a token
func RegisterHandler(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.RegisterInput // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			respondError(c, apperr.Wrap(apperr.Validation, "Invalid request body", err))
			return
		}
		user, token, err := auth.Register(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		// Return the created user and its token
		c.JSON(http.StatusCreated, RegisterResponse{
			Status: "success",
			Token:  token,
			Data:   RegisterData{ID: user.ID, User: user},
		})
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// Unreadable body counts as missing credentials
			respondError(c, apperr.New(apperr.MissingCredentials, service.MsgMissingCredentials))
			return
		}
		token, err := auth.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, LoginResponse{Status: "success", Token: token}) // Return the token in the response
	}
}

// MeHandler returns the authenticated user
func MeHandler(users middleware.UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		who, ok := middleware.IdentityFrom(c.Request.Context()) // Set by Authenticate
		if !ok {
			respondError(c, apperr.New(apperr.MissingOrMalformedAuthHeader, "Not authenticated"))
			return
		}
		user, err := users.FindByID(c.Request.Context(), who.UserID)
		if err != nil {
			if apperr.IsKind(err, apperr.NotFound) {
				err = apperr.New(apperr.UnknownUser, "The user belonging to this token no longer exists")
			}
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "data": gin.H{"user": user}})
	}
}

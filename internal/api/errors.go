package api

import (
	"errors"                             // Error matching
	"net/http"                           // HTTP status codes
	"reservation_system/internal/apperr" // Application error kinds

	"github.com/gin-gonic/gin" // Gin web framework
)

// statusFor maps an error kind to its REST status code
func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.Validation, apperr.DuplicateEmail, apperr.MissingCredentials:
		return http.StatusBadRequest
	case apperr.InvalidCredentials, apperr.MissingOrMalformedAuthHeader, apperr.InvalidToken,
		apperr.ExpiredToken, apperr.MalformedToken, apperr.UnknownUser:
		return http.StatusUnauthorized
	case apperr.Forbidden:
		return http.StatusForbidden
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.InvalidTransition:
		return http.StatusConflict
	case apperr.TooManyAttempts:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError // Internal
	}
}

// respondError writes the REST error body for err
func respondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	status := statusFor(kind)
	// Internal details stay in the logs
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, gin.H{"status": "error", "message": "Internal server error"})
		return
	}
	body := gin.H{"status": "fail", "code": string(kind)}
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		body["message"] = appErr.Message
		if len(appErr.Fields) > 0 {
			body["errors"] = appErr.Fields // Per-field validation detail
		}
	}
	c.JSON(status, body)
}

// Package apperr defines the error categories that are surfaced to API clients.
// Services return these values (optionally wrapped) and handlers turn them into
// JSON responses with Respond.
package apperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Error struct {
	Code    string            `json:"code"`
	Message string            `json:"error"`
	Status  int               `json:"-"`
	Details map[string]string `json:"details,omitempty"`
}

func New(code, message string, status int) *Error {
	return &Error{Code: code, Message: message, Status: status}
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches on the code so copies made with WithDetails still match the
// sentinel they were derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// WithDetails returns a copy of e carrying per-field details
func (e *Error) WithDetails(details map[string]string) *Error {
	cp := *e
	cp.Details = details
	return &cp
}

// WithMessage returns a copy of e with a different client facing message
func (e *Error) WithMessage(msg string) *Error {
	cp := *e
	cp.Message = msg
	return &cp
}

var (
	ErrEmailAlreadyRegistered = New("EMAIL_ALREADY_REGISTERED", "Email already registered", http.StatusConflict)
	ErrInvalidCredentials     = New("INVALID_CREDENTIALS", "Invalid credentials", http.StatusUnauthorized)
	ErrAccountDisabled        = New("ACCOUNT_DISABLED", "Account is disabled", http.StatusForbidden)
	ErrProfileNotFound        = New("PROFILE_NOT_FOUND", "Profile not found", http.StatusNotFound)
	ErrInvalidRefreshToken    = New("INVALID_REFRESH_TOKEN", "Invalid refresh token", http.StatusUnauthorized)
	ErrRefreshTokenExpired    = New("REFRESH_TOKEN_EXPIRED", "Refresh token expired", http.StatusUnauthorized)
	ErrInvalidToken           = New("INVALID_TOKEN", "Authorization token invalid", http.StatusUnauthorized)
	ErrTokenExpired           = New("TOKEN_EXPIRED", "Authorization token expired. Please log in again", http.StatusUnauthorized)
	ErrNotFound               = New("NOT_FOUND", "Resource not found", http.StatusNotFound)
	ErrForbidden              = New("FORBIDDEN", "Access denied", http.StatusForbidden)
	ErrValidation             = New("VALIDATION_FAILED", "Validation failed", http.StatusBadRequest)
	ErrDefaultContactDelete   = New("DEFAULT_CONTACT_PROTECTED", "Cannot delete default contact", http.StatusBadRequest)
	ErrRateLimited            = New("RATE_LIMITED", "Too many requests", http.StatusTooManyRequests)
	ErrBodyTooLarge           = New("BODY_TOO_LARGE", "Request body size exceeds limit", http.StatusRequestEntityTooLarge)
	ErrCaptchaFailed          = New("CAPTCHA_FAILED", "Missing or invalid turnstile token", http.StatusForbidden)
	ErrInternal               = New("INTERNAL", "Internal server error", http.StatusInternalServerError)
)

// Validation builds a VALIDATION_FAILED error for a single field
func Validation(field, msg string) *Error {
	return ErrValidation.WithDetails(map[string]string{field: msg})
}

// Respond aborts the request with the JSON representation of err. Anything
// that isn't an *Error is logged and reported as an internal error.
func Respond(c *gin.Context, err error) {
	requestID := c.GetString("requestID")

	var e *Error
	if !errors.As(err, &e) {
		zap.L().Error("Internal server error", zap.Error(err), zap.String("requestID", requestID))
		e = ErrInternal
	}

	body := gin.H{
		"error":     e.Message,
		"code":      e.Code,
		"requestID": requestID,
	}
	if len(e.Details) > 0 {
		body["details"] = e.Details
	}

	c.AbortWithStatusJSON(e.Status, body)
}

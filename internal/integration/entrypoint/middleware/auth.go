// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/usecase/user"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// UserIDKey is the context key for the authenticated user's ID.
	UserIDKey ContextKey = "user_id"
	// UserEmailKey is the context key for the authenticated user's email.
	UserEmailKey ContextKey = "user_email"
)

// AuthMiddleware provides JWT authentication middleware.
type AuthMiddleware struct {
	tokens     adapter.TokenVerifier
	ensureUser *user.EnsureUserUseCase
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(tokens adapter.TokenVerifier, ensureUser *user.EnsureUserUseCase) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:     tokens,
		ensureUser: ensureUser,
	}
}

// Authenticate returns a Gin middleware handler that enforces JWT authentication.
// The user row is created the first time a valid token is seen.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, http.StatusUnauthorized, "Authorization header is required", domainerror.ErrCodeMissingToken)
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			abort(c, http.StatusUnauthorized, "Invalid authorization header format", domainerror.ErrCodeInvalidToken)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			abort(c, http.StatusUnauthorized, "Token is required", domainerror.ErrCodeMissingToken)
			return
		}

		principal, err := m.tokens.Verify(c.Request.Context(), token)
		if err != nil {
			abort(c, http.StatusUnauthorized, "Invalid or expired token", domainerror.ErrCodeInvalidToken)
			return
		}

		if m.ensureUser != nil {
			_, err := m.ensureUser.Execute(c.Request.Context(), user.EnsureUserInput{
				UserID: principal.UserID,
				Email:  principal.Email,
				Name:   principal.Name,
			})
			if err != nil {
				m.handleProvisioningError(c, err)
				return
			}
		}

		c.Set(string(UserIDKey), principal.UserID)
		c.Set(string(UserEmailKey), principal.Email)

		c.Next()
	}
}

func (m *AuthMiddleware) handleProvisioningError(c *gin.Context, err error) {
	if errors.Is(err, domainerror.ErrValidation) {
		abort(c, http.StatusConflict, "User could not be provisioned: "+err.Error(), domainerror.ErrCodeProvisioningFailed)
		return
	}
	slog.ErrorContext(c.Request.Context(), "Failed to provision user", "error", err)
	abort(c, http.StatusInternalServerError, "An internal error occurred", domainerror.ErrCodeProvisioningFailed)
}

func abort(c *gin.Context, status int, message string, code domainerror.AuthErrorCode) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{
		Error: message,
		Code:  string(code),
	})
}

// GetUserIDFromContext extracts the user ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(string(UserIDKey))
	if !exists {
		return uuid.Nil, false
	}
	id, ok := userID.(uuid.UUID)
	return id, ok
}

// GetUserEmailFromContext extracts the user email from the Gin context.
func GetUserEmailFromContext(c *gin.Context) (string, bool) {
	email, exists := c.Get(string(UserEmailKey))
	if !exists {
		return "", false
	}
	emailStr, ok := email.(string)
	return emailStr, ok
}

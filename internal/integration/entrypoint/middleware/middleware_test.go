package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/usecase/user"
	"github.com/expense-tracker/backend/internal/integration/persistence"
	"github.com/expense-tracker/backend/internal/integration/persistence/persistencetest"
)

type stubTokens struct {
	claims *adapter.Principal
}

func (s stubTokens) Verify(_ context.Context, token string) (*adapter.Principal, error) {
	if token != "good" {
		return nil, errors.New("bad token")
	}
	return s.claims, nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAuthenticateProvisionsUser(t *testing.T) {
	userRepo := persistence.NewUserRepository(persistencetest.NewDB(t))
	claims := &adapter.Principal{UserID: uuid.New(), Email: "ana@example.com", Name: "Ana"}
	auth := NewAuthMiddleware(stubTokens{claims: claims}, user.NewEnsureUserUseCase(userRepo))

	router := gin.New()
	router.GET("/me", auth.Authenticate(), func(c *gin.Context) {
		id, ok := GetUserIDFromContext(c)
		require.True(t, ok)
		c.String(http.StatusOK, id.String())
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, claims.UserID.String(), rec.Body.String())

	stored, err := userRepo.FindByID(context.Background(), claims.UserID)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", stored.Email)
}

func TestAuthenticateRejects(t *testing.T) {
	auth := NewAuthMiddleware(stubTokens{claims: &adapter.Principal{UserID: uuid.New()}}, nil)
	router := gin.New()
	router.GET("/me", auth.Authenticate(), func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		name   string
		header string
		code   string
	}{
		{"missing header", "", "AUTH-030003"},
		{"not bearer", "Basic abc", "AUTH-030001"},
		{"empty token", "Bearer ", "AUTH-030003"},
		{"invalid token", "Bearer bad", "AUTH-030001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.code)
		})
	}
}

func TestRateLimiterWindow(t *testing.T) {
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.allow("user:a"))
	assert.True(t, rl.allow("user:a"))
	assert.False(t, rl.allow("user:a"))
	assert.True(t, rl.allow("user:b"))

	now = now.Add(61 * time.Second)
	assert.True(t, rl.allow("user:a"))

	rl.Cleanup()
	assert.Len(t, rl.entries, 1)

	rl.Reset()
	assert.Empty(t, rl.entries)
}

func TestRateLimiterMiddlewareReturns429(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	router := gin.New()
	router.Use(rl.Middleware())
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i, want := range []int{http.StatusOK, http.StatusTooManyRequests} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, want, rec.Code, "request %d", i)
	}
}

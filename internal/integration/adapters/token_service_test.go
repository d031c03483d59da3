package adapters_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expense-tracker/backend/internal/integration/adapters"
)

const testSecret = "test-secret-with-enough-length-1234"

func TestVerify(t *testing.T) {
	svc := adapters.NewTokenService(testSecret, "identity")
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID, "ana@example.com", "Ana", time.Hour)
	require.NoError(t, err)

	claims, err := svc.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "Ana", claims.Name)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, 5*time.Second)
}

func TestVerifyRejects(t *testing.T) {
	svc := adapters.NewTokenService(testSecret, "identity")
	userID := uuid.New()

	sign := func(claims adapters.CustomClaims, method jwt.SigningMethod, key interface{}) string {
		token, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return token
	}
	valid := func() adapters.CustomClaims {
		return adapters.CustomClaims{
			UserID:    userID.String(),
			Email:     "ana@example.com",
			TokenType: "access",
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "identity",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
	}

	expired, err := svc.GenerateAccessToken(userID, "ana@example.com", "", -time.Minute)
	require.NoError(t, err)

	refresh := valid()
	refresh.TokenType = "refresh"

	badUser := valid()
	badUser.UserID = "not-a-uuid"

	otherIssuer := valid()
	otherIssuer.Issuer = "someone-else"

	noExpiry := valid()
	noExpiry.ExpiresAt = nil

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"expired", expired},
		{"wrong secret", sign(valid(), jwt.SigningMethodHS256, []byte("another-secret"))},
		{"wrong algorithm", sign(valid(), jwt.SigningMethodHS512, []byte(testSecret))},
		{"refresh token", sign(refresh, jwt.SigningMethodHS256, []byte(testSecret))},
		{"invalid user id", sign(badUser, jwt.SigningMethodHS256, []byte(testSecret))},
		{"other issuer", sign(otherIssuer, jwt.SigningMethodHS256, []byte(testSecret))},
		{"missing expiry", sign(noExpiry, jwt.SigningMethodHS256, []byte(testSecret))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Verify(context.Background(), tt.token)
			assert.Error(t, err)
		})
	}
}

package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-for-unit-tests",
		Issuer:                "propman-backend",
		AccessTokenExpiration: expiration,
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestService(time.Hour)
	organizationID := uuid.New()
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(GenerateTokenInput{
		OrganizationID: organizationID,
		UserID:         userID,
		Username:       "agent.wanjiru",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token.Token)
	assert.Equal(t, "Bearer", token.TokenType)

	claims, err := svc.ValidateAccessToken(token.Token)
	require.NoError(t, err)
	assert.Equal(t, organizationID.String(), claims.OrganizationID)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "agent.wanjiru", claims.Username)
	assert.Equal(t, "propman-backend", claims.Issuer)
}

func TestJWTService_ValidateAccessToken_Errors(t *testing.T) {
	t.Run("rejects expired token", func(t *testing.T) {
		svc := newTestService(-time.Minute)
		token, err := svc.GenerateAccessToken(GenerateTokenInput{
			OrganizationID: uuid.New(),
			UserID:         uuid.New(),
		})
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(token.Token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("rejects token signed with another secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:                "a-completely-different-secret",
			Issuer:                "propman-backend",
			AccessTokenExpiration: time.Hour,
		})
		token, err := other.GenerateAccessToken(GenerateTokenInput{
			OrganizationID: uuid.New(),
			UserID:         uuid.New(),
		})
		require.NoError(t, err)

		svc := newTestService(time.Hour)
		_, err = svc.ValidateAccessToken(token.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects garbage token", func(t *testing.T) {
		svc := newTestService(time.Hour)
		_, err := svc.ValidateAccessToken("not.a.jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

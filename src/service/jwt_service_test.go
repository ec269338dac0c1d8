package service_test

import (
	"testing"
	"time"

	"mcnutrition/src/config"
	"mcnutrition/src/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(secret string) *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret: secret,
			Issuer:    "mcnutrition",
		},
	}
}

func TestJWTService_RoundTrip(t *testing.T) {
	s := service.NewJWTService(testConfig("test-secret"))

	token, err := s.GenerateToken("auth0|user1", "Alice", time.Hour)
	require.NoError(t, err)

	identity, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, identity.Authenticated)
	assert.Equal(t, "auth0|user1", identity.Key)
	assert.Equal(t, "Alice", identity.DisplayName)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	issuer := service.NewJWTService(testConfig("secret-a"))
	verifier := service.NewJWTService(testConfig("secret-b"))

	token, err := issuer.GenerateToken("auth0|user1", "Alice", time.Hour)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	s := service.NewJWTService(testConfig("test-secret"))

	token, err := s.GenerateToken("auth0|user1", "Alice", -time.Minute)
	require.NoError(t, err)

	_, err = s.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	s := service.NewJWTService(testConfig("test-secret"))

	_, err := s.ValidateToken("not.a.token")
	assert.Error(t, err)
}

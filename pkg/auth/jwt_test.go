package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/prescripto/prescripto/internal/config"
	"github.com/prescripto/prescripto/internal/domain"
)

func testManager() *JWTManager {
	return NewJWTManager(config.JWTConfig{
		Secret:          "test-secret-at-least-32-bytes-long!!",
		Issuer:          "prescripto-test",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})
}

func testClaims() *domain.Claims {
	return &domain.Claims{
		UserID:         uuid.New(),
		Email:          "doc@example.com",
		Role:           domain.RoleDoctor,
		Specialization: "cardiology",
	}
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	m := testManager()
	in := testClaims()

	pair, err := m.GenerateTokenPair(in)
	assert.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	out, err := m.ValidateAccessToken(pair.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, in.UserID, out.UserID)
	assert.Equal(t, in.Email, out.Email)
	assert.Equal(t, domain.RoleDoctor, out.Role)
	assert.Equal(t, "cardiology", out.Specialization)

	_, err = m.ValidateRefreshToken(pair.RefreshToken)
	assert.NoError(t, err)
}

func TestTokenTypeMismatch(t *testing.T) {
	m := testManager()
	pair, err := m.GenerateTokenPair(testClaims())
	assert.NoError(t, err)

	_, err = m.ValidateAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenTypeMismatch)

	_, err = m.ValidateRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenTypeMismatch)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	pair, err := testManager().GenerateTokenPair(testClaims())
	assert.NoError(t, err)

	other := NewJWTManager(config.JWTConfig{
		Secret:          "a-completely-different-signing-key!!",
		Issuer:          "prescripto-test",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})

	_, err = other.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateRejectsWrongIssuer(t *testing.T) {
	issuedBy := NewJWTManager(config.JWTConfig{
		Secret:          "test-secret-at-least-32-bytes-long!!",
		Issuer:          "someone-else",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})
	pair, err := issuedBy.GenerateTokenPair(testClaims())
	assert.NoError(t, err)

	_, err = testManager().ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	m := NewJWTManager(config.JWTConfig{
		Secret:          "test-secret-at-least-32-bytes-long!!",
		Issuer:          "prescripto-test",
		AccessTokenTTL:  -time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})
	pair, err := m.GenerateTokenPair(testClaims())
	assert.NoError(t, err)

	_, err = m.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := testManager().ValidateAccessToken("not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

package service

import (
	"testing"
	"time"

	"optiwave/backend/common"
	"optiwave/backend/model"

	"github.com/burugo/thing"
	"github.com/stretchr/testify/assert"
)

func init() {
	common.JWTSecret = "test-jwt-secret-key-for-unit-tests"
	common.JWTRefreshSecret = "test-jwt-refresh-secret-key-for-unit-tests"
}

func TestGenerateToken(t *testing.T) {
	user := &model.User{
		BaseModel: thing.BaseModel{ID: 1},
		Email:     "test@example.com",
		Role:      common.RoleCommonUser,
	}

	token, err := GenerateToken(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestValidateToken_ValidToken(t *testing.T) {
	user := &model.User{
		BaseModel: thing.BaseModel{ID: 42},
		Email:     "alice@example.com",
		Role:      common.RoleAdminUser,
	}

	token, err := GenerateToken(user)
	assert.NoError(t, err)

	claims, err := ValidateToken(token)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, common.RoleAdminUser, claims.Role)
	assert.Equal(t, "optiwave", claims.Issuer)
}

func TestValidateToken_InvalidToken(t *testing.T) {
	claims, err := ValidateToken("invalid-token-string")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestValidateToken_TamperedToken(t *testing.T) {
	user := &model.User{
		BaseModel: thing.BaseModel{ID: 1},
		Email:     "test@example.com",
		Role:      common.RoleCommonUser,
	}

	token, err := GenerateToken(user)
	assert.NoError(t, err)

	tamperedToken := token + "tampered"
	claims, err := ValidateToken(tamperedToken)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestValidateRefreshToken_WrongSecret(t *testing.T) {
	user := &model.User{
		BaseModel: thing.BaseModel{ID: 1},
		Email:     "test@example.com",
		Role:      common.RoleCommonUser,
	}

	// Access tokens are signed with JWTSecret and must not validate as
	// refresh tokens.
	accessToken, err := GenerateToken(user)
	assert.NoError(t, err)

	claims, err := ValidateRefreshToken(accessToken)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestGenerateRefreshToken_RoundTrip(t *testing.T) {
	user := &model.User{
		BaseModel: thing.BaseModel{ID: 99},
		Email:     "bob@example.com",
		Role:      common.RoleCommonUser,
	}

	refreshToken, err := GenerateRefreshToken(user)
	assert.NoError(t, err)

	claims, err := ValidateRefreshToken(refreshToken)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, int64(99), claims.UserID)
	assert.Equal(t, "bob@example.com", claims.Email)
}

func TestJWTClaims_Expiration(t *testing.T) {
	user := &model.User{
		BaseModel: thing.BaseModel{ID: 1},
		Email:     "test@example.com",
		Role:      common.RoleCommonUser,
	}

	token, err := GenerateToken(user)
	assert.NoError(t, err)

	claims, err := ValidateToken(token)
	assert.NoError(t, err)

	// Expiration is 7 days out
	assert.True(t, claims.ExpiresAt.After(time.Now()))
	assert.True(t, claims.ExpiresAt.Before(time.Now().Add(8*24*time.Hour)))
}

func TestTokensAreDifferent(t *testing.T) {
	user := &model.User{
		BaseModel: thing.BaseModel{ID: 1},
		Email:     "test@example.com",
		Role:      common.RoleCommonUser,
	}

	accessToken, err := GenerateToken(user)
	assert.NoError(t, err)

	refreshToken, err := GenerateRefreshToken(user)
	assert.NoError(t, err)

	assert.NotEqual(t, accessToken, refreshToken)
}

package service

import (
	"errors"
	"time"

	"optiwave/backend/common"
	"optiwave/backend/model"

	"github.com/golang-jwt/jwt/v5"
)

const (
	accessTokenDuration  = 7 * 24 * time.Hour
	refreshTokenDuration = 30 * 24 * time.Hour
	tokenIssuer          = "optiwave"
)

// JWTClaims carries the authenticated identity inside a token.
type JWTClaims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Role   int    `json:"role"`
	jwt.RegisteredClaims
}

func newClaims(user *model.User, duration time.Duration) *JWTClaims {
	now := time.Now()
	return &JWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
		},
	}
}

// GenerateToken signs a new access token for user.
func GenerateToken(user *model.User) (string, error) {
	claims := newClaims(user, accessTokenDuration)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(common.JWTSecret))
}

// GenerateRefreshToken signs a new refresh token for user.
func GenerateRefreshToken(user *model.User) (string, error) {
	claims := newClaims(user, refreshTokenDuration)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(common.JWTRefreshSecret))
}

func parseToken(tokenString string, secret string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected token signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// ValidateToken verifies an access token and returns its claims.
func ValidateToken(tokenString string) (*JWTClaims, error) {
	return parseToken(tokenString, common.JWTSecret)
}

// ValidateRefreshToken verifies a refresh token and returns its claims.
func ValidateRefreshToken(tokenString string) (*JWTClaims, error) {
	return parseToken(tokenString, common.JWTRefreshSecret)
}

// RefreshToken exchanges a valid refresh token for a new access token.
func RefreshToken(refreshToken string) (string, error) {
	claims, err := ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}
	user, err := model.GetUserById(claims.UserID)
	if err != nil {
		return "", err
	}
	return GenerateToken(user)
}

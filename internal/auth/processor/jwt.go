package processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gettupp-server/internal/store"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrFailedSignIn    = errors.New("failed to sign token")
	ErrExpiredToken    = errors.New("token expired")
	ErrInvalidJWTToken = errors.New("invalid token")
	ErrParseJWTToken   = errors.New("failed to parse token")
)

const tokenIssuer = "gettupp-server"

func (p *AuthProcessor) generateJWTToken(ctx context.Context, admin store.Admin) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   admin.ID.String(),
		Issuer:    tokenIssuer,
		Audience:  jwt.ClaimStrings{tokenIssuer},
		ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(p.jwtSecret))
	if err != nil {
		p.logger.Error(ctx, "failed to sign token", err)
		return "", ErrFailedSignIn
	}
	return tokenString, nil
}

// ValidateJWTToken parses and validates a token, returning its claims.
func (p *AuthProcessor) ValidateJWTToken(ctx context.Context, token string) (jwt.RegisteredClaims, error) {
	var claims jwt.RegisteredClaims
	t, err := jwt.ParseWithClaims(token, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(p.jwtSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return jwt.RegisteredClaims{}, ErrExpiredToken
		}
		p.logger.Error(ctx, "failed to parse token", err)
		return jwt.RegisteredClaims{}, ErrParseJWTToken
	}
	if !t.Valid {
		return jwt.RegisteredClaims{}, ErrInvalidJWTToken
	}
	return claims, nil
}

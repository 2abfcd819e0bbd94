package core

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenTTL = 5 * time.Minute

// reconnectSecret signs reconnect tokens. Override via IRONSIGHT_JWT_SECRET
// in production; the default only exists so local dev servers work out of
// the box.
func reconnectSecret() []byte {
	if s := os.Getenv("IRONSIGHT_JWT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("ironsight-dev-secret")
}

type reconnectClaims struct {
	PlayerName string `json:"playerName"`
	jwt.RegisteredClaims
}

// GenerateReconnectToken mints a short-lived token a client can present to
// reclaim its identity after a dropped connection.
func GenerateReconnectToken(name string) (string, error) {
	now := time.Now()
	claims := reconnectClaims{
		PlayerName: name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    "ironsight",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(reconnectSecret())
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyReconnectToken validates a reconnect token and returns the player
// name it was minted for.
func VerifyReconnectToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &reconnectClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return reconnectSecret(), nil
	})
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*reconnectClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token claims")
	}
	return claims.PlayerName, nil
}

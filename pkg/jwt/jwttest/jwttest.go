// Package jwttest signs tokens shaped like the identity provider's, for
// tests of code that validates them.
package jwttest

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type claims struct {
	UserID    string `json:"user_id,omitempty"`
	Email     string `json:"email,omitempty"`
	TokenType string `json:"token_type"`
	TokenID   string `json:"token_id"`
	jwt.RegisteredClaims
}

// SignAccessToken returns an HS256 access token for userID that expires
// after ttl, together with its token id.
func SignAccessToken(secret, userID, email string, ttl time.Duration) (string, string, error) {
	tokenID := uuid.New().String()
	now := time.Now()
	c := claims{
		UserID:    userID,
		Email:     email,
		TokenType: "access",
		TokenID:   tokenID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
	if err != nil {
		return "", "", err
	}
	return signed, tokenID, nil
}

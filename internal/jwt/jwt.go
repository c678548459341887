// Package jwt provides functions for generating and validating JWTs
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	DefaultKID  = "1"
	JWTDuration = 24 * time.Hour
)

var ErrMissingUserInfo = errors.New("token is missing user info")

// UserInfo is the claim block embedded in every access token.
type UserInfo struct {
	UserID         string   `json:"userId"`
	Name           string   `json:"name,omitempty"`
	Email          string   `json:"email,omitempty"`
	ProfilePicture string   `json:"profilePicture,omitempty"`
	Roles          []string `json:"roles"`
	Favorites      []string `json:"favorites"`
}

type Claims struct {
	UserInfo UserInfo `json:"UserInfo"`
	jwt.RegisteredClaims
}

type JWTParams struct {
	UserInfo UserInfo
	Duration time.Duration
	Now      time.Time
}

// GenerateJWT signs the params with HS256. The secret version is
// written to the kid header.
func GenerateJWT(params JWTParams, secret []byte, version string) (string, error) {
	now := params.Now
	if now.IsZero() {
		now = time.Now()
	}
	duration := params.Duration
	if duration == 0 {
		duration = JWTDuration
	}

	claims := Claims{
		UserInfo: params.UserInfo,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   params.UserInfo.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token.Header["kid"] = version

	signedKey, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return signedKey, nil
}

// ValidateJWT parses rawToken and checks its signature, kid and expiry.
// Tokens without a user id or role list are rejected.
func ValidateJWT(rawToken, version string, secret []byte) (*Claims, error) {
	keyFunc := func(token *jwt.Token) (any, error) {
		kidVal, ok := token.Header["kid"].(string)
		if !ok {
			return nil, fmt.Errorf("missing/invalid kid value")
		}

		if kidVal != version {
			return nil, fmt.Errorf("verifying KID value, value=%q", kidVal)
		}

		return secret, nil
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(rawToken, &claims, keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	if claims.UserInfo.UserID == "" || claims.UserInfo.Roles == nil {
		return nil, ErrMissingUserInfo
	}

	return &claims, nil
}

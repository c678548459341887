// Package token contains utilities for bearer access tokens.
package token

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/matt-dz/tastebook/internal/config"
	"github.com/matt-dz/tastebook/internal/jwt"
)

const bearerPrefix = "Bearer "

var (
	ErrMissingBearer = errors.New("missing bearer token")
	ErrNoAppSecret   = errors.New("app secret not configured")
)

// BearerFromRequest returns the token of an "Authorization: Bearer" header.
func BearerFromRequest(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", ErrMissingBearer
	}
	raw := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if raw == "" {
		return "", ErrMissingBearer
	}
	return raw, nil
}

func secret(conf config.Config) ([]byte, string, error) {
	if conf.AppSecret.Value == nil || *conf.AppSecret.Value == "" {
		return nil, "", ErrNoAppSecret
	}
	version := conf.AppSecret.Version
	if version == "" {
		version = jwt.DefaultKID
	}
	return []byte(*conf.AppSecret.Value), version, nil
}

func NewAccessToken(params jwt.JWTParams, conf config.Config) (string, error) {
	key, version, err := secret(conf)
	if err != nil {
		return "", err
	}
	token, err := jwt.GenerateJWT(params, key, version)
	if err != nil {
		return "", fmt.Errorf("generating access token: %w", err)
	}
	return token, nil
}

func ValidateAccessToken(raw string, conf config.Config) (*jwt.Claims, error) {
	key, version, err := secret(conf)
	if err != nil {
		return nil, err
	}
	return jwt.ValidateJWT(raw, version, key)
}

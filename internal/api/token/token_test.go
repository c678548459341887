package token

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/matt-dz/tastebook/internal/config"
	"github.com/matt-dz/tastebook/internal/jwt"
)

func TestBearerFromRequest(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", false},
		{"missing header", "", "", true},
		{"wrong scheme", "Basic dXNlcjpwYXNz", "", true},
		{"empty token", "Bearer   ", "", true},
		{"lower-case scheme", "bearer abc", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}

			got, err := BearerFromRequest(r)
			if tt.wantErr {
				if !errors.Is(err, ErrMissingBearer) {
					t.Errorf("expected ErrMissingBearer, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	secret := config.AppSecretValue("0123456789abcdef0123456789abcdef")
	conf := config.Config{AppSecret: config.AppSecret{Value: &secret, Version: "4"}}

	raw, err := NewAccessToken(jwt.JWTParams{
		UserInfo: jwt.UserInfo{UserID: "u1", Roles: []string{"User"}},
	}, conf)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	claims, err := ValidateAccessToken(raw, conf)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	if claims.UserInfo.UserID != "u1" {
		t.Errorf("expected user id %q, got %q", "u1", claims.UserInfo.UserID)
	}

	if _, err := ValidateAccessToken(raw, config.Config{}); !errors.Is(err, ErrNoAppSecret) {
		t.Errorf("expected ErrNoAppSecret, got %v", err)
	}
}

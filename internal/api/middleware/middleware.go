// Package middleware contains middleware functions for the API
package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/httplog/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"

	apiError "github.com/matt-dz/tastebook/internal/api/error"
	"github.com/matt-dz/tastebook/internal/api/requestid"
	"github.com/matt-dz/tastebook/internal/api/token"
	"github.com/matt-dz/tastebook/internal/config"
	"github.com/matt-dz/tastebook/internal/env"
	"github.com/matt-dz/tastebook/internal/identity"
	"github.com/matt-dz/tastebook/internal/log"
	"github.com/matt-dz/tastebook/internal/role"
)

// InjectEnv injects an environment struct into the request context.
func InjectEnv(environment *env.Env) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(env.WithCtx(r.Context(), environment)))
		})
	}
}

func LogRequest(logger *slog.Logger) func(http.Handler) http.Handler {
	return httplog.RequestLogger(logger, &httplog.Options{
		LogExtraAttrs: func(r *http.Request, reqBody string, respStatus int) []slog.Attr {
			if id := requestid.ExtractRequestID(r.Context()); id != 0 {
				return []slog.Attr{slog.Uint64("log_id", id)}
			}
			return []slog.Attr{slog.String("log_id", "N/A")}
		},
	})
}

// AddRequestID adds a request ID to the request context.
func AddRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := ulid.Now()
		r = r.WithContext(log.AppendCtx(r.Context(), slog.Uint64("log_id", requestID)))
		r = r.WithContext(requestid.InjectRequestID(r.Context(), requestID))
		next.ServeHTTP(w, r)
	})
}

func allowedOrigin(conf config.Config, origin string) string {
	if origin == "" {
		return ""
	}
	if conf.Env != config.EnvProd {
		// In dev mode, allow all origins
		return origin
	}
	if slices.Contains(conf.AllowedOrigins, strings.TrimSuffix(origin, "/")) {
		return origin
	}
	return ""
}

// AddCors adds the CORS headers for origins on the configured allow-list.
func AddCors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		e := env.EnvFromCtx(r.Context())
		origin := r.Header.Get("Origin")

		w.Header().Add("Vary", "Origin")
		if allowed := allowedOrigin(e.Config, origin); allowed != "" {
			w.Header().Set("Access-Control-Allow-Origin", allowed)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Max-Age", "86400")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		} else if origin != "" {
			e.Logger.WarnContext(r.Context(), "origin not allowed", slog.String("origin", origin))
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Authenticate resolves the bearer access token into an identity.
// Requests without a valid token are rejected with 401.
func Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		env := env.EnvFromCtx(ctx)
		requestID := requestid.String(ctx)

		raw, err := token.BearerFromRequest(r)
		if err != nil {
			env.Logger.ErrorContext(ctx, "unable to get access token", slog.Any("error", err))
			_ = apiError.EncodeError(w, apiError.InvalidAccessToken, "invalid access token", requestID)
			return
		}

		claims, err := token.ValidateAccessToken(raw, env.Config)
		if errors.Is(err, token.ErrNoAppSecret) {
			env.Logger.ErrorContext(ctx, "app secret not configured")
			_ = apiError.EncodeInternalError(w, requestID)
			return
		} else if errors.Is(err, jwt.ErrTokenExpired) {
			env.Logger.ErrorContext(ctx, "access token expired", slog.Any("error", err))
			_ = apiError.EncodeError(w, apiError.ExpiredAccessToken, "access token expired", requestID)
			return
		} else if err != nil {
			env.Logger.ErrorContext(ctx, "invalid access token", slog.Any("error", err))
			_ = apiError.EncodeError(w, apiError.InvalidAccessToken, "invalid access token", requestID)
			return
		}

		// Favorites carried in the claims are not part of the identity.
		id := identity.Identity{
			UserID: claims.UserInfo.UserID,
			Roles:  role.ParseSet(claims.UserInfo.Roles),
		}
		ctx = log.AppendCtx(ctx, slog.String("user-id", id.UserID))
		ctx = identity.WithCtx(ctx, id)
		env.Logger.DebugContext(ctx, "authenticated request")

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

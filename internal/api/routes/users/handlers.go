// Package users contains handlers for the user resource.
package users

import (
	"errors"
	"log/slog"
	"net/http"

	apiError "github.com/matt-dz/tastebook/internal/api/error"
	"github.com/matt-dz/tastebook/internal/api/requestid"
	"github.com/matt-dz/tastebook/internal/env"
	"github.com/matt-dz/tastebook/internal/favorite"
	"github.com/matt-dz/tastebook/internal/identity"
	mJson "github.com/matt-dz/tastebook/internal/json"
)

type FavoritesResponse struct {
	Favorites []string `json:"favorites"`
}

// HandleGetFavorites returns the caller's favorite recipe ids as stored.
func HandleGetFavorites(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.String(ctx)

	actor, err := identity.FromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to extract identity from context", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.InvalidAccessToken, "invalid access token", requestID)
		return
	}

	env.Logger.DebugContext(ctx, "reading favorites")
	favorites, err := env.Favorites.Favorites(ctx, actor)
	if errors.Is(err, favorite.ErrUserNotFound) {
		env.Logger.ErrorContext(ctx, "user not found", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.UserNotFound, "user not found", requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "failed to read favorites", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	env.Logger.DebugContext(ctx, "writing response")
	if err := mJson.WriteJSON(w, http.StatusOK, FavoritesResponse{Favorites: favorites}); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
	}
}

// Package recipes contains handlers for the recipe resource.
package recipes

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	apiError "github.com/matt-dz/tastebook/internal/api/error"
	"github.com/matt-dz/tastebook/internal/api/requestid"
	"github.com/matt-dz/tastebook/internal/env"
	"github.com/matt-dz/tastebook/internal/favorite"
	"github.com/matt-dz/tastebook/internal/identity"
	mJson "github.com/matt-dz/tastebook/internal/json"
	"github.com/matt-dz/tastebook/internal/recipe"
)

// encodeServiceError maps a recipe or favorite service error onto the
// error body. Unknown errors are reported as internal errors.
func encodeServiceError(ctx context.Context, env *env.Env, w http.ResponseWriter, err error, requestID string) {
	switch {
	case errors.Is(err, recipe.ErrInvalidRecipe):
		env.Logger.ErrorContext(ctx, "invalid recipe", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.UnprocessibleEntity, err.Error(), requestID)
	case errors.Is(err, recipe.ErrInvalidRating):
		env.Logger.ErrorContext(ctx, "invalid rating", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.InvalidRating, "invalid rating value", requestID)
	case errors.Is(err, recipe.ErrEmptyComment):
		env.Logger.ErrorContext(ctx, "empty comment", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.EmptyComment, "comment text is required", requestID)
	case errors.Is(err, recipe.ErrAlreadyRated):
		env.Logger.ErrorContext(ctx, "recipe already rated", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.AlreadyRated, "you have already rated this recipe", requestID)
	case errors.Is(err, recipe.ErrNotAuthorized):
		env.Logger.ErrorContext(ctx, "not authorized", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.RecipeNotOwned, "not authorized", requestID)
	case errors.Is(err, recipe.ErrRecipeNotFound):
		env.Logger.ErrorContext(ctx, "recipe not found", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.RecipeNotFound, "recipe not found", requestID)
	case errors.Is(err, recipe.ErrCommentNotFound):
		env.Logger.ErrorContext(ctx, "comment not found", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.CommentNotFound, "comment not found", requestID)
	case errors.Is(err, recipe.ErrUserNotFound), errors.Is(err, favorite.ErrUserNotFound):
		env.Logger.ErrorContext(ctx, "user not found", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.UserNotFound, "user not found", requestID)
	default:
		env.Logger.ErrorContext(ctx, "recipe operation failed", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
	}
}

func actorFromCtx(ctx context.Context, env *env.Env, w http.ResponseWriter, requestID string) (identity.Identity, bool) {
	actor, err := identity.FromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to extract identity from context", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.InvalidAccessToken, "invalid access token", requestID)
		return identity.Identity{}, false
	}
	return actor, true
}

func writeResponse(ctx context.Context, env *env.Env, w http.ResponseWriter, status int, v any) {
	env.Logger.DebugContext(ctx, "writing response")
	if err := mJson.WriteJSON(w, status, v); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
	}
}

// HandleListRecipes returns every recipe, newest first.
func HandleListRecipes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.String(ctx)

	env.Logger.DebugContext(ctx, "listing recipes")
	recipes, err := env.Recipes.List(ctx)
	if err != nil {
		encodeServiceError(ctx, env, w, err, requestID)
		return
	}

	writeResponse(ctx, env, w, http.StatusOK, recipes)
}

// HandleGetRecipe returns one recipe with its author and comment
// authors resolved.
func HandleGetRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.String(ctx)
	recipeID := chi.URLParam(r, "id")

	env.Logger.DebugContext(ctx, "getting recipe", slog.String("recipe-id", recipeID))
	view, err := env.Recipes.Get(ctx, recipeID)
	if err != nil {
		encodeServiceError(ctx, env, w, err, requestID)
		return
	}

	writeResponse(ctx, env, w, http.StatusOK, view)
}

func HandleCreateRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.String(ctx)
	actor, ok := actorFromCtx(ctx, env, w, requestID)
	if !ok {
		return
	}

	// Decode JSON
	env.Logger.DebugContext(ctx, "reading request body")
	var request recipe.Input
	if err := decodeRequest(r, &request); err != nil {
		env.Logger.ErrorContext(ctx, "failed to decode request body", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid request body", requestID)
		return
	}

	// Create recipe
	env.Logger.DebugContext(ctx, "creating recipe")
	created, err := env.Recipes.Create(ctx, request, actor)
	if err != nil {
		encodeServiceError(ctx, env, w, err, requestID)
		return
	}

	writeResponse(ctx, env, w, http.StatusCreated, created)
}

// HandleUpdateRecipe replaces the fields of a recipe owned by the caller.
func HandleUpdateRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.String(ctx)
	recipeID := chi.URLParam(r, "id")
	actor, ok := actorFromCtx(ctx, env, w, requestID)
	if !ok {
		return
	}

	env.Logger.DebugContext(ctx, "reading request body")
	var request recipe.Input
	if err := decodeRequest(r, &request); err != nil {
		env.Logger.ErrorContext(ctx, "failed to decode request body", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid request body", requestID)
		return
	}

	env.Logger.DebugContext(ctx, "updating recipe", slog.String("recipe-id", recipeID))
	updated, err := env.Recipes.Update(ctx, recipeID, request, actor)
	if err != nil {
		encodeServiceError(ctx, env, w, err, requestID)
		return
	}

	writeResponse(ctx, env, w, http.StatusOK, updated)
}

// HandleDeleteRecipe deletes a recipe. Authors and admins may delete.
func HandleDeleteRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.String(ctx)
	recipeID := chi.URLParam(r, "id")
	actor, ok := actorFromCtx(ctx, env, w, requestID)
	if !ok {
		return
	}

	env.Logger.DebugContext(ctx, "deleting recipe", slog.String("recipe-id", recipeID))
	if err := env.Recipes.Delete(ctx, recipeID, actor); err != nil {
		encodeServiceError(ctx, env, w, err, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func HandleRateRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.String(ctx)
	recipeID := chi.URLParam(r, "id")
	actor, ok := actorFromCtx(ctx, env, w, requestID)
	if !ok {
		return
	}

	env.Logger.DebugContext(ctx, "reading request body")
	var request RateRecipeRequest
	if err := decodeRequest(r, &request); err != nil {
		env.Logger.ErrorContext(ctx, "failed to decode request body", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid request body", requestID)
		return
	}

	env.Logger.DebugContext(ctx, "rating recipe", slog.String("recipe-id", recipeID))
	if err := env.Recipes.Rate(ctx, recipeID, request.Rating, actor); err != nil {
		encodeServiceError(ctx, env, w, err, requestID)
		return
	}

	writeResponse(ctx, env, w, http.StatusCreated, MessageResponse{Message: "Rating added successfully"})
}

func HandleAddComment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.String(ctx)
	recipeID := chi.URLParam(r, "id")
	actor, ok := actorFromCtx(ctx, env, w, requestID)
	if !ok {
		return
	}

	env.Logger.DebugContext(ctx, "reading request body")
	var request AddCommentRequest
	if err := decodeRequest(r, &request); err != nil {
		env.Logger.ErrorContext(ctx, "failed to decode request body", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid request body", requestID)
		return
	}

	env.Logger.DebugContext(ctx, "adding comment", slog.String("recipe-id", recipeID))
	if _, err := env.Recipes.AddComment(ctx, recipeID, request.Comment, actor); err != nil {
		encodeServiceError(ctx, env, w, err, requestID)
		return
	}

	writeResponse(ctx, env, w, http.StatusCreated, MessageResponse{Message: "Comment added successfully"})
}

func HandleDeleteComment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.String(ctx)
	recipeID := chi.URLParam(r, "recipeId")
	commentID := chi.URLParam(r, "commentId")
	actor, ok := actorFromCtx(ctx, env, w, requestID)
	if !ok {
		return
	}

	env.Logger.DebugContext(ctx, "deleting comment",
		slog.String("recipe-id", recipeID), slog.String("comment-id", commentID))
	if err := env.Recipes.DeleteComment(ctx, recipeID, commentID, actor); err != nil {
		encodeServiceError(ctx, env, w, err, requestID)
		return
	}

	writeResponse(ctx, env, w, http.StatusOK, MessageResponse{Message: "Comment deleted successfully"})
}

// HandleToggleFavorite adds or removes the recipe from the caller's
// favorites and returns a refreshed access token.
func HandleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.String(ctx)
	recipeID := chi.URLParam(r, "id")
	actor, ok := actorFromCtx(ctx, env, w, requestID)
	if !ok {
		return
	}

	env.Logger.DebugContext(ctx, "toggling favorite", slog.String("recipe-id", recipeID))
	result, err := env.Favorites.ToggleFavorite(ctx, recipeID, actor)
	if err != nil {
		encodeServiceError(ctx, env, w, err, requestID)
		return
	}

	writeResponse(ctx, env, w, http.StatusCreated, result)
}

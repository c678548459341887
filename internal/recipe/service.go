// Package recipe implements the recipe aggregate: validation, authorization
// and the rating and comment lifecycle.
package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/matt-dz/tastebook/internal/cache"
	"github.com/matt-dz/tastebook/internal/database"
	"github.com/matt-dz/tastebook/internal/identity"
	"github.com/matt-dz/tastebook/internal/log"
	"github.com/matt-dz/tastebook/internal/role"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Service struct {
	DB    database.Querier
	Cache cache.Cache
	Log   *slog.Logger
	Now   func() time.Time
}

func NewService(db database.Querier, c cache.Cache, lg *slog.Logger) *Service {
	if c == nil {
		c = cache.Null{}
	}
	if lg == nil {
		lg = log.NullLogger()
	}
	return &Service{
		DB:    db,
		Cache: c,
		Log:   lg,
		Now:   time.Now,
	}
}

func (s *Service) now() time.Time {
	return s.Now().UTC()
}

func (s *Service) load(ctx context.Context, id string) (database.Recipe, error) {
	r, err := s.DB.GetRecipe(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return database.Recipe{}, ErrRecipeNotFound
	} else if err != nil {
		return database.Recipe{}, fmt.Errorf("getting recipe %q: %w", id, err)
	}
	return r, nil
}

func (s *Service) invalidate(ctx context.Context, id string) {
	if err := s.Cache.Delete(ctx, cache.RecipeKey(id)); err != nil {
		s.Log.WarnContext(ctx, "failed to invalidate cached recipe",
			slog.String("recipe-id", id), slog.Any("error", err))
	}
}

// Create persists a new recipe authored by actor with no ratings or comments.
func (s *Service) Create(ctx context.Context, in Input, actor identity.Identity) (database.Recipe, error) {
	if err := in.Validate(); err != nil {
		return database.Recipe{}, err
	}

	r, err := s.DB.CreateRecipe(ctx, database.CreateRecipeParams{
		RecipeFields: in.fields(),
		Author:       actor.UserID,
		CreatedAt:    s.now(),
	})
	if err != nil {
		return database.Recipe{}, fmt.Errorf("creating recipe: %w", err)
	}
	return r, nil
}

// Update replaces every mutable field. Ratings and comments are kept.
func (s *Service) Update(ctx context.Context, id string, in Input, actor identity.Identity) (database.Recipe, error) {
	if err := in.Validate(); err != nil {
		return database.Recipe{}, err
	}

	current, err := s.load(ctx, id)
	if err != nil {
		return database.Recipe{}, err
	}
	if !CanUpdate(actor, current) {
		return database.Recipe{}, ErrNotAuthorized
	}

	// Conditioned on the author so a concurrent delete surfaces as not found.
	updated, err := s.DB.UpdateRecipe(ctx, database.UpdateRecipeParams{
		RecipeFields: in.fields(),
		ID:           id,
		Author:       actor.UserID,
		UpdatedAt:    s.now(),
	})
	if errors.Is(err, database.ErrNotFound) {
		return database.Recipe{}, ErrRecipeNotFound
	} else if err != nil {
		return database.Recipe{}, fmt.Errorf("updating recipe %q: %w", id, err)
	}

	s.invalidate(ctx, id)
	return updated, nil
}

func hasRated(r database.Recipe, userID string) bool {
	for _, rating := range r.Ratings {
		if rating.User == userID {
			return true
		}
	}
	return false
}

// Rate appends actor's rating. Each user rates a recipe at most once.
func (s *Service) Rate(ctx context.Context, id string, value int, actor identity.Identity) error {
	if value < MinRating || value > MaxRating {
		return ErrInvalidRating
	}

	current, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if hasRated(current, actor.UserID) {
		return ErrAlreadyRated
	}

	added, err := s.DB.AddRecipeRating(ctx, database.AddRecipeRatingParams{
		RecipeID:  id,
		Rating:    database.Rating{User: actor.UserID, Rating: value},
		UpdatedAt: s.now(),
	})
	if err != nil {
		return fmt.Errorf("adding rating to %q: %w", id, err)
	}
	if !added {
		// Either the recipe was deleted or a concurrent rating by the same
		// user won the conditional append.
		if _, err := s.load(ctx, id); err != nil {
			return err
		}
		return ErrAlreadyRated
	}

	s.invalidate(ctx, id)
	return nil
}

// Delete removes the recipe with its ratings and comments.
func (s *Service) Delete(ctx context.Context, id string, actor identity.Identity) error {
	current, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	user, err := s.DB.GetUser(ctx, actor.UserID)
	if errors.Is(err, database.ErrNotFound) {
		return ErrUserNotFound
	} else if err != nil {
		return fmt.Errorf("getting user %q: %w", actor.UserID, err)
	}

	if !CanDelete(actor, role.ParseSet(user.Roles), current) {
		return ErrNotAuthorized
	}

	deleted, err := s.DB.DeleteRecipe(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting recipe %q: %w", id, err)
	}
	if !deleted {
		return ErrRecipeNotFound
	}

	s.invalidate(ctx, id)
	return nil
}

// AddComment appends a comment to the end of the recipe's comment sequence.
func (s *Service) AddComment(ctx context.Context, id, text string, actor identity.Identity) (database.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return database.Comment{}, ErrEmptyComment
	}

	comment := database.Comment{
		ID:        ulid.Make().String(),
		User:      actor.UserID,
		Text:      text,
		CreatedAt: s.now(),
	}
	added, err := s.DB.AddRecipeComment(ctx, database.AddRecipeCommentParams{
		RecipeID: id,
		Comment:  comment,
	})
	if err != nil {
		return database.Comment{}, fmt.Errorf("adding comment to %q: %w", id, err)
	}
	if !added {
		return database.Comment{}, ErrRecipeNotFound
	}

	s.invalidate(ctx, id)
	return comment, nil
}

func findComment(r database.Recipe, commentID string) (database.Comment, bool) {
	for _, c := range r.Comments {
		if c.ID == commentID {
			return c, true
		}
	}
	return database.Comment{}, false
}

// DeleteComment removes exactly one comment, keeping the order of the rest.
func (s *Service) DeleteComment(ctx context.Context, recipeID, commentID string, actor identity.Identity) error {
	current, err := s.load(ctx, recipeID)
	if err != nil {
		return err
	}

	comment, ok := findComment(current, commentID)
	if !ok {
		return ErrCommentNotFound
	}
	if !CanDeleteComment(actor, current, comment) {
		return ErrNotAuthorized
	}

	removed, err := s.DB.DeleteRecipeComment(ctx, database.DeleteRecipeCommentParams{
		RecipeID:  recipeID,
		CommentID: commentID,
		UpdatedAt: s.now(),
	})
	if err != nil {
		return fmt.Errorf("deleting comment %q: %w", commentID, err)
	}
	if !removed {
		if _, err := s.load(ctx, recipeID); err != nil {
			return err
		}
		return ErrCommentNotFound
	}

	s.invalidate(ctx, recipeID)
	return nil
}

func (s *Service) resolveUsers(ctx context.Context, ids []string) (map[string]database.User, error) {
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	users, err := s.DB.GetUsers(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("getting users: %w", err)
	}

	byID := make(map[string]database.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID, nil
}

// List returns every recipe, newest first, with author names resolved.
func (s *Service) List(ctx context.Context) ([]RecipeView, error) {
	recipes, err := s.DB.ListRecipes(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing recipes: %w", err)
	}

	authors := make([]string, 0, len(recipes))
	for _, r := range recipes {
		authors = append(authors, r.Author)
	}
	users, err := s.resolveUsers(ctx, authors)
	if err != nil {
		return nil, err
	}

	views := make([]RecipeView, 0, len(recipes))
	for _, r := range recipes {
		views = append(views, newView(r, users, false))
	}
	return views, nil
}

func (s *Service) cached(ctx context.Context, id string) (RecipeView, bool) {
	raw, err := s.Cache.Get(ctx, cache.RecipeKey(id))
	if errors.Is(err, cache.ErrMiss) {
		return RecipeView{}, false
	} else if err != nil {
		s.Log.WarnContext(ctx, "failed to read cached recipe",
			slog.String("recipe-id", id), slog.Any("error", err))
		return RecipeView{}, false
	}

	var view RecipeView
	if err := json.Unmarshal(raw, &view); err != nil {
		s.Log.WarnContext(ctx, "discarding malformed cached recipe",
			slog.String("recipe-id", id), slog.Any("error", err))
		return RecipeView{}, false
	}
	return view, true
}

func (s *Service) store(ctx context.Context, view RecipeView) {
	raw, err := json.Marshal(view)
	if err != nil {
		s.Log.WarnContext(ctx, "failed to encode recipe for cache", slog.Any("error", err))
		return
	}
	if err := s.Cache.Set(ctx, cache.RecipeKey(view.ID), raw); err != nil {
		s.Log.WarnContext(ctx, "failed to cache recipe",
			slog.String("recipe-id", view.ID), slog.Any("error", err))
	}
}

// Get returns one recipe with its author and comment users resolved.
func (s *Service) Get(ctx context.Context, id string) (RecipeView, error) {
	if view, ok := s.cached(ctx, id); ok {
		return view, nil
	}

	r, err := s.load(ctx, id)
	if err != nil {
		return RecipeView{}, err
	}

	ids := make([]string, 0, len(r.Comments)+1)
	ids = append(ids, r.Author)
	for _, c := range r.Comments {
		ids = append(ids, c.User)
	}
	users, err := s.resolveUsers(ctx, ids)
	if err != nil {
		return RecipeView{}, err
	}

	view := newView(r, users, true)
	s.store(ctx, view)
	return view, nil
}

// Package favorite toggles recipe favorites and refreshes the caller's
// access token.
package favorite

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/matt-dz/tastebook/internal/database"
	"github.com/matt-dz/tastebook/internal/identity"
	"github.com/matt-dz/tastebook/internal/jwt"
	"github.com/matt-dz/tastebook/internal/role"
)

var ErrUserNotFound = errors.New("user not found")

// Toggle removes the first occurrence of recipeID or appends it when
// absent. The input slice is not modified.
func Toggle(favorites []string, recipeID string) []string {
	out := slices.Clone(favorites)
	if out == nil {
		out = []string{}
	}
	if i := slices.Index(out, recipeID); i >= 0 {
		return slices.Delete(out, i, i+1)
	}
	return append(out, recipeID)
}

type Service struct {
	DB            database.Querier
	Secret        []byte
	SecretVersion string
	Now           func() time.Time
}

func NewService(db database.Querier, secret []byte, secretVersion string) *Service {
	return &Service{
		DB:            db,
		Secret:        secret,
		SecretVersion: secretVersion,
		Now:           time.Now,
	}
}

type Result struct {
	AccessToken string   `json:"accessToken"`
	Favorites   []string `json:"favorites"`
}

func (s *Service) user(ctx context.Context, id string) (database.User, error) {
	user, err := s.DB.GetUser(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return database.User{}, ErrUserNotFound
	} else if err != nil {
		return database.User{}, fmt.Errorf("getting user %q: %w", id, err)
	}
	return user, nil
}

// ToggleFavorite flips recipeID in the actor's favorites, persists the
// list and signs a one-day access token carrying it. The recipe id is
// not checked against the recipe store.
func (s *Service) ToggleFavorite(ctx context.Context, recipeID string, actor identity.Identity) (Result, error) {
	user, err := s.user(ctx, actor.UserID)
	if err != nil {
		return Result{}, err
	}

	favorites := Toggle(user.Favorites, recipeID)
	err = s.DB.UpdateUserFavorites(ctx, database.UpdateUserFavoritesParams{
		ID:        user.ID,
		Favorites: favorites,
	})
	if errors.Is(err, database.ErrNotFound) {
		return Result{}, ErrUserNotFound
	} else if err != nil {
		return Result{}, fmt.Errorf("updating favorites of %q: %w", user.ID, err)
	}

	token, err := jwt.GenerateJWT(jwt.JWTParams{
		UserInfo: jwt.UserInfo{
			UserID:         user.ID,
			Name:           user.Name,
			Email:          user.Email,
			ProfilePicture: user.ProfilePicture,
			Roles:          role.ParseSet(user.Roles).Names(),
			Favorites:      favorites,
		},
		Duration: jwt.JWTDuration,
		Now:      s.Now(),
	}, s.Secret, s.SecretVersion)
	if err != nil {
		return Result{}, fmt.Errorf("signing access token: %w", err)
	}

	return Result{AccessToken: token, Favorites: favorites}, nil
}

// Favorites reads the actor's favorites from the user store.
func (s *Service) Favorites(ctx context.Context, actor identity.Identity) ([]string, error) {
	user, err := s.user(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if user.Favorites == nil {
		return []string{}, nil
	}
	return user.Favorites, nil
}

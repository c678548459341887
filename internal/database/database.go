// Package database contains the document store for recipes and users.
//
// Two backends implement Querier: MongoDB (one document per recipe
// with embedded ratings and comments) and PostgreSQL (one row per
// recipe with JSONB columns for the embedded collections). Both
// mutate embedded collections with single conditional writes so the
// at-most-one-rating-per-user invariant holds under concurrent calls.
package database

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a recipe or user document does not exist.
var ErrNotFound = errors.New("document not found")

type Rating struct {
	User   string `json:"user" bson:"user"`
	Rating int    `json:"rating" bson:"rating"`
}

type Comment struct {
	ID        string    `json:"_id" bson:"_id"`
	User      string    `json:"user" bson:"user"`
	Text      string    `json:"comment" bson:"comment"`
	CreatedAt time.Time `json:"date" bson:"date"`
}

type Recipe struct {
	ID           string    `json:"_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Image        string    `json:"image"`
	CookingTime  string    `json:"cookingTime"`
	Ingredients  []string  `json:"ingredients"`
	Instructions []string  `json:"instructions"`
	Category     string    `json:"category"`
	Author       string    `json:"author"`
	Ratings      []Rating  `json:"ratings"`
	Comments     []Comment `json:"comments"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type User struct {
	ID             string   `json:"_id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	ProfilePicture string   `json:"profilePicture"`
	Roles          []string `json:"roles"`
	Favorites      []string `json:"favorites"`
}

// RecipeFields are the mutable fields of a recipe.
type RecipeFields struct {
	Title        string
	Description  string
	Image        string
	CookingTime  string
	Ingredients  []string
	Instructions []string
	Category     string
}

type CreateRecipeParams struct {
	RecipeFields
	Author    string
	CreatedAt time.Time
}

type UpdateRecipeParams struct {
	RecipeFields
	ID        string
	Author    string
	UpdatedAt time.Time
}

type AddRecipeRatingParams struct {
	RecipeID  string
	Rating    Rating
	UpdatedAt time.Time
}

type AddRecipeCommentParams struct {
	RecipeID string
	Comment  Comment
}

type DeleteRecipeCommentParams struct {
	RecipeID  string
	CommentID string
	UpdatedAt time.Time
}

type UpdateUserFavoritesParams struct {
	ID        string
	Favorites []string
}

type GrantUserRoleParams struct {
	Email string
	Role  string
}

//go:generate mockgen -destination=../dbmock/querier.go -package=dbmock github.com/matt-dz/tastebook/internal/database Querier

// Querier is the store contract used by the services.
//
// Methods reporting a bool return false when their conditional write
// matched no document; callers decide which invariant was violated.
type Querier interface {
	CreateRecipe(ctx context.Context, arg CreateRecipeParams) (Recipe, error)
	GetRecipe(ctx context.Context, id string) (Recipe, error)
	ListRecipes(ctx context.Context) ([]Recipe, error)
	// UpdateRecipe replaces the mutable fields of the recipe owned by
	// arg.Author. ErrNotFound is returned if no such recipe exists.
	UpdateRecipe(ctx context.Context, arg UpdateRecipeParams) (Recipe, error)
	// AddRecipeRating appends the rating unless the user already rated.
	AddRecipeRating(ctx context.Context, arg AddRecipeRatingParams) (bool, error)
	AddRecipeComment(ctx context.Context, arg AddRecipeCommentParams) (bool, error)
	DeleteRecipeComment(ctx context.Context, arg DeleteRecipeCommentParams) (bool, error)
	DeleteRecipe(ctx context.Context, id string) (bool, error)

	GetUser(ctx context.Context, id string) (User, error)
	GetUsers(ctx context.Context, ids []string) ([]User, error)
	UpdateUserFavorites(ctx context.Context, arg UpdateUserFavoritesParams) error
	GrantUserRole(ctx context.Context, arg GrantUserRoleParams) (bool, error)
}

type Database struct {
	Querier

	closer func(context.Context) error
}

func New(q Querier, closer func(context.Context) error) *Database {
	return &Database{
		Querier: q,
		closer:  closer,
	}
}

func (d *Database) Close(ctx context.Context) error {
	if d == nil || d.closer == nil {
		return nil
	}
	return d.closer(ctx)
}

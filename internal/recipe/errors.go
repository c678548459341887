package recipe

import "errors"

var (
	ErrInvalidRecipe = errors.New("invalid recipe")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	ErrEmptyComment  = errors.New("comment is required")

	ErrRecipeNotFound  = errors.New("recipe not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrUserNotFound    = errors.New("user not found")

	ErrNotAuthorized = errors.New("not authorized")
	ErrAlreadyRated  = errors.New("user has already rated this recipe")
)

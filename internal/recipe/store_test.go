package recipe

import (
	"context"
	"slices"
	"strconv"
	"sync"

	"github.com/matt-dz/tastebook/internal/database"
)

// memoryStore is an in-memory Querier with the same conditional-write
// semantics as the real backends.
type memoryStore struct {
	mu      sync.Mutex
	nextID  int
	recipes map[string]database.Recipe
	users   map[string]database.User
}

var _ database.Querier = (*memoryStore)(nil)

func newMemoryStore(users ...database.User) *memoryStore {
	s := &memoryStore{
		recipes: map[string]database.Recipe{},
		users:   map[string]database.User{},
	}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func cloneRecipe(r database.Recipe) database.Recipe {
	r.Ingredients = slices.Clone(r.Ingredients)
	r.Instructions = slices.Clone(r.Instructions)
	r.Ratings = slices.Clone(r.Ratings)
	r.Comments = slices.Clone(r.Comments)
	return r
}

func (s *memoryStore) CreateRecipe(_ context.Context, arg database.CreateRecipeParams) (database.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	r := database.Recipe{
		ID:           "recipe-" + strconv.Itoa(s.nextID),
		Title:        arg.Title,
		Description:  arg.Description,
		Image:        arg.Image,
		CookingTime:  arg.CookingTime,
		Ingredients:  arg.Ingredients,
		Instructions: arg.Instructions,
		Category:     arg.Category,
		Author:       arg.Author,
		Ratings:      []database.Rating{},
		Comments:     []database.Comment{},
		CreatedAt:    arg.CreatedAt,
		UpdatedAt:    arg.CreatedAt,
	}
	s.recipes[r.ID] = cloneRecipe(r)
	return r, nil
}

func (s *memoryStore) GetRecipe(_ context.Context, id string) (database.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.recipes[id]
	if !ok {
		return database.Recipe{}, database.ErrNotFound
	}
	return cloneRecipe(r), nil
}

func (s *memoryStore) ListRecipes(context.Context) ([]database.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]database.Recipe, 0, len(s.recipes))
	for _, r := range s.recipes {
		out = append(out, cloneRecipe(r))
	}
	slices.SortFunc(out, func(a, b database.Recipe) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

func (s *memoryStore) UpdateRecipe(_ context.Context, arg database.UpdateRecipeParams) (database.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.recipes[arg.ID]
	if !ok || r.Author != arg.Author {
		return database.Recipe{}, database.ErrNotFound
	}
	r.Title = arg.Title
	r.Description = arg.Description
	r.Image = arg.Image
	r.CookingTime = arg.CookingTime
	r.Ingredients = arg.Ingredients
	r.Instructions = arg.Instructions
	r.Category = arg.Category
	r.UpdatedAt = arg.UpdatedAt
	s.recipes[r.ID] = cloneRecipe(r)
	return r, nil
}

func (s *memoryStore) AddRecipeRating(_ context.Context, arg database.AddRecipeRatingParams) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.recipes[arg.RecipeID]
	if !ok || hasRated(r, arg.Rating.User) {
		return false, nil
	}
	r.Ratings = append(r.Ratings, arg.Rating)
	r.UpdatedAt = arg.UpdatedAt
	s.recipes[r.ID] = r
	return true, nil
}

func (s *memoryStore) AddRecipeComment(_ context.Context, arg database.AddRecipeCommentParams) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.recipes[arg.RecipeID]
	if !ok {
		return false, nil
	}
	r.Comments = append(r.Comments, arg.Comment)
	r.UpdatedAt = arg.Comment.CreatedAt
	s.recipes[r.ID] = r
	return true, nil
}

func (s *memoryStore) DeleteRecipeComment(_ context.Context, arg database.DeleteRecipeCommentParams) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.recipes[arg.RecipeID]
	if !ok {
		return false, nil
	}
	i := slices.IndexFunc(r.Comments, func(c database.Comment) bool { return c.ID == arg.CommentID })
	if i < 0 {
		return false, nil
	}
	r.Comments = slices.Delete(r.Comments, i, i+1)
	r.UpdatedAt = arg.UpdatedAt
	s.recipes[r.ID] = r
	return true, nil
}

func (s *memoryStore) DeleteRecipe(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.recipes[id]; !ok {
		return false, nil
	}
	delete(s.recipes, id)
	return true, nil
}

func (s *memoryStore) GetUser(_ context.Context, id string) (database.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return database.User{}, database.ErrNotFound
	}
	return u, nil
}

func (s *memoryStore) GetUsers(_ context.Context, ids []string) ([]database.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []database.User{}
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *memoryStore) UpdateUserFavorites(_ context.Context, arg database.UpdateUserFavoritesParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[arg.ID]
	if !ok {
		return database.ErrNotFound
	}
	u.Favorites = slices.Clone(arg.Favorites)
	s.users[u.ID] = u
	return nil
}

func (s *memoryStore) GrantUserRole(_ context.Context, arg database.GrantUserRoleParams) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, u := range s.users {
		if u.Email == arg.Email {
			if !slices.Contains(u.Roles, arg.Role) {
				u.Roles = append(u.Roles, arg.Role)
			}
			s.users[id] = u
			return true, nil
		}
	}
	return false, nil
}

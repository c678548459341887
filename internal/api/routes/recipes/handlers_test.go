package recipes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	apiError "github.com/matt-dz/tastebook/internal/api/error"
	"github.com/matt-dz/tastebook/internal/api/requestid"
	"github.com/matt-dz/tastebook/internal/cache"
	"github.com/matt-dz/tastebook/internal/config"
	"github.com/matt-dz/tastebook/internal/database"
	"github.com/matt-dz/tastebook/internal/dbmock"
	"github.com/matt-dz/tastebook/internal/env"
	"github.com/matt-dz/tastebook/internal/favorite"
	"github.com/matt-dz/tastebook/internal/identity"
	"github.com/matt-dz/tastebook/internal/log"
	"github.com/matt-dz/tastebook/internal/recipe"
	"github.com/matt-dz/tastebook/internal/role"
)

const validRecipeBody = `{
	"title": "Tea",
	"description": "hot",
	"image": "tea.png",
	"cookingTime": "5m",
	"ingredients": ["water", "tea"],
	"instructions": ["boil", "steep"],
	"category": "Vegan"
}`

var (
	alice = database.User{ID: "alice", Name: "Alice", Roles: []string{"User"}}
	bob   = database.User{ID: "bob", Name: "Bob", Roles: []string{"User"}}
)

func storedRecipe() database.Recipe {
	return database.Recipe{
		ID:           "r1",
		Title:        "Tea",
		Description:  "hot",
		Image:        "tea.png",
		CookingTime:  "5m",
		Ingredients:  []string{"water", "tea"},
		Instructions: []string{"boil", "steep"},
		Category:     "Vegan",
		Author:       alice.ID,
		Ratings:      []database.Rating{{User: bob.ID, Rating: 4}},
		Comments:     []database.Comment{{ID: "c1", User: bob.ID, Text: "nice", CreatedAt: time.Unix(0, 0).UTC()}},
	}
}

func newEnv(db database.Querier) *env.Env {
	v := config.AppSecretValue("test-secret-32-bytes-long-123456")
	conf := config.Config{AppSecret: config.AppSecret{Value: &v, Version: "1"}}
	return env.New(log.NullLogger(), db, cache.Null{}, conf)
}

// newRequest builds a request carrying the env, the route params and,
// when user is not empty, an authenticated identity.
func newRequest(e *env.Env, method, target, body string, user database.User, params map[string]string) *http.Request {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	ctx := env.WithCtx(r.Context(), e)
	ctx = requestid.InjectRequestID(ctx, 42)
	if user.ID != "" {
		ctx = identity.WithCtx(ctx, identity.Identity{UserID: user.ID, Roles: role.ParseSet(user.Roles)})
	}
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	return r.WithContext(ctx)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) apiError.Error {
	t.Helper()
	var body apiError.Error
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	if body.ErrorID != "42" {
		t.Errorf("expected error id %q, got %q", "42", body.ErrorID)
	}
	return body
}

func assertResponse(t *testing.T, w *httptest.ResponseRecorder, wantStatus int, wantCode apiError.ErrorCode) {
	t.Helper()
	if w.Code != wantStatus {
		t.Fatalf("expected status %d, got %d: %s", wantStatus, w.Code, w.Body.String())
	}
	if wantCode == "" {
		return
	}
	if body := decodeError(t, w); body.Code != wantCode {
		t.Errorf("expected error code %q, got %q", wantCode, body.Code)
	}
}

func TestHandleListRecipes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := dbmock.NewMockQuerier(ctrl)
	mockDB.EXPECT().ListRecipes(gomock.Any()).Return([]database.Recipe{storedRecipe()}, nil)
	mockDB.EXPECT().GetUsers(gomock.Any(), []string{alice.ID}).Return([]database.User{alice}, nil)

	w := httptest.NewRecorder()
	HandleListRecipes(w, newRequest(newEnv(mockDB), http.MethodGet, "/api/recipe", "", database.User{}, nil))

	assertResponse(t, w, http.StatusOK, "")
	var views []recipe.RecipeView
	if err := json.NewDecoder(w.Body).Decode(&views); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 recipe, got %d", len(views))
	}
	if views[0].Author.Name != alice.Name {
		t.Errorf("expected author name %q, got %q", alice.Name, views[0].Author.Name)
	}
	if views[0].AverageRating != 4 {
		t.Errorf("expected average rating 4, got %v", views[0].AverageRating)
	}
}

func TestHandleListRecipesStoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := dbmock.NewMockQuerier(ctrl)
	mockDB.EXPECT().ListRecipes(gomock.Any()).Return(nil, errors.New("connection refused"))

	w := httptest.NewRecorder()
	HandleListRecipes(w, newRequest(newEnv(mockDB), http.MethodGet, "/api/recipe", "", database.User{}, nil))

	assertResponse(t, w, http.StatusInternalServerError, apiError.InternalServerError)
}

func TestHandleGetRecipe(t *testing.T) {
	tests := []struct {
		name       string
		setupMock  func(*dbmock.MockQuerier)
		wantStatus int
		wantCode   apiError.ErrorCode
	}{
		{
			name: "found",
			setupMock: func(m *dbmock.MockQuerier) {
				m.EXPECT().GetRecipe(gomock.Any(), "r1").Return(storedRecipe(), nil)
				m.EXPECT().GetUsers(gomock.Any(), []string{alice.ID, bob.ID}).Return([]database.User{alice, bob}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "not found",
			setupMock: func(m *dbmock.MockQuerier) {
				m.EXPECT().GetRecipe(gomock.Any(), "r1").Return(database.Recipe{}, database.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantCode:   apiError.RecipeNotFound,
		},
		{
			name: "store failure",
			setupMock: func(m *dbmock.MockQuerier) {
				m.EXPECT().GetRecipe(gomock.Any(), "r1").Return(database.Recipe{}, errors.New("timeout"))
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   apiError.InternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockDB := dbmock.NewMockQuerier(ctrl)
			tt.setupMock(mockDB)

			w := httptest.NewRecorder()
			r := newRequest(newEnv(mockDB), http.MethodGet, "/api/recipe/r1", "", database.User{}, map[string]string{"id": "r1"})
			HandleGetRecipe(w, r)

			assertResponse(t, w, tt.wantStatus, tt.wantCode)
			if tt.wantCode != "" {
				return
			}
			var view recipe.RecipeView
			if err := json.NewDecoder(w.Body).Decode(&view); err != nil {
				t.Fatalf("decoding body: %v", err)
			}
			if len(view.Comments) != 1 || view.Comments[0].User.Name != bob.Name {
				t.Errorf("expected comment by %q, got %+v", bob.Name, view.Comments)
			}
		})
	}
}

func TestHandleCreateRecipe(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		user       database.User
		setupMock  func(*dbmock.MockQuerier)
		wantStatus int
		wantCode   apiError.ErrorCode
	}{
		{
			name: "valid recipe",
			body: validRecipeBody,
			user: alice,
			setupMock: func(m *dbmock.MockQuerier) {
				m.EXPECT().CreateRecipe(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, arg database.CreateRecipeParams) (database.Recipe, error) {
						if arg.Author != alice.ID {
							t.Errorf("expected author %q, got %q", alice.ID, arg.Author)
						}
						return database.Recipe{ID: "r1", Author: arg.Author, Title: arg.Title}, nil
					})
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "malformed body",
			body:       `{"title": `,
			user:       alice,
			setupMock:  func(*dbmock.MockQuerier) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   apiError.BadRequest,
		},
		{
			name:       "missing fields",
			body:       `{"title": "Tea", "category": "Vegan"}`,
			user:       alice,
			setupMock:  func(*dbmock.MockQuerier) {},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   apiError.UnprocessibleEntity,
		},
		{
			name:       "unknown category",
			body:       strings.Replace(validRecipeBody, `"Vegan"`, `"Paleo"`, 1),
			user:       alice,
			setupMock:  func(*dbmock.MockQuerier) {},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   apiError.UnprocessibleEntity,
		},
		{
			name:       "no identity",
			body:       validRecipeBody,
			setupMock:  func(*dbmock.MockQuerier) {},
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiError.InvalidAccessToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockDB := dbmock.NewMockQuerier(ctrl)
			tt.setupMock(mockDB)

			w := httptest.NewRecorder()
			HandleCreateRecipe(w, newRequest(newEnv(mockDB), http.MethodPost, "/api/recipe", tt.body, tt.user, nil))

			assertResponse(t, w, tt.wantStatus, tt.wantCode)
		})
	}
}

func TestHandleUpdateRecipe(t *testing.T) {
	tests := []struct {
		name       string
		user       database.User
		setupMock  func(*dbmock.MockQuerier)
		wantStatus int
		wantCode   apiError.ErrorCode
	}{
		{
			name: "author",
			user: alice,
			setupMock: func(m *dbmock.MockQuerier) {
				m.EXPECT().GetRecipe(gomock.Any(), "r1").Return(storedRecipe(), nil)
				m.EXPECT().UpdateRecipe(gomock.Any(), gomock.Any()).Return(storedRecipe(), nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "not the author",
			user: bob,
			setupMock: func(m *dbmock.MockQuerier) {
				m.EXPECT().GetRecipe(gomock.Any(), "r1").Return(storedRecipe(), nil)
			},
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiError.RecipeNotOwned,
		},
		{
			name: "missing recipe",
			user: alice,
			setupMock: func(m *dbmock.MockQuerier) {
				m.EXPECT().GetRecipe(gomock.Any(), "r1").Return(database.Recipe{}, database.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantCode:   apiError.RecipeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockDB := dbmock.NewMockQuerier(ctrl)
			tt.setupMock(mockDB)

			w := httptest.NewRecorder()
			r := newRequest(newEnv(mockDB), http.MethodPut, "/api/recipe/r1", validRecipeBody, tt.user, map[string]string{"id": "r1"})
			HandleUpdateRecipe(w, r)

			assertResponse(t, w, tt.wantStatus, tt.wantCode)
		})
	}
}

func TestHandleDeleteRecipe(t *testing.T) {
	tests := []struct {
		name       string
		user       database.User
		setupMock  func(*dbmock.MockQuerier)
		wantStatus int
		wantCode   apiError.ErrorCode
	}{
		{
			name: "author",
			user: alice,
			setupMock: func(m *dbmock.MockQuerier) {
				m.EXPECT().GetRecipe(gomock.Any(), "r1").Return(storedRecipe(), nil)
				m.EXPECT().GetUser(gomock.Any(), alice.ID).Return(alice, nil)
				m.EXPECT().DeleteRecipe(gomock.Any(), "r1").Return(true, nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name: "not the author",
			user: bob,
			setupMock: func(m *dbmock.MockQuerier) {
				m.EXPECT().GetRecipe(gomock.Any(), "r1").Return(storedRecipe(), nil)
				m.EXPECT().GetUser(gomock.Any(), bob.ID).Return(bob, nil)
			},
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiError.RecipeNotOwned,
		},
		{
			name: "deleted concurrently",
			user: alice,
			setupMock: func(m *dbmock.MockQuerier) {
				m.EXPECT().GetRecipe(gomock.Any(), "r1").Return(storedRecipe(), nil)
				m.EXPECT().GetUser(gomock.Any(), alice.ID).Return(alice, nil)
				m.EXPECT().DeleteRecipe(gomock.Any(), "r1").Return(false, nil)
			},
			wantStatus: http.StatusNotFound,
			wantCode:   apiError.RecipeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockDB := dbmock.NewMockQuerier(ctrl)
			tt.setupMock(mockDB)

			w := httptest.NewRecorder()
			r := newRequest(newEnv(mockDB), http.MethodDelete, "/api/recipe/r1", "", tt.user, map[string]string{"id": "r1"})
			HandleDeleteRecipe(w, r)

			assertResponse(t, w, tt.wantStatus, tt.wantCode)
		})
	}
}

func TestHandleRateRecipe(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		user       database.User
		setupMock  func(*dbmock.MockQuerier)
		wantStatus int
		wantCode   apiError.ErrorCode
	}{
		{
			name: "first rating",
			body: `{"rating": 5}`,
			user: alice,
			setupMock: func(m *dbmock.MockQuerier) {
				m.EXPECT().GetRecipe(gomock.Any(), "r1").Return(storedRecipe(), nil)
				m.EXPECT().AddRecipeRating(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, arg database.AddRecipeRatingParams) (bool, error) {
						want := database.Rating{User: alice.ID, Rating: 5}
						if arg.Rating != want {
							t.Errorf("expected rating %+v, got %+v", want, arg.Rating)
						}
						return true, nil
					})
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "already rated",
			body: `{"rating": 3}`,
			user: bob,
			setupMock: func(m *dbmock.MockQuerier) {
				m.EXPECT().GetRecipe(gomock.Any(), "r1").Return(storedRecipe(), nil)
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   apiError.AlreadyRated,
		},
		{
			name:       "out of range",
			body:       `{"rating": 6}`,
			user:       alice,
			setupMock:  func(*dbmock.MockQuerier) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   apiError.InvalidRating,
		},
		{
			name:       "not a number",
			body:       `{"rating": "five"}`,
			user:       alice,
			setupMock:  func(*dbmock.MockQuerier) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   apiError.BadRequest,
		},
		{
			name: "missing recipe",
			body: `{"rating": 2}`,
			user: alice,
			setupMock: func(m *dbmock.MockQuerier) {
				m.EXPECT().GetRecipe(gomock.Any(), "r1").Return(database.Recipe{}, database.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantCode:   apiError.RecipeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockDB := dbmock.NewMockQuerier(ctrl)
			tt.setupMock(mockDB)

			w := httptest.NewRecorder()
			r := newRequest(newEnv(mockDB), http.MethodPut, "/api/recipe/rate/r1", tt.body, tt.user, map[string]string{"id": "r1"})
			HandleRateRecipe(w, r)

			assertResponse(t, w, tt.wantStatus, tt.wantCode)
			if tt.wantCode == "" {
				var resp MessageResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("decoding body: %v", err)
				}
				if resp.Message == "" {
					t.Error("expected a message")
				}
			}
		})
	}
}

func TestHandleAddComment(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMock  func(*dbmock.MockQuerier)
		wantStatus int
		wantCode   apiError.ErrorCode
	}{
		{
			name: "comment added",
			body: `{"comment": "lovely"}`,
			setupMock: func(m *dbmock.MockQuerier) {
				m.EXPECT().AddRecipeComment(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, arg database.AddRecipeCommentParams) (bool, error) {
						if arg.Comment.Text != "lovely" || arg.Comment.User != bob.ID || arg.Comment.ID == "" {
							t.Errorf("unexpected comment %+v", arg.Comment)
						}
						return true, nil
					})
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "blank comment",
			body:       `{"comment": "   "}`,
			setupMock:  func(*dbmock.MockQuerier) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   apiError.EmptyComment,
		},
		{
			name: "missing recipe",
			body: `{"comment": "lovely"}`,
			setupMock: func(m *dbmock.MockQuerier) {
				m.EXPECT().AddRecipeComment(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantStatus: http.StatusNotFound,
			wantCode:   apiError.RecipeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockDB := dbmock.NewMockQuerier(ctrl)
			tt.setupMock(mockDB)

			w := httptest.NewRecorder()
			r := newRequest(newEnv(mockDB), http.MethodPost, "/api/recipe/comment/r1", tt.body, bob, map[string]string{"id": "r1"})
			HandleAddComment(w, r)

			assertResponse(t, w, tt.wantStatus, tt.wantCode)
		})
	}
}

func TestHandleDeleteComment(t *testing.T) {
	tests := []struct {
		name       string
		commentID  string
		setupMock  func(*dbmock.MockQuerier)
		wantStatus int
		wantCode   apiError.ErrorCode
	}{
		{
			name:      "comment removed",
			commentID: "c1",
			setupMock: func(m *dbmock.MockQuerier) {
				m.EXPECT().GetRecipe(gomock.Any(), "r1").Return(storedRecipe(), nil)
				m.EXPECT().DeleteRecipeComment(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:      "unknown comment",
			commentID: "c9",
			setupMock: func(m *dbmock.MockQuerier) {
				m.EXPECT().GetRecipe(gomock.Any(), "r1").Return(storedRecipe(), nil)
			},
			wantStatus: http.StatusNotFound,
			wantCode:   apiError.CommentNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockDB := dbmock.NewMockQuerier(ctrl)
			tt.setupMock(mockDB)

			w := httptest.NewRecorder()
			r := newRequest(newEnv(mockDB), http.MethodDelete, "/api/recipe/comment/r1/"+tt.commentID, "", alice,
				map[string]string{"recipeId": "r1", "commentId": tt.commentID})
			HandleDeleteComment(w, r)

			assertResponse(t, w, tt.wantStatus, tt.wantCode)
		})
	}
}

func TestHandleToggleFavorite(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(*dbmock.MockQuerier)
		wantStatus    int
		wantCode      apiError.ErrorCode
		wantFavorites []string
	}{
		{
			name: "added",
			setupMock: func(m *dbmock.MockQuerier) {
				m.EXPECT().GetUser(gomock.Any(), alice.ID).Return(alice, nil)
				m.EXPECT().UpdateUserFavorites(gomock.Any(), database.UpdateUserFavoritesParams{
					ID:        alice.ID,
					Favorites: []string{"r1"},
				}).Return(nil)
			},
			wantStatus:    http.StatusCreated,
			wantFavorites: []string{"r1"},
		},
		{
			name: "unknown user",
			setupMock: func(m *dbmock.MockQuerier) {
				m.EXPECT().GetUser(gomock.Any(), alice.ID).Return(database.User{}, database.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantCode:   apiError.UserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockDB := dbmock.NewMockQuerier(ctrl)
			tt.setupMock(mockDB)

			w := httptest.NewRecorder()
			r := newRequest(newEnv(mockDB), http.MethodPut, "/api/recipe/favorite/r1", "", alice, map[string]string{"id": "r1"})
			HandleToggleFavorite(w, r)

			assertResponse(t, w, tt.wantStatus, tt.wantCode)
			if tt.wantCode != "" {
				return
			}
			var result favorite.Result
			if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
				t.Fatalf("decoding body: %v", err)
			}
			if result.AccessToken == "" {
				t.Error("expected an access token")
			}
			if len(result.Favorites) != len(tt.wantFavorites) || result.Favorites[0] != tt.wantFavorites[0] {
				t.Errorf("expected favorites %v, got %v", tt.wantFavorites, result.Favorites)
			}
		})
	}
}

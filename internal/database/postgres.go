package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/matt-dz/tastebook/internal/sql"
)

// DBTX is the subset of pgxpool.Pool used by PgQueries.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PgQueries implements Querier on top of Postgres, keeping ratings
// and comments as JSONB arrays on the recipe row.
type PgQueries struct {
	db DBTX
}

var _ Querier = (*PgQueries)(nil)

func NewPgQueries(db DBTX) *PgQueries {
	return &PgQueries{db: db}
}

// ConnectPostgres opens a pool and applies the schema.
func ConnectPostgres(ctx context.Context, connString string) (*Database, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("creating database pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	q := NewPgQueries(pool)
	if err := q.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return New(q, func(context.Context) error {
		pool.Close()
		return nil
	}), nil
}

// EnsureSchema applies the schema. Every statement is idempotent.
func (q *PgQueries) EnsureSchema(ctx context.Context) error {
	if _, err := q.db.Exec(ctx, sql.Schema()); err != nil {
		return fmt.Errorf("applying database schema: %w", err)
	}
	return nil
}

const recipeColumns = `id, title, description, image, cooking_time, ingredients, instructions,
	category, author_id, ratings, comments, created_at, updated_at`

func scanRecipe(row pgx.Row) (Recipe, error) {
	var r Recipe
	err := row.Scan(
		&r.ID,
		&r.Title,
		&r.Description,
		&r.Image,
		&r.CookingTime,
		&r.Ingredients,
		&r.Instructions,
		&r.Category,
		&r.Author,
		&r.Ratings,
		&r.Comments,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if r.Ratings == nil {
		r.Ratings = []Rating{}
	}
	if r.Comments == nil {
		r.Comments = []Comment{}
	}
	return r, err
}

func jsonb(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encoding jsonb: %w", err)
	}
	return string(b), nil
}

const createRecipe = `INSERT INTO recipes (
	id, title, description, image, cooking_time, ingredients, instructions,
	category, author_id, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7::jsonb, $8, $9, $10, $10)
RETURNING ` + recipeColumns

func (q *PgQueries) CreateRecipe(ctx context.Context, arg CreateRecipeParams) (Recipe, error) {
	ingredients, err := jsonb(arg.Ingredients)
	if err != nil {
		return Recipe{}, err
	}
	instructions, err := jsonb(arg.Instructions)
	if err != nil {
		return Recipe{}, err
	}

	row := q.db.QueryRow(ctx, createRecipe,
		uuid.NewString(),
		arg.Title,
		arg.Description,
		arg.Image,
		arg.CookingTime,
		ingredients,
		instructions,
		arg.Category,
		arg.Author,
		arg.CreatedAt,
	)
	recipe, err := scanRecipe(row)
	if err != nil {
		return Recipe{}, fmt.Errorf("inserting recipe: %w", err)
	}
	return recipe, nil
}

const getRecipe = `SELECT ` + recipeColumns + ` FROM recipes WHERE id = $1`

func (q *PgQueries) GetRecipe(ctx context.Context, id string) (Recipe, error) {
	recipe, err := scanRecipe(q.db.QueryRow(ctx, getRecipe, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Recipe{}, ErrNotFound
	} else if err != nil {
		return Recipe{}, fmt.Errorf("selecting recipe: %w", err)
	}
	return recipe, nil
}

const listRecipes = `SELECT ` + recipeColumns + ` FROM recipes ORDER BY created_at DESC`

func (q *PgQueries) ListRecipes(ctx context.Context) ([]Recipe, error) {
	rows, err := q.db.Query(ctx, listRecipes)
	if err != nil {
		return nil, fmt.Errorf("listing recipes: %w", err)
	}
	defer rows.Close()

	recipes := []Recipe{}
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning recipe: %w", err)
		}
		recipes = append(recipes, recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recipes: %w", err)
	}
	return recipes, nil
}

const updateRecipe = `UPDATE recipes SET
	title = $3,
	description = $4,
	image = $5,
	cooking_time = $6,
	ingredients = $7::jsonb,
	instructions = $8::jsonb,
	category = $9,
	updated_at = $10
WHERE id = $1 AND author_id = $2
RETURNING ` + recipeColumns

func (q *PgQueries) UpdateRecipe(ctx context.Context, arg UpdateRecipeParams) (Recipe, error) {
	ingredients, err := jsonb(arg.Ingredients)
	if err != nil {
		return Recipe{}, err
	}
	instructions, err := jsonb(arg.Instructions)
	if err != nil {
		return Recipe{}, err
	}

	row := q.db.QueryRow(ctx, updateRecipe,
		arg.ID,
		arg.Author,
		arg.Title,
		arg.Description,
		arg.Image,
		arg.CookingTime,
		ingredients,
		instructions,
		arg.Category,
		arg.UpdatedAt,
	)
	recipe, err := scanRecipe(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Recipe{}, ErrNotFound
	} else if err != nil {
		return Recipe{}, fmt.Errorf("updating recipe: %w", err)
	}
	return recipe, nil
}

// The containment check makes the append conditional on the user
// having no rating yet.
const addRecipeRating = `UPDATE recipes SET
	ratings = ratings || $2::jsonb,
	updated_at = $4
WHERE id = $1 AND NOT ratings @> $3::jsonb`

func (q *PgQueries) AddRecipeRating(ctx context.Context, arg AddRecipeRatingParams) (bool, error) {
	rating, err := jsonb([]Rating{arg.Rating})
	if err != nil {
		return false, err
	}
	byUser, err := jsonb([]map[string]string{{"user": arg.Rating.User}})
	if err != nil {
		return false, err
	}

	tag, err := q.db.Exec(ctx, addRecipeRating, arg.RecipeID, rating, byUser, arg.UpdatedAt)
	if err != nil {
		return false, fmt.Errorf("appending rating: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

const addRecipeComment = `UPDATE recipes SET
	comments = comments || $2::jsonb,
	updated_at = $3
WHERE id = $1`

func (q *PgQueries) AddRecipeComment(ctx context.Context, arg AddRecipeCommentParams) (bool, error) {
	comment, err := jsonb([]Comment{arg.Comment})
	if err != nil {
		return false, err
	}

	tag, err := q.db.Exec(ctx, addRecipeComment, arg.RecipeID, comment, arg.Comment.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("appending comment: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

const deleteRecipeComment = `UPDATE recipes SET
	comments = (
		SELECT COALESCE(jsonb_agg(c ORDER BY ord), '[]'::jsonb)
		FROM jsonb_array_elements(comments) WITH ORDINALITY AS t(c, ord)
		WHERE c->>'_id' <> $2
	),
	updated_at = $4
WHERE id = $1 AND comments @> $3::jsonb`

func (q *PgQueries) DeleteRecipeComment(ctx context.Context, arg DeleteRecipeCommentParams) (bool, error) {
	byID, err := jsonb([]map[string]string{{"_id": arg.CommentID}})
	if err != nil {
		return false, err
	}

	tag, err := q.db.Exec(ctx, deleteRecipeComment, arg.RecipeID, arg.CommentID, byID, arg.UpdatedAt)
	if err != nil {
		return false, fmt.Errorf("removing comment: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (q *PgQueries) DeleteRecipe(ctx context.Context, id string) (bool, error) {
	tag, err := q.db.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("deleting recipe: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

const userColumns = `id, name, email, profile_picture, roles, favorites`

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.ProfilePicture, &u.Roles, &u.Favorites)
	return u, err
}

func (q *PgQueries) GetUser(ctx context.Context, id string) (User, error) {
	user, err := scanUser(q.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	} else if err != nil {
		return User{}, fmt.Errorf("selecting user: %w", err)
	}
	return user, nil
}

func (q *PgQueries) GetUsers(ctx context.Context, ids []string) ([]User, error) {
	if len(ids) == 0 {
		return []User{}, nil
	}

	rows, err := q.db.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("selecting users: %w", err)
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}
	return users, nil
}

func (q *PgQueries) UpdateUserFavorites(ctx context.Context, arg UpdateUserFavoritesParams) error {
	favorites := arg.Favorites
	if favorites == nil {
		favorites = []string{}
	}

	tag, err := q.db.Exec(ctx,
		`UPDATE users SET favorites = $2, updated_at = now() WHERE id = $1`,
		arg.ID, favorites)
	if err != nil {
		return fmt.Errorf("updating favorites: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const grantUserRole = `UPDATE users SET
	roles = CASE WHEN $2::text = ANY(roles) THEN roles ELSE array_append(roles, $2::text) END,
	updated_at = now()
WHERE email = $1`

func (q *PgQueries) GrantUserRole(ctx context.Context, arg GrantUserRoleParams) (bool, error) {
	tag, err := q.db.Exec(ctx, grantUserRole, arg.Email, arg.Role)
	if err != nil {
		return false, fmt.Errorf("granting role: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

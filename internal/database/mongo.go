package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	recipesCollection = "recipes"
	usersCollection   = "users"
)

type mongoRating struct {
	User   primitive.ObjectID `bson:"user"`
	Rating int                `bson:"rating"`
}

type mongoComment struct {
	ID        string             `bson:"_id"`
	User      primitive.ObjectID `bson:"user"`
	Text      string             `bson:"comment"`
	CreatedAt time.Time          `bson:"date"`
}

type mongoRecipe struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Description  string             `bson:"description"`
	Image        string             `bson:"image"`
	CookingTime  string             `bson:"cookingTime"`
	Ingredients  []string           `bson:"ingredients"`
	Instructions []string           `bson:"instructions"`
	Category     string             `bson:"category"`
	Author       primitive.ObjectID `bson:"author"`
	Ratings      []mongoRating      `bson:"ratings"`
	Comments     []mongoComment     `bson:"comments"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

type mongoUser struct {
	ID             primitive.ObjectID `bson:"_id"`
	Name           string             `bson:"name"`
	Email          string             `bson:"email"`
	ProfilePicture string             `bson:"profilePicture"`
	Roles          []string           `bson:"roles"`
	Favorites      []string           `bson:"favorites"`
}

func (r mongoRecipe) toRecipe() Recipe {
	recipe := Recipe{
		ID:           r.ID.Hex(),
		Title:        r.Title,
		Description:  r.Description,
		Image:        r.Image,
		CookingTime:  r.CookingTime,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		Category:     r.Category,
		Author:       r.Author.Hex(),
		Ratings:      make([]Rating, 0, len(r.Ratings)),
		Comments:     make([]Comment, 0, len(r.Comments)),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	for _, rating := range r.Ratings {
		recipe.Ratings = append(recipe.Ratings, Rating{User: rating.User.Hex(), Rating: rating.Rating})
	}
	for _, c := range r.Comments {
		recipe.Comments = append(recipe.Comments, Comment{
			ID:        c.ID,
			User:      c.User.Hex(),
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
		})
	}
	return recipe
}

func (u mongoUser) toUser() User {
	return User{
		ID:             u.ID.Hex(),
		Name:           u.Name,
		Email:          u.Email,
		ProfilePicture: u.ProfilePicture,
		Roles:          u.Roles,
		Favorites:      u.Favorites,
	}
}

// MongoQueries implements Querier on top of a MongoDB database.
type MongoQueries struct {
	recipes *mongo.Collection
	users   *mongo.Collection
}

var _ Querier = (*MongoQueries)(nil)

func NewMongoQueries(db *mongo.Database) *MongoQueries {
	return &MongoQueries{
		recipes: db.Collection(recipesCollection),
		users:   db.Collection(usersCollection),
	}
}

// ConnectMongo dials uri, verifies the connection and ensures indexes.
func ConnectMongo(ctx context.Context, uri, database string) (*Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}

	q := NewMongoQueries(client.Database(database))
	if err := q.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return New(q, client.Disconnect), nil
}

// EnsureIndexes creates the indexes used by list ordering and user lookup.
func (q *MongoQueries) EnsureIndexes(ctx context.Context) error {
	_, err := q.recipes.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "author", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("creating recipe indexes: %w", err)
	}

	_, err = q.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("creating user indexes: %w", err)
	}
	return nil
}

func objectID(hex string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(hex)
	return id, err == nil
}

func (q *MongoQueries) CreateRecipe(ctx context.Context, arg CreateRecipeParams) (Recipe, error) {
	author, ok := objectID(arg.Author)
	if !ok {
		return Recipe{}, fmt.Errorf("invalid author id %q", arg.Author)
	}

	doc := mongoRecipe{
		ID:           primitive.NewObjectID(),
		Title:        arg.Title,
		Description:  arg.Description,
		Image:        arg.Image,
		CookingTime:  arg.CookingTime,
		Ingredients:  arg.Ingredients,
		Instructions: arg.Instructions,
		Category:     arg.Category,
		Author:       author,
		Ratings:      []mongoRating{},
		Comments:     []mongoComment{},
		CreatedAt:    arg.CreatedAt,
		UpdatedAt:    arg.CreatedAt,
	}
	if _, err := q.recipes.InsertOne(ctx, doc); err != nil {
		return Recipe{}, fmt.Errorf("inserting recipe: %w", err)
	}
	return doc.toRecipe(), nil
}

func (q *MongoQueries) GetRecipe(ctx context.Context, id string) (Recipe, error) {
	oid, ok := objectID(id)
	if !ok {
		return Recipe{}, ErrNotFound
	}

	var doc mongoRecipe
	err := q.recipes.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Recipe{}, ErrNotFound
	} else if err != nil {
		return Recipe{}, fmt.Errorf("finding recipe: %w", err)
	}
	return doc.toRecipe(), nil
}

func (q *MongoQueries) ListRecipes(ctx context.Context) ([]Recipe, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := q.recipes.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("listing recipes: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var docs []mongoRecipe
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding recipes: %w", err)
	}

	recipes := make([]Recipe, 0, len(docs))
	for _, doc := range docs {
		recipes = append(recipes, doc.toRecipe())
	}
	return recipes, nil
}

func (q *MongoQueries) UpdateRecipe(ctx context.Context, arg UpdateRecipeParams) (Recipe, error) {
	oid, ok := objectID(arg.ID)
	if !ok {
		return Recipe{}, ErrNotFound
	}
	author, ok := objectID(arg.Author)
	if !ok {
		return Recipe{}, ErrNotFound
	}

	update := bson.M{"$set": bson.M{
		"title":        arg.Title,
		"description":  arg.Description,
		"image":        arg.Image,
		"cookingTime":  arg.CookingTime,
		"ingredients":  arg.Ingredients,
		"instructions": arg.Instructions,
		"category":     arg.Category,
		"updatedAt":    arg.UpdatedAt,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc mongoRecipe
	err := q.recipes.FindOneAndUpdate(ctx, bson.M{"_id": oid, "author": author}, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Recipe{}, ErrNotFound
	} else if err != nil {
		return Recipe{}, fmt.Errorf("updating recipe: %w", err)
	}
	return doc.toRecipe(), nil
}

func (q *MongoQueries) AddRecipeRating(ctx context.Context, arg AddRecipeRatingParams) (bool, error) {
	oid, ok := objectID(arg.RecipeID)
	if !ok {
		return false, nil
	}
	user, ok := objectID(arg.Rating.User)
	if !ok {
		return false, fmt.Errorf("invalid user id %q", arg.Rating.User)
	}

	filter := bson.M{"_id": oid, "ratings.user": bson.M{"$ne": user}}
	update := bson.M{
		"$push": bson.M{"ratings": mongoRating{User: user, Rating: arg.Rating.Rating}},
		"$set":  bson.M{"updatedAt": arg.UpdatedAt},
	}
	res, err := q.recipes.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("pushing rating: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (q *MongoQueries) AddRecipeComment(ctx context.Context, arg AddRecipeCommentParams) (bool, error) {
	oid, ok := objectID(arg.RecipeID)
	if !ok {
		return false, nil
	}
	user, ok := objectID(arg.Comment.User)
	if !ok {
		return false, fmt.Errorf("invalid user id %q", arg.Comment.User)
	}

	comment := mongoComment{
		ID:        arg.Comment.ID,
		User:      user,
		Text:      arg.Comment.Text,
		CreatedAt: arg.Comment.CreatedAt,
	}
	update := bson.M{
		"$push": bson.M{"comments": comment},
		"$set":  bson.M{"updatedAt": arg.Comment.CreatedAt},
	}
	res, err := q.recipes.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return false, fmt.Errorf("pushing comment: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (q *MongoQueries) DeleteRecipeComment(ctx context.Context, arg DeleteRecipeCommentParams) (bool, error) {
	oid, ok := objectID(arg.RecipeID)
	if !ok {
		return false, nil
	}

	filter := bson.M{"_id": oid, "comments._id": arg.CommentID}
	update := bson.M{
		"$pull": bson.M{"comments": bson.M{"_id": arg.CommentID}},
		"$set":  bson.M{"updatedAt": arg.UpdatedAt},
	}
	res, err := q.recipes.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("pulling comment: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (q *MongoQueries) DeleteRecipe(ctx context.Context, id string) (bool, error) {
	oid, ok := objectID(id)
	if !ok {
		return false, nil
	}

	res, err := q.recipes.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("deleting recipe: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (q *MongoQueries) GetUser(ctx context.Context, id string) (User, error) {
	oid, ok := objectID(id)
	if !ok {
		return User{}, ErrNotFound
	}

	var doc mongoUser
	err := q.users.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return User{}, ErrNotFound
	} else if err != nil {
		return User{}, fmt.Errorf("finding user: %w", err)
	}
	return doc.toUser(), nil
}

func (q *MongoQueries) GetUsers(ctx context.Context, ids []string) ([]User, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, ok := objectID(id); ok {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return []User{}, nil
	}

	cursor, err := q.users.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("finding users: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var docs []mongoUser
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding users: %w", err)
	}

	users := make([]User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, doc.toUser())
	}
	return users, nil
}

func (q *MongoQueries) UpdateUserFavorites(ctx context.Context, arg UpdateUserFavoritesParams) error {
	oid, ok := objectID(arg.ID)
	if !ok {
		return ErrNotFound
	}

	favorites := arg.Favorites
	if favorites == nil {
		favorites = []string{}
	}
	res, err := q.users.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"favorites": favorites}})
	if err != nil {
		return fmt.Errorf("updating favorites: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (q *MongoQueries) GrantUserRole(ctx context.Context, arg GrantUserRoleParams) (bool, error) {
	res, err := q.users.UpdateOne(ctx,
		bson.M{"email": arg.Email},
		bson.M{"$addToSet": bson.M{"roles": arg.Role}})
	if err != nil {
		return false, fmt.Errorf("granting role: %w", err)
	}
	return res.MatchedCount > 0, nil
}

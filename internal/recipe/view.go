package recipe

import (
	"time"

	"github.com/matt-dz/tastebook/internal/database"
)

// UserRef is a resolved user reference. Name and ProfilePicture are
// empty when the referenced user no longer exists.
type UserRef struct {
	ID             string `json:"_id"`
	Name           string `json:"name"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

type CommentView struct {
	ID      string    `json:"_id"`
	User    UserRef   `json:"user"`
	Comment string    `json:"comment"`
	Date    time.Time `json:"date"`
}

type RecipeView struct {
	ID            string            `json:"_id"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Image         string            `json:"image"`
	CookingTime   string            `json:"cookingTime"`
	Ingredients   []string          `json:"ingredients"`
	Instructions  []string          `json:"instructions"`
	Category      string            `json:"category"`
	Author        UserRef           `json:"author"`
	Ratings       []database.Rating `json:"ratings"`
	Comments      []CommentView     `json:"comments"`
	AverageRating float64           `json:"averageRating"`
	RatingCount   int               `json:"ratingCount"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

func AverageRating(ratings []database.Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Rating
	}
	return float64(sum) / float64(len(ratings))
}

func userRef(id string, users map[string]database.User, withPicture bool) UserRef {
	ref := UserRef{ID: id}
	if u, ok := users[id]; ok {
		ref.Name = u.Name
		if withPicture {
			ref.ProfilePicture = u.ProfilePicture
		}
	}
	return ref
}

// newView builds the read model of r. Comment users are resolved only
// when detailed is set; otherwise they carry just their id.
func newView(r database.Recipe, users map[string]database.User, detailed bool) RecipeView {
	ratings := r.Ratings
	if ratings == nil {
		ratings = []database.Rating{}
	}

	comments := make([]CommentView, 0, len(r.Comments))
	for _, c := range r.Comments {
		user := UserRef{ID: c.User}
		if detailed {
			user = userRef(c.User, users, true)
		}
		comments = append(comments, CommentView{
			ID:      c.ID,
			User:    user,
			Comment: c.Text,
			Date:    c.CreatedAt,
		})
	}

	return RecipeView{
		ID:            r.ID,
		Title:         r.Title,
		Description:   r.Description,
		Image:         r.Image,
		CookingTime:   r.CookingTime,
		Ingredients:   r.Ingredients,
		Instructions:  r.Instructions,
		Category:      r.Category,
		Author:        userRef(r.Author, users, false),
		Ratings:       ratings,
		Comments:      comments,
		AverageRating: AverageRating(ratings),
		RatingCount:   len(ratings),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

package recipe

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/matt-dz/tastebook/internal/database"
)

// Input is the full set of mutable recipe fields. Create and Update
// both require every field.
type Input struct {
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description" validate:"required"`
	Image        string   `json:"image" validate:"required"`
	CookingTime  string   `json:"cookingTime" validate:"required"`
	Ingredients  []string `json:"ingredients" validate:"min=1,dive,required"`
	Instructions []string `json:"instructions" validate:"min=1,dive,required"`
	Category     string   `json:"category" validate:"required,category"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("category", isCategory)
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate reports every invalid field wrapped in ErrInvalidRecipe.
func (in Input) Validate() error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("%w: %w", ErrInvalidRecipe, err)
	}

	problems := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		problems = append(problems, describe(e))
	}
	return fmt.Errorf("%w: %s", ErrInvalidRecipe, strings.Join(problems, "; "))
}

func describe(e validator.FieldError) string {
	switch e.Tag() {
	case "category":
		return fmt.Sprintf("%s must be one of Veg, Non-Veg, Vegan", e.Field())
	case "min":
		return fmt.Sprintf("%s must have at least one entry", e.Field())
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	default:
		return fmt.Sprintf("%s is invalid", e.Field())
	}
}

func (in Input) fields() database.RecipeFields {
	return database.RecipeFields{
		Title:        in.Title,
		Description:  in.Description,
		Image:        in.Image,
		CookingTime:  in.CookingTime,
		Ingredients:  in.Ingredients,
		Instructions: in.Instructions,
		Category:     in.Category,
	}
}

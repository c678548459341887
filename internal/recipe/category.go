package recipe

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

type Category string

const (
	CategoryVeg    Category = "Veg"
	CategoryNonVeg Category = "Non-Veg"
	CategoryVegan  Category = "Vegan"
)

var Categories = []Category{CategoryVeg, CategoryNonVeg, CategoryVegan}

// ParseCategory matches s against the known categories ignoring case.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) {
			return c, true
		}
	}
	return "", false
}

func isCategory(fl validator.FieldLevel) bool {
	_, ok := ParseCategory(fl.Field().String())
	return ok
}

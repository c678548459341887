package recipe

import (
	"errors"
	"strings"
	"testing"
)

func validInput() Input {
	return Input{
		Title:        "Tea",
		Description:  "hot",
		Image:        "x",
		CookingTime:  "5m",
		Ingredients:  []string{"water", "tea"},
		Instructions: []string{"boil", "steep"},
		Category:     "vegan",
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in     string
		want   Category
		wantOK bool
	}{
		{"Veg", CategoryVeg, true},
		{"veg", CategoryVeg, true},
		{"NON-VEG", CategoryNonVeg, true},
		{"non-veg", CategoryNonVeg, true},
		{"vEgAn", CategoryVegan, true},
		{"Non Veg", "", false},
		{"vegetarian", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseCategory(tt.in)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ParseCategory(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestInputValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Input)
		wantError bool
		wantField string
	}{
		{
			name:   "valid lower-case category",
			mutate: func(*Input) {},
		},
		{
			name:   "valid mixed-case category",
			mutate: func(in *Input) { in.Category = "NoN-vEg" },
		},
		{
			name:      "empty title",
			mutate:    func(in *Input) { in.Title = "" },
			wantError: true,
			wantField: "title",
		},
		{
			name:      "empty description",
			mutate:    func(in *Input) { in.Description = "" },
			wantError: true,
			wantField: "description",
		},
		{
			name:      "empty image",
			mutate:    func(in *Input) { in.Image = "" },
			wantError: true,
			wantField: "image",
		},
		{
			name:      "empty cooking time",
			mutate:    func(in *Input) { in.CookingTime = "" },
			wantError: true,
			wantField: "cookingTime",
		},
		{
			name:      "no ingredients",
			mutate:    func(in *Input) { in.Ingredients = nil },
			wantError: true,
			wantField: "ingredients",
		},
		{
			name:      "empty ingredient entry",
			mutate:    func(in *Input) { in.Ingredients = []string{"water", ""} },
			wantError: true,
			wantField: "ingredients[1]",
		},
		{
			name:      "no instructions",
			mutate:    func(in *Input) { in.Instructions = []string{} },
			wantError: true,
			wantField: "instructions",
		},
		{
			name:      "unknown category",
			mutate:    func(in *Input) { in.Category = "Pescatarian" },
			wantError: true,
			wantField: "category",
		},
		{
			name:      "missing category",
			mutate:    func(in *Input) { in.Category = "" },
			wantError: true,
			wantField: "category",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			err := in.Validate()
			if !tt.wantError {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidRecipe) {
				t.Fatalf("expected ErrInvalidRecipe, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantField) {
				t.Errorf("expected error to mention %q, got %q", tt.wantField, err.Error())
			}
		})
	}
}

package recipeapi

import "slices"

// Recipe mirrors a recipe payload from the /recipes endpoints.
//
// The list endpoint yields summaries; only FetchRecipe fills the detail
// fields (Ingredients, Instructions, CaloriesPerServing) and sets Detailed.
type Recipe struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	Image           string   `json:"image"`
	Rating          float64  `json:"rating"`
	ReviewCount     int      `json:"reviewCount"`
	CookTimeMinutes int      `json:"cookTimeMinutes"`
	PrepTimeMinutes int      `json:"prepTimeMinutes"`
	Servings        int      `json:"servings"`
	Difficulty      string   `json:"difficulty"`
	Cuisine         string   `json:"cuisine"`
	Tags            []string `json:"tags"`
	MealType        []string `json:"mealType"`

	Ingredients        []string `json:"ingredients,omitempty"`
	Instructions       []string `json:"instructions,omitempty"`
	CaloriesPerServing *int     `json:"caloriesPerServing,omitempty"`

	Detailed bool `json:"-"`
}

// HasDetail reports whether the recipe came from the per-id endpoint.
func (r Recipe) HasDetail() bool {
	return r.Detailed
}

// Summary returns a copy stripped of the detail-only fields.
func (r Recipe) Summary() Recipe {
	s := r.Clone()
	s.Ingredients = nil
	s.Instructions = nil
	s.CaloriesPerServing = nil
	s.Detailed = false
	return s
}

// Clone returns a deep copy so callers can't alias slices held elsewhere.
func (r Recipe) Clone() Recipe {
	dup := r
	dup.Tags = slices.Clone(r.Tags)
	dup.MealType = slices.Clone(r.MealType)
	dup.Ingredients = slices.Clone(r.Ingredients)
	dup.Instructions = slices.Clone(r.Instructions)
	if r.CaloriesPerServing != nil {
		cal := *r.CaloriesPerServing
		dup.CaloriesPerServing = &cal
	}
	return dup
}

// ListResponse mirrors /recipes.
type ListResponse struct {
	Recipes []Recipe `json:"recipes"`
	Total   int      `json:"total"`
	Skip    int      `json:"skip"`
	Limit   int      `json:"limit"`
}

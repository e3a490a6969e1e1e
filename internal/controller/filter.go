package controller

import (
	"iter"
	"slices"
	"strings"

	"github.com/five82/recipemama/internal/recipeapi"
)

// CategoryAll disables the cuisine restriction.
const CategoryAll = "All"

const (
	// RelatedLimit caps the related-recipes strip.
	RelatedLimit = 4
	// CategoryLimit caps the distinct cuisines offered as filter chips.
	CategoryLimit = 8
)

// FilteredView yields the recipes whose name contains search
// (case-insensitive substring) and whose cuisine equals category, unless
// category is CategoryAll. The sequence reads recipes on every iteration;
// nothing is cached.
func FilteredView(recipes []recipeapi.Recipe, search, category string) iter.Seq[recipeapi.Recipe] {
	needle := strings.ToLower(search)
	return func(yield func(recipeapi.Recipe) bool) {
		for _, r := range recipes {
			if !matches(r, needle, category) {
				continue
			}
			if !yield(r) {
				return
			}
		}
	}
}

func matches(r recipeapi.Recipe, needle, category string) bool {
	if !strings.Contains(strings.ToLower(r.Name), needle) {
		return false
	}
	return category == CategoryAll || r.Cuisine == category
}

// RelatedRecipes returns up to RelatedLimit recipes sharing the selected
// cuisine, in collection order, never including the selected recipe itself.
func RelatedRecipes(selected recipeapi.Recipe, recipes []recipeapi.Recipe) []recipeapi.Recipe {
	var out []recipeapi.Recipe
	for _, r := range recipes {
		if len(out) == RelatedLimit {
			break
		}
		if r.Cuisine != selected.Cuisine || r.ID == selected.ID {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Categories returns CategoryAll followed by the first CategoryLimit distinct
// cuisines in first-seen order. Later cuisines are left out.
func Categories(recipes []recipeapi.Recipe) []string {
	out := []string{CategoryAll}
	for _, r := range recipes {
		if len(out) == CategoryLimit+1 {
			break
		}
		if slices.Contains(out[1:], r.Cuisine) {
			continue
		}
		out = append(out, r.Cuisine)
	}
	return out
}

package controller

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/recipemama/internal/recipeapi"
)

func filterFixture() []recipeapi.Recipe {
	return []recipeapi.Recipe{
		{ID: 1, Name: "Classic Margherita Pizza", Cuisine: "Italian"},
		{ID: 2, Name: "Vegetarian Stir-Fry", Cuisine: "Asian"},
		{ID: 3, Name: "Chocolate Chip Cookies", Cuisine: "American"},
		{ID: 4, Name: "Chicken Alfredo Pasta", Cuisine: "Italian"},
		{ID: 5, Name: "Mango Salsa Chicken", Cuisine: "Mexican"},
		{ID: 6, Name: "Quinoa Salad", Cuisine: "Mediterranean"},
		{ID: 7, Name: "Tomato Basil Bruschetta", Cuisine: "Italian"},
		{ID: 8, Name: "Beef and Broccoli", Cuisine: "Asian"},
	}
}

func TestFilteredView_AllMatchesSubstringIgnoringCase(t *testing.T) {
	recipes := filterFixture()
	for _, search := range []string{"", "chicken", "CHICKEN", "pa", "a", "zzz", " "} {
		t.Run(fmt.Sprintf("%q", search), func(t *testing.T) {
			var want []int
			for _, r := range recipes {
				if strings.Contains(strings.ToLower(r.Name), strings.ToLower(search)) {
					want = append(want, r.ID)
				}
			}
			got := ids(slices.Collect(FilteredView(recipes, search, CategoryAll)))
			if want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestFilteredView_CategoryWithEmptySearch(t *testing.T) {
	recipes := filterFixture()
	for _, category := range []string{"Italian", "Asian", "Mexican", "Klingon"} {
		t.Run(category, func(t *testing.T) {
			var want []int
			for _, r := range recipes {
				if r.Cuisine == category {
					want = append(want, r.ID)
				}
			}
			got := ids(slices.Collect(FilteredView(recipes, "", category)))
			if want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestFilteredView_CategoryIsCaseSensitive(t *testing.T) {
	got := slices.Collect(FilteredView(filterFixture(), "", "italian"))
	assert.Empty(t, got)
}

func TestFilteredView_CombinesSearchAndCategory(t *testing.T) {
	got := ids(slices.Collect(FilteredView(filterFixture(), "chicken", "Italian")))
	assert.Equal(t, []int{4}, got)
}

func TestFilteredView_Restartable(t *testing.T) {
	seq := FilteredView(filterFixture(), "a", CategoryAll)
	first := ids(slices.Collect(seq))
	second := ids(slices.Collect(seq))
	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestFilteredView_StopsEarly(t *testing.T) {
	var seen []int
	for r := range FilteredView(filterFixture(), "", "Italian") {
		seen = append(seen, r.ID)
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []int{1, 4}, seen)
}

func TestFilteredView_EmptyCollection(t *testing.T) {
	assert.Empty(t, slices.Collect(FilteredView(nil, "pizza", CategoryAll)))
}

func TestRelatedRecipes(t *testing.T) {
	recipes := filterFixture()

	got := RelatedRecipes(recipes[0], recipes)
	assert.Equal(t, []int{4, 7}, ids(got))

	got = RelatedRecipes(recipes[5], recipes)
	assert.Empty(t, got, "no other Mediterranean recipe")
}

func TestRelatedRecipes_CappedAndExcludesSelf(t *testing.T) {
	var recipes []recipeapi.Recipe
	for i := 1; i <= 10; i++ {
		recipes = append(recipes, recipeapi.Recipe{ID: i, Name: fmt.Sprintf("Dish %d", i), Cuisine: "Thai"})
	}
	got := RelatedRecipes(recipes[2], recipes)
	require.Len(t, got, RelatedLimit)
	assert.Equal(t, []int{1, 2, 4, 5}, ids(got))
	for _, r := range got {
		assert.Equal(t, "Thai", r.Cuisine)
		assert.NotEqual(t, 3, r.ID)
	}
}

func TestCategories(t *testing.T) {
	got := Categories(filterFixture())
	assert.Equal(t, []string{"All", "Italian", "Asian", "American", "Mexican", "Mediterranean"}, got)
}

func TestCategories_Empty(t *testing.T) {
	assert.Equal(t, []string{CategoryAll}, Categories(nil))
}

func TestCategories_CapsDistinctCuisines(t *testing.T) {
	var recipes []recipeapi.Recipe
	for i := range 12 {
		cuisine := fmt.Sprintf("C%02d", i)
		recipes = append(recipes,
			recipeapi.Recipe{ID: i*2 + 1, Cuisine: cuisine},
			recipeapi.Recipe{ID: i*2 + 2, Cuisine: cuisine},
		)
	}
	got := Categories(recipes)
	require.Len(t, got, CategoryLimit+1)
	assert.Equal(t, CategoryAll, got[0])
	assert.Equal(t, []string{"C00", "C01", "C02", "C03", "C04", "C05", "C06", "C07"}, got[1:])
}

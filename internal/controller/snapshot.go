package controller

import (
	"iter"
	"maps"
	"slices"
	"time"

	"github.com/five82/recipemama/internal/recipeapi"
)

// Snapshot is a copy of the controller state handed to the render layer.
// Derived sequences are computed from it on every call.
type Snapshot struct {
	View        ViewState
	Summaries   []recipeapi.Recipe
	Selected    *recipeapi.Recipe
	Loading     bool
	SearchText  string
	Category    string
	Comments    []Comment
	Liked       map[int]bool
	LastError   error
	LastUpdated time.Time
}

// Filtered yields the summaries passing the current search and category.
func (s Snapshot) Filtered() iter.Seq[recipeapi.Recipe] {
	return FilteredView(s.Summaries, s.SearchText, s.Category)
}

// Related returns the related strip for the selected recipe, if any.
func (s Snapshot) Related() []recipeapi.Recipe {
	if s.Selected == nil {
		return nil
	}
	return RelatedRecipes(*s.Selected, s.Summaries)
}

// Categories returns the filter chips for the current collection.
func (s Snapshot) Categories() []string {
	return Categories(s.Summaries)
}

// IsLiked reports whether id was liked this session.
func (s Snapshot) IsLiked(id int) bool {
	return s.Liked[id]
}

func (s Snapshot) clone() Snapshot {
	dup := s
	dup.Summaries = cloneRecipes(s.Summaries)
	if s.Selected != nil {
		sel := s.Selected.Clone()
		dup.Selected = &sel
	}
	dup.Comments = slices.Clone(s.Comments)
	dup.Liked = maps.Clone(s.Liked)
	return dup
}

func cloneRecipes(items []recipeapi.Recipe) []recipeapi.Recipe {
	if len(items) == 0 {
		return nil
	}
	dup := make([]recipeapi.Recipe, len(items))
	for i, r := range items {
		dup[i] = r.Clone()
	}
	return dup
}

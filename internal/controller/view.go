package controller

import "fmt"

// ViewKind tags the active view.
type ViewKind int

const (
	ViewListing ViewKind = iota
	ViewDetail
)

// ViewState is either Listing or Detail(RecipeID). RecipeID is zero for Listing.
type ViewState struct {
	Kind     ViewKind
	RecipeID int
}

// Listing returns the listing view state.
func Listing() ViewState {
	return ViewState{Kind: ViewListing}
}

// Detail returns the detail view state for id.
func Detail(id int) ViewState {
	return ViewState{Kind: ViewDetail, RecipeID: id}
}

// IsDetail reports whether a recipe is open.
func (v ViewState) IsDetail() bool {
	return v.Kind == ViewDetail
}

func (v ViewState) String() string {
	if v.Kind == ViewDetail {
		return fmt.Sprintf("Detail(%d)", v.RecipeID)
	}
	return "Listing"
}

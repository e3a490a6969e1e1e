package controller

import (
	"strings"

	"github.com/google/uuid"
)

// JustNow is the label given to comments posted during the session.
const JustNow = "Just now"

// Comment is a session-local remark on a recipe page. It is never sent anywhere.
type Comment struct {
	ID     string
	Author string
	Body   string
	When   string
}

// SeedComments returns the comments every session starts with.
func SeedComments() []Comment {
	return []Comment{
		{
			ID:     uuid.NewString(),
			Author: "ChefGordon",
			Body:   "Absolutely stunning dish! The flavors are balanced perfectly.",
			When:   "2 days ago",
		},
		{
			ID:     uuid.NewString(),
			Author: "FoodieJane",
			Body:   "Tried this yesterday, my family loved it! replacing salt with soy sauce worked wonders.",
			When:   "5 days ago",
		},
	}
}

func newComment(author, text string) (Comment, bool) {
	author = strings.TrimSpace(author)
	body := strings.TrimSpace(text)
	if author == "" || body == "" {
		return Comment{}, false
	}
	return Comment{
		ID:     uuid.NewString(),
		Author: author,
		Body:   body,
		When:   JustNow,
	}, true
}

// Package likes keeps the recipes a user has liked.
package likes

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strings"
	"time"
)

// Collection is the per-user subcollection under Users/{uid}, keyed by recipe id.
const Collection = "likedRecipes"

// Service errors
var (
	ErrNotFound        = errors.New("liked recipe not found")
	ErrInvalidRecipeID = errors.New("recipe id must not be empty")
	ErrInvalidTitle    = errors.New("title must not be empty")
)

// Like is a recipe the user liked.
type Like struct {
	RecipeID string
	Title    string
	ImageURL string
	LikedAt  time.Time
}

// LikeParams describe the recipe being liked.
type LikeParams struct {
	RecipeID string
	Title    string
	ImageURL string
}

// Service defines liked recipe operations. Like is idempotent: liking a recipe again
// returns the existing like with its original timestamp. List is newest first.
type Service interface {
	Like(ctx context.Context, userID string, params LikeParams) (*Like, error)
	Unlike(ctx context.Context, userID, recipeID string) error
	List(ctx context.Context, userID string) ([]Like, error)
}

func (p LikeParams) normalize() (LikeParams, error) {
	p.RecipeID = strings.TrimSpace(p.RecipeID)
	p.Title = strings.TrimSpace(p.Title)
	p.ImageURL = strings.TrimSpace(p.ImageURL)
	if p.RecipeID == "" || strings.Contains(p.RecipeID, "/") {
		return LikeParams{}, ErrInvalidRecipeID
	}
	if p.Title == "" {
		return LikeParams{}, ErrInvalidTitle
	}
	return p, nil
}

func sortNewestFirst(likes []Like) {
	slices.SortFunc(likes, func(a, b Like) int {
		return cmp.Or(b.LikedAt.Compare(a.LikedAt), strings.Compare(a.RecipeID, b.RecipeID))
	})
}

func categorizeError(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidRecipeID):
		return "invalid_recipe_id"
	case errors.Is(err, ErrInvalidTitle):
		return "invalid_title"
	default:
		return "internal_error"
	}
}

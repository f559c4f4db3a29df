package likes

import "github.com/janisto/meal-planner/internal/platform/timeutil"

// Like is a liked recipe in API responses.
type Like struct {
	RecipeID string        `json:"recipeId"           doc:"Catalog identifier" example:"52772"`
	Title    string        `json:"title"              doc:"Recipe title"       example:"Teriyaki Chicken Casserole"`
	ImageURL string        `json:"imageUrl,omitempty" doc:"Thumbnail URL"`
	LikedAt  timeutil.Time `json:"likedAt"            doc:"When the recipe was first liked" example:"2024-01-15T10:30:00.000Z"`
}

package mealplan

import "github.com/janisto/meal-planner/internal/platform/timeutil"

// Entry is a planned meal in API responses.
type Entry struct {
	ID        string        `json:"id"                 doc:"Entry identifier"`
	Date      string        `json:"date"               doc:"Calendar day (YYYY-MM-DD)"  example:"2025-01-20"`
	MealType  string        `json:"mealType"           doc:"Meal slot"                  example:"dinner"`
	RecipeID  string        `json:"recipeId,omitempty" doc:"Catalog recipe identifier" example:"52772"`
	Title     string        `json:"title"              doc:"What is being cooked"       example:"Teriyaki Chicken Casserole"`
	Servings  int           `json:"servings"           doc:"Number of servings"         example:"4"`
	Notes     string        `json:"notes,omitempty"    doc:"Free-form notes"`
	CreatedAt timeutil.Time `json:"createdAt"          doc:"Creation timestamp"         example:"2024-01-15T10:30:00.000Z"`
}

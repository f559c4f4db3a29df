package recipes

// RecipeGetOutput for GET /recipes/{recipeId}
type RecipeGetOutput struct {
	Body Recipe
}

// SearchData lists search hits.
type SearchData struct {
	Recipes []RecipeSummary `json:"recipes" doc:"Matching recipes"`
	Count   int             `json:"count"   doc:"Number of matches" example:"2"`
}

// RecipeSearchOutput for GET /recipes
type RecipeSearchOutput struct {
	Body SearchData
}

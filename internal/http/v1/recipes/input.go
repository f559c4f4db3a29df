package recipes

// RecipeGetInput for GET /recipes/{recipeId}
type RecipeGetInput struct {
	RecipeID string `path:"recipeId" maxLength:"64" doc:"Catalog identifier" example:"52772"`
}

// RecipeSearchInput for GET /recipes
type RecipeSearchInput struct {
	Query string `query:"q" required:"true" minLength:"1" maxLength:"100" doc:"Search by recipe name" example:"chicken"`
}

package likes

// LikeCreateInput for POST /likes
type LikeCreateInput struct {
	Body struct {
		RecipeID string `json:"recipeId" required:"true" minLength:"1" maxLength:"64" doc:"Catalog identifier" example:"52772"`
	}
}

// LikesListInput for GET /likes (no parameters)
type LikesListInput struct{}

// LikeDeleteInput for DELETE /likes/{recipeId}
type LikeDeleteInput struct {
	RecipeID string `path:"recipeId" doc:"Catalog identifier"`
}

package mealplan

// EntryAddInput for POST /meal-plan
type EntryAddInput struct {
	Body struct {
		Date     string `json:"date"               required:"true"                                      doc:"Calendar day (YYYY-MM-DD)" example:"2025-01-20"`
		MealType string `json:"mealType"           required:"true" enum:"breakfast,lunch,dinner,snack" doc:"Meal slot"                 example:"dinner"`
		RecipeID string `json:"recipeId,omitempty" maxLength:"64"                                       doc:"Catalog recipe identifier" example:"52772"`
		Title    string `json:"title"              required:"true" maxLength:"200"                      doc:"What is being cooked"      example:"Teriyaki Chicken Casserole"`
		Servings int    `json:"servings,omitempty" minimum:"0" maximum:"50"                             doc:"Servings, defaults to 1"   example:"4"`
		Notes    string `json:"notes,omitempty"    maxLength:"500"                                      doc:"Free-form notes"`
	}
}

// EntriesListInput for GET /meal-plan
type EntriesListInput struct {
	From string `query:"from" required:"true" doc:"First day, inclusive (YYYY-MM-DD)" example:"2025-01-20"`
	To   string `query:"to"   required:"true" doc:"Last day, inclusive (YYYY-MM-DD)"  example:"2025-01-26"`
}

// EntryPathInput identifies one entry.
type EntryPathInput struct {
	EntryID string `path:"entryId" doc:"Entry identifier"`
}

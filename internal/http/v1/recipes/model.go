package recipes

// Ingredient is one line of a recipe's ingredient list.
type Ingredient struct {
	Name    string `json:"name"              doc:"Ingredient"  example:"soy sauce"`
	Measure string `json:"measure,omitempty" doc:"Amount used" example:"3/4 cup"`
}

// RecipeSummary is a search hit.
type RecipeSummary struct {
	ID       string `json:"id"                 doc:"Catalog identifier" example:"52772"`
	Title    string `json:"title"              doc:"Recipe title"       example:"Teriyaki Chicken Casserole"`
	Category string `json:"category,omitempty" doc:"Catalog category"   example:"Chicken"`
	Area     string `json:"area,omitempty"     doc:"Cuisine"            example:"Japanese"`
	ImageURL string `json:"imageUrl,omitempty" doc:"Thumbnail URL"`
}

// Recipe is a full catalog entry.
type Recipe struct {
	RecipeSummary
	Instructions string       `json:"instructions"        doc:"Preparation steps"`
	Tags         []string     `json:"tags,omitempty"      doc:"Catalog tags"`
	VideoURL     string       `json:"videoUrl,omitempty"  doc:"Video walkthrough"`
	SourceURL    string       `json:"sourceUrl,omitempty" doc:"Original source"`
	Ingredients  []Ingredient `json:"ingredients"         doc:"Ingredients with measures"`
}

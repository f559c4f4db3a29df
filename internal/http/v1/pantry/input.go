package pantry

import "github.com/janisto/meal-planner/internal/platform/pagination"

// ItemCreateInput for POST /pantry
type ItemCreateInput struct {
	Body struct {
		Name      string  `json:"name"                required:"true" maxLength:"100" doc:"Ingredient name"          example:"Basmati rice"`
		Quantity  float64 `json:"quantity"                            minimum:"0"     doc:"Amount on hand"           example:"2.5"`
		Unit      string  `json:"unit,omitempty"                      maxLength:"20"  doc:"Unit of the quantity"     example:"kg"`
		Category  string  `json:"category,omitempty"                  maxLength:"40"  doc:"Category"                 example:"grains"`
		ExpiresOn string  `json:"expiresOn,omitempty"                                 doc:"Expiry date (YYYY-MM-DD)" example:"2025-03-01"`
	}
}

// ItemPathInput identifies one item.
type ItemPathInput struct {
	ItemID string `path:"itemId" doc:"Item identifier"`
}

// ItemUpdateInput for PATCH /pantry/{itemId}
type ItemUpdateInput struct {
	ItemID string `path:"itemId" doc:"Item identifier"`
	Body   struct {
		Name      *string  `json:"name,omitempty"      maxLength:"100" doc:"Ingredient name"`
		Quantity  *float64 `json:"quantity,omitempty"  minimum:"0"     doc:"Amount on hand"`
		Unit      *string  `json:"unit,omitempty"      maxLength:"20"  doc:"Unit of the quantity"`
		Category  *string  `json:"category,omitempty"  maxLength:"40"  doc:"Category"`
		ExpiresOn *string  `json:"expiresOn,omitempty"                 doc:"Expiry date (YYYY-MM-DD), empty to clear"`
	}
}

// ItemsListInput for GET /pantry
type ItemsListInput struct {
	pagination.Params
	Category string `query:"category" maxLength:"40" doc:"Filter by category (case-insensitive)" example:"grains"`
}

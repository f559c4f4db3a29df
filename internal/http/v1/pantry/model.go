package pantry

import "github.com/janisto/meal-planner/internal/platform/timeutil"

// Item is a pantry entry in API responses.
type Item struct {
	ID        string        `json:"id"                  doc:"Item identifier"          example:"1f0c8e1a-7d8e-4d56-9a1e-3c2b5f9d0a11"`
	Name      string        `json:"name"                doc:"Ingredient name"          example:"Basmati rice"`
	Quantity  float64       `json:"quantity"            doc:"Amount on hand"           example:"2.5"`
	Unit      string        `json:"unit,omitempty"      doc:"Unit of the quantity"     example:"kg"`
	Category  string        `json:"category,omitempty"  doc:"Lowercased category"      example:"grains"`
	ExpiresOn string        `json:"expiresOn,omitempty" doc:"Expiry date (YYYY-MM-DD)" example:"2025-03-01"`
	CreatedAt timeutil.Time `json:"createdAt"           doc:"Creation timestamp"       example:"2024-01-15T10:30:00.000Z"`
	UpdatedAt timeutil.Time `json:"updatedAt"           doc:"Last update timestamp"    example:"2024-01-15T10:30:00.000Z"`
}

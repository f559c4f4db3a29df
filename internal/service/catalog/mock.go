package catalog

import (
	"context"
	"strings"
)

// MockService serves a small fixed catalog.
type MockService struct {
	recipes map[string]*Recipe
	// Err, when set, is returned from every call.
	Err error
}

// NewMockService creates a mock with two demo recipes.
func NewMockService() *MockService {
	return &MockService{
		recipes: map[string]*Recipe{
			"52772": {
				RecipeSummary: RecipeSummary{
					ID:       "52772",
					Title:    "Teriyaki Chicken Casserole",
					Category: "Chicken",
					Area:     "Japanese",
					ImageURL: "https://www.themealdb.com/images/media/meals/wvpsxx1468256321.jpg",
				},
				Instructions: "Preheat oven to 350F. Combine soy sauce, water and sugar.",
				Tags:         []string{"Meat", "Casserole"},
				Ingredients: []Ingredient{
					{Name: "soy sauce", Measure: "3/4 cup"},
					{Name: "chicken breasts", Measure: "2"},
				},
			},
			"52959": {
				RecipeSummary: RecipeSummary{
					ID:       "52959",
					Title:    "Baked salmon with fennel & tomatoes",
					Category: "Seafood",
					Area:     "British",
					ImageURL: "https://www.themealdb.com/images/media/meals/1548772327.jpg",
				},
				Instructions: "Heat oven to 180C. Bake fennel, then add tomatoes and salmon.",
				Tags:         []string{"Paleo", "Keto"},
				Ingredients: []Ingredient{
					{Name: "fennel", Measure: "2 medium"},
					{Name: "salmon", Measure: "2 fillets"},
				},
			},
		},
	}
}

func (m *MockService) GetRecipe(_ context.Context, id string) (*Recipe, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	r, ok := m.recipes[strings.TrimSpace(id)]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *MockService) Search(_ context.Context, query string) ([]RecipeSummary, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, ErrInvalidQuery
	}
	out := []RecipeSummary{}
	for _, id := range []string{"52772", "52959"} {
		r := m.recipes[id]
		if strings.Contains(strings.ToLower(r.Title), q) {
			out = append(out, r.RecipeSummary)
		}
	}
	return out, nil
}

var _ Service = (*MockService)(nil)

package recipes

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	catalogsvc "github.com/janisto/meal-planner/internal/service/catalog"
)

// Register wires the public recipe catalog routes into the provided API router.
func Register(api huma.API, svc catalogsvc.Service) {
	huma.Register(api, huma.Operation{
		OperationID: "get-recipe",
		Method:      http.MethodGet,
		Path:        "/recipes/{recipeId}",
		Summary:     "Get a recipe",
		Description: "Returns a recipe from the catalog with its ingredients and instructions.",
		Tags:        []string{"Recipes"},
	}, func(ctx context.Context, input *RecipeGetInput) (*RecipeGetOutput, error) {
		recipe, err := svc.GetRecipe(ctx, input.RecipeID)
		if err != nil {
			return nil, MapCatalogError(err)
		}
		return &RecipeGetOutput{Body: toHTTPRecipe(recipe)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "search-recipes",
		Method:      http.MethodGet,
		Path:        "/recipes",
		Summary:     "Search recipes",
		Description: "Searches the catalog by recipe name.",
		Tags:        []string{"Recipes"},
	}, func(ctx context.Context, input *RecipeSearchInput) (*RecipeSearchOutput, error) {
		hits, err := svc.Search(ctx, input.Query)
		if err != nil {
			return nil, MapCatalogError(err)
		}
		out := make([]RecipeSummary, 0, len(hits))
		for _, h := range hits {
			out = append(out, toHTTPSummary(h))
		}
		return &RecipeSearchOutput{Body: SearchData{Recipes: out, Count: len(out)}}, nil
	})
}

// MapCatalogError converts catalog failures into problem responses. Rate limiting
// carries the upstream Retry-After through.
func MapCatalogError(err error) error {
	var upstreamErr *catalogsvc.UpstreamError
	if errors.As(err, &upstreamErr) {
		switch upstreamErr.Kind {
		case catalogsvc.UpstreamErrorKindNotFound:
			return huma.Error404NotFound("recipe not found")
		case catalogsvc.UpstreamErrorKindRateLimited:
			rateLimitErr := huma.Error429TooManyRequests("recipe catalog rate limit exceeded")
			if upstreamErr.RetryAfter != "" {
				headers := make(http.Header)
				headers.Set("Retry-After", upstreamErr.RetryAfter)
				return huma.ErrorWithHeaders(rateLimitErr, headers)
			}
			return rateLimitErr
		default:
			return huma.Error502BadGateway("recipe catalog error")
		}
	}

	switch {
	case errors.Is(err, catalogsvc.ErrNotFound):
		return huma.Error404NotFound("recipe not found")
	case errors.Is(err, catalogsvc.ErrInvalidQuery):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, catalogsvc.ErrRateLimited):
		return huma.Error429TooManyRequests("recipe catalog rate limit exceeded")
	default:
		return huma.Error502BadGateway("recipe catalog error")
	}
}

func toHTTPSummary(s catalogsvc.RecipeSummary) RecipeSummary {
	return RecipeSummary{
		ID:       s.ID,
		Title:    s.Title,
		Category: s.Category,
		Area:     s.Area,
		ImageURL: s.ImageURL,
	}
}

func toHTTPRecipe(r *catalogsvc.Recipe) Recipe {
	ingredients := make([]Ingredient, 0, len(r.Ingredients))
	for _, i := range r.Ingredients {
		ingredients = append(ingredients, Ingredient{Name: i.Name, Measure: i.Measure})
	}
	return Recipe{
		RecipeSummary: toHTTPSummary(r.RecipeSummary),
		Instructions:  r.Instructions,
		Tags:          r.Tags,
		VideoURL:      r.VideoURL,
		SourceURL:     r.SourceURL,
		Ingredients:   ingredients,
	}
}

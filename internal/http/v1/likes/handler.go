package likes

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/meal-planner/internal/http/v1/recipes"
	"github.com/janisto/meal-planner/internal/platform/auth"
	"github.com/janisto/meal-planner/internal/platform/timeutil"
	catalogsvc "github.com/janisto/meal-planner/internal/service/catalog"
	likessvc "github.com/janisto/meal-planner/internal/service/likes"
)

var bearerAuth = []map[string][]string{{"bearerAuth": {}}}

// Register wires liked recipe routes. Likes are resolved against catalog so the
// stored title and image always come from the catalog.
func Register(api huma.API, svc likessvc.Service, catalog catalogsvc.Service) {
	huma.Register(api, huma.Operation{
		OperationID: "list-likes",
		Method:      http.MethodGet,
		Path:        "/likes",
		Summary:     "List liked recipes",
		Tags:        []string{"Likes"},
		Security:    bearerAuth,
	}, func(ctx context.Context, _ *LikesListInput) (*LikesListOutput, error) {
		user := auth.UserFromContext(ctx)

		liked, err := svc.List(ctx, user.UID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		out := make([]Like, 0, len(liked))
		for i := range liked {
			out = append(out, toHTTPLike(&liked[i]))
		}
		return &LikesListOutput{Body: ListData{Likes: out, Count: len(out)}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "like-recipe",
		Method:      http.MethodPost,
		Path:        "/likes",
		Summary:     "Like a recipe",
		Description: "Likes a catalog recipe. Liking it again returns the existing like unchanged.",
		Tags:        []string{"Likes"},
		Security:    bearerAuth,
	}, func(ctx context.Context, input *LikeCreateInput) (*LikeOutput, error) {
		user := auth.UserFromContext(ctx)

		recipe, err := catalog.GetRecipe(ctx, input.Body.RecipeID)
		if err != nil {
			return nil, recipes.MapCatalogError(err)
		}

		like, err := svc.Like(ctx, user.UID, likessvc.LikeParams{
			RecipeID: recipe.ID,
			Title:    recipe.Title,
			ImageURL: recipe.ImageURL,
		})
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &LikeOutput{Body: toHTTPLike(like)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "unlike-recipe",
		Method:        http.MethodDelete,
		Path:          "/likes/{recipeId}",
		Summary:       "Unlike a recipe",
		Tags:          []string{"Likes"},
		DefaultStatus: http.StatusNoContent,
		Security:      bearerAuth,
	}, func(ctx context.Context, input *LikeDeleteInput) (*struct{}, error) {
		user := auth.UserFromContext(ctx)

		if err := svc.Unlike(ctx, user.UID, input.RecipeID); err != nil {
			return nil, mapServiceError(err)
		}
		return nil, nil
	})
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, likessvc.ErrNotFound):
		return huma.Error404NotFound("liked recipe not found")
	case errors.Is(err, likessvc.ErrInvalidRecipeID), errors.Is(err, likessvc.ErrInvalidTitle):
		return huma.Error422UnprocessableEntity(err.Error())
	default:
		return huma.Error500InternalServerError("internal error")
	}
}

func toHTTPLike(l *likessvc.Like) Like {
	return Like{
		RecipeID: l.RecipeID,
		Title:    l.Title,
		ImageURL: l.ImageURL,
		LikedAt:  timeutil.NewTime(l.LikedAt),
	}
}

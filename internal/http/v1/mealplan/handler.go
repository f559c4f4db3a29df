package mealplan

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/meal-planner/internal/platform/auth"
	"github.com/janisto/meal-planner/internal/platform/timeutil"
	mealplansvc "github.com/janisto/meal-planner/internal/service/mealplan"
)

var bearerAuth = []map[string][]string{{"bearerAuth": {}}}

// Register wires meal plan routes into the provided API router.
func Register(api huma.API, svc mealplansvc.Service) {
	huma.Register(api, huma.Operation{
		OperationID: "list-meal-plan",
		Method:      http.MethodGet,
		Path:        "/meal-plan",
		Summary:     "List planned meals",
		Description: "Returns the caller's planned meals between two days, inclusive. A range spans at most 92 days.",
		Tags:        []string{"Meal plan"},
		Security:    bearerAuth,
	}, func(ctx context.Context, input *EntriesListInput) (*EntriesListOutput, error) {
		user := auth.UserFromContext(ctx)

		r := mealplansvc.Range{From: input.From, To: input.To}
		entries, err := svc.List(ctx, user.UID, r)
		if err != nil {
			return nil, mapServiceError(err)
		}

		out := make([]Entry, 0, len(entries))
		for i := range entries {
			out = append(out, toHTTPEntry(&entries[i]))
		}
		return &EntriesListOutput{Body: ListData{
			From:    strings.TrimSpace(input.From),
			To:      strings.TrimSpace(input.To),
			Entries: out,
			Count:   len(out),
		}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "add-meal-plan-entry",
		Method:        http.MethodPost,
		Path:          "/meal-plan",
		Summary:       "Plan a meal",
		Tags:          []string{"Meal plan"},
		DefaultStatus: http.StatusCreated,
		Security:      bearerAuth,
	}, func(ctx context.Context, input *EntryAddInput) (*EntryAddOutput, error) {
		user := auth.UserFromContext(ctx)

		entry, err := svc.Add(ctx, user.UID, mealplansvc.AddParams{
			Date:     input.Body.Date,
			MealType: input.Body.MealType,
			RecipeID: input.Body.RecipeID,
			Title:    input.Body.Title,
			Servings: input.Body.Servings,
			Notes:    input.Body.Notes,
		})
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &EntryAddOutput{Body: toHTTPEntry(entry)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-meal-plan-entry",
		Method:        http.MethodDelete,
		Path:          "/meal-plan/{entryId}",
		Summary:       "Remove a planned meal",
		Tags:          []string{"Meal plan"},
		DefaultStatus: http.StatusNoContent,
		Security:      bearerAuth,
	}, func(ctx context.Context, input *EntryPathInput) (*struct{}, error) {
		user := auth.UserFromContext(ctx)

		if err := svc.Delete(ctx, user.UID, input.EntryID); err != nil {
			return nil, mapServiceError(err)
		}
		return nil, nil
	})
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, mealplansvc.ErrNotFound):
		return huma.Error404NotFound("meal plan entry not found")
	case errors.Is(err, mealplansvc.ErrInvalidRange):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, mealplansvc.ErrInvalidDate),
		errors.Is(err, mealplansvc.ErrInvalidMealType),
		errors.Is(err, mealplansvc.ErrInvalidTitle),
		errors.Is(err, mealplansvc.ErrInvalidServings),
		errors.Is(err, mealplansvc.ErrInvalidField):
		return huma.Error422UnprocessableEntity(err.Error())
	default:
		return huma.Error500InternalServerError("internal error")
	}
}

func toHTTPEntry(e *mealplansvc.Entry) Entry {
	return Entry{
		ID:        e.ID,
		Date:      e.Date,
		MealType:  e.MealType,
		RecipeID:  e.RecipeID,
		Title:     e.Title,
		Servings:  e.Servings,
		Notes:     e.Notes,
		CreatedAt: timeutil.NewTime(e.CreatedAt),
	}
}

package pantry

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/meal-planner/internal/platform/auth"
	"github.com/janisto/meal-planner/internal/platform/pagination"
	"github.com/janisto/meal-planner/internal/platform/timeutil"
	pantrysvc "github.com/janisto/meal-planner/internal/service/pantry"
)

const cursorType = "pantry"

var bearerAuth = []map[string][]string{{"bearerAuth": {}}}

// Register wires pantry routes into the provided API router.
func Register(api huma.API, svc pantrysvc.Service, prefix string) {
	huma.Register(api, huma.Operation{
		OperationID: "list-pantry-items",
		Method:      http.MethodGet,
		Path:        "/pantry",
		Summary:     "List pantry items",
		Description: "Returns the caller's pantry ordered by name. Follow the Link header to page through it.",
		Tags:        []string{"Pantry"},
		Security:    bearerAuth,
	}, func(ctx context.Context, input *ItemsListInput) (*ItemsListOutput, error) {
		user := auth.UserFromContext(ctx)

		cursor, err := pagination.DecodeCursor(input.Cursor, cursorType)
		if err != nil {
			return nil, huma.Error400BadRequest("invalid cursor")
		}

		items, err := svc.List(ctx, user.UID, pantrysvc.ListFilter{Category: input.Category})
		if err != nil {
			return nil, mapServiceError(err)
		}

		query := url.Values{}
		if c := strings.TrimSpace(input.Category); c != "" {
			query.Set("category", c)
		}
		page := pagination.Paginate(items, pagination.Request{
			Cursor:   cursor,
			Limit:    input.PageLimit(),
			BasePath: prefix + "/pantry",
			Query:    query,
		}, func(item pantrysvc.Item) string { return item.ID })

		out := make([]Item, 0, len(page.Items))
		for i := range page.Items {
			out = append(out, toHTTPItem(&page.Items[i]))
		}
		return &ItemsListOutput{
			Link: page.Link,
			Body: ListData{Items: out, Total: page.Total},
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "create-pantry-item",
		Method:        http.MethodPost,
		Path:          "/pantry",
		Summary:       "Add a pantry item",
		Tags:          []string{"Pantry"},
		DefaultStatus: http.StatusCreated,
		Security:      bearerAuth,
	}, func(ctx context.Context, input *ItemCreateInput) (*ItemCreateOutput, error) {
		user := auth.UserFromContext(ctx)

		item, err := svc.Create(ctx, user.UID, pantrysvc.CreateParams{
			Name:      input.Body.Name,
			Quantity:  input.Body.Quantity,
			Unit:      input.Body.Unit,
			Category:  input.Body.Category,
			ExpiresOn: input.Body.ExpiresOn,
		})
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &ItemCreateOutput{
			Location: prefix + "/pantry/" + url.PathEscape(item.ID),
			Body:     toHTTPItem(item),
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-pantry-item",
		Method:      http.MethodGet,
		Path:        "/pantry/{itemId}",
		Summary:     "Get a pantry item",
		Tags:        []string{"Pantry"},
		Security:    bearerAuth,
	}, func(ctx context.Context, input *ItemPathInput) (*ItemOutput, error) {
		user := auth.UserFromContext(ctx)

		item, err := svc.Get(ctx, user.UID, input.ItemID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &ItemOutput{Body: toHTTPItem(item)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-pantry-item",
		Method:      http.MethodPatch,
		Path:        "/pantry/{itemId}",
		Summary:     "Update a pantry item",
		Description: "Updates only the provided fields.",
		Tags:        []string{"Pantry"},
		Security:    bearerAuth,
	}, func(ctx context.Context, input *ItemUpdateInput) (*ItemOutput, error) {
		user := auth.UserFromContext(ctx)

		item, err := svc.Update(ctx, user.UID, input.ItemID, pantrysvc.UpdateParams{
			Name:      input.Body.Name,
			Quantity:  input.Body.Quantity,
			Unit:      input.Body.Unit,
			Category:  input.Body.Category,
			ExpiresOn: input.Body.ExpiresOn,
		})
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &ItemOutput{Body: toHTTPItem(item)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-pantry-item",
		Method:        http.MethodDelete,
		Path:          "/pantry/{itemId}",
		Summary:       "Remove a pantry item",
		Tags:          []string{"Pantry"},
		DefaultStatus: http.StatusNoContent,
		Security:      bearerAuth,
	}, func(ctx context.Context, input *ItemPathInput) (*struct{}, error) {
		user := auth.UserFromContext(ctx)

		if err := svc.Delete(ctx, user.UID, input.ItemID); err != nil {
			return nil, mapServiceError(err)
		}
		return nil, nil
	})
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, pantrysvc.ErrNotFound):
		return huma.Error404NotFound("pantry item not found")
	case errors.Is(err, pantrysvc.ErrNoFields):
		return huma.Error422UnprocessableEntity("at least one field must be provided")
	case errors.Is(err, pantrysvc.ErrInvalidName),
		errors.Is(err, pantrysvc.ErrInvalidQuantity),
		errors.Is(err, pantrysvc.ErrInvalidDate),
		errors.Is(err, pantrysvc.ErrInvalidField):
		return huma.Error422UnprocessableEntity(err.Error())
	default:
		return huma.Error500InternalServerError("internal error")
	}
}

func toHTTPItem(i *pantrysvc.Item) Item {
	return Item{
		ID:        i.ID,
		Name:      i.Name,
		Quantity:  i.Quantity,
		Unit:      i.Unit,
		Category:  i.Category,
		ExpiresOn: i.ExpiresOn,
		CreatedAt: timeutil.NewTime(i.CreatedAt),
		UpdatedAt: timeutil.NewTime(i.UpdatedAt),
	}
}

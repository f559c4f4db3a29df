// Package pantry tracks the ingredients a user has at home.
package pantry

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Collection is the per-user subcollection under Users/{uid}.
const Collection = "pantry"

// Service errors
var (
	ErrNotFound        = errors.New("pantry item not found")
	ErrInvalidName     = errors.New("item name must not be empty")
	ErrInvalidQuantity = errors.New("quantity must not be negative")
	ErrInvalidDate     = errors.New("expiry date must be YYYY-MM-DD")
	ErrInvalidField    = errors.New("invalid field")
	ErrNoFields        = errors.New("no fields to update")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Item is a single pantry entry.
type Item struct {
	ID        string
	Name      string
	Quantity  float64
	Unit      string
	Category  string
	ExpiresOn string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateParams for adding an item.
type CreateParams struct {
	Name      string  `validate:"required,max=100"`
	Quantity  float64 `validate:"gte=0"`
	Unit      string  `validate:"max=20"`
	Category  string  `validate:"max=40"`
	ExpiresOn string  `validate:"omitempty,datetime=2006-01-02"`
}

// UpdateParams is a sparse update: nil fields are left untouched.
type UpdateParams struct {
	Name      *string  `validate:"omitempty,max=100"`
	Quantity  *float64 `validate:"omitempty,gte=0"`
	Unit      *string  `validate:"omitempty,max=20"`
	Category  *string  `validate:"omitempty,max=40"`
	ExpiresOn *string  `validate:"omitempty,datetime=2006-01-02"`
}

// Empty reports whether no field is set.
func (p UpdateParams) Empty() bool {
	return p.Name == nil && p.Quantity == nil && p.Unit == nil && p.Category == nil && p.ExpiresOn == nil
}

// ListFilter narrows List results. A zero filter returns everything.
type ListFilter struct {
	Category string
}

// Service defines pantry operations. Names are trimmed, units trimmed and categories
// trimmed and lowercased before validation. List is ordered by name, case-insensitive.
type Service interface {
	Create(ctx context.Context, userID string, params CreateParams) (*Item, error)
	Get(ctx context.Context, userID, itemID string) (*Item, error)
	List(ctx context.Context, userID string, filter ListFilter) ([]Item, error)
	Update(ctx context.Context, userID, itemID string, params UpdateParams) (*Item, error)
	Delete(ctx context.Context, userID, itemID string) error
}

func normalizeCategory(c string) string {
	return strings.ToLower(strings.TrimSpace(c))
}

func (p CreateParams) normalize() (CreateParams, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Unit = strings.TrimSpace(p.Unit)
	p.Category = normalizeCategory(p.Category)
	p.ExpiresOn = strings.TrimSpace(p.ExpiresOn)
	if err := validate.Struct(p); err != nil {
		return CreateParams{}, validationError(err)
	}
	return p, nil
}

func (p UpdateParams) normalize() (UpdateParams, error) {
	if p.Empty() {
		return UpdateParams{}, ErrNoFields
	}
	out := p
	if p.Name != nil {
		v := strings.TrimSpace(*p.Name)
		if v == "" {
			return UpdateParams{}, ErrInvalidName
		}
		out.Name = &v
	}
	if p.Unit != nil {
		v := strings.TrimSpace(*p.Unit)
		out.Unit = &v
	}
	if p.Category != nil {
		v := normalizeCategory(*p.Category)
		out.Category = &v
	}
	if p.ExpiresOn != nil {
		v := strings.TrimSpace(*p.ExpiresOn)
		out.ExpiresOn = &v
	}
	if err := validate.Struct(out); err != nil {
		return UpdateParams{}, validationError(err)
	}
	return out, nil
}

func (p UpdateParams) apply(item *Item) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Quantity != nil {
		item.Quantity = *p.Quantity
	}
	if p.Unit != nil {
		item.Unit = *p.Unit
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.ExpiresOn != nil {
		item.ExpiresOn = *p.ExpiresOn
	}
}

// validationError maps the first validator failure onto a service sentinel.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	switch fe.Field() {
	case "Name":
		return fmt.Errorf("%w: failed %s", ErrInvalidName, fe.Tag())
	case "Quantity":
		return ErrInvalidQuantity
	case "ExpiresOn":
		return ErrInvalidDate
	default:
		return fmt.Errorf("%w: %s failed %s", ErrInvalidField, strings.ToLower(fe.Field()), fe.Tag())
	}
}

func sortItems(items []Item) {
	slices.SortFunc(items, func(a, b Item) int {
		return cmp.Or(
			strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)),
			strings.Compare(a.ID, b.ID),
		)
	})
}

// categorizeError converts errors to audit-safe categories.
func categorizeError(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidName):
		return "invalid_name"
	case errors.Is(err, ErrInvalidQuantity):
		return "invalid_quantity"
	case errors.Is(err, ErrInvalidDate):
		return "invalid_date"
	case errors.Is(err, ErrInvalidField):
		return "invalid_field"
	case errors.Is(err, ErrNoFields):
		return "no_fields"
	default:
		return "internal_error"
	}
}

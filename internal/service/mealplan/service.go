// Package mealplan stores the user's meal calendar.
package mealplan

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/janisto/meal-planner/internal/platform/timeutil"
)

// Collection is the per-user subcollection under Users/{uid}.
const Collection = "mealPlan"

// MaxRangeDays bounds a single List query.
const MaxRangeDays = 92

// Meal types in calendar order.
const (
	Breakfast = "breakfast"
	Lunch     = "lunch"
	Dinner    = "dinner"
	Snack     = "snack"
)

var mealOrder = map[string]int{Breakfast: 0, Lunch: 1, Dinner: 2, Snack: 3}

// Service errors
var (
	ErrNotFound        = errors.New("meal plan entry not found")
	ErrInvalidDate     = errors.New("date must be YYYY-MM-DD")
	ErrInvalidMealType = errors.New("meal type must be breakfast, lunch, dinner or snack")
	ErrInvalidTitle    = errors.New("title must not be empty")
	ErrInvalidServings = errors.New("servings must be between 1 and 50")
	ErrInvalidRange    = errors.New("invalid date range")
	ErrInvalidField    = errors.New("invalid field")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Entry is one planned meal.
type Entry struct {
	ID        string
	Date      string
	MealType  string
	RecipeID  string
	Title     string
	Servings  int
	Notes     string
	CreatedAt time.Time
}

// AddParams for planning a meal. Servings defaults to 1.
type AddParams struct {
	Date     string `validate:"required,datetime=2006-01-02"`
	MealType string `validate:"required,oneof=breakfast lunch dinner snack"`
	RecipeID string `validate:"max=64"`
	Title    string `validate:"required,max=200"`
	Servings int    `validate:"gte=1,lte=50"`
	Notes    string `validate:"max=500"`
}

// Range is an inclusive span of calendar days.
type Range struct {
	From string
	To   string
}

// Service defines meal plan operations. List returns entries ordered by date, then
// meal type in calendar order, then creation time.
type Service interface {
	Add(ctx context.Context, userID string, params AddParams) (*Entry, error)
	List(ctx context.Context, userID string, r Range) ([]Entry, error)
	Delete(ctx context.Context, userID, entryID string) error
}

func (p AddParams) normalize() (AddParams, error) {
	p.Date = strings.TrimSpace(p.Date)
	p.MealType = strings.ToLower(strings.TrimSpace(p.MealType))
	p.RecipeID = strings.TrimSpace(p.RecipeID)
	p.Title = strings.TrimSpace(p.Title)
	p.Notes = strings.TrimSpace(p.Notes)
	if p.Servings == 0 {
		p.Servings = 1
	}
	if err := validate.Struct(p); err != nil {
		return AddParams{}, validationError(err)
	}
	return p, nil
}

// normalize checks both ends and the span length.
func (r Range) normalize() (Range, error) {
	from, err := timeutil.ParseDate(strings.TrimSpace(r.From))
	if err != nil {
		return Range{}, fmt.Errorf("%w: %w", ErrInvalidRange, err)
	}
	to, err := timeutil.ParseDate(strings.TrimSpace(r.To))
	if err != nil {
		return Range{}, fmt.Errorf("%w: %w", ErrInvalidRange, err)
	}
	if to < from {
		return Range{}, fmt.Errorf("%w: from %s is after to %s", ErrInvalidRange, from, to)
	}
	start, _ := time.Parse(timeutil.DateLayout, from)
	end, _ := time.Parse(timeutil.DateLayout, to)
	if days := int(end.Sub(start).Hours()/24) + 1; days > MaxRangeDays {
		return Range{}, fmt.Errorf("%w: %d days exceeds %d", ErrInvalidRange, days, MaxRangeDays)
	}
	return Range{From: from, To: to}, nil
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	switch fe.Field() {
	case "Date":
		return ErrInvalidDate
	case "MealType":
		return ErrInvalidMealType
	case "Title":
		return fmt.Errorf("%w: failed %s", ErrInvalidTitle, fe.Tag())
	case "Servings":
		return ErrInvalidServings
	default:
		return fmt.Errorf("%w: %s failed %s", ErrInvalidField, strings.ToLower(fe.Field()), fe.Tag())
	}
}

func sortEntries(entries []Entry) {
	slices.SortFunc(entries, func(a, b Entry) int {
		return cmp.Or(
			strings.Compare(a.Date, b.Date),
			cmp.Compare(mealOrder[a.MealType], mealOrder[b.MealType]),
			a.CreatedAt.Compare(b.CreatedAt),
			strings.Compare(a.ID, b.ID),
		)
	})
}

// categorizeError converts errors to audit-safe categories.
func categorizeError(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidDate):
		return "invalid_date"
	case errors.Is(err, ErrInvalidMealType):
		return "invalid_meal_type"
	case errors.Is(err, ErrInvalidTitle):
		return "invalid_title"
	case errors.Is(err, ErrInvalidServings):
		return "invalid_servings"
	case errors.Is(err, ErrInvalidField):
		return "invalid_field"
	default:
		return "internal_error"
	}
}

// Package catalog reads recipes from a TheMealDB-compatible API.
package catalog

import (
	"context"
	"errors"
	"fmt"
)

// Service errors
var (
	ErrNotFound     = errors.New("recipe not found")
	ErrRateLimited  = errors.New("recipe catalog rate limit exceeded")
	ErrUpstream     = errors.New("recipe catalog upstream error")
	ErrInvalidQuery = errors.New("search query must not be empty")
)

// UpstreamErrorKind classifies catalog failures.
type UpstreamErrorKind string

const (
	UpstreamErrorKindNotFound    UpstreamErrorKind = "not_found"
	UpstreamErrorKindRateLimited UpstreamErrorKind = "rate_limited"
	UpstreamErrorKindUpstream    UpstreamErrorKind = "upstream"
)

// UpstreamError carries the catalog response status for error mapping.
type UpstreamError struct {
	Kind       UpstreamErrorKind
	Status     int
	RetryAfter string
	cause      error
}

func (e *UpstreamError) Error() string {
	if e == nil {
		return "recipe catalog upstream error"
	}
	return fmt.Sprintf("recipe catalog error (kind=%s status=%d): %v", e.Kind, e.Status, e.cause)
}

func (e *UpstreamError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Ingredient is one line of a recipe's ingredient list.
type Ingredient struct {
	Name    string
	Measure string
}

// RecipeSummary is what search results carry.
type RecipeSummary struct {
	ID       string
	Title    string
	Category string
	Area     string
	ImageURL string
}

// Recipe is a full catalog entry.
type Recipe struct {
	RecipeSummary
	Instructions string
	Tags         []string
	VideoURL     string
	SourceURL    string
	Ingredients  []Ingredient
}

// Service defines catalog lookups.
type Service interface {
	GetRecipe(ctx context.Context, id string) (*Recipe, error)
	Search(ctx context.Context, query string) ([]RecipeSummary, error)
}

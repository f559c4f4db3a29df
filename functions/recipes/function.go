// Package recipes provides an HTTP Cloud Function searching the recipe catalog.
package recipes

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"

	"github.com/janisto/meal-planner/internal/service/catalog"
)

func init() {
	functions.HTTP("RecipeSearch", NewHandler(newCatalog()).ServeHTTP)
}

func newCatalog() catalog.Service {
	var opts []catalog.Option
	if base := os.Getenv("RECIPE_API_BASE_URL"); base != "" {
		opts = append(opts, catalog.WithBaseURL(base))
	}
	return catalog.NewClient(&http.Client{Timeout: 10 * time.Second}, opts...)
}

// Result is one search hit.
type Result struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category,omitempty"`
	Area     string `json:"area,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Response is the function response.
type Response struct {
	Query   string   `json:"query"`
	Results []Result `json:"results"`
	Count   int      `json:"count"`
}

type errorResponse struct {
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

// Handler answers GET ?q= with catalog matches.
type Handler struct {
	catalog catalog.Service
}

// NewHandler creates a search handler over svc.
func NewHandler(svc catalog.Service) *Handler {
	return &Handler{catalog: svc}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	hits, err := h.catalog.Search(r.Context(), q)
	if err != nil {
		status, detail := mapError(err)
		var upstream *catalog.UpstreamError
		if errors.As(err, &upstream) && upstream.RetryAfter != "" {
			w.Header().Set("Retry-After", upstream.RetryAfter)
		}
		writeError(w, status, detail)
		return
	}

	resp := Response{Query: q, Results: make([]Result, 0, len(hits)), Count: len(hits)}
	for _, s := range hits {
		resp.Results = append(resp.Results, Result{
			ID:       s.ID,
			Title:    s.Title,
			Category: s.Category,
			Area:     s.Area,
			ImageURL: s.ImageURL,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func mapError(err error) (int, string) {
	var upstream *catalog.UpstreamError
	if errors.As(err, &upstream) {
		switch upstream.Kind {
		case catalog.UpstreamErrorKindRateLimited:
			return http.StatusTooManyRequests, "recipe catalog rate limit exceeded"
		case catalog.UpstreamErrorKindNotFound:
			return http.StatusNotFound, "recipe not found"
		}
		return http.StatusBadGateway, "recipe catalog unavailable"
	}
	switch {
	case errors.Is(err, catalog.ErrInvalidQuery):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, catalog.ErrRateLimited):
		return http.StatusTooManyRequests, "recipe catalog rate limit exceeded"
	case errors.Is(err, catalog.ErrUpstream):
		return http.StatusBadGateway, "recipe catalog unavailable"
	}
	return http.StatusInternalServerError, "internal server error"
}

func writeError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Status: status, Detail: detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	applog "github.com/janisto/meal-planner/internal/platform/logging"
)

const (
	// DefaultBaseURL is TheMealDB's free developer endpoint.
	DefaultBaseURL = "https://www.themealdb.com/api/json/v1/1"
	userAgent      = "meal-planner"
	maxIngredients = 20
)

// Client implements Service over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another catalog host.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// NewClient creates a catalog client.
func NewClient(httpClient *http.Client, opts ...Option) *Client {
	c := &Client{
		httpClient: httpClient,
		baseURL:    DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// mealsResponse is the envelope every endpoint returns; "meals" is null when nothing matched.
// Meal fields are strings or null, and ingredients come as strIngredient1..20 / strMeasure1..20.
type mealsResponse struct {
	Meals []map[string]*string `json:"meals"`
}

type meal map[string]*string

func (m meal) get(key string) string {
	if v := m[key]; v != nil {
		return strings.TrimSpace(*v)
	}
	return ""
}

func (m meal) summary() RecipeSummary {
	return RecipeSummary{
		ID:       m.get("idMeal"),
		Title:    m.get("strMeal"),
		Category: m.get("strCategory"),
		Area:     m.get("strArea"),
		ImageURL: m.get("strMealThumb"),
	}
}

func (m meal) recipe() *Recipe {
	r := &Recipe{
		RecipeSummary: m.summary(),
		Instructions:  m.get("strInstructions"),
		VideoURL:      m.get("strYoutube"),
		SourceURL:     m.get("strSource"),
		Tags:          []string{},
		Ingredients:   []Ingredient{},
	}
	for tag := range strings.SplitSeq(m.get("strTags"), ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			r.Tags = append(r.Tags, tag)
		}
	}
	for i := 1; i <= maxIngredients; i++ {
		name := m.get("strIngredient" + strconv.Itoa(i))
		if name == "" {
			continue
		}
		r.Ingredients = append(r.Ingredients, Ingredient{Name: name, Measure: m.get("strMeasure" + strconv.Itoa(i))})
	}
	return r
}

func (c *Client) fetch(ctx context.Context, path string, query url.Values) ([]meal, error) {
	u := c.baseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling recipe catalog: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return nil, upstreamErrorFromResponse(resp, UpstreamErrorKindNotFound, ErrNotFound)
	case resp.StatusCode == http.StatusTooManyRequests:
		applog.LogWarn(ctx, "recipe catalog rate limit exceeded",
			zap.Int("status", resp.StatusCode),
			zap.String("Retry-After", resp.Header.Get("Retry-After")),
		)
		return nil, upstreamErrorFromResponse(resp, UpstreamErrorKindRateLimited, ErrRateLimited)
	default:
		applog.LogWarn(ctx, "recipe catalog request failed", zap.Int("status", resp.StatusCode))
		return nil, upstreamErrorFromResponse(resp, UpstreamErrorKindUpstream, ErrUpstream)
	}

	var body mealsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding recipe catalog response: %w", err)
	}
	meals := make([]meal, len(body.Meals))
	for i, m := range body.Meals {
		meals[i] = meal(m)
	}
	return meals, nil
}

func (c *Client) GetRecipe(ctx context.Context, id string) (*Recipe, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrNotFound
	}
	meals, err := c.fetch(ctx, "/lookup.php", url.Values{"i": {id}})
	if err != nil {
		return nil, err
	}
	if len(meals) == 0 {
		return nil, ErrNotFound
	}
	return meals[0].recipe(), nil
}

func (c *Client) Search(ctx context.Context, query string) ([]RecipeSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrInvalidQuery
	}
	meals, err := c.fetch(ctx, "/search.php", url.Values{"s": {query}})
	if err != nil {
		return nil, err
	}
	out := make([]RecipeSummary, len(meals))
	for i, m := range meals {
		out[i] = m.summary()
	}
	return out, nil
}

func upstreamErrorFromResponse(resp *http.Response, kind UpstreamErrorKind, cause error) *UpstreamError {
	return &UpstreamError{
		Kind:       kind,
		Status:     resp.StatusCode,
		RetryAfter: strings.TrimSpace(resp.Header.Get("Retry-After")),
		cause:      cause,
	}
}

var _ Service = (*Client)(nil)

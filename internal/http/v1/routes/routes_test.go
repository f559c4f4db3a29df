package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/janisto/meal-planner/internal/platform/auth"
	"github.com/janisto/meal-planner/internal/platform/docstore"
	applog "github.com/janisto/meal-planner/internal/platform/logging"
	appmiddleware "github.com/janisto/meal-planner/internal/platform/middleware"
	"github.com/janisto/meal-planner/internal/platform/respond"
	catalogsvc "github.com/janisto/meal-planner/internal/service/catalog"
	likessvc "github.com/janisto/meal-planner/internal/service/likes"
	mealplansvc "github.com/janisto/meal-planner/internal/service/mealplan"
	pantrysvc "github.com/janisto/meal-planner/internal/service/pantry"
	profilesvc "github.com/janisto/meal-planner/internal/service/profile"
)

func testServices() Services {
	return Services{
		Verifier: &auth.MockVerifier{User: auth.TestUser()},
		Docs:     docstore.NewMemory(),
		Profile:  profilesvc.NewMockProfileService(),
		Pantry:   pantrysvc.NewMockService(),
		MealPlan: mealplansvc.NewMockService(),
		Likes:    likessvc.NewMockService(),
		Catalog:  catalogsvc.NewMockService(),
	}
}

func newTestRouter(cfg huma.Config) (chi.Router, huma.API) {
	router := chi.NewRouter()
	router.Use(
		appmiddleware.RequestID(),
		chimiddleware.RealIP,
		applog.RequestLogger(),
		respond.Recoverer(),
	)
	api := humachi.New(router, cfg)
	Register(api, testServices())
	return router, api
}

func TestRegisterRoutes(t *testing.T) {
	router, _ := newTestRouter(huma.DefaultConfig("RoutesTest", "test"))

	cases := []struct {
		path   string
		authed bool
		want   int
	}{
		{"/recipes/52772", false, http.StatusOK},
		{"/recipes?q=chicken", false, http.StatusOK},
		{"/pantry", true, http.StatusOK},
		{"/pantry", false, http.StatusUnauthorized},
		{"/likes", true, http.StatusOK},
		{"/meal-plan?from=2025-01-01&to=2025-01-07", true, http.StatusOK},
		{"/profile", true, http.StatusNotFound},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		if tc.authed {
			req.Header.Set("Authorization", "Bearer valid-token")
		}
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		if resp.Code != tc.want {
			t.Errorf("GET %s (authed=%v): expected %d, got %d", tc.path, tc.authed, tc.want, resp.Code)
		}
	}
}

func TestRegisterSecurityScheme(t *testing.T) {
	_, api := newTestRouter(huma.DefaultConfig("RoutesTest", "test"))

	scheme := api.OpenAPI().Components.SecuritySchemes["bearerAuth"]
	if scheme == nil || scheme.Scheme != "bearer" {
		t.Fatalf("expected bearer security scheme, got %+v", scheme)
	}
	op := api.OpenAPI().Paths["/pantry"].Get
	if op == nil || len(op.Security) == 0 {
		t.Fatal("expected /pantry to require bearerAuth")
	}
	if public := api.OpenAPI().Paths["/recipes"].Get; public == nil || len(public.Security) != 0 {
		t.Fatal("expected /recipes to be public")
	}
}

func TestAPIPrefix(t *testing.T) {
	cfg := huma.DefaultConfig("RoutesTest", "test")
	cfg.Servers = []*huma.Server{{URL: "https://api.example.com/v1"}}
	_, api := newTestRouter(cfg)

	if got := apiPrefix(api); got != "/v1" {
		t.Fatalf("expected /v1, got %q", got)
	}
}

package routes

import (
	"net/url"

	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/meal-planner/internal/http/v1/likes"
	"github.com/janisto/meal-planner/internal/http/v1/mealplan"
	"github.com/janisto/meal-planner/internal/http/v1/pantry"
	"github.com/janisto/meal-planner/internal/http/v1/profile"
	"github.com/janisto/meal-planner/internal/http/v1/recipes"
	"github.com/janisto/meal-planner/internal/platform/auth"
	"github.com/janisto/meal-planner/internal/platform/docstore"
	catalogsvc "github.com/janisto/meal-planner/internal/service/catalog"
	likessvc "github.com/janisto/meal-planner/internal/service/likes"
	mealplansvc "github.com/janisto/meal-planner/internal/service/mealplan"
	pantrysvc "github.com/janisto/meal-planner/internal/service/pantry"
	profilesvc "github.com/janisto/meal-planner/internal/service/profile"
)

// Services groups what the v1 handlers run on.
type Services struct {
	Verifier auth.Verifier
	Docs     docstore.Store
	Profile  profilesvc.Service
	Pantry   pantrysvc.Service
	MealPlan mealplansvc.Service
	Likes    likessvc.Service
	Catalog  catalogsvc.Service
}

// Register wires all v1 routes into the provided API router.
func Register(api huma.API, s Services) {
	prefix := apiPrefix(api)

	registerSecurityScheme(api)
	api.UseMiddleware(auth.Middleware(api, s.Verifier))

	profile.Register(api, s.Profile, s.Docs, prefix)
	pantry.Register(api, s.Pantry, prefix)
	mealplan.Register(api, s.MealPlan)
	likes.Register(api, s.Likes, s.Catalog)
	recipes.Register(api, s.Catalog)
}

func registerSecurityScheme(api huma.API) {
	components := api.OpenAPI().Components
	if components.SecuritySchemes == nil {
		components.SecuritySchemes = map[string]*huma.SecurityScheme{}
	}
	components.SecuritySchemes["bearerAuth"] = &huma.SecurityScheme{
		Type:         "http",
		Scheme:       "bearer",
		BearerFormat: "JWT",
		Description:  "Firebase ID token",
	}
}

func apiPrefix(api huma.API) string {
	for _, s := range api.OpenAPI().Servers {
		if u, err := url.Parse(s.URL); err == nil && u.Path != "" {
			return u.Path
		}
	}
	return ""
}

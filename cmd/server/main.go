package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/janisto/meal-planner/internal/http/health"
	"github.com/janisto/meal-planner/internal/http/v1/routes"
	"github.com/janisto/meal-planner/internal/platform/auth"
	"github.com/janisto/meal-planner/internal/platform/config"
	"github.com/janisto/meal-planner/internal/platform/docstore"
	"github.com/janisto/meal-planner/internal/platform/firebase"
	applog "github.com/janisto/meal-planner/internal/platform/logging"
	appmiddleware "github.com/janisto/meal-planner/internal/platform/middleware"
	"github.com/janisto/meal-planner/internal/platform/respond"
	catalogsvc "github.com/janisto/meal-planner/internal/service/catalog"
	likessvc "github.com/janisto/meal-planner/internal/service/likes"
	mealplansvc "github.com/janisto/meal-planner/internal/service/mealplan"
	pantrysvc "github.com/janisto/meal-planner/internal/service/pantry"
	profilesvc "github.com/janisto/meal-planner/internal/service/profile"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

const (
	apiPrefix   = "/v1"
	docsPath    = "/api-docs"
	shutdownTTL = 10 * time.Second
)

func main() {
	defer func() {
		if err := applog.Sync(); err != nil {
			applog.LogError(context.Background(), "logger sync error", err)
		}
	}()
	if err := applog.Err(); err != nil {
		applog.LogError(context.Background(), "logger init error", err)
	}

	if err := run(); err != nil {
		applog.LogError(context.Background(), "server failed", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadServer(".env")
	if err != nil {
		return err
	}

	ctx := context.Background()
	clients, err := firebase.InitializeClients(ctx, firebase.Config{
		ProjectID:   cfg.ProjectID,
		Credentials: cfg.Credentials,
	})
	if err != nil {
		return fmt.Errorf("initialize firebase: %w", err)
	}
	defer func() {
		if err := clients.Close(); err != nil {
			applog.LogError(ctx, "firestore close error", err)
		}
	}()

	services := routes.Services{
		Verifier: auth.NewFirebaseVerifier(clients.Auth),
		Docs:     docstore.NewFirestore(clients.Firestore),
		Profile:  profilesvc.NewFirestoreStore(clients.Firestore),
		Pantry:   pantrysvc.NewFirestoreStore(clients.Firestore),
		MealPlan: mealplansvc.NewFirestoreStore(clients.Firestore),
		Likes:    likessvc.NewFirestoreStore(clients.Firestore),
		Catalog: catalogsvc.NewClient(
			&http.Client{Timeout: 10 * time.Second},
			catalogsvc.WithBaseURL(cfg.RecipeAPIBaseURL),
		),
	}
	checks := map[string]health.Check{
		"firestore": health.FirestoreCheck(clients.Firestore, profilesvc.UsersCollection),
	}

	srv := newHTTPServer(cfg.Addr(), newRouter(services, health.NewHandler(checks), cfg.CORSOrigins))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	return serve(srv, stop)
}

// newRouter builds the full handler: base middleware, /health, and the v1 API.
func newRouter(services routes.Services, healthHandler http.Handler, origins []string) chi.Router {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	router.Use(
		appmiddleware.Security(apiPrefix+docsPath, apiPrefix+"/openapi", apiPrefix+"/schemas"),
		appmiddleware.Vary(),
		appmiddleware.CORS(origins...),
		appmiddleware.RequestID(),
		// RealIP trusts X-Forwarded-For; only run behind a trusted proxy (Cloud Run).
		chimiddleware.RealIP,
		chimiddleware.RequestSize(1<<20),
		appmiddleware.Streaming("/stream"),
		applog.RequestLogger(),
		applog.AccessLogger(),
		respond.Recoverer(),
	)

	router.Method(http.MethodGet, "/health", healthHandler)

	router.Route(apiPrefix, func(r chi.Router) {
		cfg := huma.DefaultConfig("Meal Planner API", Version)
		cfg.DocsPath = docsPath
		cfg.Servers = []*huma.Server{{URL: apiPrefix}}
		api := humachi.New(r, cfg)
		addCBORContent(api)
		routes.Register(api, services)
	})
	return router
}

// addCBORContent advertises application/cbor next to every JSON body in OpenAPI.
func addCBORContent(api huma.API) {
	api.OpenAPI().OnAddOperation = append(api.OpenAPI().OnAddOperation,
		func(_ *huma.OpenAPI, op *huma.Operation) {
			if op.RequestBody != nil && op.RequestBody.Content != nil {
				if jsonContent, ok := op.RequestBody.Content["application/json"]; ok {
					op.RequestBody.Content["application/cbor"] = jsonContent
				}
			}
			for _, resp := range op.Responses {
				if resp.Content == nil {
					continue
				}
				if jsonContent, ok := resp.Content["application/json"]; ok {
					resp.Content["application/cbor"] = jsonContent
				}
			}
		},
	)
}

// newHTTPServer applies the server timeouts. Event streams lift WriteTimeout per
// request through the Streaming middleware.
func newHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10,
	}
}

// serve runs srv until it fails or a value arrives on stop, then shuts down gracefully.
func serve(srv *http.Server, stop <-chan os.Signal) error {
	listenErr := make(chan error, 1)
	go func() {
		applog.LogInfo(context.Background(), "server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
	}()

	select {
	case err := <-listenErr:
		return fmt.Errorf("listen on %s: %w", srv.Addr, err)
	case <-stop:
		applog.LogInfo(context.Background(), "shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTTL)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	applog.LogInfo(context.Background(), "server exited")
	return nil
}

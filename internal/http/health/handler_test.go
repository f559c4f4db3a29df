package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/janisto/meal-planner/internal/testutil"
)

func serve(t *testing.T, h http.Handler) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)

	if ct := resp.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", ct)
	}
	var body Response
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp, body
}

func TestHealthWithoutChecks(t *testing.T) {
	resp, body := serve(t, NewHandler(nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", resp.Code)
	}
	if body.Status != "healthy" || body.Checks != nil {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestHealthReportsEachCheck(t *testing.T) {
	h := NewHandler(map[string]Check{
		"firestore": func(context.Context) error { return nil },
		"catalog":   func(context.Context) error { return errors.New("boom") },
	})

	resp, body := serve(t, h)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
	if body.Status != "unhealthy" {
		t.Errorf("expected unhealthy, got %s", body.Status)
	}
	if body.Checks["firestore"] != "ok" || body.Checks["catalog"] != "unavailable" {
		t.Errorf("unexpected checks %v", body.Checks)
	}
	if resp.Header().Get("Cache-Control") != "no-store" {
		t.Error("expected Cache-Control: no-store")
	}
}

func TestHealthCheckGetsDeadline(t *testing.T) {
	var hadDeadline bool
	h := NewHandler(map[string]Check{
		"probe": func(ctx context.Context) error {
			_, hadDeadline = ctx.Deadline()
			return nil
		},
	})

	serve(t, h)

	if !hadDeadline {
		t.Error("expected checks to run with a deadline")
	}
}

func TestFirestoreCheckAgainstEmulator(t *testing.T) {
	client := testutil.NewFirestoreClient(t)

	if err := FirestoreCheck(client, "Users")(context.Background()); err != nil {
		t.Fatalf("expected empty collection to pass, got %v", err)
	}
}

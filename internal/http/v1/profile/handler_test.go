package profile

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/fxamacker/cbor/v2"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/janisto/meal-planner/internal/platform/auth"
	"github.com/janisto/meal-planner/internal/platform/docstore"
	applog "github.com/janisto/meal-planner/internal/platform/logging"
	appmiddleware "github.com/janisto/meal-planner/internal/platform/middleware"
	"github.com/janisto/meal-planner/internal/platform/respond"
	profilesvc "github.com/janisto/meal-planner/internal/service/profile"
)

const testUID = "test-user-123"

func newTestRouter(svc profilesvc.Service, docs docstore.Store) chi.Router {
	router := chi.NewRouter()
	router.Use(
		appmiddleware.RequestID(),
		chimiddleware.RealIP,
		applog.RequestLogger(),
		respond.Recoverer(),
	)
	api := humachi.New(router, huma.DefaultConfig("ProfileTest", "test"))
	api.UseMiddleware(auth.Middleware(api, &auth.MockVerifier{User: auth.TestUser()}))
	Register(api, svc, docs, "/v1")
	return router
}

func seeded(t *testing.T) *profilesvc.MockProfileService {
	t.Helper()
	svc := profilesvc.NewMockProfileService()
	if _, err := svc.Create(context.Background(), testUID, profilesvc.CreateParams{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john@example.com",
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return svc
}

func do(router http.Handler, method, path, body string, authed bool) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if authed {
		req.Header.Set("Authorization", "Bearer valid-token")
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestCreateProfileSuccess(t *testing.T) {
	router := newTestRouter(profilesvc.NewMockProfileService(), docstore.NewMemory())

	resp := do(router, http.MethodPost, "/profile",
		`{"firstName":" John ","lastName":"Doe","email":"John@Example.com"}`, true)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	if loc := resp.Header().Get("Location"); loc != "/v1/profile" {
		t.Errorf("expected Location /v1/profile, got %s", loc)
	}

	var p Profile
	if err := json.Unmarshal(resp.Body.Bytes(), &p); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if p.ID != testUID || p.FirstName != "John" || p.Email != "john@example.com" {
		t.Errorf("unexpected profile %+v", p)
	}
}

func TestCreateProfileConflict(t *testing.T) {
	router := newTestRouter(seeded(t), docstore.NewMemory())

	resp := do(router, http.MethodPost, "/profile",
		`{"firstName":"John","lastName":"Doe","email":"john@example.com"}`, true)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestCreateProfileInvalidEmail(t *testing.T) {
	router := newTestRouter(profilesvc.NewMockProfileService(), docstore.NewMemory())

	resp := do(router, http.MethodPost, "/profile",
		`{"firstName":"John","lastName":"Doe","email":"not-an-email"}`, true)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", resp.Code, resp.Body.String())
	}
	var problem huma.ErrorModel
	if err := json.Unmarshal(resp.Body.Bytes(), &problem); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if problem.Detail != profilesvc.ErrInvalidEmail.Error() {
		t.Errorf("unexpected detail %q", problem.Detail)
	}
}

func TestCreateProfileUnauthorized(t *testing.T) {
	router := newTestRouter(profilesvc.NewMockProfileService(), docstore.NewMemory())

	resp := do(router, http.MethodPost, "/profile",
		`{"firstName":"John","lastName":"Doe","email":"john@example.com"}`, false)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
	if got := resp.Header().Get("WWW-Authenticate"); got != "Bearer" {
		t.Errorf("expected WWW-Authenticate: Bearer, got %s", got)
	}
}

func TestGetProfileSuccess(t *testing.T) {
	router := newTestRouter(seeded(t), docstore.NewMemory())

	resp := do(router, http.MethodGet, "/profile", "", true)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var p Profile
	if err := json.Unmarshal(resp.Body.Bytes(), &p); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if p.LastName != "Doe" {
		t.Errorf("expected lastName Doe, got %s", p.LastName)
	}
	if !strings.Contains(resp.Body.String(), `"createdAt":"`) {
		t.Errorf("expected createdAt in body: %s", resp.Body.String())
	}
}

func TestGetProfileCBOR(t *testing.T) {
	router := newTestRouter(seeded(t), docstore.NewMemory())

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	req.Header.Set("Accept", "application/cbor")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/cbor" {
		t.Errorf("expected application/cbor, got %s", ct)
	}
	var body map[string]any
	if err := cbor.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("cbor unmarshal: %v", err)
	}
	if body["firstName"] != "John" {
		t.Errorf("expected firstName John, got %v", body["firstName"])
	}
}

func TestGetProfileNotFound(t *testing.T) {
	router := newTestRouter(profilesvc.NewMockProfileService(), docstore.NewMemory())

	resp := do(router, http.MethodGet, "/profile", "", true)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestUpdateProfilePartial(t *testing.T) {
	svc := seeded(t)
	router := newTestRouter(svc, docstore.NewMemory())

	resp := do(router, http.MethodPatch, "/profile", `{"lastName":"Smith"}`, true)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var p Profile
	if err := json.Unmarshal(resp.Body.Bytes(), &p); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if p.FirstName != "John" || p.LastName != "Smith" {
		t.Errorf("unexpected profile %+v", p)
	}
	updates := svc.Updates()
	if len(updates) != 1 || updates[0].FirstName != nil || updates[0].Email != nil {
		t.Errorf("expected one sparse update, got %+v", updates)
	}
}

func TestUpdateProfileNoFields(t *testing.T) {
	router := newTestRouter(seeded(t), docstore.NewMemory())

	resp := do(router, http.MethodPatch, "/profile", `{}`, true)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestUpdateProfileInvalidFieldWritesNothing(t *testing.T) {
	svc := seeded(t)
	router := newTestRouter(svc, docstore.NewMemory())

	resp := do(router, http.MethodPatch, "/profile", `{"firstName":"Jane","email":"broken"}`, true)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", resp.Code, resp.Body.String())
	}
	p, err := svc.Get(context.Background(), testUID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.FirstName != "John" {
		t.Errorf("expected first name untouched, got %s", p.FirstName)
	}
}

func TestDeleteProfile(t *testing.T) {
	svc := seeded(t)
	router := newTestRouter(svc, docstore.NewMemory())

	resp := do(router, http.MethodDelete, "/profile", "", true)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}

	resp = do(router, http.MethodDelete, "/profile", "", true)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", resp.Code)
	}
}

type sseEvent struct {
	name string
	data StateEvent
}

func parseEvents(t *testing.T, body string) []sseEvent {
	t.Helper()
	var events []sseEvent
	for block := range strings.SplitSeq(body, "\n\n") {
		var ev sseEvent
		for line := range strings.SplitSeq(block, "\n") {
			switch {
			case strings.HasPrefix(line, "event: "):
				ev.name = strings.TrimPrefix(line, "event: ")
			case strings.HasPrefix(line, "data: "):
				if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev.data); err != nil {
					t.Fatalf("decode event data %q: %v", line, err)
				}
			}
		}
		if ev.name != "" {
			events = append(events, ev)
		}
	}
	return events
}

func TestStreamProfileSendsLiveState(t *testing.T) {
	docs := docstore.NewMemory()
	docs.Put(profilesvc.UsersCollection, testUID, docstore.Fields{
		"firstName": "John", "lastName": "Doe", "email": "john@example.com",
	})
	router := newTestRouter(profilesvc.NewMockProfileService(), docs)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/profile/stream", nil).WithContext(ctx)
	req.Header.Set("Authorization", "Bearer valid-token")
	resp := httptest.NewRecorder()

	go func() {
		time.Sleep(100 * time.Millisecond)
		docs.Merge(profilesvc.UsersCollection, testUID, docstore.Fields{"lastName": "Smith"})
	}()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if ct := resp.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("expected text/event-stream, got %s", ct)
	}

	events := parseEvents(t, resp.Body.String())
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d: %s", len(events), resp.Body.String())
	}
	first, second := events[0], events[1]
	if first.name != "state" || first.data.LastName != "Doe" || first.data.Loading || first.data.Phase != "ready" {
		t.Errorf("unexpected first event %+v", first)
	}
	if second.data.LastName != "Smith" || second.data.FirstName != "John" {
		t.Errorf("unexpected second event %+v", second)
	}
	if docs.Watchers(profilesvc.UsersCollection, testUID) != 0 {
		t.Error("expected the subscription to be detached after disconnect")
	}
}

func TestStreamProfileReportsFailureWithLastGoodData(t *testing.T) {
	docs := docstore.NewMemory()
	docs.Put(profilesvc.UsersCollection, testUID, docstore.Fields{"firstName": "John"})
	router := newTestRouter(profilesvc.NewMockProfileService(), docs)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/profile/stream", nil).WithContext(ctx)
	req.Header.Set("Authorization", "Bearer valid-token")
	resp := httptest.NewRecorder()

	go func() {
		time.Sleep(100 * time.Millisecond)
		docs.Fail(profilesvc.UsersCollection, testUID, context.DeadlineExceeded)
	}()
	router.ServeHTTP(resp, req)

	events := parseEvents(t, resp.Body.String())
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d: %s", len(events), resp.Body.String())
	}
	failed := events[1].data
	if failed.Phase != "failed" || failed.Error == "" || failed.FirstName != "John" {
		t.Errorf("unexpected failure event %+v", failed)
	}
}

func TestStreamProfileUnauthorized(t *testing.T) {
	router := newTestRouter(profilesvc.NewMockProfileService(), docstore.NewMemory())

	resp := do(router, http.MethodGet, "/profile/stream", "", false)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

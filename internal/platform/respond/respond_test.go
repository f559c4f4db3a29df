package respond

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/fxamacker/cbor/v2"
	"github.com/go-chi/chi/v5"

	appmiddleware "github.com/janisto/meal-planner/internal/platform/middleware"
)

type testProblem struct {
	Schema string `json:"$schema"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

func TestNotFoundHandler(t *testing.T) {
	router := chi.NewRouter()
	router.NotFound(NotFoundHandler())

	req := httptest.NewRequest(http.MethodGet, "/missing?q=<x>", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("expected application/problem+json, got %q", ct)
	}
	if link := rec.Header().Get("Link"); !strings.Contains(link, schemaPath) || !strings.Contains(link, "describedBy") {
		t.Fatalf("expected schema Link header, got %q", link)
	}

	var p testProblem
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("failed to decode problem: %v", err)
	}
	if p.Status != http.StatusNotFound || p.Title != "Not Found" || p.Detail != "resource not found" {
		t.Fatalf("unexpected problem %+v", p)
	}
	if p.Schema != "http://example.com"+schemaPath {
		t.Fatalf("unexpected schema %q", p.Schema)
	}
}

func TestNotFoundHandlerCBOR(t *testing.T) {
	router := chi.NewRouter()
	router.NotFound(NotFoundHandler())

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Header.Set("Accept", "application/cbor")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+cbor" {
		t.Fatalf("expected application/problem+cbor, got %q", ct)
	}
	var p huma.ErrorModel
	if err := cbor.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("failed to decode CBOR problem: %v", err)
	}
	if p.Status != http.StatusNotFound {
		t.Fatalf("unexpected status %d", p.Status)
	}
}

func TestMethodNotAllowedListsMethods(t *testing.T) {
	router := chi.NewRouter()
	router.MethodNotAllowed(MethodNotAllowedHandler())
	router.Get("/pantry", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	router.Post("/pantry", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusCreated) })

	req := httptest.NewRequest(http.MethodPut, "/pantry", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
	allow := rec.Header().Get("Allow")
	if !strings.Contains(allow, http.MethodGet) || !strings.Contains(allow, http.MethodPost) {
		t.Fatalf("unexpected Allow %q", allow)
	}
	var p testProblem
	_ = json.Unmarshal(rec.Body.Bytes(), &p)
	if !strings.Contains(p.Detail, http.MethodPut) {
		t.Fatalf("expected detail to name the method, got %q", p.Detail)
	}
}

func TestRecovererWritesProblem(t *testing.T) {
	router := chi.NewRouter()
	router.Use(appmiddleware.RequestID(), Recoverer())
	api := humachi.New(router, huma.DefaultConfig("Test", "test"))
	huma.Get(api, "/panic", func(context.Context, *struct{}) (*struct{}, error) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var p huma.ErrorModel
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("failed to decode problem: %v", err)
	}
	if p.Detail != "internal server error" {
		t.Fatalf("unexpected detail %q", p.Detail)
	}
}

func TestRecovererKeepsStartedResponse(t *testing.T) {
	router := chi.NewRouter()
	router.Use(Recoverer())
	router.Get("/partial", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("partial"))
		panic(42)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/partial", nil))

	if rec.Code != http.StatusOK || rec.Body.String() != "partial" {
		t.Fatalf("expected partial response preserved, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestRecovererRepanicsAbortHandler(t *testing.T) {
	router := chi.NewRouter()
	router.Use(Recoverer())
	router.Get("/abort", func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	})

	defer func() {
		err, ok := recover().(error)
		if !ok || !errors.Is(err, http.ErrAbortHandler) {
			t.Fatalf("expected http.ErrAbortHandler to propagate, got %v", err)
		}
	}()
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/abort", nil))
	t.Fatal("expected panic")
}

func TestResponseWriterFlushes(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec}

	rw.Flush()

	if !rec.Flushed || !rw.wroteHeader {
		t.Fatal("expected flush to reach the recorder and mark the response started")
	}
	if rw.Unwrap() != rec {
		t.Fatal("expected Unwrap to return the recorder")
	}
}

func TestSchemaURLScheme(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Host = "api.example.com"
	req.Header.Set("X-Forwarded-Proto", "https")
	if got := schemaURL(req); got != "https://api.example.com"+schemaPath {
		t.Fatalf("unexpected schema URL %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.TLS = &tls.ConnectionState{}
	if !strings.HasPrefix(schemaURL(req), "https://") {
		t.Fatal("expected https when TLS is present")
	}
}

func TestParseAccept(t *testing.T) {
	ranges := parseAccept("text, application/json;q=0.5;q=0.9, , application/cbor;q=7")
	if len(ranges) != 3 {
		t.Fatalf("expected 3 ranges, got %d", len(ranges))
	}
	if ranges[0].typ != "text" || ranges[0].subtype != "*" {
		t.Fatalf("expected text/*, got %+v", ranges[0])
	}
	if ranges[1].q != 0.9 {
		t.Fatalf("expected last q to win, got %v", ranges[1].q)
	}
	if ranges[2].q != 1 {
		t.Fatalf("expected out-of-range q to read as 1, got %v", ranges[2].q)
	}
}

func TestSelectFormat(t *testing.T) {
	tests := map[string]bool{
		"":                                         false,
		"*/*":                                      false,
		"application/json":                         false,
		"application/cbor":                         true,
		"application/*+cbor":                       true,
		"application/cbor, application/json":       false,
		"application/json;q=0.5, application/cbor": true,
		"application/cbor;q=0, application/json":   false,
		"application/json;q=0, application/cbor":   true,
		"*/*;q=0":                                  false,
		"text/html":                                false,
	}
	for accept, want := range tests {
		if got := selectFormat(accept); got != want {
			t.Errorf("selectFormat(%q) = %v, want %v", accept, got, want)
		}
	}
}

func TestEnsureVary(t *testing.T) {
	h := make(http.Header)
	h.Set("Vary", "Accept-Encoding, accept")
	ensureVary(h, "Accept", "Origin", "Origin")

	if got := strings.Join(h.Values("Vary"), "|"); got != "Accept-Encoding, accept|Origin" {
		t.Fatalf("unexpected Vary %q", got)
	}
}

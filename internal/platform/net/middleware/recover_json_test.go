package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	pnet "vidtally/internal/platform/net"
	"vidtally/internal/platform/net/middleware"
)

func TestRecoverJSON_PanicBecomesJSON500(t *testing.T) {
	next := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		panic("threshold parse blew up")
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ask", nil)
	rr := httptest.NewRecorder()

	middleware.RecoverJSON(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("content type = %q", ct)
	}

	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if sc, _ := body["status_code"].(float64); int(sc) != 500 {
		t.Fatalf("status_code = %#v", body["status_code"])
	}
	if msg, _ := body["error"].(string); msg == "" {
		t.Fatalf("expected error message in body")
	}
}

func TestRecoverJSON_RequestIDMirroredToHeader(t *testing.T) {
	next := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	req = req.WithContext(pnet.WithRequest(req.Context(), "rid-panic-1"))
	rr := httptest.NewRecorder()

	middleware.RecoverJSON(next).ServeHTTP(rr, req)

	if got := rr.Header().Get("X-Request-ID"); got != "rid-panic-1" {
		t.Fatalf("X-Request-ID = %q", got)
	}

	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if rid, _ := body["request_id"].(string); rid != "rid-panic-1" {
		t.Fatalf("request_id = %#v", body["request_id"])
	}
}

func TestRecoverJSON_NoPanicPassesThrough(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("fine"))
	})

	rr := httptest.NewRecorder()
	middleware.RecoverJSON(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ok", nil))

	if rr.Code != http.StatusAccepted || rr.Body.String() != "fine" {
		t.Fatalf("passthrough broken: %d %q", rr.Code, rr.Body.String())
	}
}

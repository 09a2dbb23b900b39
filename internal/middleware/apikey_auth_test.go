package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// okHandler writes 200 so tests can tell the request got through.
var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func doRequest(t *testing.T, h http.Handler, key string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if key != "" {
		req.Header.Set("X-API-Key", key)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSharedSecretMissingKey(t *testing.T) {
	h := SharedSecret("s3cret", http.StatusUnauthorized)(okHandler)
	rec := doRequest(t, h, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "unauthorized") {
		t.Fatalf("body = %q", rec.Body.String())
	}
}

func TestSharedSecretWrongKey(t *testing.T) {
	h := SharedSecret("s3cret", http.StatusForbidden)(okHandler)
	rec := doRequest(t, h, "wrong")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "forbidden") {
		t.Fatalf("body = %q", rec.Body.String())
	}
}

func TestSharedSecretValidKey(t *testing.T) {
	h := SharedSecret("s3cret", http.StatusUnauthorized)(okHandler)
	rec := doRequest(t, h, "s3cret")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestSharedSecretDisabledWhenUnconfigured(t *testing.T) {
	h := SharedSecret("", http.StatusForbidden)(okHandler)
	rec := doRequest(t, h, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 with auth disabled", rec.Code)
	}
}

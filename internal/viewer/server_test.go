package viewer

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/medievail/skirmish/internal/auth"
)

func TestNewMuxHealthz(t *testing.T) {
	mux := NewMux(NewHub(), auth.NewJWTManager("secret"), nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if w.Body.String() != "ok" {
		t.Fatalf("body = %q, want %q", w.Body.String(), "ok")
	}
}

func TestNewMuxWSRoutedToHandler(t *testing.T) {
	mux := NewMux(NewHub(), auth.NewJWTManager("secret"), nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d (no token supplied)", w.Code, http.StatusUnauthorized)
	}
}

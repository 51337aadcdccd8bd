package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mira/handwriting-trainer/internal/api/middleware"
	"github.com/stretchr/testify/assert"
)

func newGate() *middleware.Gate {
	return middleware.NewGate(
		[]string{"/auth/login", "/auth/register", "/auth/forgot-password"},
		"/auth/login",
		"/users/me",
	)
}

func TestGate_Decide(t *testing.T) {
	gate := newGate()

	tests := []struct {
		name      string
		path      string
		hasCookie bool
		want      string
	}{
		{
			name:      "no cookie on protected page redirects to login",
			path:      "/users/me",
			hasCookie: false,
			want:      "/auth/login",
		},
		{
			name:      "no cookie on public page passes",
			path:      "/auth/login",
			hasCookie: false,
			want:      "",
		},
		{
			name:      "cookie on protected page passes",
			path:      "/users/me",
			hasCookie: true,
			want:      "",
		},
		{
			name:      "cookie on public page redirects to profile",
			path:      "/auth/login",
			hasCookie: true,
			want:      "/users/me",
		},
		{
			name:      "cookie on register page redirects to profile",
			path:      "/auth/register",
			hasCookie: true,
			want:      "/users/me",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gate.Decide(tt.path, tt.hasCookie))
		})
	}
}

func TestGate_Handler(t *testing.T) {
	gate := newGate()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := gate.Handler(next)

	t.Run("forged cookie still passes the gate", func(t *testing.T) {
		// The gate checks presence only; signature failures belong to Auth.
		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: "garbage"})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("empty cookie value counts as absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: ""})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/auth/login", rec.Header().Get("Location"))
	})

	t.Run("redirect away from login when logged in", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: "anything"})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/users/me", rec.Header().Get("Location"))
	})
}

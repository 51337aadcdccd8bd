package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/mira/handwriting-trainer/internal/domain"
	"github.com/mira/handwriting-trainer/internal/service"
)

type contextKey string

const (
	UserKey contextKey = "user"
)

// AccessTokenCookie is the bearer credential cookie. Its presence drives
// the page gate; its content drives Auth.
const AccessTokenCookie = "accessToken"

// Auth validates the access-token cookie on every request it wraps and
// stores the resolved user in the request context. This is the real
// authorization boundary; the page gate never verifies anything.
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string
			if cookie, err := r.Cookie(AccessTokenCookie); err == nil {
				token = cookie.Value
			}

			user, err := authService.Validate(r.Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrUnauthenticated):
					http.Error(w, domain.ErrUnauthenticated.Error(), http.StatusUnauthorized)
				case errors.Is(err, domain.ErrStaleSession):
					http.Error(w, domain.ErrStaleSession.Error(), http.StatusUnauthorized)
				case errors.Is(err, domain.ErrUserNotFound):
					http.Error(w, domain.ErrUserNotFound.Error(), http.StatusNotFound)
				default:
					log.Printf("ERROR [middleware.Auth] token validation failed: %v", err)
					http.Error(w, "Internal server error", http.StatusInternalServerError)
				}
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(UserKey).(*domain.User)
	return user, ok
}

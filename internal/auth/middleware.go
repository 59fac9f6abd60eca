package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/muniworks/overtime/internal/platform/httpx"
	"github.com/muniworks/overtime/internal/shared"
)

// Middleware resolves the Authorization header into a caller scope.
type Middleware struct {
	Service *Service
	Logger  *slog.Logger
}

// Authenticate rejects requests without a valid bearer token and stores the
// resolved scope in the request context.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "missing bearer token")
			return
		}
		scope, err := m.Service.Authenticate(r.Context(), token)
		if err != nil {
			if m.Logger != nil {
				m.Logger.Warn("token rejected", slog.String("path", r.URL.Path))
			}
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "invalid api token")
			return
		}
		next.ServeHTTP(w, r.WithContext(shared.ContextWithScope(r.Context(), scope)))
	})
}

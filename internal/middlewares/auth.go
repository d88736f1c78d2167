package middlewares

import (
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/gw-bank-client/internal/logger"
	"github.com/sbilibin2017/gw-bank-client/internal/models"
	"github.com/sbilibin2017/gw-bank-client/internal/services"
)

//go:generate mockgen -source=auth.go -destination=mock_auth.go -package=middlewares

// SessionChecker defines the minimal interface needed by the middleware
type SessionChecker interface {
	State() (*services.AppState, error)
}

// AuthMiddleware returns a middleware that rejects requests while no user is signed in
func AuthMiddleware(sessions SessionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := sessions.State(); err != nil {
				logger.Log.Warnw("authorization failed", "uri", r.RequestURI, "err", err)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(models.ErrorResponse{Error: "Please log in"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

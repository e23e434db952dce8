package handler

import (
	"context"
	"net/http"
)

// HealthChecker is the store-liveness probe. *sql.DB satisfies it.
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// NewHealthHandler returns the /health probe handler.
func NewHealthHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if checker != nil {
			if err := checker.PingContext(r.Context()); err != nil {
				http.Error(w, "database unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}
}

package api

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// TimeoutMiddleware bounds each request so a slow moderation query cannot
// hold a handler goroutine indefinitely.
func TimeoutMiddleware(limit time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), limit)
			defer cancel()

			done := make(chan struct{})
			go func() {
				defer close(done)
				next.ServeHTTP(w, r.WithContext(ctx))
			}()

			select {
			case <-done:
			case <-ctx.Done():
				if ctx.Err() == context.DeadlineExceeded {
					zap.S().Warnw("request timed out",
						"path", r.URL.Path,
						"method", r.Method,
						"limit", limit)
					w.WriteHeader(http.StatusRequestTimeout)
					w.Write([]byte(`{"response": "request timed out"}`))
				}
			}
		})
	}
}

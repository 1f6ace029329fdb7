package api

import (
	"context"
	"time"
)

// QueryTimeout bounds individual document store operations.
const QueryTimeout = 10 * time.Second

// WithQueryTimeout derives a context for a single store call.
func WithQueryTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, QueryTimeout)
}

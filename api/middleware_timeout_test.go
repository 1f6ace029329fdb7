package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeoutMiddlewarePassesThrough(t *testing.T) {
	handler := TimeoutMiddleware(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}))

	req, err := http.NewRequest("GET", "/health", nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
}

func TestTimeoutMiddlewareTimesOut(t *testing.T) {
	release := make(chan struct{})
	handler := TimeoutMiddleware(10*time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))

	req, err := http.NewRequest("GET", "/slow", nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	close(release)

	assert.Equal(t, http.StatusRequestTimeout, rr.Code)
}

func TestWithQueryTimeout(t *testing.T) {
	ctx, cancel := WithQueryTimeout(context.Background())
	defer cancel()

	deadline, ok := ctx.Deadline()
	assert.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(QueryTimeout), deadline, time.Second)
}

func TestWithQueryTimeoutNilParent(t *testing.T) {
	ctx, cancel := WithQueryTimeout(nil)
	defer cancel()

	_, ok := ctx.Deadline()
	assert.True(t, ok)
}

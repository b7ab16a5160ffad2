package check

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hellostack/hellostack/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okCheck() Check {
	return CheckFunc(func(context.Context) error { return nil })
}

func failingCheck(msg string) Check {
	return CheckFunc(func(context.Context) error { return errors.New(msg) })
}

func blockingCheck() Check {
	return CheckFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
}

func newTestHandler() *Handler {
	h, _ := NewHandler(&config.Hellostack{})
	return h
}

func TestHandlerRunReportsEveryCheck(t *testing.T) {
	h := newTestHandler()
	h.Register("database", okCheck(), false)
	h.Register("backend", failingCheck("connection refused"), false)

	status := h.Run(context.Background())

	require.Len(t, status.Checks, 2)
	assert.True(t, status.Checks["database"].OK)
	assert.False(t, status.Checks["backend"].OK)
	assert.Equal(t, "connection refused", status.Checks["backend"].Message)
	assert.False(t, status.OK())
	assert.Equal(t, []string{"backend", "database"}, h.Names())
}

func TestHandlerRunTimesOut(t *testing.T) {
	h := newTestHandler()
	h.SetTimeout(50 * time.Millisecond)
	h.Register("slow", blockingCheck(), false)
	h.Register("fast", okCheck(), false)

	status := h.Run(context.Background())

	assert.False(t, status.Checks["slow"].OK)
	assert.True(t, status.Checks["fast"].OK)
}

func TestHandleStatus(t *testing.T) {
	h := newTestHandler()
	h.Register("database", failingCheck("db down"), false)

	rec := httptest.NewRecorder()
	h.HandleStatus(rec, httptest.NewRequest(http.MethodGet, "/v1/checks", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Contains(t, body.Checks, "database")
	assert.Equal(t, "db down", body.Checks["database"].Message)
}

func TestHandleStatusOK(t *testing.T) {
	h := newTestHandler()
	h.Register("database", okCheck(), false)

	rec := httptest.NewRecorder()
	h.HandleStatus(rec, httptest.NewRequest(http.MethodGet, "/v1/checks", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandlerWaitUntilReady(t *testing.T) {
	var attempts int32
	h := newTestHandler()
	h.Register("backend", CheckFunc(func(context.Context) error {
		if atomic.AddInt32(&attempts, 1) < 3 {
			return errors.New("waking up")
		}
		return nil
	}), true)
	h.Register("ignored", failingCheck("never ready"), false)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, h.Wait(ctx, 10*time.Millisecond))
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestHandlerWaitInterrupted(t *testing.T) {
	h := newTestHandler()
	h.Register("backend", failingCheck("asleep"), true)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	assert.EqualError(t, h.Wait(ctx, 10*time.Millisecond), "readiness interrupted")
}

func TestNewHandlerRejectsEmptyCheck(t *testing.T) {
	_, err := NewHandler(&config.Hellostack{Checks: []config.Check{{Name: "nothing"}}})

	assert.ErrorContains(t, err, `invalid check "nothing"`)
}

func TestNewHandlerBuildsConfiguredChecks(t *testing.T) {
	h, err := NewHandler(&config.Hellostack{Checks: []config.Check{
		{Name: "workdir", Filesystem: t.TempDir()},
		{Name: "backend", Wait: true, HTTP: &config.HTTP{URL: "https://my-app.onrender.com"}},
		{Name: "database", Postgres: &config.Postgres{Host: config.Host{Hostname: "db.example.supabase.co"}}},
	}})
	require.NoError(t, err)

	assert.Equal(t, []string{"backend", "database", "workdir"}, h.Names())
	assert.Len(t, h.waitChecks, 1)
}

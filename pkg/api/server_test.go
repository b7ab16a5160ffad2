package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hellostack/hellostack/internal/config"
	"github.com/hellostack/hellostack/pkg/check"
	"github.com/hellostack/hellostack/pkg/probe"
	"github.com/hellostack/hellostack/pkg/tutorial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	api     *httptest.Server
	backend *httptest.Server
	release chan struct{}
	server  *Server
}

func newFixture(t *testing.T, endpoint string) *fixture {
	t.Helper()

	f := &fixture{release: make(chan struct{})}
	f.backend = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-f.release
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message": "Hello World"}`))
	}))

	if endpoint == "backend" {
		endpoint = f.backend.URL
	}

	checks, err := check.NewHandler(&config.Hellostack{})
	require.NoError(t, err)
	checks.Register("backend", check.CheckFunc(func(context.Context) error { return nil }), false)

	widget := probe.NewWidget(probe.NewProber(f.backend.Client()), endpoint)
	f.server = NewServer(":0", widget, checks, tutorial.DefaultData())
	f.api = httptest.NewServer(f.server.Router())

	t.Cleanup(func() {
		select {
		case <-f.release:
		default:
			close(f.release)
		}
		f.api.Close()
		f.backend.Close()
		_ = f.server.Shutdown(context.Background())
	})

	return f
}

func (f *fixture) do(t *testing.T, method, path string, body string) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequest(method, f.api.URL+path, strings.NewReader(body))
	require.NoError(t, err)

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(res.Body)
	return res, buf.Bytes()
}

func decodeStatus(t *testing.T, body []byte) probe.Status {
	t.Helper()
	var s probe.Status
	require.NoError(t, json.Unmarshal(body, &s))
	return s
}

func TestProbeStatusStartsIdle(t *testing.T) {
	f := newFixture(t, "my-app.onrender.com")

	res, body := f.do(t, http.MethodGet, "/v1/probe", "")

	assert.Equal(t, http.StatusOK, res.StatusCode)
	s := decodeStatus(t, body)
	assert.Equal(t, probe.StateIdle, s.State)
	assert.Equal(t, "my-app.onrender.com", s.Endpoint)
}

func TestProbeSubmitWithEmptyEndpointCompletesImmediately(t *testing.T) {
	f := newFixture(t, "")

	res, body := f.do(t, http.MethodPost, "/v1/probe", "")

	assert.Equal(t, http.StatusOK, res.StatusCode)
	s := decodeStatus(t, body)
	assert.Equal(t, probe.StateCompleted, s.State)
	require.NotNil(t, s.Result)
	assert.Equal(t, probe.MessageMissingEndpoint, s.Result.Message)
}

func TestProbeSubmitAcceptedForFastBackend(t *testing.T) {
	f := newFixture(t, "backend")
	close(f.release)

	res, body := f.do(t, http.MethodPost, "/v1/probe", "")

	assert.Equal(t, http.StatusAccepted, res.StatusCode)
	assert.Equal(t, probe.StateInFlight, decodeStatus(t, body).State)
}

func TestProbeSubmitWhileInFlightConflicts(t *testing.T) {
	f := newFixture(t, "backend")

	res, body := f.do(t, http.MethodPost, "/v1/probe", "")
	require.Equal(t, http.StatusAccepted, res.StatusCode)
	assert.Equal(t, probe.StateInFlight, decodeStatus(t, body).State)

	res, _ = f.do(t, http.MethodPost, "/v1/probe", "")
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	res, _ = f.do(t, http.MethodPut, "/v1/probe/endpoint", `{"endpoint": "other.example.com"}`)
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	close(f.release)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s, err := f.server.widget.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Hello World", s.Result.Message)
}

func TestProbeEndpointUpdate(t *testing.T) {
	f := newFixture(t, "")

	res, body := f.do(t, http.MethodPut, "/v1/probe/endpoint", `{"endpoint": "my-app.onrender.com"}`)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "my-app.onrender.com", decodeStatus(t, body).Endpoint)

	res, _ = f.do(t, http.MethodPut, "/v1/probe/endpoint", `{`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestProbeEventsStream(t *testing.T) {
	f := newFixture(t, "backend")

	wsURL := "ws" + strings.TrimPrefix(f.api.URL, "http") + "/v1/probe/events"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	var s probe.Status
	require.NoError(t, conn.ReadJSON(&s))
	assert.Equal(t, probe.StateIdle, s.State)

	res, _ := f.do(t, http.MethodPost, "/v1/probe", "")
	require.Equal(t, http.StatusAccepted, res.StatusCode)

	require.NoError(t, conn.ReadJSON(&s))
	assert.Equal(t, probe.StateInFlight, s.State)

	close(f.release)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.ReadJSON(&s))
	assert.Equal(t, probe.StateCompleted, s.State)
	require.NotNil(t, s.Result)
	assert.True(t, s.Result.OK())
}

func TestChecksEndpoint(t *testing.T) {
	f := newFixture(t, "")

	res, body := f.do(t, http.MethodGet, "/v1/checks", "")

	assert.Equal(t, http.StatusOK, res.StatusCode)
	var status check.StatusResponse
	require.NoError(t, json.Unmarshal(body, &status))
	assert.True(t, status.Checks["backend"].OK)
}

func TestStepsEndpointUsesEndpoint(t *testing.T) {
	f := newFixture(t, "https://my-app.onrender.com")

	res, body := f.do(t, http.MethodGet, "/v1/steps", "")

	assert.Equal(t, http.StatusOK, res.StatusCode)
	var steps []tutorial.Step
	require.NoError(t, json.Unmarshal(body, &steps))
	require.Len(t, steps, 4)
	assert.Contains(t, string(body), "hellostack probe https://my-app.onrender.com")
}

func TestUnknownMethodIsRejected(t *testing.T) {
	f := newFixture(t, "")

	res, _ := f.do(t, http.MethodDelete, "/v1/probe", "")

	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
}

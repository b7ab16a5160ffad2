package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hellostack/hellostack/internal/config"
	"github.com/hellostack/hellostack/pkg/api"
	"github.com/hellostack/hellostack/pkg/check"
	"github.com/hellostack/hellostack/pkg/cli"
	"github.com/hellostack/hellostack/pkg/probe"
	"github.com/hellostack/hellostack/pkg/tutorial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRemote(t *testing.T) (*cli.APIClient, *httptest.Server) {
	t.Helper()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "Server configuration error: Supabase credentials are missing."}`))
	}))

	checks, err := check.NewHandler(&config.Hellostack{})
	require.NoError(t, err)
	checks.Register("database", check.CheckFunc(func(context.Context) error { return nil }), false)

	server := api.NewServer(":0", probe.NewWidget(probe.NewProber(backend.Client()), ""), checks, tutorial.DefaultData())
	remote := httptest.NewServer(server.Router())

	t.Cleanup(func() {
		remote.Close()
		backend.Close()
		_ = server.Shutdown(context.Background())
	})

	return cli.NewAPIClient(remote.URL), backend
}

func TestClientProbeRoundTrip(t *testing.T) {
	client, backend := newRemote(t)

	status := client.ProbeStatus()
	require.NoError(t, status.Err())
	assert.Equal(t, probe.StateIdle, status.Body.State)

	updated := client.SetEndpoint(backend.URL)
	require.NoError(t, updated.Err())
	assert.Equal(t, backend.URL, updated.Body.Endpoint)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var last probe.Status
	done := make(chan error, 1)
	go func() {
		done <- client.ProbeEvents().Stream(ctx, func(msg []byte) (bool, error) {
			if err := json.Unmarshal(msg, &last); err != nil {
				return false, err
			}
			return last.State != probe.StateCompleted, nil
		})
	}()

	// give the stream a moment to subscribe; a late subscriber still
	// receives the completed status as its first message
	time.Sleep(50 * time.Millisecond)

	submitted := client.Submit()
	require.NoError(t, submitted.Err())

	require.NoError(t, <-done)
	require.NotNil(t, last.Result)
	assert.Equal(t, probe.KindRemote, last.Result.Kind)
	assert.Equal(t, "Server configuration error: Supabase credentials are missing.", last.Result.Message)
}

func TestClientChecks(t *testing.T) {
	client, _ := newRemote(t)

	results := client.CheckResults()
	require.NoError(t, results.Err())
	assert.True(t, results.Body.OK())

	var buf bytes.Buffer
	require.NoError(t, client.Checks().Print(&buf))
	assert.Contains(t, buf.String(), "database")
}

func TestClientSteps(t *testing.T) {
	client, _ := newRemote(t)

	steps := client.Steps()
	require.NoError(t, steps.Err())
	assert.Len(t, steps.Body, 4)
}

func TestClientReportsUnreachableServer(t *testing.T) {
	client := cli.NewAPIClient("http://127.0.0.1:1")

	assert.Error(t, client.ProbeStatus().Err())
	assert.Error(t, client.ProbeEvents().Stream(context.Background(), func([]byte) (bool, error) { return true, nil }))
}

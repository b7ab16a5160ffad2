package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hellostack/hellostack/pkg/check"
	"github.com/hellostack/hellostack/pkg/probe"
	"github.com/hellostack/hellostack/pkg/tutorial"
	log "github.com/sirupsen/logrus"
)

const writeWait = 5 * time.Second

type EndpointRequest struct {
	Endpoint string `json:"endpoint"`
}

type ErrorResponse struct {
	Error  string        `json:"error"`
	Status *probe.Status `json:"status,omitempty"`
}

// Server exposes a single probe widget, the configured checks and the guide
// over HTTP.
type Server struct {
	*API

	widget *probe.Widget
	checks *check.Handler
	guide  tutorial.Data

	ctx    context.Context
	cancel context.CancelFunc
}

func NewServer(listenAddr string, widget *probe.Widget, checks *check.Handler, guide tutorial.Data) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		API:    NewAPI(listenAddr),
		widget: widget,
		checks: checks,
		guide:  guide,
		ctx:    ctx,
		cancel: cancel,
	}

	s.RegisterMiddlewareFuncs(logRequests)
	s.RegisterHandler("/v1/probe", []string{http.MethodGet}, s.apiV1ProbeStatus)
	s.RegisterHandler("/v1/probe", []string{http.MethodPost}, s.apiV1ProbeSubmit)
	s.RegisterHandler("/v1/probe/endpoint", []string{http.MethodPut}, s.apiV1ProbeEndpoint)
	s.RegisterHandler("/v1/probe/events", []string{http.MethodGet}, s.apiV1ProbeEvents)
	s.RegisterHandler("/v1/checks", []string{http.MethodGet}, s.checks.HandleStatus)
	s.RegisterHandler("/v1/steps", []string{http.MethodGet}, s.apiV1Steps)

	return s
}

// Shutdown stops the HTTP server and closes the widget, abandoning any
// in-flight probe.
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancel()
	s.widget.Close()
	return s.API.Shutdown(ctx)
}

func (s *Server) apiV1ProbeStatus(writer http.ResponseWriter, req *http.Request) {
	writeJSON(writer, http.StatusOK, s.widget.Status())
}

func (s *Server) apiV1ProbeSubmit(writer http.ResponseWriter, req *http.Request) {
	status, ok := s.widget.Submit(s.ctx)
	if !ok {
		writeJSON(writer, http.StatusConflict, ErrorResponse{Error: "a probe is already in flight", Status: &status})
		return
	}

	if status.State == probe.StateCompleted {
		writeJSON(writer, http.StatusOK, status)
		return
	}

	writeJSON(writer, http.StatusAccepted, status)
}

func (s *Server) apiV1ProbeEndpoint(writer http.ResponseWriter, req *http.Request) {
	var body EndpointRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeJSON(writer, http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	if !s.widget.SetEndpoint(body.Endpoint) {
		status := s.widget.Status()
		writeJSON(writer, http.StatusConflict, ErrorResponse{Error: "endpoint cannot be changed while a probe is in flight", Status: &status})
		return
	}

	writeJSON(writer, http.StatusOK, s.widget.Status())
}

func (s *Server) apiV1ProbeEvents(writer http.ResponseWriter, req *http.Request) {
	conn, err := s.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.WithError(err).Warn("failed to upgrade connection")
		return
	}
	defer conn.Close()

	updates, unsubscribe := s.widget.Subscribe()
	defer unsubscribe()

	// handle client disconnects
	disconnected := make(chan struct{})
	go func() {
		defer close(disconnected)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case status := <-updates:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(status); err != nil {
				log.WithError(err).Debug("stopped streaming probe events")
				return
			}

		case <-disconnected:
			return

		case <-s.ctx.Done():
			_ = conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
				time.Now().Add(time.Second),
			)
			return
		}
	}
}

func (s *Server) apiV1Steps(writer http.ResponseWriter, req *http.Request) {
	data := s.guide
	data.BackendURL = s.widget.Endpoint()

	steps, err := tutorial.Render(data)
	if err != nil {
		writeJSON(writer, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	writeJSON(writer, http.StatusOK, steps)
}

func writeJSON(writer http.ResponseWriter, status int, body interface{}) {
	out, err := json.Marshal(body)
	if err != nil {
		http.Error(writer, "failed to encode response", http.StatusInternalServerError)
		return
	}

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	_, _ = writer.Write(out)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		log.WithFields(log.Fields{"kind": "api", "method": req.Method, "path": req.URL.Path}).Debug()
		next.ServeHTTP(w, req)
	})
}

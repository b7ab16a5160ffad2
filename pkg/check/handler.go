package check

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/hellostack/hellostack/internal/config"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const DefaultTimeout = 5 * time.Second

type Handler struct {
	checks     map[string]Check
	waitChecks map[string]Check
	timeout    time.Duration
}

func NewHandler(cfg *config.Hellostack) (*Handler, error) {
	h := &Handler{
		checks:     make(map[string]Check),
		waitChecks: make(map[string]Check),
		timeout:    DefaultTimeout,
	}

	for i := range cfg.Checks {
		c, err := buildCheck(&cfg.Checks[i])
		if err != nil {
			return nil, errors.Wrapf(err, "invalid check %q", cfg.Checks[i].Name)
		}
		h.Register(cfg.Checks[i].Name, c, cfg.Checks[i].Wait)
	}

	return h, nil
}

func (h *Handler) Register(name string, c Check, wait bool) {
	h.checks[name] = c
	if wait {
		h.waitChecks[name] = c
	}
}

func (h *Handler) SetTimeout(timeout time.Duration) {
	h.timeout = timeout
}

func (h *Handler) Names() []string {
	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run executes all checks concurrently. Checks not finished when the
// handler's timeout elapses are reported as timed out.
func (h *Handler) Run(ctx context.Context) StatusResponse {
	return runAll(ctx, h.checks, h.timeout)
}

// Wait polls the checks marked with "wait" until all of them succeed or ctx
// is done.
func (h *Handler) Wait(ctx context.Context, interval time.Duration) error {
	if len(h.waitChecks) == 0 {
		return nil
	}

	log.Info("waiting for check readiness")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		status := runAll(ctx, h.waitChecks, h.timeout)
		if status.OK() {
			return nil
		}

		for name, r := range status.Checks {
			if !r.OK {
				log.WithFields(log.Fields{"kind": "check", "name": name, "err": r.Message}).Warn("not ready yet")
			}
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return errors.New("readiness interrupted")
		}
	}
}

func (h *Handler) HandleStatus(res http.ResponseWriter, req *http.Request) {
	response := h.Run(req.Context())

	res.Header().Set("Content-Type", "application/json")

	if !response.OK() {
		res.WriteHeader(http.StatusServiceUnavailable)
	}

	_ = json.NewEncoder(res).Encode(&response)
}

func runAll(ctx context.Context, checks map[string]Check, timeout time.Duration) StatusResponse {
	response := StatusResponse{
		Checks: make(map[string]*Result, len(checks)),
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	results := make(chan *Result, len(checks))

	for name := range checks {
		response.Checks[name] = &Result{Name: name, OK: false, Message: "timed out"}

		go func(c Check, name string) {
			if err := c.Exec(ctx); err != nil {
				results <- &Result{Name: name, OK: false, Message: err.Error()}
			} else {
				results <- &Result{Name: name, OK: true}
			}
		}(checks[name], name)
	}

	for i := 0; i < len(checks); i++ {
		select {
		case result := <-results:
			response.Checks[result.Name] = result
		case <-ctx.Done():
			log.WithFields(log.Fields{"kind": "check"}).Error("timed out")
			return response
		}
	}

	return response
}

func buildCheck(cfg *config.Check) (Check, error) {
	switch {
	case cfg.Filesystem != "":
		return &filesystemCheck{cfg.Filesystem}, nil
	case cfg.Postgres != nil:
		return NewPostgresCheck(cfg.Postgres), nil
	case cfg.MySQL != nil:
		return NewMySQLCheck(cfg.MySQL), nil
	case cfg.Redis != nil:
		return NewRedisCheck(cfg.Redis), nil
	case cfg.MongoDB != nil:
		return NewMongoDBCheck(cfg.MongoDB)
	case cfg.Amqp != nil:
		return NewAmqpCheck(cfg.Amqp), nil
	case cfg.HTTP != nil:
		return NewHTTPCheck(cfg.HTTP)
	case cfg.SMTP != nil:
		return NewSMTPCheck(cfg.SMTP), nil
	}
	return nil, errors.New("no check type configured")
}

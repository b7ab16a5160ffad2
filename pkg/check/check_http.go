package check

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/hellostack/hellostack/internal/config"
	"github.com/hellostack/hellostack/internal/helper"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type httpCheck struct {
	method  string
	url     string
	headers map[string]string
	timeout time.Duration
	status  *regexp.Regexp
}

func NewHTTPCheck(cfg *config.HTTP) (*httpCheck, error) {
	method := strings.ToUpper(helper.SetDefaultStringIfEmpty(helper.ResolveEnv(cfg.Method), http.MethodGet, "method", "http"))
	timeoutStr := helper.SetDefaultStringIfEmpty(helper.ResolveEnv(cfg.Timeout), "5s", "timeout", "http")
	expectStatus := helper.SetDefaultStringIfEmpty(helper.ResolveEnv(cfg.ExpectStatus), `^(1|2|3)\d\d\s`, "expectStatus", "http")

	u := helper.ResolveEnv(cfg.URL)
	if u == "" {
		return nil, errors.New("http check requires an url")
	}

	status, err := regexp.Compile(expectStatus)
	if err != nil {
		return nil, errors.Wrap(err, "invalid HTTP status line regexp")
	}

	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, errors.Wrap(err, "invalid timeout duration")
	}

	headers := make(map[string]string, len(cfg.Headers))
	for k, v := range cfg.Headers {
		headers[k] = helper.ResolveEnv(v)
	}

	return &httpCheck{
		method:  method,
		url:     u,
		headers: headers,
		timeout: timeout,
		status:  status,
	}, nil
}

func (h *httpCheck) Exec(ctx context.Context) error {
	client := &http.Client{
		Timeout: h.timeout,
	}

	req, err := http.NewRequestWithContext(ctx, h.method, h.url, nil)
	if err != nil {
		return err
	}

	for k, v := range h.headers {
		req.Header.Set(k, v)
	}

	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if !h.status.MatchString(res.Status) {
		return fmt.Errorf("http service %q returned status %q", h.url, res.Status)
	}

	log.WithFields(log.Fields{"kind": "check", "name": "http", "status": "alive", "host": h.url}).Debug()
	return nil
}

package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// maxBodySize bounds how much of a response body is decoded.
const maxBodySize = 1 << 20

// Doer is satisfied by *http.Client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Prober struct {
	client Doer
}

type helloResponse struct {
	Message *string `json:"message"`
	Error   *string `json:"error"`
}

// NewProber returns a Prober using client, or a zero-value *http.Client
// (no timeout, default redirect policy) when client is nil.
func NewProber(client Doer) *Prober {
	if client == nil {
		client = &http.Client{}
	}
	return &Prober{client: client}
}

// Run performs a single connectivity probe against the backend at rawInput.
// It never returns an error; failures are reported as error outcomes.
func (p *Prober) Run(ctx context.Context, rawInput string) Result {
	if strings.TrimSpace(rawInput) == "" {
		return failure(KindValidation, "", 0, MessageMissingEndpoint)
	}

	target := TargetURL(rawInput)
	logger := log.WithFields(log.Fields{"kind": "probe", "url": target})

	res, err := p.get(ctx, target)
	if err != nil {
		logger.WithError(err).Warn("request did not complete")
		return failure(KindTransport, target, 0, transportMessage(target))
	}
	defer res.Body.Close()

	var body helloResponse
	raw, decodeErr := io.ReadAll(io.LimitReader(res.Body, maxBodySize))
	if decodeErr == nil {
		// the whole body must be a single JSON document
		decodeErr = json.Unmarshal(raw, &body)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		msg := fmt.Sprintf("Request failed with status %d", res.StatusCode)
		if decodeErr == nil && body.Error != nil && *body.Error != "" {
			msg = *body.Error
		}
		logger.WithFields(log.Fields{"status": res.StatusCode}).Warn(msg)
		return failure(KindRemote, target, res.StatusCode, msg)
	}

	if decodeErr != nil {
		err := errors.Wrapf(decodeErr, "failed to parse response from %s", target)
		logger.WithError(err).Warn("unexpected response body")
		return failure(KindParse, target, res.StatusCode, err.Error())
	}

	var msg string
	if body.Message != nil {
		msg = *body.Message
	}

	logger.WithFields(log.Fields{"status": res.StatusCode, "message": msg}).Debug("backend is alive")
	return success(target, res.StatusCode, msg)
}

func (p *Prober) get(ctx context.Context, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid url %q", target)
	}
	req.Header.Set("Accept", "application/json")

	return p.client.Do(req)
}

func transportMessage(target string) string {
	return fmt.Sprintf(
		"Failed to fetch. This could be a CORS issue, a network problem, or the server is not running at %s. "+
			"Run `hellostack guide --step 3` for troubleshooting help.",
		target,
	)
}

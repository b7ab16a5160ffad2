package probe

import (
	"fmt"
)

const (
	HelloPath = "/api/hello"

	MessageMissingEndpoint = "Please enter your backend URL."
)

type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeError   Outcome = "error"
)

// Kind classifies an error outcome. Successful results carry KindNone.
type Kind string

const (
	KindNone       Kind = ""
	KindValidation Kind = "validation"
	KindTransport  Kind = "transport"
	KindRemote     Kind = "remote"
	KindParse      Kind = "parse"
)

// Result is the outcome of a single probe attempt. It is replaced wholesale on
// every attempt and never merged with a previous one.
type Result struct {
	Outcome    Outcome `json:"type"`
	Message    string  `json:"message"`
	Kind       Kind    `json:"kind,omitempty"`
	TargetURL  string  `json:"url,omitempty"`
	StatusCode int     `json:"statusCode,omitempty"`
}

func (r Result) OK() bool {
	return r.Outcome == OutcomeSuccess
}

// Err returns nil for successful results, and a *Error otherwise.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return &Error{Kind: r.Kind, URL: r.TargetURL, Message: r.Message}
}

type Error struct {
	Kind    Kind
	URL     string
	Message string
}

func (e *Error) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s error probing %s: %s", e.Kind, e.URL, e.Message)
}

// kindOf returns the Kind of err if it is a *Error, KindNone otherwise.
func kindOf(err error) Kind {
	if pe, ok := err.(*Error); ok {
		return pe.Kind
	}
	return KindNone
}

func success(url string, statusCode int, message string) Result {
	return Result{Outcome: OutcomeSuccess, Message: message, TargetURL: url, StatusCode: statusCode}
}

func failure(kind Kind, url string, statusCode int, message string) Result {
	return Result{Outcome: OutcomeError, Kind: kind, Message: message, TargetURL: url, StatusCode: statusCode}
}

// State is the derived status of a Widget.
type State string

const (
	StateIdle      State = "idle"
	StateInFlight  State = "in-flight"
	StateCompleted State = "completed"
)

type Status struct {
	State    State   `json:"state"`
	Endpoint string  `json:"endpoint"`
	Result   *Result `json:"result,omitempty"`
}

package check

import "context"

// Check verifies that one tier of the stack is reachable.
type Check interface {
	Exec(ctx context.Context) error
}

type Result struct {
	Name    string `json:"-"`
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

type StatusResponse struct {
	Checks map[string]*Result `json:"checks"`
}

func (s StatusResponse) OK() bool {
	for _, r := range s.Checks {
		if !r.OK {
			return false
		}
	}
	return true
}

// CheckFunc adapts an ordinary function to the Check interface.
type CheckFunc func(ctx context.Context) error

func (f CheckFunc) Exec(ctx context.Context) error {
	return f(ctx)
}

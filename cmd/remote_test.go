package cmd

import (
	"testing"

	"github.com/hellostack/hellostack/pkg/probe"
	"github.com/stretchr/testify/assert"
)

func TestRenderRemoteStatusIdle(t *testing.T) {
	assert.Contains(t, renderRemoteStatus(probe.Status{State: probe.StateIdle}), "<not set>")
	assert.Contains(t, renderRemoteStatus(probe.Status{State: probe.StateIdle, Endpoint: "example.com"}), "example.com")
}

func TestRenderRemoteStatusCompleted(t *testing.T) {
	view := renderRemoteStatus(probe.Status{
		State:  probe.StateCompleted,
		Result: &probe.Result{Outcome: probe.OutcomeSuccess, Message: "Hello World"},
	})

	assert.Contains(t, view, "Hello World")
}

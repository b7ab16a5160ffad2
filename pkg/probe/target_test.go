package probe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTargetURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"example.com", "https://example.com/api/hello"},
		{"example.com/", "https://example.com/api/hello"},
		{"  my-app.onrender.com  ", "https://my-app.onrender.com/api/hello"},
		{"http://example.com", "http://example.com/api/hello"},
		{"https://example.com/", "https://example.com/api/hello"},
		{"https://example.com/base//path", "https://example.com/base//path/api/hello"},
		{"HTTP://example.com", "https://HTTP://example.com/api/hello"},
		{"example.com//", "https://example.com//api/hello"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, TargetURL(tt.input))
		})
	}
}

func TestTargetURLPrependsSchemeOnce(t *testing.T) {
	for _, input := range []string{"example.com", "localhost:10000", "10.0.0.1/app"} {
		u := TargetURL(input)
		assert.Equal(t, "https://"+input+"/api/hello", u)
		assert.NotContains(t, u[len("https://"):], "https://")
	}
}

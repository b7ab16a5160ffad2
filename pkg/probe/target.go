package probe

import (
	"strings"
)

// TargetURL derives the URL a probe requests from a user supplied base URL.
// A missing scheme defaults to https, and exactly one trailing slash is
// dropped before HelloPath is appended. Interior slashes are left alone.
func TargetURL(input string) string {
	u := strings.TrimSpace(input)
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		u = "https://" + u
	}

	return strings.TrimSuffix(u, "/") + HelloPath
}

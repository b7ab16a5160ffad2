package helper

import (
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// ResolveEnv replaces values of the form "ENV:NAME" with the content of the
// environment variable NAME.
func ResolveEnv(in string) string {
	if strings.HasPrefix(in, "ENV:") {
		return os.Getenv(in[4:])
	}
	return in
}

func SetDefaultStringIfEmpty(value, defaultValue string, fields ...string) string {
	if len(value) != 0 {
		return value
	}

	if len(fields) == 2 {
		log.WithFields(log.Fields{"kind": "check", "name": fields[1], "field": fields[0]}).
			Debugf("no value specified or env variable not found, assuming default %q", defaultValue)
	}
	return defaultValue
}

// FirstNonEmpty returns the first of values that is not empty after
// resolving environment references.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if r := ResolveEnv(v); r != "" {
			return r
		}
	}
	return ""
}

package config

import (
	"os"
	"strings"

	"github.com/hashicorp/hcl"
	"github.com/hellostack/hellostack/internal/helper"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	EnvBackendURL     = "HELLOSTACK_BACKEND_URL"
	EnvViteBackendURL = "VITE_BACKEND_URL"
)

// GenerateFromConfigDir merges every *.hcl file below configDir into c. A
// missing directory leaves c untouched.
func (c *Hellostack) GenerateFromConfigDir(configDir string) error {
	configDir = strings.TrimRight(configDir, "/")

	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		log.Debugf("config directory %s does not exist; using defaults", configDir)
		return nil
	}

	matches, err := findFilesInPath(configDir)
	if err != nil {
		return errors.Wrapf(err, "could not search configuration files in %s", configDir)
	}

	for _, m := range matches {
		log.Debugf("found config file: %s", m)

		contents, err := os.ReadFile(m)
		if err != nil {
			return errors.Wrapf(err, "could not read configuration file %s", m)
		}

		if err := hcl.Unmarshal(contents, c); err != nil {
			return errors.Wrapf(err, "could not parse configuration file %s", m)
		}
	}

	return nil
}

// InitialEndpoint picks the value used to pre-populate the probe's endpoint
// input: an explicit value wins over the config file, which wins over the
// environment. The result may be empty.
func (c *Hellostack) InitialEndpoint(explicit string) string {
	var configured string
	if c.Backend != nil {
		configured = c.Backend.URL
	}

	return helper.FirstNonEmpty(
		explicit,
		configured,
		"ENV:"+EnvBackendURL,
		"ENV:"+EnvViteBackendURL,
	)
}

func (c *Hellostack) FindCheck(name string) *Check {
	for i := range c.Checks {
		if c.Checks[i].Name == name {
			return &c.Checks[i]
		}
	}
	return nil
}

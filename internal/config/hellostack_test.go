package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
backend {
  url = "https://my-app.onrender.com"
}

check "database" {
  wait = true
  postgres {
    hostname = "db.example.supabase.co"
    user     = "postgres"
    password = "ENV:PGPASSWORD"
    database = "postgres"
  }
}

check "backend" {
  http {
    url          = "https://my-app.onrender.com"
    expectStatus = "200"
  }
}
`

func writeConfig(t *testing.T, dir, name, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644))
}

func TestGenerateFromConfigDir(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "hellostack.hcl", testConfig)
	writeConfig(t, dir, "README.md", "not a config file")

	cfg := Hellostack{}
	require.NoError(t, cfg.GenerateFromConfigDir(dir+"/"))

	require.NotNil(t, cfg.Backend)
	assert.Equal(t, "https://my-app.onrender.com", cfg.Backend.URL)
	require.Len(t, cfg.Checks, 2)

	db := cfg.FindCheck("database")
	require.NotNil(t, db)
	assert.True(t, db.Wait)
	require.NotNil(t, db.Postgres)
	assert.Equal(t, "db.example.supabase.co", db.Postgres.Hostname)
	assert.Equal(t, "postgres", db.Postgres.User)
	assert.Equal(t, "ENV:PGPASSWORD", db.Postgres.Password)

	backend := cfg.FindCheck("backend")
	require.NotNil(t, backend)
	require.NotNil(t, backend.HTTP)
	assert.Equal(t, "200", backend.HTTP.ExpectStatus)

	assert.Nil(t, cfg.FindCheck("cache"))
}

func TestGenerateFromMissingConfigDir(t *testing.T) {
	cfg := Hellostack{}
	assert.NoError(t, cfg.GenerateFromConfigDir(filepath.Join(t.TempDir(), "missing")))
	assert.Nil(t, cfg.Backend)
}

func TestGenerateFromInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "broken.hcl", `backend {`)

	cfg := Hellostack{}
	err := cfg.GenerateFromConfigDir(dir)
	assert.ErrorContains(t, err, "broken.hcl")
}

func TestInitialEndpointPrecedence(t *testing.T) {
	t.Setenv(EnvViteBackendURL, "vite.example.com")

	cfg := Hellostack{}
	assert.Equal(t, "vite.example.com", cfg.InitialEndpoint(""))

	t.Setenv(EnvBackendURL, "env.example.com")
	assert.Equal(t, "env.example.com", cfg.InitialEndpoint(""))

	cfg.Backend = &Backend{URL: "config.example.com"}
	assert.Equal(t, "config.example.com", cfg.InitialEndpoint(""))

	assert.Equal(t, "flag.example.com", cfg.InitialEndpoint("flag.example.com"))
}

func TestInitialEndpointDefaultsToEmpty(t *testing.T) {
	t.Setenv(EnvBackendURL, "")
	t.Setenv(EnvViteBackendURL, "")

	cfg := Hellostack{Backend: &Backend{URL: "ENV:HELLOSTACK_TEST_UNSET"}}
	assert.Equal(t, "", cfg.InitialEndpoint(""))
}

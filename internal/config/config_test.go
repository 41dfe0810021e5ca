package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storage-diagnostics/internal/reshape"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"API_PORT", "API_ENV", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "8080", c.Server.Port)
	assert.Equal(t, "debug", c.Server.Mode)
	assert.Equal(t, reshape.DefaultValueRange, c.ValueRange())
	assert.Empty(t, c.ParserOptions())
	assert.Equal(t, 5*time.Minute, c.CacheTTL())
}

func TestLoadYAMLOverlaysDefaults(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "diag.yaml", `
server:
  port: "9090"
  allowed_origins: ["http://localhost:5173"]
flow:
  value_min: -60
  value_max: 260
parser:
  time_layouts: ["02.01.2006 15:04"]
  sheet: Results
log:
  level: debug
`)
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", c.Server.Port)
	assert.Equal(t, []string{"http://localhost:5173"}, c.Server.AllowedOrigins)
	assert.Equal(t, int64(32<<20), c.Server.MaxUploadBytes)
	assert.Equal(t, reshape.ValueRange{Min: -60, Max: 260}, c.ValueRange())
	assert.Equal(t, "Results", c.Parser.Sheet)
	assert.Len(t, c.ParserOptions(), 2)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "text", c.Log.Format)
}

func TestLoadINI(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "diag.ini", `
[server]
port = 7070
allowed_origins = http://a.example,http://b.example
rate_limit_qps = 0

[flow]
value_min = -100
value_max = 400

[parser]
time_layouts = 2006/01/02 15:04|02.01.2006 15:04

[cache]
ttl_seconds = 0

[log]
format = json
`)
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", c.Server.Port)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, c.Server.AllowedOrigins)
	assert.Zero(t, c.Server.RateLimitQPS)
	assert.Equal(t, reshape.ValueRange{Min: -100, Max: 400}, c.ValueRange())
	assert.Equal(t, []string{"2006/01/02 15:04", "02.01.2006 15:04"}, c.Parser.TimeLayouts)
	assert.Equal(t, "json", c.Log.Format)
	assert.Zero(t, c.CacheTTL())
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_PORT", "9999")
	t.Setenv("API_ENV", "production")
	t.Setenv("LOG_LEVEL", "warn")
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "9999", c.Server.Port)
	assert.Equal(t, "release", c.Server.Mode)
	assert.Equal(t, "warn", c.Log.Level)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadBadYAML(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeFile(t, "bad.yaml", "server: [unterminated"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(c *Config){
		"port":         func(c *Config) { c.Server.Port = "http" },
		"mode":         func(c *Config) { c.Server.Mode = "prod" },
		"upload limit": func(c *Config) { c.Server.MaxUploadBytes = 0 },
		"qps":          func(c *Config) { c.Server.RateLimitQPS = -1 },
		"burst":        func(c *Config) { c.Server.RateLimitBurst = 0 },
		"value range":  func(c *Config) { c.Flow.ValueMin = c.Flow.ValueMax },
		"layout":       func(c *Config) { c.Parser.TimeLayouts = []string{" "} },
		"level":        func(c *Config) { c.Log.Level = "loud" },
		"format":       func(c *Config) { c.Log.Format = "xml" },
		"cache ttl":    func(c *Config) { c.Cache.TTLSeconds = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := Default()
			mutate(c)
			assert.Error(t, c.Validate())
		})
	}

	var nilCfg *Config
	assert.Error(t, nilCfg.Validate())
	assert.NoError(t, Default().Validate())
}

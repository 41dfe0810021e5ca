package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-ini/ini"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"storage-diagnostics/internal/ingest"
	"storage-diagnostics/internal/reshape"
)

// Config is the on-disk configuration shape. Files ending in .ini are read as
// INI sections, everything else as YAML.
type Config struct {
	Server ServerConfig `yaml:"server" ini:"server"`
	Flow   FlowConfig   `yaml:"flow" ini:"flow"`
	Parser ParserConfig `yaml:"parser" ini:"parser"`
	Cache  CacheConfig  `yaml:"cache" ini:"cache"`
	Log    LogConfig    `yaml:"log" ini:"log"`
}

type ServerConfig struct {
	Port string `yaml:"port" ini:"port"`
	// Mode is the gin mode: debug, release or test.
	Mode           string   `yaml:"mode" ini:"mode"`
	AllowedOrigins []string `yaml:"allowed_origins" ini:"allowed_origins"`
	MaxUploadBytes int64    `yaml:"max_upload_bytes" ini:"max_upload_bytes"`
	// Upload rate limit per client IP. Zero QPS disables limiting.
	RateLimitQPS   float64 `yaml:"rate_limit_qps" ini:"rate_limit_qps"`
	RateLimitBurst int     `yaml:"rate_limit_burst" ini:"rate_limit_burst"`
}

// FlowConfig holds the fixed display clamp of the flow chart.
type FlowConfig struct {
	ValueMin float64 `yaml:"value_min" ini:"value_min"`
	ValueMax float64 `yaml:"value_max" ini:"value_max"`
}

type ParserConfig struct {
	// TimeLayouts replaces the default timestamp layouts when non-empty.
	TimeLayouts []string `yaml:"time_layouts" ini:"time_layouts" delim:"|"`
	Sheet       string   `yaml:"sheet" ini:"sheet"`
}

// CacheConfig controls reuse of computed views. Zero TTL disables it.
type CacheConfig struct {
	TTLSeconds int `yaml:"ttl_seconds" ini:"ttl_seconds"`
}

type LogConfig struct {
	Level  string `yaml:"level" ini:"level"`
	Format string `yaml:"format" ini:"format"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8080",
			Mode:           "debug",
			AllowedOrigins: []string{"*"},
			MaxUploadBytes: 32 << 20,
			RateLimitQPS:   2,
			RateLimitBurst: 5,
		},
		Flow: FlowConfig{
			ValueMin: reshape.DefaultValueRange.Min,
			ValueMax: reshape.DefaultValueRange.Max,
		},
		Cache: CacheConfig{TTLSeconds: 300},
		Log:   LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path yields the defaults plus environment.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and overlays config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	c := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := decode(c, raw, filepath.Ext(path)); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	ApplyEnv(c)
	return c, nil
}

// decode overlays raw onto c. Keys absent from raw keep their current value.
func decode(c *Config, raw []byte, ext string) error {
	switch strings.ToLower(ext) {
	case ".ini", ".cfg", ".conf":
		f, err := ini.Load(raw)
		if err != nil {
			return err
		}
		return f.MapTo(c)
	default:
		return yaml.Unmarshal(raw, c)
	}
}

// ApplyEnv overlays the deployment environment:
// API_PORT, API_ENV=production (release mode), LOG_LEVEL and LOG_FORMAT.
func ApplyEnv(c *Config) {
	if v := os.Getenv("API_PORT"); v != "" {
		c.Server.Port = v
	}
	if os.Getenv("API_ENV") == "production" {
		c.Server.Mode = "release"
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if _, err := strconv.ParseUint(c.Server.Port, 10, 16); err != nil {
		return fmt.Errorf("server.port %q is not a valid port", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode %q must be debug, release or test", c.Server.Mode)
	}
	if c.Server.MaxUploadBytes <= 0 {
		return errors.New("server.max_upload_bytes must be positive")
	}
	if c.Server.RateLimitQPS < 0 {
		return errors.New("server.rate_limit_qps must not be negative")
	}
	if c.Server.RateLimitQPS > 0 && c.Server.RateLimitBurst < 1 {
		return errors.New("server.rate_limit_burst must be at least 1 when rate limiting is enabled")
	}
	if err := c.ValueRange().Validate(); err != nil {
		return fmt.Errorf("flow config invalid: %w", err)
	}
	for i, l := range c.Parser.TimeLayouts {
		if strings.TrimSpace(l) == "" {
			return fmt.Errorf("parser.time_layouts[%d] is empty", i)
		}
	}
	if c.Cache.TTLSeconds < 0 {
		return errors.New("cache.ttl_seconds must not be negative")
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format %q must be text or json", c.Log.Format)
	}
	return nil
}

func (c *Config) ValueRange() reshape.ValueRange {
	return reshape.ValueRange{Min: c.Flow.ValueMin, Max: c.Flow.ValueMax}
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

// ParserOptions translates the parser section into ingest options.
func (c *Config) ParserOptions() []ingest.Option {
	var opts []ingest.Option
	if len(c.Parser.TimeLayouts) > 0 {
		opts = append(opts, ingest.WithTimeLayouts(c.Parser.TimeLayouts...))
	}
	if c.Parser.Sheet != "" {
		opts = append(opts, ingest.WithSheet(c.Parser.Sheet))
	}
	return opts
}

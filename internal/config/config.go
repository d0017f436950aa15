package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is the top-level application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Upstream UpstreamConfig `koanf:"upstream"`
	Log      LogConfig      `koanf:"log"`
	Auth     AuthConfig     `koanf:"auth"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string     `koanf:"host"`
	Port int        `koanf:"port"`
	Mode string     `koanf:"mode"`
	CORS CORSConfig `koanf:"cors"`
}

// CORSConfig holds CORS middleware settings.
type CORSConfig struct {
	AllowOrigins     []string `koanf:"allow_origins"`
	AllowMethods     []string `koanf:"allow_methods"`
	AllowHeaders     []string `koanf:"allow_headers"`
	AllowCredentials bool     `koanf:"allow_credentials"`
	MaxAge           string   `koanf:"max_age"`
}

// UpstreamConfig holds the platform backend connection settings.
type UpstreamConfig struct {
	// BaseURL is the backend REST API root, e.g. "https://api.example.com/api".
	BaseURL string `koanf:"base_url"`
	// Timeout is an optional client-wide timeout; empty means none, which
	// matches the backend contract (no retries, no per-request deadline).
	Timeout string `koanf:"timeout"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level           string `koanf:"level"`
	Format          string `koanf:"format"`
	Color           *bool  `koanf:"color"`
	FilePath        string `koanf:"file_path"`
	MaxSizeMB       int    `koanf:"max_size_mb"`
	RetentionDays   int    `koanf:"retention_days"`
	MaxBackups      int    `koanf:"max_backups"`
	CompressRotated *bool  `koanf:"compress_rotated"`
}

// AuthConfig holds dashboard session settings.
type AuthConfig struct {
	Enabled     bool   `koanf:"enabled"`
	JWTSecret   string `koanf:"jwt_secret"`
	TokenExpiry string `koanf:"token_expiry"`
}

// Load reads configuration from a YAML file and overlays environment variables.
// Environment variables use the prefix "APP__" and double-underscore as the
// hierarchy separator. Single underscores are preserved as part of the key name.
// For example, APP__SERVER__PORT=9090 overrides server.port and
// APP__UPSTREAM__BASE_URL overrides upstream.base_url.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	// Load YAML config file.
	if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
	}

	// Overlay environment variables with prefix APP__.
	// APP__SERVER__PORT -> server.port
	// APP__UPSTREAM__BASE_URL -> upstream.base_url
	if err := k.Load(env.Provider("APP__", ".", func(s string) string {
		key := strings.TrimPrefix(s, "APP__")
		key = strings.ToLower(key)
		key = strings.ReplaceAll(key, "__", ".")
		return key
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cross-field constraints and supported values.
func (c *Config) Validate() error {
	// Validate server.mode.
	mode := strings.TrimSpace(c.Server.Mode)
	switch mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		c.Server.Mode = mode
	default:
		return fmt.Errorf("invalid server.mode %q: must be one of %q, %q, %q", c.Server.Mode, gin.DebugMode, gin.ReleaseMode, gin.TestMode)
	}

	// Validate server.port range.
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", c.Server.Port)
	}

	// Validate server.host.
	host := strings.TrimSpace(c.Server.Host)
	if host == "" {
		return fmt.Errorf("server.host is required")
	}
	c.Server.Host = host

	// Validate upstream.base_url.
	baseURL := strings.TrimSpace(c.Upstream.BaseURL)
	if baseURL == "" {
		return fmt.Errorf("upstream.base_url is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid upstream.base_url %q: must be an absolute http(s) URL", c.Upstream.BaseURL)
	}
	switch parsed.Scheme {
	case "http", "https":
		// ok
	default:
		return fmt.Errorf("invalid upstream.base_url %q: scheme must be http or https", c.Upstream.BaseURL)
	}
	if c.Server.Mode == gin.ReleaseMode && parsed.Scheme != "https" {
		return fmt.Errorf("invalid upstream.base_url %q for server.mode %q: must use https", c.Upstream.BaseURL, gin.ReleaseMode)
	}
	c.Upstream.BaseURL = strings.TrimRight(baseURL, "/")

	// Validate upstream.timeout (optional; must be a valid Go duration if set).
	c.Upstream.Timeout = strings.TrimSpace(c.Upstream.Timeout)
	if t := c.Upstream.Timeout; t != "" {
		d, err := time.ParseDuration(t)
		if err != nil {
			return fmt.Errorf("invalid upstream.timeout %q: %w", c.Upstream.Timeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("invalid upstream.timeout %q: must be greater than 0", c.Upstream.Timeout)
		}
	}

	c.Server.CORS.MaxAge = strings.TrimSpace(c.Server.CORS.MaxAge)

	// Validate auth config (when enabled).
	if c.Auth.Enabled {
		jwtSecret := strings.TrimSpace(c.Auth.JWTSecret)
		if jwtSecret == "" {
			return fmt.Errorf("auth.jwt_secret is required when auth is enabled")
		}
		if len(jwtSecret) < 32 {
			return fmt.Errorf("invalid auth.jwt_secret: must be at least 32 characters")
		}
		c.Auth.JWTSecret = jwtSecret

		tokenExpiry := strings.TrimSpace(c.Auth.TokenExpiry)
		if tokenExpiry == "" {
			return fmt.Errorf("auth.token_expiry is required when auth is enabled")
		}
		td, err := time.ParseDuration(tokenExpiry)
		if err != nil {
			return fmt.Errorf("invalid auth.token_expiry %q: %w", c.Auth.TokenExpiry, err)
		}
		if td <= 0 {
			return fmt.Errorf("invalid auth.token_expiry %q: must be greater than 0", c.Auth.TokenExpiry)
		}
		c.Auth.TokenExpiry = tokenExpiry

		if c.Server.Mode == gin.ReleaseMode {
			if CountSecretClasses(jwtSecret) < 3 {
				return fmt.Errorf("auth.jwt_secret must include at least 3 character classes (lowercase, uppercase, digit, symbol) in release mode")
			}
		}
	}

	// Validate log.level.
	level := strings.ToLower(strings.TrimSpace(c.Log.Level))
	switch level {
	case "debug", "info", "warn", "error":
		c.Log.Level = level
	default:
		return fmt.Errorf("invalid log.level %q: must be one of %q, %q, %q, %q", c.Log.Level, "debug", "info", "warn", "error")
	}

	// Validate log.format.
	format := strings.ToLower(strings.TrimSpace(c.Log.Format))
	switch format {
	case "text", "json":
		c.Log.Format = format
	default:
		return fmt.Errorf("invalid log.format %q: must be one of %q, %q", c.Log.Format, "text", "json")
	}

	return nil
}

// UpstreamTimeout returns the parsed upstream timeout, or zero when unset.
// Validate must have run first.
func (c *Config) UpstreamTimeout() time.Duration {
	if c.Upstream.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Upstream.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// TokenExpiry returns the parsed session token expiry.
// Validate must have run first.
func (c *Config) TokenExpiry() time.Duration {
	d, err := time.ParseDuration(c.Auth.TokenExpiry)
	if err != nil {
		return 0
	}
	return d
}

// CountSecretClasses counts how many character classes (lowercase, uppercase,
// digit, symbol) are present in the given secret string.
func CountSecretClasses(secret string) int {
	hasLower := false
	hasUpper := false
	hasDigit := false
	hasSymbol := false

	for _, r := range secret {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}

	classes := 0
	if hasLower {
		classes++
	}
	if hasUpper {
		classes++
	}
	if hasDigit {
		classes++
	}
	if hasSymbol {
		classes++
	}

	return classes
}

package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/motortwin/motortwin/pkg/types"
	"github.com/motortwin/motortwin/server/internal/source"
)

// Default values for the server configuration.
const (
	DefaultHTTPPort      = 8080
	DefaultLogLevel      = "info"
	DefaultTickInterval  = 2 * time.Second
	DefaultHistorySize   = 20
	DefaultBackfillStep  = 5 * time.Second
	DefaultAlertCooldown = time.Minute
	DefaultAuthHeader    = "x-api-key"
)

// Config is the full configuration tree parsed from config.yaml.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Limits replaces the factory limit table when non-empty.
	Limits []types.Limit `yaml:"limits"`

	Alerts AlertsConfig `yaml:"alerts"`
}

// ServerConfig holds listener, logging and access settings.
type ServerConfig struct {
	// HTTPPort is the port the REST API, WebSocket hub and /metrics listen on.
	HTTPPort int `yaml:"http_port"`

	// LogLevel is one of: debug | info | warn | error.
	LogLevel string `yaml:"log_level"`

	// Auth guards the mutating REST routes.
	Auth AuthConfig `yaml:"auth"`

	// CORSOrigins lists the origins allowed to call the API from a browser.
	// Empty allows any origin.
	CORSOrigins []string `yaml:"cors_origins"`
}

// SlogLevel maps LogLevel onto a slog.Level. Unknown values map to Info.
func (s ServerConfig) SlogLevel() slog.Level {
	switch strings.ToLower(s.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// AuthConfig controls client authentication for mutating routes.
type AuthConfig struct {
	// Mode is one of: apikey | none.
	Mode string `yaml:"mode"`

	// KeyEnv is the name of the environment variable that holds the expected API key.
	// Used when Mode == "apikey".
	KeyEnv string `yaml:"key_env"`

	// Header is the HTTP header name to read the key from.
	// Defaults to "x-api-key" if empty.
	Header string `yaml:"header"`
}

// Key returns the expected API key resolved from the environment.
func (a AuthConfig) Key() string {
	if a.KeyEnv == "" {
		return ""
	}
	return os.Getenv(a.KeyEnv)
}

// EffectiveHeader returns the configured header name, or the default "x-api-key".
func (a AuthConfig) EffectiveHeader() string {
	if a.Header != "" {
		return a.Header
	}
	return DefaultAuthHeader
}

// TelemetryConfig controls the tick loop and the simulated source.
type TelemetryConfig struct {
	// TickInterval is the time between evaluations (default 2s).
	TickInterval time.Duration `yaml:"tick_interval"`

	// HistorySize is the length of the sliding history window (default 20).
	HistorySize int `yaml:"history_size"`

	// BackfillStep is the spacing of the warm-up readings (default 5s).
	BackfillStep time.Duration `yaml:"backfill_step"`

	// Seed seeds the telemetry and estimator random sources.
	// Zero picks a time-based seed.
	Seed int64 `yaml:"seed"`

	// Ranges overrides the generation range of individual reading fields.
	Ranges map[source.Field]source.Range `yaml:"ranges"`
}

// AlertsConfig holds alert timing, snapshot rules and webhook delivery targets.
// Limit breaches always alert; Rules add conditions on derived metrics.
type AlertsConfig struct {
	// Cooldown suppresses re-fires of the same alert for this duration
	// after it fires. Defaults to 1 minute.
	Cooldown time.Duration `yaml:"cooldown"`

	Rules    []AlertRule     `yaml:"rules"`
	Webhooks []WebhookConfig `yaml:"webhooks"`
}

// AlertRule defines one threshold condition on the derived metrics.
type AlertRule struct {
	// Name is the human-readable alert identifier, used as the deduplication key.
	Name string `yaml:"name"`

	// Condition is a simple expression: "health_score < 60",
	// "failure_probability > 50", "machine_status == Overload".
	Condition string `yaml:"condition"`

	// Severity is one of: critical | warning | info.
	Severity string `yaml:"severity"`
}

// WebhookConfig defines one webhook delivery target.
type WebhookConfig struct {
	// Type is one of: teams | slack | http.
	Type string `yaml:"type"`

	// URLEnv is the name of the environment variable that holds the webhook URL.
	URLEnv string `yaml:"url_env"`
}

// URL returns the webhook URL resolved from the environment.
func (w WebhookConfig) URL() string {
	if w.URLEnv == "" {
		return ""
	}
	return os.Getenv(w.URLEnv)
}

// Load reads and parses the config file at path.
// Missing fields are filled with sensible defaults before validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML config data, applying defaults and validation.
func Parse(data []byte) (*Config, error) {
	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return defaults()
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort: DefaultHTTPPort,
			LogLevel: DefaultLogLevel,
			Auth:     AuthConfig{Mode: "none"},
		},
		Telemetry: TelemetryConfig{
			TickInterval: DefaultTickInterval,
			HistorySize:  DefaultHistorySize,
			BackfillStep: DefaultBackfillStep,
		},
		Alerts: AlertsConfig{
			Cooldown: DefaultAlertCooldown,
		},
	}
}

// validate checks structural constraints on the parsed configuration.
func validate(cfg *Config) error {
	if cfg.Server.HTTPPort <= 0 || cfg.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port %d is out of range [1, 65535]", cfg.Server.HTTPPort)
	}
	switch strings.ToLower(cfg.Server.LogLevel) {
	case "debug", "info", "warn", "warning", "error", "":
	default:
		return fmt.Errorf("server.log_level %q unknown: want debug|info|warn|error", cfg.Server.LogLevel)
	}
	switch cfg.Server.Auth.Mode {
	case "apikey":
		if cfg.Server.Auth.KeyEnv == "" {
			return fmt.Errorf("server.auth.key_env is required when mode is apikey")
		}
	case "none", "":
	default:
		return fmt.Errorf("server.auth.mode %q unknown: want apikey|none", cfg.Server.Auth.Mode)
	}

	t := cfg.Telemetry
	if t.TickInterval <= 0 {
		return fmt.Errorf("telemetry.tick_interval must be positive")
	}
	if t.HistorySize < 1 {
		return fmt.Errorf("telemetry.history_size %d must be at least 1", t.HistorySize)
	}
	if t.BackfillStep <= 0 {
		return fmt.Errorf("telemetry.backfill_step must be positive")
	}
	known := source.DefaultRanges()
	for f, r := range t.Ranges {
		if _, ok := known[f]; !ok {
			return fmt.Errorf("telemetry.ranges: unknown field %q", f)
		}
		if r.Min > r.Max {
			return fmt.Errorf("telemetry.ranges.%s: min %.2f above max %.2f", f, r.Min, r.Max)
		}
	}

	for i, l := range cfg.Limits {
		if l.Parameter == "" {
			return fmt.Errorf("limits[%d]: parameter is required", i)
		}
	}

	if cfg.Alerts.Cooldown < 0 {
		return fmt.Errorf("alerts.cooldown must not be negative")
	}
	seen := make(map[string]bool, len(cfg.Alerts.Rules))
	for i, r := range cfg.Alerts.Rules {
		if r.Name == "" || r.Condition == "" {
			return fmt.Errorf("alerts.rules[%d]: name and condition are required", i)
		}
		if seen[r.Name] {
			return fmt.Errorf("alerts.rules[%d]: duplicate name %q", i, r.Name)
		}
		seen[r.Name] = true
		switch r.Severity {
		case "critical", "warning", "info", "":
		default:
			return fmt.Errorf("alerts.rules[%d].severity %q unknown: want critical|warning|info", i, r.Severity)
		}
	}
	for i, w := range cfg.Alerts.Webhooks {
		switch w.Type {
		case "slack", "teams", "http":
		default:
			return fmt.Errorf("alerts.webhooks[%d].type %q unknown: want slack|teams|http", i, w.Type)
		}
	}
	return nil
}

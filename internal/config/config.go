// Package config loads the service configuration from environment
// variables. Unset variables take defaults; set but malformed variables are
// errors, so a typo in a deployment manifest fails startup instead of
// silently running with a default.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// OTELConfig defines OpenTelemetry tracing settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT, host:port of the collector
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE
	ServiceName string  // OTEL_SERVICE_NAME
	Environment string  // DEPLOYMENT_ENV, e.g. "prod" or "staging"
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int
	GinMode           string // debug|release|test

	// Logging / Docs
	LogLevel       string // trace|debug|info|warn|error|fatal|panic
	LogPretty      bool
	LogRedact      bool // scrub ids, emails and phones from access logs
	SwaggerEnabled bool
	APIBasePath    string

	// Content
	DBPath            string
	CommentMaxRunes   int // 0 = unlimited
	PostMaxRunes      int // 0 = unlimited
	GroupNameMaxRunes int
	BodyLimitBytes    int64
	GzipEnabled       bool

	// Rate limiting. Reads use RateRPS/RateBurst; mutating requests (likes,
	// attendance, comments, membership changes) use the write budget.
	RateRPS        float64
	RateBurst      int
	RateWriteRPS   float64
	RateWriteBurst int

	CORS     CORSConfig
	Security SecurityConfig

	// IdempotencyTTL is how long a comment Idempotency-Key is remembered.
	IdempotencyTTL time.Duration

	OTEL OTELConfig
}

// MustLoad loads the configuration and panics if it is invalid.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads the environment, applies defaults and validates the result.
// Every malformed or out-of-range variable is reported in the returned
// error, not only the first.
func Load() (Config, error) {
	e := &env{}

	cfg := Config{
		Port:              e.str("PORT", "8080"),
		ReadTimeout:       e.dur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: e.dur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      e.dur("WRITE_TIMEOUT", 20*time.Second),
		IdleTimeout:       e.dur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    e.int("MAX_HEADER_BYTES", 1<<20),
		GinMode:           strings.ToLower(e.str("GIN_MODE", "release")),

		LogLevel:       strings.ToLower(e.str("LOG_LEVEL", "info")),
		LogPretty:      e.bool("LOG_PRETTY", false),
		LogRedact:      e.bool("LOG_REDACT", true),
		SwaggerEnabled: e.bool("SWAGGER_ENABLED", false),
		APIBasePath:    normalizeBasePath(e.str("API_BASE_PATH", "/api/v1")),

		DBPath:            e.str("DB_PATH", "app.db"),
		CommentMaxRunes:   e.int("COMMENT_MAX_RUNES", 2000),
		PostMaxRunes:      e.int("POST_MAX_RUNES", 5000),
		GroupNameMaxRunes: e.int("GROUP_NAME_MAX_RUNES", 80),
		BodyLimitBytes:    int64(e.int("BODY_LIMIT_BYTES", 1<<20)),
		GzipEnabled:       e.bool("GZIP_ENABLED", false),

		RateRPS:        e.float("RATE_RPS", 5.0),
		RateBurst:      e.int("RATE_BURST", 10),
		RateWriteRPS:   e.float("RATE_WRITE_RPS", 2.0),
		RateWriteBurst: e.int("RATE_WRITE_BURST", 5),

		CORS: CORSConfig{
			AllowedOrigins: splitCSV(e.str("CORS_ALLOWED_ORIGINS", "")),
		},
		Security: SecurityConfig{
			EnableHSTS: e.bool("ENABLE_HSTS", false),
			HSTSMaxAge: e.dur("HSTS_MAX_AGE", 180*24*time.Hour),
		},

		IdempotencyTTL: e.dur("IDEMPOTENCY_TTL", 24*time.Hour),

		OTEL: OTELConfig{
			Enabled:     e.bool("OTEL_ENABLED", false),
			Endpoint:    e.str("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    e.bool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: e.str("OTEL_SERVICE_NAME", "go-sports-backend"),
			Environment: e.str("DEPLOYMENT_ENV", "dev"),
			SampleRatio: e.float("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}

	if err := errors.Join(append(e.errs, cfg.validate()...)...); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// validate returns one error per violated rule.
func (c Config) validate() []error {
	var errs []error
	check := func(ok bool, msg string) {
		if !ok {
			errs = append(errs, errors.New(msg))
		}
	}

	switch c.LogLevel {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL %q must be one of: trace, debug, info, warn, error, fatal, panic", c.LogLevel))
	}
	check(strings.TrimSpace(c.Port) != "", "PORT must not be empty")
	check(c.ReadTimeout > 0 && c.ReadHeaderTimeout > 0 && c.WriteTimeout > 0 && c.IdleTimeout > 0,
		"timeouts must be positive durations")
	check(c.MaxHeaderBytes > 0, "MAX_HEADER_BYTES must be > 0")
	check(strings.TrimSpace(c.DBPath) != "", "DB_PATH must not be empty")
	check(c.CommentMaxRunes >= 0, "COMMENT_MAX_RUNES must be >= 0")
	check(c.PostMaxRunes >= 0, "POST_MAX_RUNES must be >= 0")
	check(c.GroupNameMaxRunes >= 1, "GROUP_NAME_MAX_RUNES must be >= 1")
	check(c.BodyLimitBytes > 0, "BODY_LIMIT_BYTES must be > 0")
	check(c.RateRPS >= 0, "RATE_RPS must be >= 0")
	check(c.RateBurst >= 1, "RATE_BURST must be >= 1")
	check(c.RateWriteRPS >= 0, "RATE_WRITE_RPS must be >= 0")
	check(c.RateWriteBurst >= 1, "RATE_WRITE_BURST must be >= 1")
	check(c.Security.HSTSMaxAge >= 0, "HSTS_MAX_AGE must be >= 0")
	check(c.IdempotencyTTL > 0, "IDEMPOTENCY_TTL must be > 0")
	check(c.OTEL.SampleRatio >= 0 && c.OTEL.SampleRatio <= 1, "OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	check(!c.OTEL.Enabled || strings.TrimSpace(c.OTEL.Endpoint) != "", "OTEL_EXPORTER_OTLP_ENDPOINT is required when OTEL_ENABLED")
	return errs
}

// env reads typed variables and records a parse error for every variable
// that is set but malformed. Empty counts as unset.
type env struct {
	errs []error
}

func (e *env) lookup(k string) (string, bool) {
	v, ok := os.LookupEnv(k)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

func (e *env) fail(k, v, want string) {
	e.errs = append(e.errs, fmt.Errorf("%s=%q is not a valid %s", k, v, want))
}

func (e *env) str(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func (e *env) int(k string, def int) int {
	v, ok := e.lookup(k)
	if !ok {
		return def
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		e.fail(k, v, "integer")
		return def
	}
	return i
}

func (e *env) float(k string, def float64) float64 {
	v, ok := e.lookup(k)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		e.fail(k, v, "number")
		return def
	}
	return f
}

func (e *env) bool(k string, def bool) bool {
	v, ok := e.lookup(k)
	if !ok {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	}
	e.fail(k, v, "boolean")
	return def
}

func (e *env) dur(k string, def time.Duration) time.Duration {
	v, ok := e.lookup(k)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		e.fail(k, v, "duration")
		return def
	}
	return d
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// normalizeBasePath ensures a leading '/' and strips trailing ones; empty
// means root.
func normalizeBasePath(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	return "/" + p
}

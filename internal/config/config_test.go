package config

import (
	"os"
	"reflect"
	"strings"
	"testing"
	"time"
)

// managedVars are cleared before every test so the host environment cannot
// leak into defaults.
var managedVars = []string{
	"PORT", "READ_TIMEOUT", "READ_HEADER_TIMEOUT", "WRITE_TIMEOUT", "IDLE_TIMEOUT",
	"MAX_HEADER_BYTES", "GIN_MODE", "LOG_LEVEL", "LOG_PRETTY", "LOG_REDACT",
	"SWAGGER_ENABLED", "API_BASE_PATH", "DB_PATH", "COMMENT_MAX_RUNES", "POST_MAX_RUNES",
	"GROUP_NAME_MAX_RUNES", "BODY_LIMIT_BYTES", "GZIP_ENABLED", "RATE_RPS", "RATE_BURST",
	"RATE_WRITE_RPS", "RATE_WRITE_BURST", "CORS_ALLOWED_ORIGINS", "ENABLE_HSTS",
	"HSTS_MAX_AGE", "IDEMPOTENCY_TTL", "OTEL_ENABLED", "OTEL_EXPORTER_OTLP_ENDPOINT",
	"OTEL_EXPORTER_OTLP_INSECURE", "OTEL_SERVICE_NAME", "DEPLOYMENT_ENV", "OTEL_TRACES_SAMPLER_ARG",
}

func TestMain(m *testing.M) {
	for _, k := range managedVars {
		os.Unsetenv(k)
	}
	os.Exit(m.Run())
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Port != "8080" || cfg.GinMode != "release" || cfg.LogLevel != "info" {
		t.Fatalf("server defaults: %+v", cfg)
	}
	if cfg.APIBasePath != "/api/v1" || !cfg.LogRedact || cfg.SwaggerEnabled {
		t.Fatalf("logging/docs defaults: %+v", cfg)
	}
	if cfg.CommentMaxRunes != 2000 || cfg.PostMaxRunes != 5000 || cfg.GroupNameMaxRunes != 80 ||
		cfg.BodyLimitBytes != 1<<20 || cfg.GzipEnabled {
		t.Fatalf("content defaults: %+v", cfg)
	}
	if cfg.RateRPS != 5 || cfg.RateBurst != 10 || cfg.RateWriteRPS != 2 || cfg.RateWriteBurst != 5 {
		t.Fatalf("rate defaults: %+v", cfg)
	}
	if cfg.IdempotencyTTL != 24*time.Hour {
		t.Fatalf("idempotency ttl default: %v", cfg.IdempotencyTTL)
	}
	if cfg.OTEL.Enabled || cfg.OTEL.ServiceName != "go-sports-backend" || cfg.OTEL.Environment != "dev" {
		t.Fatalf("otel defaults: %+v", cfg.OTEL)
	}
	if cfg.CORS.AllowedOrigins != nil {
		t.Fatalf("cors default should be nil, got %#v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8088")
	t.Setenv("READ_TIMEOUT", "2s")
	t.Setenv("READ_HEADER_TIMEOUT", "1s")
	t.Setenv("WRITE_TIMEOUT", "3s")
	t.Setenv("IDLE_TIMEOUT", "4s")
	t.Setenv("MAX_HEADER_BYTES", "8192")
	t.Setenv("GIN_MODE", "weird") // normalized to release
	t.Setenv("LOG_LEVEL", "WARNING")
	t.Setenv("LOG_PRETTY", "yes")
	t.Setenv("LOG_REDACT", "false")
	t.Setenv("SWAGGER_ENABLED", "on")
	t.Setenv("API_BASE_PATH", "api/v1/")
	t.Setenv("DB_PATH", "db.sqlite")
	t.Setenv("COMMENT_MAX_RUNES", "500")
	t.Setenv("POST_MAX_RUNES", "0")
	t.Setenv("GROUP_NAME_MAX_RUNES", "40")
	t.Setenv("BODY_LIMIT_BYTES", "4096")
	t.Setenv("GZIP_ENABLED", "true")
	t.Setenv("RATE_RPS", "7.5")
	t.Setenv("RATE_BURST", "15")
	t.Setenv("RATE_WRITE_RPS", "0.5")
	t.Setenv("RATE_WRITE_BURST", "2")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.com , , http://b ")
	t.Setenv("ENABLE_HSTS", "TRUE")
	t.Setenv("HSTS_MAX_AGE", "24h")
	t.Setenv("IDEMPOTENCY_TTL", "48h")
	t.Setenv("OTEL_ENABLED", "1")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "otel:4317")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "0")
	t.Setenv("OTEL_SERVICE_NAME", "svc")
	t.Setenv("DEPLOYMENT_ENV", "staging")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.75")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Port != "8088" || cfg.ReadTimeout != 2*time.Second || cfg.ReadHeaderTimeout != time.Second ||
		cfg.WriteTimeout != 3*time.Second || cfg.IdleTimeout != 4*time.Second ||
		cfg.MaxHeaderBytes != 8192 || cfg.GinMode != "release" {
		t.Fatalf("server fields: %+v", cfg)
	}
	if cfg.LogLevel != "warn" || !cfg.LogPretty || cfg.LogRedact || !cfg.SwaggerEnabled || cfg.APIBasePath != "/api/v1" {
		t.Fatalf("logging/docs: %+v", cfg)
	}
	if cfg.DBPath != "db.sqlite" || cfg.CommentMaxRunes != 500 || cfg.PostMaxRunes != 0 ||
		cfg.GroupNameMaxRunes != 40 || cfg.BodyLimitBytes != 4096 || !cfg.GzipEnabled {
		t.Fatalf("content: %+v", cfg)
	}
	if cfg.RateRPS != 7.5 || cfg.RateBurst != 15 || cfg.RateWriteRPS != 0.5 || cfg.RateWriteBurst != 2 {
		t.Fatalf("rate: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.CORS.AllowedOrigins, []string{"https://a.com", "http://b"}) {
		t.Fatalf("cors origins: %#v", cfg.CORS.AllowedOrigins)
	}
	if !cfg.Security.EnableHSTS || cfg.Security.HSTSMaxAge != 24*time.Hour {
		t.Fatalf("security: %+v", cfg.Security)
	}
	if cfg.IdempotencyTTL != 48*time.Hour {
		t.Fatalf("idempotency ttl: %v", cfg.IdempotencyTTL)
	}
	want := OTELConfig{Enabled: true, Endpoint: "otel:4317", Insecure: false, ServiceName: "svc", Environment: "staging", SampleRatio: 0.75}
	if cfg.OTEL != want {
		t.Fatalf("otel: %+v", cfg.OTEL)
	}
}

func TestLoad_MalformedValuesAreErrors(t *testing.T) {
	cases := map[string]string{
		"RATE_RPS":       "x",
		"RATE_BURST":     "nope",
		"READ_TIMEOUT":   "soon",
		"GZIP_ENABLED":   "maybe",
		"POST_MAX_RUNES": "1e3",
	}
	for k, v := range cases {
		t.Run(k, func(t *testing.T) {
			t.Setenv(k, v)
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), k) {
				t.Fatalf("expected parse error naming %s, got %v", k, err)
			}
		})
	}
}

func TestLoad_ReportsEveryProblem(t *testing.T) {
	t.Setenv("RATE_BURST", "0")
	t.Setenv("IDEMPOTENCY_TTL", "0s")
	t.Setenv("GZIP_ENABLED", "maybe")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected error")
	}
	for _, want := range []string{"RATE_BURST", "IDEMPOTENCY_TTL", "GZIP_ENABLED"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q does not mention %s", err, want)
		}
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	cases := []struct {
		key, val, want string
	}{
		{"LOG_LEVEL", "verbose", "LOG_LEVEL"},
		{"PORT", "   ", "PORT must not be empty"},
		{"READ_TIMEOUT", "0s", "timeouts must be positive"},
		{"MAX_HEADER_BYTES", "0", "MAX_HEADER_BYTES"},
		{"DB_PATH", "   ", "DB_PATH must not be empty"},
		{"COMMENT_MAX_RUNES", "-1", "COMMENT_MAX_RUNES"},
		{"POST_MAX_RUNES", "-1", "POST_MAX_RUNES"},
		{"GROUP_NAME_MAX_RUNES", "0", "GROUP_NAME_MAX_RUNES"},
		{"BODY_LIMIT_BYTES", "0", "BODY_LIMIT_BYTES"},
		{"RATE_RPS", "-1", "RATE_RPS"},
		{"RATE_BURST", "0", "RATE_BURST"},
		{"RATE_WRITE_RPS", "-0.5", "RATE_WRITE_RPS"},
		{"RATE_WRITE_BURST", "0", "RATE_WRITE_BURST"},
		{"HSTS_MAX_AGE", "-1s", "HSTS_MAX_AGE"},
		{"IDEMPOTENCY_TTL", "0s", "IDEMPOTENCY_TTL"},
		{"OTEL_TRACES_SAMPLER_ARG", "1.5", "OTEL_TRACES_SAMPLER_ARG"},
	}
	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			t.Setenv(tc.key, tc.val)
			if _, err := Load(); err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q in error, got %v", tc.want, err)
			}
		})
	}
}

func TestLoad_OTELEnabledNeedsEndpoint(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	// Empty falls back to the default endpoint, so this still loads.
	if _, err := Load(); err != nil {
		t.Fatalf("default endpoint should satisfy OTEL_ENABLED: %v", err)
	}

	cfg := Config{OTEL: OTELConfig{Enabled: true, Endpoint: " "}}
	found := false
	for _, err := range cfg.validate() {
		if strings.Contains(err.Error(), "OTEL_EXPORTER_OTLP_ENDPOINT") {
			found = true
		}
	}
	if !found {
		t.Fatalf("blank endpoint with tracing enabled must be rejected")
	}
}

func TestMustLoad(t *testing.T) {
	t.Run("valid defaults", func(t *testing.T) {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("MustLoad panicked on defaults: %v", r)
			}
		}()
		if cfg := MustLoad(); cfg.APIBasePath == "" {
			t.Fatalf("unexpected empty config")
		}
	})
	t.Run("invalid", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "verbose")
		defer func() {
			if recover() == nil {
				t.Fatalf("MustLoad should panic on invalid config")
			}
		}()
		_ = MustLoad()
	})
}

func TestEnv_EmptyCountsAsUnset(t *testing.T) {
	t.Setenv("X_INT", "")
	t.Setenv("X_BOOL", "  ")
	e := &env{}
	if e.int("X_INT", 7) != 7 || !e.bool("X_BOOL", true) {
		t.Fatalf("empty values should fall back to defaults")
	}
	if len(e.errs) != 0 {
		t.Fatalf("empty values are not parse errors: %v", e.errs)
	}
}

func TestSplitCSV_and_normalizeBasePath(t *testing.T) {
	if out := splitCSV(""); out != nil {
		t.Fatalf("splitCSV empty should return nil")
	}
	if got := splitCSV(" a, ,b ,  c  ,"); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("splitCSV: %#v", got)
	}

	for in, want := range map[string]string{"": "/", "v1": "/v1", "/v1/": "/v1", " / ": "/", "//api//": "/api"} {
		if got := normalizeBasePath(in); got != want {
			t.Fatalf("normalizeBasePath(%q)=%q want %q", in, got, want)
		}
	}
}

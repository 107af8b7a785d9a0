package config

import (
	"reflect"
	"testing"
	"time"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{Primary: Primary{Env: "production"}}
	cfg.ApplyDefaults()

	if cfg.Auth.SessionTTL != 24*time.Hour {
		t.Errorf("SessionTTL = %v, want 24h", cfg.Auth.SessionTTL)
	}
	if cfg.Auth.CookieName != DefaultCookieName {
		t.Errorf("CookieName = %q, want %q", cfg.Auth.CookieName, DefaultCookieName)
	}
	if cfg.Server.StaticDir != DefaultStaticDir {
		t.Errorf("StaticDir = %q, want %q", cfg.Server.StaticDir, DefaultStaticDir)
	}
	if cfg.Observability == nil {
		t.Fatal("Observability = nil, want defaults")
	}
	if cfg.Observability.ServiceName != ServiceName {
		t.Errorf("ServiceName = %q, want %q", cfg.Observability.ServiceName, ServiceName)
	}
	if !cfg.Observability.IsProduction() {
		t.Error("IsProduction() = false, want true for env production")
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Primary: Primary{Env: "local"},
		Auth:    AuthConfig{SessionTTL: time.Hour, CookieName: "sid"},
	}
	cfg.ApplyDefaults()

	if cfg.Auth.SessionTTL != time.Hour {
		t.Errorf("SessionTTL = %v, want 1h", cfg.Auth.SessionTTL)
	}
	if cfg.Auth.CookieName != "sid" {
		t.Errorf("CookieName = %q, want sid", cfg.Auth.CookieName)
	}
	if !cfg.IsLocal() {
		t.Error("IsLocal() = false, want true")
	}
}

func TestEnvValue(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantKey string
		want    interface{}
	}{
		{"scalar", "KRINGE_SERVER.PORT", "8080", "server.port", "8080"},
		{"list", "KRINGE_SERVER.CORS_ALLOWED_ORIGINS", "http://a, http://b,", "server.cors_allowed_origins", []string{"http://a", "http://b"}},
		{"nested list", "KRINGE_OBSERVABILITY.HEALTH_CHECKS.CHECKS", "database,redis", "observability.health_checks.checks", []string{"database", "redis"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotKey, got := envValue(tt.key, tt.value)
			if gotKey != tt.wantKey {
				t.Errorf("key = %q, want %q", gotKey, tt.wantKey)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("value = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestObservabilityValidate(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() on defaults = %v, want nil", err)
	}

	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() with level verbose = nil, want error")
	}
}

func TestGetLogLevel(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	cfg.Logging.Level = ""

	cfg.Environment = "production"
	if got := cfg.GetLogLevel(); got != "info" {
		t.Errorf("production GetLogLevel() = %q, want info", got)
	}

	cfg.Environment = "development"
	if got := cfg.GetLogLevel(); got != "debug" {
		t.Errorf("development GetLogLevel() = %q, want debug", got)
	}

	cfg.Logging.Level = "warn"
	if got := cfg.GetLogLevel(); got != "warn" {
		t.Errorf("explicit GetLogLevel() = %q, want warn", got)
	}
}

func TestHealthCheckEnabled(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	if !cfg.HealthCheckEnabled("mongo") {
		t.Error("HealthCheckEnabled(mongo) = false, want true")
	}
	if cfg.HealthCheckEnabled("kafka") {
		t.Error("HealthCheckEnabled(kafka) = true, want false")
	}
	cfg.HealthChecks.Enabled = false
	if cfg.HealthCheckEnabled("database") {
		t.Error("HealthCheckEnabled with checks disabled = true, want false")
	}
}

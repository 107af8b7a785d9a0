package logger

import (
	"testing"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"

	"github.com/deppfellow/kringe-music/internal/config"
)

func TestGetPgxTraceLogLevel(t *testing.T) {
	tests := []struct {
		level zerolog.Level
		want  tracelog.LogLevel
	}{
		{zerolog.TraceLevel, tracelog.LogLevelTrace},
		{zerolog.DebugLevel, tracelog.LogLevelDebug},
		{zerolog.InfoLevel, tracelog.LogLevelInfo},
		{zerolog.WarnLevel, tracelog.LogLevelWarn},
		{zerolog.ErrorLevel, tracelog.LogLevelError},
		{zerolog.Disabled, tracelog.LogLevelNone},
	}

	for _, tt := range tests {
		if got := GetPgxTraceLogLevel(tt.level); tracelog.LogLevel(got) != tt.want {
			t.Errorf("GetPgxTraceLogLevel(%v) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestLoggerServiceWithoutLicense(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	service := NewLoggerService(cfg)

	if service.GetApplication() != nil {
		t.Error("GetApplication() without license key should be nil")
	}

	// Must not panic without an agent.
	service.RecordCustomEvent("Test", map[string]interface{}{"k": "v"})
	service.Shutdown()

	var nilService *LoggerService
	if nilService.GetApplication() != nil {
		t.Error("nil LoggerService should report no application")
	}
}

func TestNewLoggerLevel(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Logging.Level = "warn"

	log := NewLogger(cfg)
	if log.GetLevel() != zerolog.WarnLevel {
		t.Errorf("level = %v, want warn", log.GetLevel())
	}
}

func TestWithTraceContextNilTxn(t *testing.T) {
	base := zerolog.Nop()
	got := WithTraceContext(base, nil)
	if got.GetLevel() != base.GetLevel() {
		t.Error("WithTraceContext(nil) should return the logger unchanged")
	}
}

package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"info", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestGetLoggerWithoutInitialize(t *testing.T) {
	logger = nil
	if GetLogger() == nil {
		t.Fatal("GetLogger() returned nil before Initialize")
	}
}

func TestInitialize(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "error")
	if err := Initialize(""); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if GetLogger().Core().Enabled(zapcore.WarnLevel) {
		t.Error("logger from BRIGHTKEEP_LOG_LEVEL=error should not enable warn")
	}
	if !GetLogger().Core().Enabled(zapcore.ErrorLevel) {
		t.Error("logger should enable error")
	}
}

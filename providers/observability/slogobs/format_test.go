package slogobs

import (
	"log/slog"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
	}{
		{"json", FormatJSON},
		{" JSON ", FormatJSON},
		{"compact", FormatCompact},
		{"pretty", FormatCompact},
		{"", FormatCompact},
	}
	for _, tt := range tests {
		if got := ParseFormat(tt.input); got != tt.expected {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestGetFormatFromEnv(t *testing.T) {
	t.Setenv("AGIXT_LOG_FORMAT", "json")
	t.Setenv("LOG_FORMAT", "compact")
	if got := GetFormatFromEnv(); got != FormatJSON {
		t.Errorf("expected AGIXT_LOG_FORMAT to win, got %v", got)
	}

	t.Setenv("AGIXT_LOG_FORMAT", "")
	t.Setenv("LOG_FORMAT", "json")
	if got := GetFormatFromEnv(); got != FormatJSON {
		t.Errorf("expected LOG_FORMAT fallback, got %v", got)
	}

	t.Setenv("LOG_FORMAT", "")
	if got := GetFormatFromEnv(); got != FormatCompact {
		t.Errorf("expected compact default, got %v", got)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"  DEBUG  ", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"Error", slog.LevelError},
		{"UNKNOWN", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestGetLogLevelFromEnv(t *testing.T) {
	t.Setenv("AGIXT_LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_LEVEL", "ERROR")
	if got := GetLogLevelFromEnv(); got != slog.LevelDebug {
		t.Errorf("expected AGIXT_LOG_LEVEL to win, got %v", got)
	}

	t.Setenv("AGIXT_LOG_LEVEL", "")
	if got := GetLogLevelFromEnv(); got != slog.LevelError {
		t.Errorf("expected LOG_LEVEL fallback, got %v", got)
	}

	t.Setenv("LOG_LEVEL", "")
	if got := GetLogLevelFromEnv(); got != slog.LevelInfo {
		t.Errorf("expected INFO default, got %v", got)
	}
}

func TestLogLevelString(t *testing.T) {
	if got := LogLevelString(slog.LevelWarn); got != "WARN" {
		t.Errorf("expected WARN, got %s", got)
	}
	if got := LogLevelString(slog.Level(2)); got != "LEVEL(2)" {
		t.Errorf("expected LEVEL(2), got %s", got)
	}
}

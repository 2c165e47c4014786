package logging

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestInitializeSilentByDefault(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "")
	t.Setenv(LogFileEnvVar, "")
	if err := InitializeFromEnv(); err != nil {
		t.Fatalf("InitializeFromEnv() error = %v", err)
	}
	if GetLogger().Core().Enabled(zapcore.ErrorLevel) {
		t.Error("logger enabled without a level")
	}
}

func TestInitializeToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "offsite.log")
	t.Setenv(LogLevelEnvVar, "debug")
	t.Setenv(LogFileEnvVar, path)
	if err := InitializeFromEnv(); err != nil {
		t.Fatalf("InitializeFromEnv() error = %v", err)
	}
	t.Cleanup(func() { SetLogger(nil) })

	LogScreenTransition("landing", "steps")
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "Screen transition") || !strings.Contains(out, "steps") {
		t.Errorf("log file = %q, want screen transition entry", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("log file contains ANSI colour codes")
	}
}

func TestLogClipboardFailure(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })

	LogClipboardFailure("git", "git status", errors.New("xclip not found"))

	entries := logs.FilterMessage("Clipboard write failed").All()
	if len(entries) != 1 {
		t.Fatalf("got %d clipboard entries, want 1", len(entries))
	}
	e := entries[0]
	if e.Level != zapcore.WarnLevel {
		t.Errorf("level = %v, want %v", e.Level, zapcore.WarnLevel)
	}
	fields := e.ContextMap()
	if fields["panel"] != "git" || fields["command"] != "git status" {
		t.Errorf("fields = %v", fields)
	}
	if fields["error"] != "xclip not found" {
		t.Errorf("error field = %v, want %q", fields["error"], "xclip not found")
	}
}

func TestGetLoggerFallback(t *testing.T) {
	SetLogger(nil)
	if GetLogger() == nil {
		t.Fatal("GetLogger() = nil")
	}
	// Must not panic.
	LogNavigation("next", 0, 1, 7)
	LogPanelToggle("terminal", true)
}

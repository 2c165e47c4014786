package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent (no zap output).
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "OFFSITE_LOG_LEVEL"

// LogFileEnvVar names a file that receives log output. The TUI owns the
// terminal, so logs go here when set and to stderr otherwise.
const LogFileEnvVar = "OFFSITE_LOG_FILE"

// Options controls Initialize. Empty fields fall back to the environment.
type Options struct {
	Level string
	File  string
}

// Initialize creates a new logger with the specified level writing to
// stderr. If level is empty, it checks OFFSITE_LOG_LEVEL.
// If neither is set, logging is disabled (silent mode).
func Initialize(level string) error {
	return InitializeWith(Options{Level: level})
}

// InitializeWith creates the global logger from opts.
func InitializeWith(opts Options) error {
	level := opts.Level
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}
	path := opts.File
	if path == "" {
		path = os.Getenv(LogFileEnvVar)
	}

	// If still no level, use silent mode (nop logger)
	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(ParseLevel(level)),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	if path != "" {
		config.OutputPaths = []string{path}
		// No ANSI colour codes in files.
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	built, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = built
	return nil
}

// InitializeFromEnv initializes the logger from OFFSITE_LOG_LEVEL and
// OFFSITE_LOG_FILE.
func InitializeFromEnv() error {
	return InitializeWith(Options{})
}

// ParseLevel maps a level name to a zap level. Unknown names map to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// SetLogger replaces the global logger. Tests use it with zaptest/observer.
func SetLogger(l *zap.Logger) {
	logger = l
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		// Silent until initialized so one-shot commands print nothing extra
		logger = zap.NewNop()
	}
	return logger
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// LogClipboardFailure records a rejected clipboard write. The user sees no
// error; this is the only trace.
func LogClipboardFailure(panel, command string, err error) {
	Warn("Clipboard write failed",
		zap.String("panel", panel),
		zap.String("command", command),
		zap.Error(err),
	)
}

// LogCopy records a successful clipboard write.
func LogCopy(panel, command string) {
	Debug("Copied command",
		zap.String("panel", panel),
		zap.String("command", command),
	)
}

// LogNavigation records a step change.
func LogNavigation(action string, from, to, total int) {
	Debug("Step navigation",
		zap.String("action", action),
		zap.Int("from", from),
		zap.Int("to", to),
		zap.Int("total", total),
	)
}

// LogStepToggle records a completion toggle.
func LogStepToggle(index int, completed bool, progress float64) {
	Debug("Step completion toggled",
		zap.Int("step", index),
		zap.Bool("completed", completed),
		zap.Float64("progress", progress),
	)
}

// LogScreenTransition records a move between screens.
func LogScreenTransition(from, to string) {
	Info("Screen transition",
		zap.String("from", from),
		zap.String("to", to),
	)
}

// LogPanelToggle records a panel being opened or closed.
func LogPanelToggle(panel string, open bool) {
	Debug("Reference panel toggled",
		zap.String("panel", panel),
		zap.Bool("open", open),
	)
}

// LogFilterChange records a filter change on a panel.
func LogFilterChange(panel, tag string, active bool, visible int) {
	Debug("Reference filter changed",
		zap.String("panel", panel),
		zap.String("tag", tag),
		zap.Bool("active", active),
		zap.Int("visible", visible),
	)
}

// LogContentLoaded records where content came from.
func LogContentLoaded(source string, steps, commands int) {
	Info("Content loaded",
		zap.String("source", source),
		zap.Int("steps", steps),
		zap.Int("commands", commands),
	)
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}

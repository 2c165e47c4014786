// Package logging provides structured logging for offsite.
//
// This package wraps a global zap logger with convenience functions for the
// events the application cares about: screen transitions, step navigation,
// reference panel changes and clipboard failures.
//
// # Silent By Default
//
// Nothing is logged unless a level is given, either with --log-level or the
// OFFSITE_LOG_LEVEL environment variable:
//
//	OFFSITE_LOG_LEVEL=debug OFFSITE_LOG_FILE=/tmp/offsite.log offsite
//
// The TUI draws on the terminal, so point OFFSITE_LOG_FILE (or --log-file)
// at a file when running interactively. Without a file, output goes to
// stderr.
//
// # Log Levels
//
//   - Debug: key-driven state changes (navigation, toggles, filters, copies)
//   - Info: screen transitions, content source
//   - Warn: clipboard writes that failed
//   - Error: start-up failures
//
// # Domain Helpers
//
//	logging.LogNavigation("next", 2, 3, 7)
//	logging.LogClipboardFailure("terminal", "pwd", err)
//
// Call Sync before exit to flush buffered entries.
package logging

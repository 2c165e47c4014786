// Package ui renders the styled output of offsite's one-shot subcommands.
//
// The interactive screens live in internal/wizard/tui. This package covers
// commands that print and exit, such as "offsite steps" and
// "offsite commands git":
//
//   - Header: banner with title, subtitle and ordered parameters
//   - Checklist: numbered step list with time estimates
//   - CatalogView: grouped command catalog with its tag legend
//   - Result: success, warning and failure boxes
//
// Printer writes any of these to an io.Writer and can emit JSON for
// --format json.
//
// # Logging Integration
//
// Zap logging is silent unless OFFSITE_LOG_LEVEL is set, so curated output
// is not interleaved with log lines.
package ui

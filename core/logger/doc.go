// Package logger provides slog attribute constructors shared across the
// toolkit so log records stay consistently keyed. All constructors are
// nil-safe: passing a nil error or empty string yields an empty Attr that
// slog drops silently.
package logger

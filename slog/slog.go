// Package slog wraps kbsite services with structured logging.
package slog

// Package logctx provides a shared package-level logger for the core
// packages.
//
// It mirrors the teacher library's own logging convention: a package-level
// logger stored behind an atomic pointer, silent by default, replaceable by
// a host application via SetLogger. No other package of this module calls
// it at present.
package logctx

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record. Enabled always returns false so callers
// skip attribute formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger installs the logger used by all core packages. Pass nil to
// restore the silent default. Safe for concurrent use.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the currently installed logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// Component returns a logger pre-tagged with a "component" attribute.
func Component(name string) *slog.Logger {
	return Logger().With(slog.String("component", name))
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pointcloud

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that discards every record. Enabled returns
// false so callers skip building the record at all.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr holds the active logger so SetLogger may race with logging.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for pointcloud and its sub-packages.
// By default nothing is logged. Pass nil to restore the silent default.
//
// Log levels used:
//   - [slog.LevelDebug]: per-operation diagnostics (field, copy strategy, bytes)
//   - [slog.LevelInfo]: lifecycle events (GPU buffer uploaded, cloud closed)
//   - [slog.LevelWarn]: non-fatal issues (unaligned buffers, upload padding)
//
// Example:
//
//	pointcloud.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Sub-packages (gpu, order) call this to
// share the same configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// Copyright The TrackStore Authors
// SPDX-License-Identifier: Apache-2.0

// Package log provides the process-wide logger used within
// github.com/tracekit/trackstore.
package log // import "github.com/tracekit/trackstore/internal/log"

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
)

// globalLogger holds a reference to the [slog.Logger] used within trackstore.
//
// The default logger writes to stderr at Info level.
var globalLogger = func() *atomic.Pointer[slog.Logger] {
	l := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	p := new(atomic.Pointer[slog.Logger])
	p.Store(l)
	return p
}()

// SetLogger sets the global logger to l.
func SetLogger(l slog.Logger) {
	globalLogger.Store(&l)
}

// SetDebugLogger configures the global logger to write debug-level logs to stderr.
func SetDebugLogger() {
	SetLogger(*slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))
}

func getLogger() *slog.Logger {
	return globalLogger.Load()
}

// Debugf logs detailed bookkeeping information useful when chasing
// interning or translation defects.
func Debugf(msg string, args ...any) {
	if getLogger().Enabled(context.Background(), slog.LevelDebug) {
		getLogger().Debug(fmt.Sprintf(msg, args...))
	}
}

// Infof logs informational messages about the general state of a session.
func Infof(msg string, args ...any) {
	if getLogger().Enabled(context.Background(), slog.LevelInfo) {
		getLogger().Info(fmt.Sprintf(msg, args...))
	}
}

// Warnf logs conditions that are unexpected but do not stop ingestion,
// such as lenient-mode name policy violations.
func Warnf(msg string, args ...any) {
	if getLogger().Enabled(context.Background(), slog.LevelWarn) {
		getLogger().Warn(fmt.Sprintf(msg, args...))
	}
}

// Errorf logs failures that abort the current operation.
func Errorf(msg string, args ...any) {
	if getLogger().Enabled(context.Background(), slog.LevelError) {
		getLogger().Error(fmt.Sprintf(msg, args...))
	}
}

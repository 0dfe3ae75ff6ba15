// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log is a thin layer over the go-ethereum slog logger that lets
// packages declare their logger at init time while the root handler is
// configured later by the command line.
package log

import (
	"io"
	"log/slog"
	"os"

	ethlog "github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-isatty"
)

// legacy verbosity levels accepted by the --verbosity flag.
const (
	LegacyLevelCrit = iota
	LegacyLevelError
	LegacyLevelWarn
	LegacyLevelInfo
	LegacyLevelDebug
	LegacyLevelTrace
)

// Logger writes leveled, key/value structured records.
type Logger interface {
	Trace(msg string, ctx ...any)
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
	With(ctx ...any) Logger
}

// lazyLogger resolves the root logger on every call, so package level
// loggers pick up the handler installed by Setup.
type lazyLogger struct {
	ctx []any
}

// WithContext returns a logger that prefixes every record with ctx.
func WithContext(ctx ...any) Logger {
	return &lazyLogger{ctx: ctx}
}

// Root returns the logger without context.
func Root() Logger {
	return &lazyLogger{}
}

func (l *lazyLogger) log(level slog.Level, msg string, ctx []any) {
	all := make([]any, 0, len(l.ctx)+len(ctx))
	all = append(all, l.ctx...)
	all = append(all, ctx...)
	ethlog.Root().Log(level, msg, all...)
}

func (l *lazyLogger) Trace(msg string, ctx ...any) { l.log(ethlog.LevelTrace, msg, ctx) }
func (l *lazyLogger) Debug(msg string, ctx ...any) { l.log(ethlog.LevelDebug, msg, ctx) }
func (l *lazyLogger) Info(msg string, ctx ...any)  { l.log(ethlog.LevelInfo, msg, ctx) }
func (l *lazyLogger) Warn(msg string, ctx ...any)  { l.log(ethlog.LevelWarn, msg, ctx) }
func (l *lazyLogger) Error(msg string, ctx ...any) { l.log(ethlog.LevelError, msg, ctx) }

func (l *lazyLogger) With(ctx ...any) Logger {
	merged := make([]any, 0, len(l.ctx)+len(ctx))
	merged = append(merged, l.ctx...)
	return &lazyLogger{ctx: append(merged, ctx...)}
}

// NewHandler builds the root handler for the legacy verbosity level.
// Terminal output is colored when w is a tty.
func NewHandler(w io.Writer, verbosity int, jsonFormat bool) slog.Handler {
	level := ethlog.FromLegacyLevel(verbosity)
	if jsonFormat {
		return ethlog.JSONHandlerWithLevel(w, level)
	}
	useColor := false
	if f, ok := w.(*os.File); ok {
		useColor = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return ethlog.NewTerminalHandlerWithLevel(w, level, useColor)
}

// SetDefault installs h as the root handler.
func SetDefault(h slog.Handler) {
	ethlog.SetDefault(ethlog.NewLogger(h))
}

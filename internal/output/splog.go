// Package output provides logging and terminal formatting for the gitwrap CLI.
package output

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// consoleHandler writes messages without timestamps or level prefixes.
// In debug mode record attributes are appended as key=value pairs.
type consoleHandler struct {
	writer    io.Writer
	debugMode bool
	attrs     []slog.Attr
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	if level == slog.LevelDebug {
		return h.debugMode
	}
	return true
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	var b strings.Builder
	b.WriteString(record.Message)
	if h.debugMode {
		for _, a := range h.attrs {
			fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
		}
		record.Attrs(func(a slog.Attr) bool {
			fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
			return true
		})
	}
	_, err := fmt.Fprintln(h.writer, b.String())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &next
}

func (h *consoleHandler) WithGroup(_ string) slog.Handler {
	return h
}

// Rotation limits the size and number of log files kept on disk
type Rotation struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultRotation keeps a small log: three files of at most 1MB, for a month
var DefaultRotation = Rotation{MaxSizeMB: 1, MaxBackups: 2, MaxAgeDays: 30}

// newRotatingWriter opens path through lumberjack. Non-positive size and
// age fall back to DefaultRotation; zero backups keeps every old file.
func newRotatingWriter(path string, rotation Rotation) *lumberjack.Logger {
	if rotation.MaxSizeMB <= 0 {
		rotation.MaxSizeMB = DefaultRotation.MaxSizeMB
	}
	if rotation.MaxAgeDays <= 0 {
		rotation.MaxAgeDays = DefaultRotation.MaxAgeDays
	}
	if rotation.MaxBackups < 0 {
		rotation.MaxBackups = 0
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    rotation.MaxSizeMB,
		MaxBackups: rotation.MaxBackups,
		MaxAge:     rotation.MaxAgeDays,
		Compress:   rotation.Compress,
	}
}

// teeHandler sends each record to every handler that accepts its level.
// A failing handler does not stop the others; their errors are joined.
type teeHandler []slog.Handler

func (t teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t teeHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, h := range t {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		if err := h.Handle(ctx, record.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return t.derive(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	return t.derive(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (t teeHandler) derive(fn func(slog.Handler) slog.Handler) teeHandler {
	next := make(teeHandler, len(t))
	for i, h := range t {
		next[i] = fn(h)
	}
	return next
}

// SplogConfig configures a Splog
type SplogConfig struct {
	// Writer receives console messages; defaults to os.Stderr
	Writer io.Writer
	// Debug enables debug messages on the console
	Debug bool
	// LogFile, when set, receives every record with timestamps
	LogFile string
	// Rotation applies to LogFile; nil means DefaultRotation
	Rotation *Rotation
}

// Splog provides structured logging for the CLI. Command output goes to
// stdout through the Formatter; Splog messages go to the console writer
// and the optional log file.
type Splog struct {
	logger    *slog.Logger
	logWriter io.WriteCloser
}

// NewSplog creates a console-only splog. Debug messages are enabled when
// the DEBUG environment variable is set.
func NewSplog() *Splog {
	splog, _ := NewSplogWithConfig(SplogConfig{Debug: os.Getenv("DEBUG") != ""})
	return splog
}

// NewSplogWithConfig creates a new splog instance with optional file logging
func NewSplogWithConfig(cfg SplogConfig) (*Splog, error) {
	writer := cfg.Writer
	if writer == nil {
		writer = os.Stderr
	}
	splog := &Splog{}

	handlers := teeHandler{&consoleHandler{writer: writer, debugMode: cfg.Debug}}

	if cfg.LogFile != "" {
		logDir := filepath.Dir(cfg.LogFile)
		if err := os.MkdirAll(logDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		rotation := DefaultRotation
		if cfg.Rotation != nil {
			rotation = *cfg.Rotation
		}
		fileWriter := newRotatingWriter(cfg.LogFile, rotation)
		splog.logWriter = fileWriter

		fileHandler := slog.NewTextHandler(fileWriter, &slog.HandlerOptions{
			Level: slog.LevelDebug, // Always log everything to file
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					return slog.Attr{Key: a.Key, Value: slog.StringValue(a.Value.Time().Format("2006-01-02 15:04:05.000"))}
				}
				return a
			},
		})
		handlers = append(handlers, fileHandler)
	}

	splog.logger = slog.New(handlers)
	return splog, nil
}

// Logger returns the underlying slog logger, for handing to the git package
func (s *Splog) Logger() *slog.Logger {
	return s.logger
}

// Info writes an info message
func (s *Splog) Info(format string, args ...interface{}) {
	s.logger.Info(sprintf(format, args...))
}

// Warn writes a warning message
func (s *Splog) Warn(format string, args ...interface{}) {
	s.logger.Warn("warning: " + sprintf(format, args...))
}

// Error writes an error message
func (s *Splog) Error(format string, args ...interface{}) {
	s.logger.Error("error: " + sprintf(format, args...))
}

// Debug writes a debug message
func (s *Splog) Debug(format string, args ...interface{}) {
	s.logger.Debug(sprintf(format, args...))
}

// Close closes the log file if one was opened
func (s *Splog) Close() error {
	if s.logWriter != nil {
		return s.logWriter.Close()
	}
	return nil
}

func sprintf(format string, args ...interface{}) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

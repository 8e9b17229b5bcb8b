// Package observability provides structured logging for the freight
// extraction engine, adapted from the teacher's zerolog wrapper.
package observability

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger wraps zerolog with extraction-engine-specific conveniences.
type Logger struct {
	zl zerolog.Logger
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level       string
	Format      string // json or console
	Output      io.Writer
	ServiceName string
}

// NewLogger creates a new Logger with the given configuration.
func NewLogger(cfg LogConfig) *Logger {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	level := parseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	var zl zerolog.Logger
	if cfg.Format == "console" {
		zl = zerolog.New(zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		})
	} else {
		zl = zerolog.New(output)
	}

	name := cfg.ServiceName
	if name == "" {
		name = "freight-extraction-engine"
	}

	zl = zl.With().Timestamp().Str("service", name).Logger()

	return &Logger{zl: zl}
}

// DefaultLogger returns a logger with sensible development settings.
func DefaultLogger() *Logger {
	return NewLogger(LogConfig{Level: "info", Format: "console"})
}

func parseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// With returns a builder for attaching context fields to derived loggers.
func (l *Logger) With() *LoggerContext {
	return &LoggerContext{ctx: l.zl.With()}
}

// Debug starts a debug-level event.
func (l *Logger) Debug() *LogEvent { return &LogEvent{evt: l.zl.Debug()} }

// Info starts an info-level event.
func (l *Logger) Info() *LogEvent { return &LogEvent{evt: l.zl.Info()} }

// Warn starts a warn-level event.
func (l *Logger) Warn() *LogEvent { return &LogEvent{evt: l.zl.Warn()} }

// Error starts an error-level event.
func (l *Logger) Error() *LogEvent { return &LogEvent{evt: l.zl.Error()} }

// LoggerContext accumulates fields for a derived Logger.
type LoggerContext struct {
	ctx zerolog.Context
}

// Str adds a string field.
func (c *LoggerContext) Str(key, value string) *LoggerContext {
	c.ctx = c.ctx.Str(key, value)
	return c
}

// Int adds an integer field.
func (c *LoggerContext) Int(key string, value int) *LoggerContext {
	c.ctx = c.ctx.Int(key, value)
	return c
}

// Logger finalizes the derived Logger.
func (c *LoggerContext) Logger() *Logger {
	return &Logger{zl: c.ctx.Logger()}
}

// LogEvent wraps a single zerolog event.
type LogEvent struct {
	evt *zerolog.Event
}

// Str adds a string field.
func (e *LogEvent) Str(key, value string) *LogEvent {
	e.evt = e.evt.Str(key, value)
	return e
}

// Int adds an integer field.
func (e *LogEvent) Int(key string, value int) *LogEvent {
	e.evt = e.evt.Int(key, value)
	return e
}

// Bool adds a boolean field.
func (e *LogEvent) Bool(key string, value bool) *LogEvent {
	e.evt = e.evt.Bool(key, value)
	return e
}

// Dur adds a duration field.
func (e *LogEvent) Dur(key string, value time.Duration) *LogEvent {
	e.evt = e.evt.Dur(key, value)
	return e
}

// Err attaches an error field.
func (e *LogEvent) Err(err error) *LogEvent {
	e.evt = e.evt.Err(err)
	return e
}

// Msg emits the event with the given message.
func (e *LogEvent) Msg(msg string) {
	e.evt.Msg(msg)
}

package slogutil

import (
	"io"
	"log/slog"

	"xqhint/internal/config"
	"xqhint/internal/paths"
)

// LoggerFactory builds loggers for a project, honoring the precedence
// CLI flags > config file > default (info).
type LoggerFactory struct {
	projectRoot string
	config      *config.Config
	cliLevel    *slog.Level
	closers     []io.Closer
}

// NewLoggerFactory creates a new logger factory. cliLevel is nil when no CLI
// override was given.
func NewLoggerFactory(projectRoot string, cfg *config.Config, cliLevel *slog.Level) *LoggerFactory {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &LoggerFactory{
		projectRoot: projectRoot,
		config:      cfg,
		cliLevel:    cliLevel,
	}
}

// EffectiveLevel returns the level loggers from this factory use.
func (f *LoggerFactory) EffectiveLevel() slog.Level {
	if f.cliLevel != nil {
		return *f.cliLevel
	}
	if f.config.Logging.Level != "" {
		return LevelFromString(f.config.Logging.Level)
	}
	return slog.LevelInfo
}

// Logger returns a logger writing to w only.
func (f *LoggerFactory) Logger(w io.Writer) *slog.Logger {
	return NewLogger(w, f.EffectiveLevel())
}

// ProjectLogger returns a logger writing to w and to
// <projectRoot>/.xqhint/logs/xqhint.log. When the log file cannot be opened it
// falls back to w alone.
func (f *LoggerFactory) ProjectLogger(w io.Writer) *slog.Logger {
	level := f.EffectiveLevel()
	console := NewHandler(w, &slog.HandlerOptions{Level: level})
	if f.projectRoot == "" {
		return slog.New(console)
	}
	if _, err := paths.EnsureLogsDir(f.projectRoot); err != nil {
		return slog.New(console)
	}
	fileLogger, closer, err := NewFileLogger(paths.LogPath(f.projectRoot), level)
	if err != nil {
		return slog.New(console)
	}
	f.closers = append(f.closers, closer)
	return slog.New(NewTeeHandler(console, fileLogger.Handler()))
}

// Close closes all open log files.
func (f *LoggerFactory) Close() error {
	var firstErr error
	for _, c := range f.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	f.closers = nil
	return firstErr
}

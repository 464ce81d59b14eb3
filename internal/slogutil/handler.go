// Package slogutil provides the slog handler and level helpers used across xqhint.
package slogutil

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Handler writes one line per record:
//
//	2026-01-02T15:04:05Z [info] Hints computed | prefix=fo count=6
//
// Group names prefix attribute keys with dots.
type Handler struct {
	out    *lineWriter
	level  slog.Leveler
	prefix string
	preset []byte
}

// lineWriter serialises writes from a handler and all of its derivatives.
type lineWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (lw *lineWriter) write(line []byte) error {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	_, err := lw.w.Write(line)
	return err
}

// NewHandler creates a handler writing to w. A nil opts logs at info.
func NewHandler(w io.Writer, opts *slog.HandlerOptions) *Handler {
	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}
	return &Handler{out: &lineWriter{w: w}, level: level}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	line := make([]byte, 0, 128)
	line = r.Time.UTC().AppendFormat(line, time.RFC3339)
	line = append(line, " ["...)
	line = append(line, levelString(r.Level)...)
	line = append(line, "] "...)
	line = append(line, r.Message...)

	var attrs []byte
	r.Attrs(func(a slog.Attr) bool {
		attrs = appendAttr(attrs, h.prefix, a)
		return true
	})
	if len(h.preset)+len(attrs) > 0 {
		line = append(line, " |"...)
		line = append(line, h.preset...)
		line = append(line, attrs...)
	}
	line = append(line, '\n')
	return h.out.write(line)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.preset = append([]byte(nil), h.preset...)
	for _, a := range attrs {
		next.preset = appendAttr(next.preset, h.prefix, a)
	}
	return &next
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

// appendAttr renders a as " key=value", flattening groups into dotted keys.
func appendAttr(buf []byte, prefix string, a slog.Attr) []byte {
	v := a.Value.Resolve()
	if v.Kind() == slog.KindGroup {
		inner := prefix
		if a.Key != "" {
			inner += a.Key + "."
		}
		for _, ga := range v.Group() {
			buf = appendAttr(buf, inner, ga)
		}
		return buf
	}
	if a.Key == "" {
		return buf
	}
	buf = append(buf, ' ')
	buf = append(buf, prefix...)
	buf = append(buf, a.Key...)
	buf = append(buf, '=')
	return append(buf, formatValue(v)...)
}

func levelString(level slog.Level) string {
	switch {
	case level < slog.LevelInfo:
		return "debug"
	case level < slog.LevelWarn:
		return "info"
	case level < slog.LevelError:
		return "warn"
	default:
		return "error"
	}
}

// formatValue quotes empty strings and strings with whitespace, so an empty
// prefix still shows up as prefix="".
func formatValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		s := v.String()
		if s == "" || strings.ContainsAny(s, " \t\n") {
			return strconv.Quote(s)
		}
		return s
	case slog.KindTime:
		return v.Time().Format(time.RFC3339)
	case slog.KindDuration:
		return v.Duration().String()
	default:
		return fmt.Sprint(v.Any())
	}
}

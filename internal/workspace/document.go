package workspace

import (
	"strings"
	"sync"

	hinterrors "xqhint/internal/errors"
	"xqhint/internal/host"
)

// Document is an in-memory text buffer addressed by zero-based line and rune
// column. Safe for concurrent use.
type Document struct {
	file host.File

	mu      sync.RWMutex
	lines   [][]rune
	version int
}

var _ host.Document = (*Document)(nil)

// NewDocument creates a buffer for f holding text.
func NewDocument(f host.File, text string) *Document {
	return &Document{file: f, lines: splitLines(text)}
}

func splitLines(text string) [][]rune {
	parts := strings.Split(text, "\n")
	lines := make([][]rune, len(parts))
	for i, p := range parts {
		lines[i] = []rune(p)
	}
	return lines
}

// File returns the file the buffer belongs to.
func (d *Document) File() host.File {
	return d.file
}

// Version increments on every edit.
func (d *Document) Version() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.version
}

// Text returns the whole buffer.
func (d *Document) Text() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.textLocked()
}

func (d *Document) textLocked() string {
	var b strings.Builder
	for i, l := range d.lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(l))
	}
	return b.String()
}

// LineCount returns the number of lines; an empty buffer has one.
func (d *Document) LineCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.lines)
}

// Line returns line i without its terminator.
func (d *Document) Line(i int) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if i < 0 || i >= len(d.lines) {
		return "", false
	}
	return string(d.lines[i]), true
}

// Range returns the text between start and end. Reversed positions are
// swapped and positions outside the buffer are clamped to it.
func (d *Document) Range(start, end host.Position) string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	start, end = d.clamp(start), d.clamp(end)
	if end.Before(start) {
		start, end = end, start
	}
	if start.Line == end.Line {
		return string(d.lines[start.Line][start.Ch:end.Ch])
	}

	var b strings.Builder
	b.WriteString(string(d.lines[start.Line][start.Ch:]))
	for i := start.Line + 1; i < end.Line; i++ {
		b.WriteByte('\n')
		b.WriteString(string(d.lines[i]))
	}
	b.WriteByte('\n')
	b.WriteString(string(d.lines[end.Line][:end.Ch]))
	return b.String()
}

// ReplaceRange replaces the text between start and end. Both positions must
// lie inside the buffer; reversed positions are swapped.
func (d *Document) ReplaceRange(text string, start, end host.Position) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.validate(start); err != nil {
		return err
	}
	if err := d.validate(end); err != nil {
		return err
	}
	if end.Before(start) {
		start, end = end, start
	}

	head := string(d.lines[start.Line][:start.Ch])
	tail := string(d.lines[end.Line][end.Ch:])
	repl := splitLines(head + text + tail)

	lines := make([][]rune, 0, len(d.lines)-(end.Line-start.Line)+len(repl)-1)
	lines = append(lines, d.lines[:start.Line]...)
	lines = append(lines, repl...)
	lines = append(lines, d.lines[end.Line+1:]...)
	d.lines = lines
	d.version++
	return nil
}

// Valid reports whether p addresses a position inside the buffer.
func (d *Document) Valid(p host.Position) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.validate(p) == nil
}

// End returns the position after the last rune.
func (d *Document) End() host.Position {
	d.mu.RLock()
	defer d.mu.RUnlock()
	last := len(d.lines) - 1
	return host.Position{Line: last, Ch: len(d.lines[last])}
}

func (d *Document) validate(p host.Position) error {
	if p.Line < 0 || p.Line >= len(d.lines) {
		return hinterrors.Newf(hinterrors.InvalidRange, "line %d out of range [0,%d)", p.Line, len(d.lines))
	}
	if p.Ch < 0 || p.Ch > len(d.lines[p.Line]) {
		return hinterrors.Newf(hinterrors.InvalidRange, "column %d out of range [0,%d] on line %d", p.Ch, len(d.lines[p.Line]), p.Line)
	}
	return nil
}

func (d *Document) clamp(p host.Position) host.Position {
	switch {
	case p.Line < 0:
		return host.Position{}
	case p.Line >= len(d.lines):
		last := len(d.lines) - 1
		return host.Position{Line: last, Ch: len(d.lines[last])}
	}
	p.Ch = max(0, min(p.Ch, len(d.lines[p.Line])))
	return p
}

package workspace

import (
	"strings"
	"sync"
	"unicode/utf8"

	"xqhint/internal/host"
)

// Editor is a cursor over a Document.
type Editor struct {
	doc *Document

	mu     sync.Mutex
	cursor host.Position
}

var _ host.Editor = (*Editor)(nil)

// NewEditor creates an editor on doc with the cursor at the start.
func NewEditor(doc *Document) *Editor {
	return &Editor{doc: doc}
}

// Document returns the edited buffer.
func (e *Editor) Document() *Document {
	return e.doc
}

// CursorPos implements host.Editor.
func (e *Editor) CursorPos() host.Position {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cursor
}

// SetCursor moves the cursor. The position must lie inside the buffer.
func (e *Editor) SetCursor(p host.Position) error {
	e.doc.mu.RLock()
	err := e.doc.validate(p)
	e.doc.mu.RUnlock()
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.cursor = p
	e.mu.Unlock()
	return nil
}

// Type inserts s at the cursor and moves the cursor past it.
func (e *Editor) Type(s string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.doc.ReplaceRange(s, e.cursor, e.cursor); err != nil {
		return err
	}
	e.cursor = advance(e.cursor, s)
	return nil
}

func advance(p host.Position, s string) host.Position {
	n := strings.Count(s, "\n")
	if n == 0 {
		p.Ch += utf8.RuneCountInString(s)
		return p
	}
	p.Line += n
	p.Ch = utf8.RuneCountInString(s[strings.LastIndexByte(s, '\n')+1:])
	return p
}

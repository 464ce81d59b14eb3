// Package host declares the editor collaborators the hint pipeline consumes.
// Implementations live outside the pipeline (see package workspace for the
// bundled one); the pipeline never reaches past these interfaces.
package host

import (
	"context"
	"fmt"

	"xqhint/internal/language"
)

// Position is a zero-based line and rune column in a text buffer.
type Position struct {
	Line int `json:"line" yaml:"line"`
	Ch   int `json:"ch" yaml:"ch"`
}

// Before reports whether p sorts strictly before o.
func (p Position) Before(o Position) bool {
	if p.Line != o.Line {
		return p.Line < o.Line
	}
	return p.Ch < o.Ch
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Ch)
}

// File identifies a project file.
type File struct {
	// Path is project-relative with forward slashes.
	Path string `json:"path"`
	// FullPath is the absolute filesystem path.
	FullPath string `json:"fullPath"`
}

// Editor exposes the cursor of the active editor.
type Editor interface {
	CursorPos() Position
}

// Document is the active text buffer.
type Document interface {
	Range(start, end Position) string
	ReplaceRange(text string, start, end Position) error
}

// DocumentManager gives access to the current document and to file contents.
// DocumentText prefers the live buffer of an open file over storage.
type DocumentManager interface {
	CurrentDocument() Document
	DocumentText(ctx context.Context, f File) (string, error)
}

// ProjectManager enumerates project files accepted by filter.
type ProjectManager interface {
	AllFiles(ctx context.Context, filter func(File) bool) ([]File, error)
}

// LanguageRegistry registers language definitions.
type LanguageRegistry interface {
	DefineLanguage(def language.Definition) error
}

// HintProvider is the shape the host's hint manager drives.
type HintProvider interface {
	HasHints(editor Editor, implicitChar string) bool
	GetHints(ctx context.Context, implicitChar string) *Response
	InsertHint(hint string)
}

// HintManager registers providers per language. Lower priority values are
// consulted first.
type HintManager interface {
	RegisterHintProvider(p HintProvider, languageIDs []string, priority int)
}

// Response is what GetHints hands back to the hint manager.
type Response struct {
	Hints             []string `json:"hints"`
	Match             *string  `json:"match"`
	SelectInitial     bool     `json:"selectInitial"`
	HandleWideResults bool     `json:"handleWideResults"`

	// Generation is the request id; Stale marks a response superseded by a
	// newer request, which carries no hints and must be ignored.
	Generation uint64 `json:"generation"`
	Stale      bool   `json:"stale,omitempty"`
}

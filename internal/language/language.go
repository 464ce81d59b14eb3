// Package language holds language definitions and the registry that maps
// ids and file extensions to them.
package language

import (
	_ "embed"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"

	hinterrors "xqhint/internal/errors"
)

// XQueryID is the id the hint provider registers against.
const XQueryID = "xquery"

//go:embed languages.toml
var builtinTOML []byte

// BlockComment is a start/end comment delimiter pair.
type BlockComment struct {
	Prefix string `toml:"prefix" json:"prefix" yaml:"prefix"`
	Suffix string `toml:"suffix" json:"suffix" yaml:"suffix"`
}

// Definition describes a language to the editor.
type Definition struct {
	ID             string       `toml:"id" json:"id" yaml:"id"`
	Name           string       `toml:"name" json:"name" yaml:"name"`
	Mode           string       `toml:"mode" json:"mode" yaml:"mode"`
	FileExtensions []string     `toml:"file_extensions" json:"fileExtensions" yaml:"fileExtensions"`
	LineComment    []string     `toml:"line_comment" json:"lineComment" yaml:"lineComment"`
	BlockComment   BlockComment `toml:"block_comment" json:"blockComment" yaml:"blockComment"`
}

// HasExtension reports whether ext (without dot, any case) belongs to d.
func (d Definition) HasExtension(ext string) bool {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	for _, e := range d.FileExtensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// Equal reports whether two definitions are identical.
func (d Definition) Equal(o Definition) bool {
	return d.ID == o.ID &&
		d.Name == o.Name &&
		d.Mode == o.Mode &&
		slices.Equal(d.FileExtensions, o.FileExtensions) &&
		slices.Equal(d.LineComment, o.LineComment) &&
		d.BlockComment == o.BlockComment
}

func (d Definition) clone() Definition {
	d.FileExtensions = slices.Clone(d.FileExtensions)
	d.LineComment = slices.Clone(d.LineComment)
	return d
}

type definitionsFile struct {
	Languages []Definition `toml:"language"`
}

// Parse decodes a TOML document of [[language]] tables.
func Parse(data []byte) ([]Definition, error) {
	var f definitionsFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse language definitions: %w", err)
	}
	for i, d := range f.Languages {
		if d.ID == "" {
			return nil, fmt.Errorf("language definition %d has no id", i)
		}
	}
	return f.Languages, nil
}

var builtins = sync.OnceValue(func() []Definition {
	defs, err := Parse(builtinTOML)
	if err != nil {
		panic(err)
	}
	return defs
})

// Builtin returns the definitions shipped with xqhint.
func Builtin() []Definition {
	defs := builtins()
	out := make([]Definition, len(defs))
	for i, d := range defs {
		out[i] = d.clone()
	}
	return out
}

// XQuery returns the built-in XQuery definition.
func XQuery() Definition {
	for _, d := range Builtin() {
		if d.ID == XQueryID {
			return d
		}
	}
	panic("language: built-in xquery definition missing")
}

// Registry stores language definitions by id. Safe for concurrent use.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]Definition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

// DefineLanguage registers def. Registering an identical definition again is
// a no-op; a different definition under an existing id is rejected.
func (r *Registry) DefineLanguage(def Definition) error {
	if def.ID == "" {
		return hinterrors.Newf(hinterrors.LanguageConflict, "language definition has no id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.defs[def.ID]; ok {
		if existing.Equal(def) {
			return nil
		}
		return hinterrors.Newf(hinterrors.LanguageConflict, "language %q is already defined differently", def.ID)
	}
	r.defs[def.ID] = def.clone()
	return nil
}

// Language returns the definition registered under id.
func (r *Registry) Language(id string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.defs[id]
	if !ok {
		return Definition{}, false
	}
	return d.clone(), true
}

// ForExtension returns the first definition (by id) claiming ext.
func (r *Registry) ForExtension(ext string) (Definition, bool) {
	for _, d := range r.All() {
		if d.HasExtension(ext) {
			return d, true
		}
	}
	return Definition{}, false
}

// All returns every definition sorted by id.
func (r *Registry) All() []Definition {
	r.mu.RLock()
	out := make([]Definition, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d.clone())
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

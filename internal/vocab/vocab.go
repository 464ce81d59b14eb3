// Package vocab provides the static XQuery vocabulary: keywords, atomic
// types, operators and axis specifiers.
package vocab

import (
	_ "embed"
	"fmt"
	"slices"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

//go:embed vocabulary.toml
var builtinTOML []byte

// Vocabulary is four ordered lists of fixed candidates. Repeated entries are
// kept; the lists are never deduplicated.
type Vocabulary struct {
	Keywords  []string `toml:"keywords" json:"keywords" yaml:"keywords"`
	Types     []string `toml:"types" json:"types" yaml:"types"`
	Operators []string `toml:"operators" json:"operators" yaml:"operators"`
	Axes      []string `toml:"axes" json:"axes" yaml:"axes"`
}

// Parse decodes a vocabulary TOML document.
func Parse(data []byte) (Vocabulary, error) {
	var v Vocabulary
	if err := toml.Unmarshal(data, &v); err != nil {
		return Vocabulary{}, fmt.Errorf("failed to parse vocabulary: %w", err)
	}
	return v, nil
}

var builtin = sync.OnceValue(func() Vocabulary {
	v, err := Parse(builtinTOML)
	if err != nil {
		panic(err)
	}
	return v
})

// Default returns a copy of the built-in XQuery vocabulary. It is decoded
// once per process.
func Default() Vocabulary {
	return builtin().Clone()
}

// Clone returns a deep copy of v.
func (v Vocabulary) Clone() Vocabulary {
	return Vocabulary{
		Keywords:  slices.Clone(v.Keywords),
		Types:     slices.Clone(v.Types),
		Operators: slices.Clone(v.Operators),
		Axes:      slices.Clone(v.Axes),
	}
}

// All returns keywords, types, operators and axes concatenated in that order.
func (v Vocabulary) All() []string {
	out := make([]string, 0, v.Len())
	out = append(out, v.Keywords...)
	out = append(out, v.Types...)
	out = append(out, v.Operators...)
	out = append(out, v.Axes...)
	return out
}

// Len is the total number of entries, repeats included.
func (v Vocabulary) Len() int {
	return len(v.Keywords) + len(v.Types) + len(v.Operators) + len(v.Axes)
}

package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hinterrors "xqhint/internal/errors"
	"xqhint/internal/host"
)

func pos(line, ch int) host.Position {
	return host.Position{Line: line, Ch: ch}
}

func TestDocument_Range(t *testing.T) {
	doc := NewDocument(host.File{Path: "a.xqy"}, "let $x := 1\nreturn $x\n")

	tests := []struct {
		name       string
		start, end host.Position
		want       string
	}{
		{"single line", pos(0, 4), pos(0, 6), "$x"},
		{"empty", pos(1, 3), pos(1, 3), ""},
		{"across lines", pos(0, 10), pos(1, 6), "1\nreturn"},
		{"reversed", pos(1, 6), pos(0, 10), "1\nreturn"},
		{"through trailing newline", pos(1, 7), pos(2, 0), "$x\n"},
		{"column clamped", pos(0, 7), pos(0, 99), ":= 1"},
		{"line clamped", pos(1, 7), pos(9, 0), "$x\n"},
		{"negative clamped", pos(-1, 0), pos(0, 3), "let"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, doc.Range(tt.start, tt.end))
		})
	}
}

func TestDocument_RuneColumns(t *testing.T) {
	doc := NewDocument(host.File{}, "(: é :) for")

	assert.Equal(t, "é", doc.Range(pos(0, 3), pos(0, 4)))
	require.NoError(t, doc.ReplaceRange("let", pos(0, 8), pos(0, 11)))
	assert.Equal(t, "(: é :) let", doc.Text())
}

func TestDocument_ReplaceRange(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		repl       string
		start, end host.Position
		want       string
		lines      int
	}{
		{"insert", "let $x := fo", "r", pos(0, 12), pos(0, 12), "let $x := for", 1},
		{"replace token", "let $x := fo\nreturn 1", "for", pos(0, 10), pos(0, 12), "let $x := for\nreturn 1", 2},
		{"join lines", "a\nb\nc", "", pos(0, 1), pos(2, 0), "ac", 1},
		{"split line", "ab", "\n", pos(0, 1), pos(0, 1), "a\nb", 2},
		{"empty buffer", "", "xquery", pos(0, 0), pos(0, 0), "xquery", 1},
		{"reversed", "let\nfor", "x", pos(1, 2), pos(0, 1), "lxr", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := NewDocument(host.File{}, tt.text)
			require.NoError(t, doc.ReplaceRange(tt.repl, tt.start, tt.end))
			assert.Equal(t, tt.want, doc.Text())
			assert.Equal(t, tt.lines, doc.LineCount())
			assert.Equal(t, 1, doc.Version())
		})
	}
}

func TestDocument_ReplaceRangeRejectsBadPositions(t *testing.T) {
	doc := NewDocument(host.File{}, "let\nfor")

	for _, r := range [][2]host.Position{
		{pos(0, 0), pos(2, 0)},
		{pos(0, 4), pos(0, 4)},
		{pos(-1, 0), pos(0, 0)},
	} {
		err := doc.ReplaceRange("x", r[0], r[1])
		require.Error(t, err, "%v-%v", r[0], r[1])
		assert.True(t, hinterrors.Is(err, hinterrors.InvalidRange))
	}
	assert.Equal(t, "let\nfor", doc.Text())
	assert.Zero(t, doc.Version())
}

func TestDocument_Lines(t *testing.T) {
	doc := NewDocument(host.File{Path: "m.xqy"}, "module\nnamespace")

	l, ok := doc.Line(1)
	assert.True(t, ok)
	assert.Equal(t, "namespace", l)
	_, ok = doc.Line(2)
	assert.False(t, ok)

	assert.Equal(t, pos(1, 9), doc.End())
	assert.True(t, doc.Valid(pos(1, 9)))
	assert.False(t, doc.Valid(pos(1, 10)))
	assert.Equal(t, "m.xqy", doc.File().Path)
}

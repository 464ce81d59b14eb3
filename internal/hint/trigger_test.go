package hint

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"xqhint/internal/host"
)

func TestValidChar(t *testing.T) {
	tests := []struct {
		ch   string
		want bool
	}{
		{"a", true},
		{"Z", true},
		{"7", true},
		{"_", true},
		{"-", true},
		{":", true},
		{".", false},
		{"$", false},
		{"@", false},
		{" ", false},
		{"(", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidChar(tt.ch), "ValidChar(%q)", tt.ch)
	}
}

func TestIsBoundary(t *testing.T) {
	for _, ch := range []string{"", " ", "\t", "\n", "(", ")", "[", "]"} {
		assert.True(t, IsBoundary(ch), "IsBoundary(%q)", ch)
	}
	for _, ch := range []string{"a", ".", ":", "-", "$", "{", "}"} {
		assert.False(t, IsBoundary(ch), "IsBoundary(%q)", ch)
	}
}

func TestDetect_BoundaryAnchorsAtCursor(t *testing.T) {
	ed := &fakeEditor{pos: host.Position{Line: 2, Ch: 4}}
	prev := Session{ID: "old", Start: host.Position{Line: 0, Ch: 0}, Anchored: true, WrittenSinceStart: "let $x"}

	next, ok := Detect(prev, ed, " ")

	assert.False(t, ok)
	assert.True(t, next.Anchored)
	assert.Equal(t, host.Position{Line: 2, Ch: 4}, next.Start)
	assert.Empty(t, next.WrittenSinceStart)
	assert.NotEqual(t, "old", next.ID)
	assert.Same(t, ed, next.Editor())
	// the input value is untouched
	assert.Equal(t, "let $x", prev.WrittenSinceStart)
}

func TestDetect_EmptyCharAnchors(t *testing.T) {
	ed := &fakeEditor{pos: host.Position{Line: 1, Ch: 1}}

	next, ok := Detect(Session{}, ed, "")

	assert.False(t, ok)
	assert.True(t, next.Anchored)
	assert.Equal(t, host.Position{Line: 1, Ch: 1}, next.Start)
}

func TestDetect_IdentifierCharKeepsAnchor(t *testing.T) {
	ed := &fakeEditor{pos: host.Position{Line: 0, Ch: 9}}
	prev := Session{ID: "s", Start: host.Position{Line: 0, Ch: 7}, Anchored: true}

	next, ok := Detect(prev, ed, "f")

	assert.True(t, ok)
	assert.Equal(t, prev.Start, next.Start)
	assert.Equal(t, "s", next.ID)
}

func TestDetect_OtherCharLeavesStateAlone(t *testing.T) {
	ed := &fakeEditor{pos: host.Position{Line: 0, Ch: 12}}
	prev := Session{ID: "s", Start: host.Position{Line: 0, Ch: 7}, Anchored: true, WrittenSinceStart: "abc"}

	next, ok := Detect(prev, ed, ".")

	assert.False(t, ok)
	assert.Equal(t, prev.ID, next.ID)
	assert.Equal(t, prev.Start, next.Start)
	assert.Equal(t, prev.WrittenSinceStart, next.WrittenSinceStart)
}

func TestTokenStart(t *testing.T) {
	tests := []struct {
		name string
		line string
		ch   int
		want int
	}{
		{"mid identifier", "let $x := local:fo", 18, 10},
		{"after space", "let ", 4, 4},
		{"after dollar", "let $va", 7, 5},
		{"start of line", "for", 3, 0},
		{"inside parens", "fn:count(xs:", 12, 9},
		{"column past end", "abc", 10, 0},
		{"zero column", "abc", 0, 0},
		{"non-ascii stops run", "é-x", 3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TokenStart(tt.line, tt.ch))
		})
	}
}

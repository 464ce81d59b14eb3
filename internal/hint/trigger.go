// Package hint implements the XQuery hint pipeline: trigger detection,
// identifier extraction, prefix filtering, ordering and insertion.
package hint

import (
	"regexp"

	"github.com/google/uuid"

	"xqhint/internal/host"
)

var (
	// identRe matches identifier-like runs: word characters, '-' and ':'.
	identRe = regexp.MustCompile(`(?i)[\w\-:]+`)
	// boundaryRe matches characters that end a token and re-anchor hinting.
	boundaryRe = regexp.MustCompile(`[\s\(\)\[\]]`)
)

// ValidChar reports whether ch contains an identifier character.
func ValidChar(ch string) bool {
	return identRe.MatchString(ch)
}

// IsBoundary reports whether ch re-anchors the session. The empty string
// counts as a boundary: hosts pass it on explicit invocation.
func IsBoundary(ch string) bool {
	return ch == "" || boundaryRe.MatchString(ch)
}

// Session is the per-editor trigger state. It is a value; Detect returns an
// updated copy instead of mutating in place.
type Session struct {
	// ID changes every time the session is re-anchored.
	ID string
	// Start anchors the token being typed. Only meaningful when Anchored.
	Start    host.Position
	Anchored bool
	// WrittenSinceStart is the text in [Start, cursor], refreshed per request.
	WrittenSinceStart string

	editor host.Editor
}

// Editor returns the editor bound to the session, if any.
func (s Session) Editor() host.Editor {
	return s.editor
}

// Detect applies a keystroke to s. It always binds editor. On a boundary
// character (or none) the anchor moves to the cursor and the typed text is
// discarded. ok reports whether ch is an identifier character, i.e. whether
// hinting is active; other characters leave the anchor untouched.
func Detect(s Session, editor host.Editor, ch string) (next Session, ok bool) {
	next = s
	next.editor = editor

	if IsBoundary(ch) && editor != nil {
		next = anchor(next, editor.CursorPos())
	}
	return next, ValidChar(ch)
}

func anchor(s Session, at host.Position) Session {
	s.ID = uuid.NewString()
	s.Start = at
	s.Anchored = true
	s.WrittenSinceStart = ""
	return s
}

// TokenStart returns the rune column where the identifier run ending at rune
// column ch of line begins. When the rune before ch is not an identifier
// character it returns ch.
func TokenStart(line string, ch int) int {
	runes := []rune(line)
	if ch > len(runes) {
		ch = len(runes)
	}
	start := ch
	for start > 0 && isIdentRune(runes[start-1]) {
		start--
	}
	return start
}

// isIdentRune mirrors identRe for a single rune; \w is ASCII-only.
func isIdentRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	return r == '_' || r == '-' || r == ':'
}

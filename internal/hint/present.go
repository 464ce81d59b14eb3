package hint

import (
	"html"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Sort returns a copy of candidates ordered by lowercased text. Candidates
// that compare equal keep their relative order.
func Sort(candidates []string) []string {
	out := slices.Clone(candidates)
	slices.SortStableFunc(out, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	return out
}

// Decorator renders the low-emphasis suffix appended to a candidate in the
// display list. It must not alter the candidate itself.
type Decorator interface {
	Suffix(candidate string) string
}

// HTMLDecorator repeats the candidate in a grey span, for HTML popups.
type HTMLDecorator struct{}

// Suffix implements Decorator.
func (HTMLDecorator) Suffix(candidate string) string {
	return "<span style='color:#a0a0a0; margin-left: 10px'>" + html.EscapeString(candidate) + "</span>"
}

// TerminalDecorator repeats the candidate in faint grey, for terminals.
type TerminalDecorator struct {
	style lipgloss.Style
}

// NewTerminalDecorator creates a TerminalDecorator.
func NewTerminalDecorator() TerminalDecorator {
	return TerminalDecorator{
		style: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a0a0a0")).
			Faint(true).
			PaddingLeft(2),
	}
}

// Suffix implements Decorator.
func (d TerminalDecorator) Suffix(candidate string) string {
	return d.style.Render(candidate)
}

// HintList holds index-aligned insertable and display strings.
type HintList struct {
	Raw        []string
	Display    []string
	Generation uint64
}

// Present builds a HintList from already sorted candidates.
func Present(sorted []string, dec Decorator) HintList {
	if dec == nil {
		dec = HTMLDecorator{}
	}
	list := HintList{
		Raw:     make([]string, len(sorted)),
		Display: make([]string, len(sorted)),
	}
	for i, c := range sorted {
		list.Raw[i] = c
		list.Display[i] = c + dec.Suffix(c)
	}
	return list
}

// Len is the number of entries.
func (l HintList) Len() int {
	return len(l.Raw)
}

// Lookup resolves a display string to the text to insert, using the first
// matching entry.
func (l HintList) Lookup(display string) (string, bool) {
	i := slices.Index(l.Display, display)
	if i < 0 || i >= len(l.Raw) {
		return "", false
	}
	return l.Raw[i], true
}

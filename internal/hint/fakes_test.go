package hint

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"xqhint/internal/corpus"
	"xqhint/internal/host"
)

type fakeEditor struct {
	mu  sync.Mutex
	pos host.Position
}

func (e *fakeEditor) CursorPos() host.Position {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pos
}

func (e *fakeEditor) moveTo(line, ch int) {
	e.mu.Lock()
	e.pos = host.Position{Line: line, Ch: ch}
	e.mu.Unlock()
}

// fakeDoc is a line buffer addressed by rune columns.
type fakeDoc struct {
	mu       sync.Mutex
	lines    []string
	replaced int
}

func newFakeDoc(text string) *fakeDoc {
	return &fakeDoc{lines: strings.Split(text, "\n")}
}

func (d *fakeDoc) offset(p host.Position) int {
	n := 0
	for i := 0; i < p.Line; i++ {
		n += len([]rune(d.lines[i])) + 1
	}
	return n + p.Ch
}

func (d *fakeDoc) Range(start, end host.Position) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	runes := []rune(strings.Join(d.lines, "\n"))
	s, e := d.offset(start), d.offset(end)
	if e < s {
		s, e = e, s
	}
	return string(runes[s:e])
}

// ReplaceRange counts calls so tests can tell hint insertions apart from
// typing, which goes through insert. Reversed ranges are rejected.
func (d *fakeDoc) ReplaceRange(text string, start, end host.Position) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.replace(text, start, end); err != nil {
		return err
	}
	d.replaced++
	return nil
}

func (d *fakeDoc) insert(text string, at host.Position) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_ = d.replace(text, at, at)
}

func (d *fakeDoc) replace(text string, start, end host.Position) error {
	runes := []rune(strings.Join(d.lines, "\n"))
	s, e := d.offset(start), d.offset(end)
	if s > len(runes) || e > len(runes) || s > e {
		return fmt.Errorf("range %v-%v out of bounds", start, end)
	}
	out := string(runes[:s]) + text + string(runes[e:])
	d.lines = strings.Split(out, "\n")
	return nil
}

func (d *fakeDoc) Text() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return strings.Join(d.lines, "\n")
}

type fakeDocs struct {
	doc host.Document
}

func (f *fakeDocs) CurrentDocument() host.Document {
	return f.doc
}

type staticCorpus string

func (s staticCorpus) Collect(context.Context) corpus.Corpus {
	return corpus.Corpus{Text: string(s)}
}

// gatedCorpus blocks each Collect call until the matching gate is released.
type gatedCorpus struct {
	text    string
	entered chan int
	gates   []chan struct{}
	mu      sync.Mutex
	calls   int
}

func newGatedCorpus(text string, calls int) *gatedCorpus {
	g := &gatedCorpus{text: text, entered: make(chan int, calls)}
	for i := 0; i < calls; i++ {
		g.gates = append(g.gates, make(chan struct{}))
	}
	return g
}

func (g *gatedCorpus) Collect(ctx context.Context) corpus.Corpus {
	g.mu.Lock()
	i := g.calls
	g.calls++
	g.mu.Unlock()

	g.entered <- i
	select {
	case <-g.gates[i]:
	case <-ctx.Done():
	}
	return corpus.Corpus{Text: g.text}
}

// typeText inserts s at the editor's cursor one rune at a time, calling
// HasHints for each keystroke like a host would.
func typeText(p *Provider, ed *fakeEditor, doc *fakeDoc, s string) (last string, active bool) {
	for _, r := range s {
		pos := ed.CursorPos()
		doc.insert(string(r), pos)
		if r == '\n' {
			ed.moveTo(pos.Line+1, 0)
		} else {
			ed.moveTo(pos.Line, pos.Ch+1)
		}
		last = string(r)
		active = p.HasHints(ed, last)
	}
	return last, active
}

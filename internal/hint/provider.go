package hint

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"xqhint/internal/corpus"
	"xqhint/internal/host"
	"xqhint/internal/slogutil"
	"xqhint/internal/vocab"
)

// CorpusSource yields the project corpus for a request.
type CorpusSource interface {
	Collect(ctx context.Context) corpus.Corpus
}

// DocumentSource yields the active document.
type DocumentSource interface {
	CurrentDocument() host.Document
}

// Options configures a Provider.
type Options struct {
	// Vocabulary defaults to vocab.Default().
	Vocabulary *vocab.Vocabulary
	// Decorator defaults to HTMLDecorator.
	Decorator Decorator
	Logger    *slog.Logger
}

// Provider answers the host's hint requests for one language. Each GetHints
// call is tagged with a generation; only the latest generation's list is
// kept for insertion, and a boundary keystroke cancels whatever is pending.
type Provider struct {
	corpus    CorpusSource
	docs      DocumentSource
	vocab     vocab.Vocabulary
	decorator Decorator
	logger    *slog.Logger

	generation atomic.Uint64

	mu      sync.Mutex
	session Session
	list    *HintList
}

var _ host.HintProvider = (*Provider)(nil)

// NewProvider creates a Provider.
func NewProvider(src CorpusSource, docs DocumentSource, opts Options) *Provider {
	v := vocab.Default()
	if opts.Vocabulary != nil {
		v = opts.Vocabulary.Clone()
	}
	dec := opts.Decorator
	if dec == nil {
		dec = HTMLDecorator{}
	}
	return &Provider{
		corpus:    src,
		docs:      docs,
		vocab:     v,
		decorator: dec,
		logger:    slogutil.OrDiscard(opts.Logger),
	}
}

// HasHints records the keystroke ch typed in editor and reports whether
// hinting is active for it. Boundary characters re-anchor the session and
// cancel pending requests.
func (p *Provider) HasHints(editor host.Editor, ch string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	next, ok := Detect(p.session, editor, ch)
	if next.ID != p.session.ID {
		p.cancelLocked()
		p.logger.Debug("Hint session anchored", "session", next.ID, "start", next.Start.String())
	}
	p.session = next
	return ok
}

// GetHints computes the hint list for the text typed since the anchor. It
// returns nil when ch is not an identifier character or when there is no
// editor or document to read from. A response whose request was superseded
// while the corpus was collected comes back Stale with no hints.
func (p *Provider) GetHints(ctx context.Context, ch string) *host.Response {
	if !ValidChar(ch) {
		return nil
	}
	gen := p.generation.Add(1)
	start := time.Now()

	written, ok := p.refresh()
	if !ok {
		return nil
	}

	c := p.corpus.Collect(ctx)
	prefix := Prefix(written)
	list := Present(Sort(Filter(Union(Extract(c.Text), p.vocab), prefix)), p.decorator)
	list.Generation = gen

	p.mu.Lock()
	if gen != p.generation.Load() {
		p.mu.Unlock()
		p.logger.Debug("Discarding superseded hint request", "generation", gen)
		return &host.Response{SelectInitial: true, Generation: gen, Stale: true}
	}
	p.list = &list
	p.mu.Unlock()

	p.logger.Debug("Hints computed",
		"generation", gen,
		"prefix", prefix,
		"hints", list.Len(),
		"files", c.Read,
		"duration", time.Since(start),
	)
	return &host.Response{
		Hints:             list.Display,
		Match:             nil,
		SelectInitial:     true,
		HandleWideResults: false,
		Generation:        gen,
	}
}

// refresh recomputes WrittenSinceStart from the current document. An
// unanchored session is anchored at the cursor first.
func (p *Provider) refresh() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	editor := p.session.editor
	doc := p.currentDocument()
	if editor == nil || doc == nil {
		p.logger.Debug("No active editor or document, skipping hints")
		return "", false
	}
	cursor := editor.CursorPos()
	if !p.session.Anchored {
		p.session = anchor(p.session, cursor)
	}
	p.session.WrittenSinceStart = doc.Range(p.session.Start, cursor)
	return p.session.WrittenSinceStart, true
}

// InsertHint replaces the range between the anchor and the cursor in the
// current document with the raw text behind the chosen display string.
// Unknown display strings, a missing list or a missing document leave the
// document untouched. A successful insertion ends the session.
//
// The document is edited without holding the provider lock, so hosts may call
// back into HasHints from their change handlers.
func (p *Provider) InsertHint(display string) {
	p.mu.Lock()
	list := p.list
	if list == nil {
		p.mu.Unlock()
		p.logger.Debug("No hint list to insert from")
		return
	}
	raw, ok := list.Lookup(display)
	if !ok {
		p.mu.Unlock()
		p.logger.Debug("Ignoring stale hint selection", "hint", display)
		return
	}
	editor := p.session.editor
	start := p.session.Start
	anchored := p.session.Anchored
	p.mu.Unlock()

	doc := p.currentDocument()
	if editor == nil || doc == nil || !anchored {
		return
	}

	end := editor.CursorPos()
	if end.Before(start) {
		start, end = end, start
	}
	if err := doc.ReplaceRange(raw, start, end); err != nil {
		p.logger.Warn("Hint insertion failed", "hint", raw, "error", err)
		return
	}
	p.logger.Debug("Hint inserted", "hint", raw, "start", start.String(), "end", end.String())

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.list == list {
		p.list = nil
		p.session = Session{editor: editor}
	}
}

// Session returns a snapshot of the trigger state.
func (p *Provider) Session() Session {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.session
}

// Current returns the hint list the next InsertHint resolves against.
func (p *Provider) Current() (HintList, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.list == nil {
		return HintList{}, false
	}
	return *p.list, true
}

// cancelLocked drops the current list and invalidates in-flight requests.
func (p *Provider) cancelLocked() {
	p.list = nil
	p.generation.Add(1)
}

func (p *Provider) currentDocument() host.Document {
	if p.docs == nil {
		return nil
	}
	return p.docs.CurrentDocument()
}

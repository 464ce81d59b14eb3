package corpus

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xqhint/internal/host"
)

type fakeProject struct {
	files []host.File
	err   error
}

func (p *fakeProject) AllFiles(_ context.Context, filter func(host.File) bool) ([]host.File, error) {
	if p.err != nil {
		return nil, p.err
	}
	var out []host.File
	for _, f := range p.files {
		if filter(f) {
			out = append(out, f)
		}
	}
	return out, nil
}

type fakeDocs struct {
	texts  map[string]string
	delays map[string]time.Duration

	inFlight atomic.Int32
	peak     atomic.Int32
	mu       sync.Mutex
	order    []string
}

func (d *fakeDocs) CurrentDocument() host.Document { return nil }

func (d *fakeDocs) DocumentText(_ context.Context, f host.File) (string, error) {
	n := d.inFlight.Add(1)
	defer d.inFlight.Add(-1)
	for {
		p := d.peak.Load()
		if n <= p || d.peak.CompareAndSwap(p, n) {
			break
		}
	}
	if delay := d.delays[f.Path]; delay > 0 {
		time.Sleep(delay)
	}
	d.mu.Lock()
	d.order = append(d.order, f.Path)
	d.mu.Unlock()

	text, ok := d.texts[f.Path]
	if !ok {
		return "", fmt.Errorf("read %s: permission denied", f.Path)
	}
	return text, nil
}

func files(names ...string) []host.File {
	out := make([]host.File, len(names))
	for i, n := range names {
		out[i] = host.File{Path: n, FullPath: "/project/" + n}
	}
	return out
}

func TestCollect_JoinsInPathOrder(t *testing.T) {
	project := &fakeProject{files: files("b.xqy", "a.xqy", "c.xqy")}
	docs := &fakeDocs{
		texts: map[string]string{"a.xqy": "A", "b.xqy": "B", "c.xqy": "C"},
		// a finishes last, yet is joined first
		delays: map[string]time.Duration{"a.xqy": 20 * time.Millisecond},
	}

	c := NewCollector(project, docs, Options{Extensions: []string{"xqy"}}, nil)
	got := c.Collect(context.Background())

	assert.Equal(t, "A\n\nB\n\nC", got.Text)
	assert.Equal(t, 3, got.Files)
	assert.Equal(t, 3, got.Read)
	assert.Equal(t, 0, got.Failed)
}

func TestCollect_FiltersByExtension(t *testing.T) {
	project := &fakeProject{files: files("main.xqy", "LIB.XQY", "notes.txt", "schema.xsd", "README")}
	docs := &fakeDocs{texts: map[string]string{
		"main.xqy": "main", "LIB.XQY": "lib", "notes.txt": "notes", "schema.xsd": "xsd", "README": "readme",
	}}

	c := NewCollector(project, docs, Options{Extensions: []string{".xqy"}}, nil)
	got := c.Collect(context.Background())

	assert.Equal(t, "lib\n\nmain", got.Text)
	assert.Equal(t, 2, got.Files)
}

func TestCollect_SkipsFailedReads(t *testing.T) {
	project := &fakeProject{files: files("a.xqy", "broken.xqy", "c.xqy")}
	docs := &fakeDocs{texts: map[string]string{"a.xqy": "let", "c.xqy": "return"}}

	got := NewCollector(project, docs, Options{Extensions: []string{"xqy"}}, nil).Collect(context.Background())

	assert.Equal(t, "let\n\nreturn", got.Text)
	assert.Equal(t, 2, got.Read)
	assert.Equal(t, 1, got.Failed)
}

func TestCollect_AllReadsFail(t *testing.T) {
	project := &fakeProject{files: files("a.xqy", "b.xqy")}
	docs := &fakeDocs{texts: map[string]string{}}

	got := NewCollector(project, docs, Options{Extensions: []string{"xqy"}}, nil).Collect(context.Background())

	assert.Equal(t, "", got.Text)
	assert.Equal(t, 2, got.Failed)
}

func TestCollect_EnumerationFailure(t *testing.T) {
	project := &fakeProject{err: errors.New("project closed")}

	got := NewCollector(project, &fakeDocs{}, Options{Extensions: []string{"xqy"}}, nil).Collect(context.Background())

	assert.Equal(t, Corpus{}, got)
}

func TestCollect_KeepsEmptyFiles(t *testing.T) {
	project := &fakeProject{files: files("a.xqy", "empty.xqy")}
	docs := &fakeDocs{texts: map[string]string{"a.xqy": "x", "empty.xqy": ""}}

	got := NewCollector(project, docs, Options{Extensions: []string{"xqy"}}, nil).Collect(context.Background())

	assert.Equal(t, "x\n\n", got.Text)
	assert.Equal(t, 2, got.Read)
}

func TestCollect_BoundsConcurrency(t *testing.T) {
	names := make([]string, 12)
	texts := make(map[string]string, len(names))
	delays := make(map[string]time.Duration, len(names))
	for i := range names {
		names[i] = fmt.Sprintf("f%02d.xqy", i)
		texts[names[i]] = names[i]
		delays[names[i]] = 5 * time.Millisecond
	}
	docs := &fakeDocs{texts: texts, delays: delays}

	got := NewCollector(&fakeProject{files: files(names...)}, docs,
		Options{Extensions: []string{"xqy"}, MaxConcurrentReads: 3}, nil).Collect(context.Background())

	require.Equal(t, 12, got.Read)
	assert.LessOrEqual(t, docs.peak.Load(), int32(3))
}

func TestAccepts(t *testing.T) {
	c := NewCollector(&fakeProject{}, &fakeDocs{}, Options{Extensions: []string{"xqy", "XQ"}}, nil)

	assert.True(t, c.Accepts(host.File{Path: "a/b.xqy"}))
	assert.True(t, c.Accepts(host.File{Path: "a/b.xq"}))
	assert.True(t, c.Accepts(host.File{FullPath: "/abs/b.XQY"}))
	assert.False(t, c.Accepts(host.File{Path: "b.xqyx"}))
	assert.False(t, c.Accepts(host.File{Path: "xqy"}))
}

// Package workspace is a self-contained editor host: open buffers with
// cursors, a project directory scanned from disk, a language registry and a
// hint provider registry. It implements every collaborator in package host.
package workspace

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	hinterrors "xqhint/internal/errors"
	"xqhint/internal/host"
	"xqhint/internal/language"
	"xqhint/internal/paths"
	"xqhint/internal/slogutil"
)

// Options configures a Workspace.
type Options struct {
	// IgnoreDirs are directory names never descended into.
	IgnoreDirs []string
	// MaxFileSizeBytes rejects larger files on read; 0 disables the limit.
	MaxFileSizeBytes int64
	// CacheEntries sizes the on-disk text cache; 0 disables caching.
	CacheEntries int
}

// cachedText is a file's contents together with the stat it was read under.
type cachedText struct {
	modTime time.Time
	size    int64
	text    string
}

// Workspace hosts a project rooted at a directory.
type Workspace struct {
	root   string
	opts   Options
	ignore map[string]struct{}
	logger *slog.Logger
	cache  *lru.Cache[string, cachedText]

	languages *language.Registry

	mu        sync.RWMutex
	open      map[string]*Document
	current   *Editor
	providers []registration
}

var (
	_ host.DocumentManager  = (*Workspace)(nil)
	_ host.ProjectManager   = (*Workspace)(nil)
	_ host.LanguageRegistry = (*Workspace)(nil)
	_ host.HintManager      = (*Workspace)(nil)
)

// New creates a workspace rooted at root.
func New(root string, opts Options, logger *slog.Logger) (*Workspace, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, hinterrors.New(hinterrors.EnumerationFailed, "cannot resolve project root", err)
	}

	ignore := make(map[string]struct{}, len(opts.IgnoreDirs))
	for _, d := range opts.IgnoreDirs {
		ignore[d] = struct{}{}
	}

	w := &Workspace{
		root:      abs,
		opts:      opts,
		ignore:    ignore,
		logger:    slogutil.OrDiscard(logger),
		languages: language.NewRegistry(),
		open:      make(map[string]*Document),
	}
	if opts.CacheEntries > 0 {
		w.cache, err = lru.New[string, cachedText](opts.CacheEntries)
		if err != nil {
			return nil, hinterrors.New(hinterrors.InternalError, "cannot create text cache", err)
		}
	}
	return w, nil
}

// Root returns the absolute project root.
func (w *Workspace) Root() string {
	return w.root
}

// File resolves path, absolute or relative to the root, to a project file.
func (w *Workspace) File(path string) (host.File, error) {
	full := path
	if !filepath.IsAbs(full) {
		full = paths.JoinProjectPath(w.root, path)
	}
	rel, err := paths.CanonicalizePath(full, w.root)
	if err != nil {
		return host.File{}, hinterrors.New(hinterrors.ReadFailed, "cannot resolve "+path, err)
	}
	if !paths.IsWithinProject(full, w.root) {
		return host.File{}, hinterrors.New(hinterrors.ReadFailed, path+" is outside the project", nil)
	}
	return host.File{Path: rel, FullPath: filepath.Clean(full)}, nil
}

// Open loads path from disk into a buffer, or reuses the buffer if the file
// is already open, and makes a fresh editor on it current.
func (w *Workspace) Open(ctx context.Context, path string) (*Editor, error) {
	f, err := w.File(path)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	doc, ok := w.open[f.Path]
	w.mu.Unlock()
	if !ok {
		text, err := w.readDisk(ctx, f)
		if err != nil {
			return nil, err
		}
		doc = NewDocument(f, text)
	}
	return w.activate(doc), nil
}

// OpenText opens a buffer for path holding text, replacing any open buffer
// for the same file. Nothing is written to disk.
func (w *Workspace) OpenText(path, text string) (*Editor, error) {
	f, err := w.File(path)
	if err != nil {
		return nil, err
	}
	return w.activate(NewDocument(f, text)), nil
}

func (w *Workspace) activate(doc *Document) *Editor {
	ed := NewEditor(doc)

	w.mu.Lock()
	w.open[doc.File().Path] = doc
	w.current = ed
	w.mu.Unlock()

	w.logger.Debug("Document opened", "path", doc.File().Path, "lines", doc.LineCount())
	return ed
}

// Close drops the buffer for path. The current editor is cleared if it was
// on that buffer.
func (w *Workspace) Close(path string) {
	f, err := w.File(path)
	if err != nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.open, f.Path)
	if w.current != nil && w.current.doc.File().Path == f.Path {
		w.current = nil
	}
}

// CurrentEditor returns the active editor, or nil.
func (w *Workspace) CurrentEditor() *Editor {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// CurrentDocument implements host.DocumentManager. It returns a nil
// interface when no editor is active.
func (w *Workspace) CurrentDocument() host.Document {
	ed := w.CurrentEditor()
	if ed == nil {
		return nil
	}
	return ed.doc
}

// DocumentText implements host.DocumentManager. An open buffer shadows the
// file on disk.
func (w *Workspace) DocumentText(ctx context.Context, f host.File) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", hinterrors.New(hinterrors.ReadFailed, "read cancelled", err)
	}
	if f.FullPath == "" {
		f.FullPath = paths.JoinProjectPath(w.root, f.Path)
	}

	w.mu.RLock()
	doc, ok := w.open[f.Path]
	w.mu.RUnlock()
	if ok {
		return doc.Text(), nil
	}
	return w.readDisk(ctx, f)
}

func (w *Workspace) readDisk(ctx context.Context, f host.File) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", hinterrors.New(hinterrors.ReadFailed, "read cancelled", err)
	}

	info, err := os.Stat(f.FullPath)
	if err != nil {
		return "", hinterrors.New(hinterrors.ReadFailed, "cannot stat "+f.Path, err)
	}
	if info.IsDir() {
		return "", hinterrors.Newf(hinterrors.ReadFailed, "%s is a directory", f.Path)
	}
	if limit := w.opts.MaxFileSizeBytes; limit > 0 && info.Size() > limit {
		return "", hinterrors.Newf(hinterrors.FileTooLarge, "%s is %d bytes, limit is %d", f.Path, info.Size(), limit).
			WithDetails(map[string]int64{"size": info.Size(), "limit": limit})
	}

	if w.cache != nil {
		if c, ok := w.cache.Get(f.FullPath); ok && c.size == info.Size() && c.modTime.Equal(info.ModTime()) {
			return c.text, nil
		}
	}

	data, err := os.ReadFile(f.FullPath)
	if err != nil {
		return "", hinterrors.New(hinterrors.ReadFailed, "cannot read "+f.Path, err)
	}
	text := string(data)
	if w.cache != nil {
		w.cache.Add(f.FullPath, cachedText{modTime: info.ModTime(), size: info.Size(), text: text})
	}
	return text, nil
}

// AllFiles implements host.ProjectManager. It walks the project root in
// lexical order, skipping ignored directories, and returns the regular files
// filter accepts. A nil filter accepts everything. Unreadable subdirectories
// are skipped; an unreadable root fails the whole listing.
func (w *Workspace) AllFiles(ctx context.Context, filter func(host.File) bool) ([]host.File, error) {
	if _, err := os.Stat(w.root); err != nil {
		return nil, hinterrors.New(hinterrors.EnumerationFailed, "cannot list project", err)
	}

	var files []host.File
	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == w.root {
				return err
			}
			w.logger.Debug("Skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if _, skip := w.ignore[d.Name()]; skip && path != w.root {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(w.root, path)
		if err != nil {
			return nil
		}
		f := host.File{Path: paths.NormalizePath(rel), FullPath: path}
		if filter == nil || filter(f) {
			files = append(files, f)
		}
		return nil
	})
	if err != nil {
		return nil, hinterrors.New(hinterrors.EnumerationFailed, "cannot list project", err)
	}

	w.logger.Debug("Project files listed", "root", w.root, "files", len(files))
	return files, nil
}

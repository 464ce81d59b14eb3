// Package corpus gathers the text of every project file in the language's
// extension set into one search corpus.
package corpus

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"xqhint/internal/host"
	"xqhint/internal/paths"
	"xqhint/internal/slogutil"
)

// Separator joins the contents of consecutive files.
const Separator = "\n\n"

// Corpus is the joined text of all readable project files. There is no error
// channel: enumeration and read failures only shrink the text.
type Corpus struct {
	Text   string
	Files  int // files accepted by the extension filter
	Read   int // files whose text was retrieved
	Failed int // files whose read failed
}

// Options configures a Collector.
type Options struct {
	// Extensions without leading dot, matched case-insensitively.
	Extensions []string
	// MaxConcurrentReads bounds in-flight reads; 0 means unbounded.
	MaxConcurrentReads int
}

// Collector builds corpora from a project.
type Collector struct {
	project host.ProjectManager
	docs    host.DocumentManager
	exts    map[string]struct{}
	limit   int
	logger  *slog.Logger
}

// NewCollector creates a collector over project and docs.
func NewCollector(project host.ProjectManager, docs host.DocumentManager, opts Options, logger *slog.Logger) *Collector {
	exts := make(map[string]struct{}, len(opts.Extensions))
	for _, e := range opts.Extensions {
		exts[strings.ToLower(strings.TrimPrefix(e, "."))] = struct{}{}
	}
	return &Collector{
		project: project,
		docs:    docs,
		exts:    exts,
		limit:   opts.MaxConcurrentReads,
		logger:  slogutil.OrDiscard(logger),
	}
}

// Accepts reports whether f's extension is in the supported set.
func (c *Collector) Accepts(f host.File) bool {
	name := f.Path
	if name == "" {
		name = f.FullPath
	}
	_, ok := c.exts[paths.Ext(name)]
	return ok
}

// Collect enumerates matching files, reads them concurrently and joins the
// successful reads with Separator in path order. It always returns; the
// result is never a partial join of in-flight reads.
func (c *Collector) Collect(ctx context.Context) Corpus {
	start := time.Now()

	files, err := c.project.AllFiles(ctx, c.Accepts)
	if err != nil {
		c.logger.Warn("Project file enumeration failed", "error", err)
		return Corpus{}
	}

	sort.SliceStable(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	texts := make([]string, len(files))
	ok := make([]bool, len(files))
	var failed atomic.Int32

	var g errgroup.Group
	if c.limit > 0 {
		g.SetLimit(c.limit)
	}
	for i, f := range files {
		g.Go(func() error {
			text, err := c.docs.DocumentText(ctx, f)
			if err != nil {
				failed.Add(1)
				c.logger.Warn("Skipping unreadable file", "path", f.Path, "error", err)
				return nil
			}
			texts[i] = text
			ok[i] = true
			return nil
		})
	}
	_ = g.Wait()

	read := make([]string, 0, len(files))
	for i := range files {
		if ok[i] {
			read = append(read, texts[i])
		}
	}

	out := Corpus{
		Text:   strings.Join(read, Separator),
		Files:  len(files),
		Read:   len(read),
		Failed: int(failed.Load()),
	}
	c.logger.Debug("Corpus collected",
		"files", out.Files,
		"read", out.Read,
		"failed", out.Failed,
		"bytes", len(out.Text),
		"duration", time.Since(start),
	)
	return out
}

// Package plugin wires the XQuery hint provider into a host: the language
// definition is registered at load time and the provider once the host is
// ready. Both happen at most once per Extension.
package plugin

import (
	"log/slog"
	"slices"
	"sync"

	"xqhint/internal/config"
	"xqhint/internal/corpus"
	"xqhint/internal/hint"
	"xqhint/internal/host"
	"xqhint/internal/language"
	"xqhint/internal/slogutil"
)

// Host is everything the extension needs from the editor.
type Host interface {
	host.DocumentManager
	host.ProjectManager
	host.LanguageRegistry
	host.HintManager
}

// Extension is the loadable unit.
type Extension struct {
	cfg    *config.Config
	logger *slog.Logger

	initOnce  sync.Once
	initErr   error
	readyOnce sync.Once
	provider  *hint.Provider
}

// NewExtension creates an extension. A nil cfg means the defaults.
func NewExtension(cfg *config.Config, logger *slog.Logger) *Extension {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Extension{cfg: cfg, logger: slogutil.OrDiscard(logger)}
}

// Language returns the definition Init registers: the built-in XQuery
// definition under the configured id and extensions.
func (e *Extension) Language() language.Definition {
	def := language.XQuery()
	if e.cfg.LanguageID != "" {
		def.ID = e.cfg.LanguageID
	}
	if len(e.cfg.Extensions) > 0 {
		def.FileExtensions = slices.Clone(e.cfg.Extensions)
	}
	return def
}

// Init registers the language definition. Later calls return the first
// call's result.
func (e *Extension) Init(reg host.LanguageRegistry) error {
	e.initOnce.Do(func() {
		def := e.Language()
		e.initErr = reg.DefineLanguage(def)
		if e.initErr != nil {
			e.logger.Error("Language registration failed", "id", def.ID, "error", e.initErr)
			return
		}
		e.logger.Info("Language registered", "id", def.ID, "extensions", def.FileExtensions)
	})
	return e.initErr
}

// AppReady builds the hint provider and registers it with h. Later calls
// return the already registered provider.
func (e *Extension) AppReady(h Host) *hint.Provider {
	e.readyOnce.Do(func() {
		collector := corpus.NewCollector(h, h, corpus.Options{
			Extensions:         e.cfg.Extensions,
			MaxConcurrentReads: e.cfg.Corpus.MaxConcurrentReads,
		}, e.logger)
		e.provider = hint.NewProvider(collector, h, hint.Options{
			Decorator: Decorator(e.cfg.Display.Style),
			Logger:    e.logger,
		})
		h.RegisterHintProvider(e.provider, []string{e.Language().ID}, e.cfg.Priority)
		e.logger.Info("Hint provider registered", "language", e.Language().ID, "priority", e.cfg.Priority)
	})
	return e.provider
}

// Activate runs Init then AppReady.
func (e *Extension) Activate(h Host) (*hint.Provider, error) {
	if err := e.Init(h); err != nil {
		return nil, err
	}
	return e.AppReady(h), nil
}

// Provider returns the registered provider, or nil before AppReady.
func (e *Extension) Provider() *hint.Provider {
	return e.provider
}

// Decorator maps a display style to its decorator. Unknown styles get HTML.
func Decorator(style string) hint.Decorator {
	if style == config.DisplayTerminal {
		return hint.NewTerminalDecorator()
	}
	return hint.HTMLDecorator{}
}

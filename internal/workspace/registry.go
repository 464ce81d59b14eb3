package workspace

import (
	"cmp"
	"slices"

	"xqhint/internal/host"
	"xqhint/internal/language"
	"xqhint/internal/paths"
)

type registration struct {
	provider  host.HintProvider
	languages []string
	priority  int
}

// DefineLanguage implements host.LanguageRegistry.
func (w *Workspace) DefineLanguage(def language.Definition) error {
	if err := w.languages.DefineLanguage(def); err != nil {
		return err
	}
	w.logger.Debug("Language defined", "id", def.ID, "extensions", def.FileExtensions)
	return nil
}

// Languages returns every defined language sorted by id.
func (w *Workspace) Languages() []language.Definition {
	return w.languages.All()
}

// LanguageForPath returns the language claiming path's extension.
func (w *Workspace) LanguageForPath(path string) (language.Definition, bool) {
	return w.languages.ForExtension(paths.Ext(path))
}

// RegisterHintProvider implements host.HintManager.
func (w *Workspace) RegisterHintProvider(p host.HintProvider, languageIDs []string, priority int) {
	w.mu.Lock()
	w.providers = append(w.providers, registration{
		provider:  p,
		languages: slices.Clone(languageIDs),
		priority:  priority,
	})
	w.mu.Unlock()

	w.logger.Debug("Hint provider registered", "languages", languageIDs, "priority", priority)
}

// ProvidersFor returns the providers registered for languageID, lowest
// priority first. Equal priorities keep registration order.
func (w *Workspace) ProvidersFor(languageID string) []host.HintProvider {
	w.mu.RLock()
	var regs []registration
	for _, r := range w.providers {
		if slices.Contains(r.languages, languageID) {
			regs = append(regs, r)
		}
	}
	w.mu.RUnlock()

	slices.SortStableFunc(regs, func(a, b registration) int {
		return cmp.Compare(a.priority, b.priority)
	})
	out := make([]host.HintProvider, len(regs))
	for i, r := range regs {
		out[i] = r.provider
	}
	return out
}

// ProviderForPath returns the first provider for the language of path.
func (w *Workspace) ProviderForPath(path string) (host.HintProvider, bool) {
	def, ok := w.LanguageForPath(path)
	if !ok {
		return nil, false
	}
	ps := w.ProvidersFor(def.ID)
	if len(ps) == 0 {
		return nil, false
	}
	return ps[0], true
}

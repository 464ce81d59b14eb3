package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"xqhint/internal/config"
	"xqhint/internal/language"
	"xqhint/internal/vocab"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
	FormatHuman OutputFormat = "human"
)

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatYAML:
		return formatYAML(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

func formatYAML(resp interface{}) (string, error) {
	data, err := yaml.Marshal(resp)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *CompletionResponseCLI:
		return formatCompletionHuman(v), nil
	case *vocab.Vocabulary:
		return formatVocabHuman(v), nil
	case []language.Definition:
		return formatLanguagesHuman(v), nil
	case *config.Config:
		return formatYAML(v)
	default:
		// For unknown types, fall back to JSON
		return formatJSON(resp)
	}
}

func formatCompletionHuman(r *CompletionResponseCLI) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s at %s, prefix %q: ", r.File, r.Position, r.Prefix)
	switch {
	case r.Stale:
		b.WriteString("request superseded\n")
	case len(r.Hints) == 1:
		b.WriteString("1 hint\n")
	default:
		fmt.Fprintf(&b, "%d hints\n", len(r.Hints))
	}
	for i, d := range r.Display {
		fmt.Fprintf(&b, "%4d  %s\n", i, d)
	}
	if r.Inserted != "" {
		fmt.Fprintf(&b, "\nInserted %q:\n%s\n", r.Inserted, r.Text)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatVocabHuman(v *vocab.Vocabulary) string {
	var b strings.Builder
	section := func(name string, entries []string) {
		fmt.Fprintf(&b, "%s (%d):\n", name, len(entries))
		for _, e := range entries {
			fmt.Fprintf(&b, "  %s\n", e)
		}
	}
	section("Keywords", v.Keywords)
	section("Types", v.Types)
	section("Operators", v.Operators)
	section("Axes", v.Axes)
	fmt.Fprintf(&b, "Total: %d", v.Len())
	return b.String()
}

func formatLanguagesHuman(defs []language.Definition) string {
	var b strings.Builder
	for i, d := range defs {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s (%s)\n", d.ID, d.Name)
		fmt.Fprintf(&b, "  mode:       %s\n", d.Mode)
		fmt.Fprintf(&b, "  extensions: %s\n", strings.Join(d.FileExtensions, ", "))
		fmt.Fprintf(&b, "  comments:   %s ... %s\n", d.BlockComment.Prefix, d.BlockComment.Suffix)
	}
	return strings.TrimRight(b.String(), "\n")
}
